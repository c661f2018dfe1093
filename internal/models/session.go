// internal/models/session.go
package models

import "time"

// Session is the single persisted login token. Presence of the row is the
// entire login state; the token itself stays opaque and carries no expiry.
type Session struct {
	Key       string    `json:"key" gorm:"primaryKey;size:64"`
	Token     string    `json:"-" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}
