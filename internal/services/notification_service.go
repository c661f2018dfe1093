// internal/services/notification_service.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type NotificationLevel string

const (
	NotificationLevelSuccess NotificationLevel = "success"
	NotificationLevelInfo    NotificationLevel = "info"
	NotificationLevelWarning NotificationLevel = "warning"
	NotificationLevelError   NotificationLevel = "error"
)

type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

// NotificationService is the side channel for user-facing outcomes that are
// not the direct response of a request: stock warnings during checkout,
// login/logout toasts observed through the session watch, and so on. The
// feed is bounded; the oldest entries fall off first.
type NotificationService struct {
	mtx      sync.Mutex
	entries  []Notification
	capacity int
}

func NewNotificationService(capacity int) *NotificationService {
	if capacity < 1 {
		capacity = 100
	}
	return &NotificationService{capacity: capacity}
}

func (s *NotificationService) Push(level NotificationLevel, message string) {
	entry := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	s.mtx.Lock()
	s.entries = append(s.entries, entry)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[len(s.entries)-s.capacity:]
	}
	s.mtx.Unlock()

	logrus.WithFields(logrus.Fields{
		"notification_id": entry.ID,
		"level":           level,
	}).Info(message)
}

// Drain returns all pending notifications and empties the feed, the same
// way a toast is shown once and dismissed.
func (s *NotificationService) Drain() []Notification {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	entries := s.entries
	s.entries = nil
	if entries == nil {
		entries = []Notification{}
	}
	return entries
}
