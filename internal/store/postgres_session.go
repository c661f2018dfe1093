// internal/store/postgres_session.go
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopline/shopline-backend/internal/models"
)

// sessionKey is the single key the storefront persists.
const sessionKey = "access_token"

const (
	notifyLogin  = "login"
	notifyLogout = "logout"
)

// PostgresSessionStore persists the login token in a one-row sessions table
// and mirrors every change onto a NOTIFY channel. A LISTEN connection feeds
// subscribers, so instances sharing the database observe each other's
// logins and logouts without polling.
type PostgresSessionStore struct {
	db       *gorm.DB
	channel  string
	listener *pq.Listener

	mtx    sync.Mutex
	subs   map[int]chan SessionEvent
	nextID int
	done   chan struct{}
	closed bool
}

func NewPostgresSessionStore(db *gorm.DB, dsn, channel string) (*PostgresSessionStore, error) {
	listener := pq.NewListener(dsn, 5*time.Second, time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logrus.WithError(err).Warn("Session listener connection event")
			}
		})

	if err := listener.Listen(channel); err != nil {
		listener.Close()
		return nil, err
	}

	s := &PostgresSessionStore{
		db:       db,
		channel:  channel,
		listener: listener,
		subs:     make(map[int]chan SessionEvent),
		done:     make(chan struct{}),
	}

	go s.listen()
	return s, nil
}

func (s *PostgresSessionStore) Put(ctx context.Context, token string) error {
	record := models.Session{
		Key:   sessionKey,
		Token: token,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return err
	}

	return s.notify(ctx, notifyLogin)
}

func (s *PostgresSessionStore) Token(ctx context.Context) (string, bool, error) {
	var record models.Session
	err := s.db.WithContext(ctx).First(&record, "key = ?", sessionKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record.Token, true, nil
}

func (s *PostgresSessionStore) Delete(ctx context.Context) error {
	result := s.db.WithContext(ctx).Delete(&models.Session{}, "key = ?", sessionKey)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return nil
	}
	return s.notify(ctx, notifyLogout)
}

func (s *PostgresSessionStore) Subscribe() (<-chan SessionEvent, func()) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan SessionEvent, 8)
	s.subs[id] = ch

	cancel := func() {
		s.mtx.Lock()
		defer s.mtx.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *PostgresSessionStore) Close() error {
	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.mtx.Unlock()

	return s.listener.Close()
}

func (s *PostgresSessionStore) notify(ctx context.Context, payload string) error {
	return s.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", s.channel, payload).Error
}

// listen fans NOTIFY payloads out to subscribers. Events from this instance
// arrive the same way as events from others; subscribers cannot tell the
// difference, which matches the storage-event semantics this mirrors.
func (s *PostgresSessionStore) listen() {
	for {
		select {
		case <-s.done:
			return
		case n := <-s.listener.Notify:
			if n == nil {
				// Connection re-established; state may have changed meanwhile.
				continue
			}
			s.broadcast(SessionEvent{LoggedIn: n.Extra == notifyLogin})
		}
	}
}

func (s *PostgresSessionStore) broadcast(ev SessionEvent) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
