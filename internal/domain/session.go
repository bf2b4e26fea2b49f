package domain

import (
	"context"
	"time"
)

// Session is the server-side record behind an auth token. A token is only
// honoured while its session exists and has not expired.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes every session of the user.
	DeleteByUser(ctx context.Context, userID string) error
}
