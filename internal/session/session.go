// Package session keeps per-client login state.  A Session is created when an
// admin logs in, looked up on every request through the cookie that carries
// its id and destroyed on logout or when its fixed lifetime runs out.
package session

import (
	"context"
	"time"
)

// Session is the server-side state behind a session cookie.  Only the Admin
// flag is consulted by the auth gate.
type Session struct {
	ID        string    `json:"id"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether s is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Manager stores sessions.  Get returns nil and no error for unknown or
// expired ids; Destroy is a no-op for unknown ids.
type Manager interface {
	Create(ctx context.Context, admin bool) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Destroy(ctx context.Context, id string) error
}
