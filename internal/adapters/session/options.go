package session

import (
	"time"

	"github.com/okian/skillcard/internal/domain/profileview"
)

// Option applies a configuration option to the in-memory store.
type Option func(*inMemoryStore)

// WithMaxSessions bounds the number of live sessions.
// maxSessions <= 0 leaves the store unbounded.
func WithMaxSessions(maxSessions int) Option {
	return func(s *inMemoryStore) {
		s.maxSize = maxSessions
	}
}

// WithIdleTTL drops sessions untouched for longer than ttl. Zero disables expiry.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *inMemoryStore) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithViewFactory sets how each new session builds its profile view.
func WithViewFactory(f func() *profileview.View) Option {
	return func(s *inMemoryStore) {
		if f != nil {
			s.newView = f
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *inMemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
