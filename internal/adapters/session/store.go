// Package session keeps per-browser state on the server.
package session

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/skillcard/internal/domain/profileview"
	"github.com/okian/skillcard/pkg/metrics"
)

// Eviction reasons reported to metrics.
const (
	ReasonCapacity = "capacity"
	ReasonIdle     = "idle"
)

const defaultMaxSessions = 10_000

// Session is one browser's server-side state.
type Session struct {
	ID      string
	Profile *profileview.View
	Created time.Time

	lastSeen time.Time
}

// Store tracks live sessions.
type Store interface {
	// Get returns the live session for id and marks it used.
	// Expired sessions are dropped and reported missing.
	Get(ctx context.Context, id string) (*Session, bool)

	// Create starts a new session with a fresh id.
	Create(ctx context.Context) *Session

	// Delete drops a session. Unknown ids are ignored.
	Delete(ctx context.Context, id string)

	// Sweep drops every idle session and returns how many were removed.
	Sweep(ctx context.Context) int

	Size() int64
}

// inMemoryStore is an LRU list keyed by session id. The front of the list
// holds the most recently used session.
type inMemoryStore struct {
	mu      sync.Mutex
	items   map[string]*list.Element
	order   *list.List
	maxSize int
	ttl     time.Duration
	size    atomic.Int64
	newView func() *profileview.View
	now     func() time.Time
}

// NewInMemoryStore creates a session store with configuration options.
func NewInMemoryStore(opts ...Option) Store {
	s := &inMemoryStore{
		maxSize: defaultMaxSessions,
		now:     time.Now,
		newView: func() *profileview.View { return profileview.New(nil) },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.items = make(map[string]*list.Element)
	s.order = list.New()
	return s
}

func (s *inMemoryStore) Get(_ context.Context, id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[id]
	if !ok {
		return nil, false
	}
	sess := el.Value.(*Session) //nolint:forcetypeassert // list only holds sessions
	now := s.now()
	if s.expired(sess, now) {
		s.remove(el, ReasonIdle)
		return nil, false
	}
	sess.lastSeen = now
	s.order.MoveToFront(el)
	return sess, true
}

func (s *inMemoryStore) Create(_ context.Context) *Session {
	now := s.now()
	sess := &Session{
		ID:       uuid.NewString(),
		Profile:  s.newView(),
		Created:  now,
		lastSeen: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSize > 0 {
		for s.order.Len() >= s.maxSize {
			s.remove(s.order.Back(), ReasonCapacity)
		}
	}
	s.items[sess.ID] = s.order.PushFront(sess)
	s.size.Add(1)
	metrics.UpdateActiveSessions(s.order.Len())
	return sess
}

func (s *inMemoryStore) Delete(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[id]; ok {
		s.remove(el, "")
	}
}

func (s *inMemoryStore) Sweep(_ context.Context) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	// Least recently used sessions sit at the back; stop at the first live one.
	for el := s.order.Back(); el != nil; el = s.order.Back() {
		if !s.expired(el.Value.(*Session), now) { //nolint:forcetypeassert // list only holds sessions
			break
		}
		s.remove(el, ReasonIdle)
		removed++
	}
	return removed
}

func (s *inMemoryStore) Size() int64 {
	return s.size.Load()
}

func (s *inMemoryStore) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

// remove unlinks el. Must hold s.mu.
func (s *inMemoryStore) remove(el *list.Element, reason string) {
	sess := s.order.Remove(el).(*Session) //nolint:forcetypeassert // list only holds sessions
	delete(s.items, sess.ID)
	s.size.Add(-1)

	if reason != "" {
		metrics.RecordSessionEviction(reason)
	}
	metrics.UpdateActiveSessions(s.order.Len())
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying sess.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session stored by NewContext, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*Session)
	return sess, ok && sess != nil
}
