// Package profileview holds the per-session profile page state machine.
//
// Every Enter restarts the machine from Loading and issues one fetch. Each
// fetch carries a generation number; only the latest generation may commit.
// An older fetch runs to completion and its result goes back to its own
// caller uncommitted.
package profileview

import (
	"context"
	"errors"
	"sync"

	"github.com/okian/skillcard/internal/domain/model"
	"github.com/okian/skillcard/internal/domain/radar"
	"github.com/okian/skillcard/pkg/logger"
	"github.com/okian/skillcard/pkg/metrics"
)

// User-facing failure messages.
const (
	MsgNotFound   = "Profile not found"
	MsgLoadFailed = "Failed to load profile"
)

// ErrNoFetcher is what a view built without a fetcher fails with.
var ErrNoFetcher = errors.New("profileview: no fetcher configured")

// Fetcher loads one profile. backend.Client satisfies it.
type Fetcher interface {
	GetProfile(ctx context.Context, username string) (model.User, error)
}

type noFetcher struct{}

func (noFetcher) GetProfile(context.Context, string) (model.User, error) {
	return model.User{}, ErrNoFetcher
}

// State of the profile view.
type State int

const (
	Loading State = iota
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is an immutable copy of the view at one point in time.
type Snapshot struct {
	State      State       `json:"state"`
	Username   string      `json:"username"`
	User       *model.User `json:"user,omitempty"`
	Chart      radar.Chart `json:"chart"`
	Err        string      `json:"error,omitempty"`
	Generation uint64      `json:"generation"`
	// Superseded is set on the result of a fetch that lost to a newer Enter.
	// It still carries that fetch's outcome but was never committed.
	Superseded bool `json:"superseded,omitempty"`
}

// View is safe for concurrent use.
type View struct {
	fetcher Fetcher
	logger  logger.Logger

	mu   sync.Mutex
	gen  uint64
	snap Snapshot
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the view logger.
func WithLogger(l logger.Logger) Option {
	return func(v *View) {
		if l != nil {
			v.logger = l
		}
	}
}

// New returns a view in Loading with no data. A nil fetcher makes every
// Enter end in Error.
func New(fetcher Fetcher, opts ...Option) *View {
	if fetcher == nil {
		fetcher = noFetcher{}
	}
	v := &View{
		fetcher: fetcher,
		logger:  logger.Nop(),
		snap:    Snapshot{State: Loading},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Enter restarts the view for username and blocks until its fetch resolves.
// The returned snapshot is this call's own outcome; it is committed only
// when no later Enter has started meanwhile.
func (v *View) Enter(ctx context.Context, username string) Snapshot {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.snap = Snapshot{State: Loading, Username: username, Generation: gen}
	v.mu.Unlock()

	user, err := v.fetcher.GetProfile(ctx, username)

	snap := Snapshot{Username: username, Generation: gen}
	if err != nil {
		snap.State = Error
		snap.Err = MsgLoadFailed
		if errors.Is(err, model.ErrNotFound) {
			snap.Err = MsgNotFound
		}
	} else {
		snap.State = Success
		snap.User = &user
		snap.Chart = radar.FromSkills(user.Skills)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		snap.Superseded = true
		metrics.RecordProfileSuperseded()
		v.logger.Debug(ctx, "discarding superseded profile response",
			logger.String("username", username),
			logger.Any("generation", gen),
			logger.Any("latest", v.gen),
		)
		return snap
	}

	if err != nil {
		v.logger.Info(ctx, "profile load failed",
			logger.String("username", username),
			logger.Error(err),
		)
	}
	v.snap = snap
	metrics.RecordProfileView(snap.State.String())
	return snap
}

// Current returns the last committed snapshot without fetching.
func (v *View) Current() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}
