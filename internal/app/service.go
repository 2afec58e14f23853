// Package service wires the remote API client, the session store and the
// web server into one runnable unit.
package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/okian/skillcard/internal/adapters/backend"
	"github.com/okian/skillcard/internal/adapters/http/web"
	"github.com/okian/skillcard/internal/adapters/session"
	"github.com/okian/skillcard/internal/domain/profileview"
	"github.com/okian/skillcard/pkg/logger"
	"github.com/okian/skillcard/pkg/metrics"
)

// ErrNotStarted is returned by operations that need a started service.
var ErrNotStarted = errors.New("service not started")

// Service owns the long-lived components of the web application.
type Service struct {
	mu sync.RWMutex

	// Core components
	api      *backend.Client
	sessions session.Store
	web      *web.Server

	// Configuration
	apiBaseURL     string
	apiTimeout     time.Duration
	maxSessions    int
	sessionTTL     time.Duration
	sweepInterval  time.Duration
	cookieName     string
	avatarTemplate string
	theme          web.Theme

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		apiBaseURL:     "http://localhost:8001",
		maxSessions:    10_000,
		sessionTTL:     30 * time.Minute,
		sweepInterval:  time.Minute,
		cookieName:     "skillcard_session",
		avatarTemplate: "https://api.dicebear.com/7.x/avataaars/svg?seed={username}",
		theme:          web.DefaultTheme(),
		logger:         nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the components and starts the idle session sweeper.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting skillcard service...")

	api, err := backend.New(s.apiBaseURL,
		backend.WithLogger(s.logger.Named("backend")),
		backend.WithTimeout(s.apiTimeout),
	)
	if err != nil {
		return err
	}

	viewLogger := s.logger.Named("profileview")
	sessions := session.NewInMemoryStore(
		session.WithMaxSessions(s.maxSessions),
		session.WithIdleTTL(s.sessionTTL),
		session.WithViewFactory(func() *profileview.View {
			return profileview.New(api, profileview.WithLogger(viewLogger))
		}),
	)

	srv, err := web.NewServer(api,
		web.WithLogger(s.logger.Named("web")),
		web.WithSessionStore(sessions),
		web.WithSessionCookie(s.cookieName),
		web.WithAvatarTemplate(s.avatarTemplate),
		web.WithTheme(s.theme),
	)
	if err != nil {
		return err
	}

	s.api = api
	s.sessions = sessions
	s.web = srv
	s.stopCh = make(chan struct{})

	if s.sessionTTL > 0 && s.sweepInterval > 0 {
		s.wg.Add(1)
		go s.sweepLoop(s.stopCh)
	}

	s.started = true
	s.logger.Info(ctx, "skillcard service started",
		logger.String("apiBaseURL", api.BaseURL()),
		logger.Int("maxSessions", s.maxSessions),
		logger.Duration("sessionTTL", s.sessionTTL),
	)

	return nil
}

// Stop halts background work. In-flight requests are drained by the HTTP server.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.logger.Info(context.Background(), "stopping skillcard service...")
	close(s.stopCh)
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "skillcard service stopped")
}

// Handler returns the HTTP handler serving every route.
func (s *Service) Handler(ctx context.Context) (http.Handler, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.web.Handler(ctx), nil
}

func (s *Service) sweepLoop(stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx := context.Background()
			if n := s.sessions.Sweep(ctx); n > 0 {
				s.logger.Debug(ctx, "swept idle sessions", logger.Int("count", n))
			}
		}
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"apiBaseURL":  s.apiBaseURL,
		"maxSessions": s.maxSessions,
		"sessionTTL":  s.sessionTTL.String(),
	}

	if s.sessions != nil {
		active := s.sessions.Size()
		stats["activeSessions"] = active
		metrics.UpdateActiveSessions(int(active))
	}

	return stats
}
