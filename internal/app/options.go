package service

import (
	"time"

	"github.com/okian/skillcard/internal/adapters/http/web"
	"github.com/okian/skillcard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAPIBaseURL sets the root of the remote profile API.
func WithAPIBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.apiBaseURL = u
		}
	}
}

// WithAPITimeout bounds each remote call. Zero means no timeout.
func WithAPITimeout(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.apiTimeout = d
		}
	}
}

// WithMaxSessions bounds live browser sessions.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSessionTTL drops sessions idle for longer than d. Zero disables expiry.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.sessionTTL = d
		}
	}
}

// WithSweepInterval sets how often idle sessions are swept.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// WithSessionCookie names the session cookie.
func WithSessionCookie(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.cookieName = name
		}
	}
}

// WithAvatarTemplate sets the avatar URL template used on registration.
func WithAvatarTemplate(tpl string) Option {
	return func(s *Service) {
		s.avatarTemplate = tpl
	}
}

// WithTheme sets the page palette.
func WithTheme(t web.Theme) Option {
	return func(s *Service) {
		s.theme = t
	}
}
