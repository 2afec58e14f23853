package web

import (
	"github.com/okian/skillcard/internal/adapters/session"
	"github.com/okian/skillcard/pkg/logger"
)

const (
	defaultCookieName = "skillcard_session"
	defaultAvatarURL  = "https://api.dicebear.com/7.x/avataaars/svg?seed={username}"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSessionStore replaces the default in-memory session store.
func WithSessionStore(store session.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.sessions = store
		}
	}
}

// WithSessionCookie names the cookie carrying the session id.
func WithSessionCookie(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.cookieName = name
		}
	}
}

// WithAvatarTemplate sets the avatar URL sent on registration. "{username}"
// is replaced with the query-escaped username. Empty omits the avatar.
func WithAvatarTemplate(tpl string) Option {
	return func(s *Server) {
		s.avatarTemplate = tpl
	}
}

// WithTheme overrides the page palette. Empty fields keep their defaults.
func WithTheme(t Theme) Option {
	return func(s *Server) {
		if t.Mode != "" {
			s.theme.Mode = t.Mode
		}
		if t.Primary != "" {
			s.theme.Primary = t.Primary
		}
		if t.Secondary != "" {
			s.theme.Secondary = t.Secondary
		}
	}
}
