// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers a YAML file and env vars on top.
// - Validation errors wrap ErrInvalidConfig, provider errors wrap ErrLoadConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects "text" or "json" log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// APIBaseURL is the root of the remote profile API.
	APIBaseURL string `koanf:"api_base_url"`

	// APITimeoutMS bounds each remote call; 0 disables the client timeout.
	APITimeoutMS int `koanf:"api_timeout_ms"`

	// MaxSessions caps browser sessions kept in memory.
	MaxSessions int `koanf:"max_sessions"`

	// SessionTTLMS expires sessions idle for longer than this.
	SessionTTLMS int `koanf:"session_ttl_ms"`

	// SessionCookie names the cookie carrying the session id.
	SessionCookie string `koanf:"session_cookie"`

	// AvatarURLTemplate builds avatar_url on registration; "{username}" is
	// replaced with the escaped username. Empty omits the field.
	AvatarURLTemplate string `koanf:"avatar_url_template"`

	// Theme palette shared by every page.
	ThemeMode      string `koanf:"theme_mode"`
	ThemePrimary   string `koanf:"theme_primary"`
	ThemeSecondary string `koanf:"theme_secondary"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":3000",
		APIBaseURL:        "http://localhost:8001",
		APITimeoutMS:      0,
		MaxSessions:       10_000,
		SessionTTLMS:      30 * 60 * 1000,
		SessionCookie:     "skillcard_session",
		AvatarURLTemplate: "https://api.dicebear.com/7.x/avataaars/svg?seed={username}",
		ThemeMode:         "light",
		ThemePrimary:      "#1976d2",
		ThemeSecondary:    "#dc004e",
	}
}
