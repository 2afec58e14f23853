package backend

import (
	"time"

	"github.com/okian/skillcard/pkg/logger"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each call. Zero keeps calls unbounded apart from ctx.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}
