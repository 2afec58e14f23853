package config_test

import (
	"errors"
	"testing"

	"github.com/okian/skillcard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
			convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://localhost:8001")
			convey.So(cfg.APITimeoutMS, convey.ShouldEqual, 0)
			convey.So(cfg.MaxSessions, convey.ShouldEqual, 10_000)
			convey.So(cfg.SessionCookie, convey.ShouldEqual, "skillcard_session")
			convey.So(cfg.ThemePrimary, convey.ShouldEqual, "#1976d2")
			convey.So(cfg.ThemeSecondary, convey.ShouldEqual, "#dc004e")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with broken fields", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"relative base url", func(c *config.Config) { c.APIBaseURL = "/api" }},
			{"negative timeout", func(c *config.Config) { c.APITimeoutMS = -1 }},
			{"empty cookie", func(c *config.Config) { c.SessionCookie = "" }},
		}

		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)
			err := cfg.Validate()

			convey.Convey("Then "+tc.name+" is rejected as invalid config", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
