package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/skillcard/internal/config"
	"github.com/okian/skillcard/pkg/logger"
	"github.com/okian/skillcard/pkg/metrics"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.So(logger.Init(logger.WithWriter(io.Discard)), convey.ShouldBeNil)

		convey.Convey("When testing configuration loading", func() {
			t.Setenv("SKILLCARD_ADDR", ":8080")
			t.Setenv("SKILLCARD_MAX_SESSIONS", "25")

			convey.Convey("Then environment overrides defaults", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxSessions, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When building the service from configuration", func() {
			cfg := config.New()
			cfg.APITimeoutMS = 1500
			svc := newService(cfg, logger.Get())

			convey.Convey("Then stats reflect the configuration", func() {
				stats := svc.GetStats()
				convey.So(stats["apiBaseURL"], convey.ShouldEqual, cfg.APIBaseURL)
				convey.So(stats["maxSessions"], convey.ShouldEqual, cfg.MaxSessions)
			})

			convey.Convey("Then the HTTP server needs a started service", func() {
				_, err := newHTTPServer(context.Background(), cfg, svc)
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("Then a started service yields a configured server", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
				defer svc.Stop()

				srv, err := newHTTPServer(ctx, cfg, svc)
				convey.So(err, convey.ShouldBeNil)
				convey.So(srv.Addr, convey.ShouldEqual, cfg.Addr)
				convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)

				w := httptest.NewRecorder()
				srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When system metrics are refreshed", func() {
			updateSystemMetrics()

			convey.Convey("Then the goroutine gauge is set", func() {
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)

				var goroutines float64
				for _, mf := range families {
					if mf.GetName() == "skillcard_system_goroutines" {
						goroutines = mf.GetMetric()[0].GetGauge().GetValue()
					}
				}
				convey.So(goroutines, convey.ShouldBeGreaterThan, 0)
			})
		})
	})
}
