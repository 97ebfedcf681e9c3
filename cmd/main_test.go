package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	app "github.com/okian/scoutboard/internal/app"
	"github.com/okian/scoutboard/internal/config"
	"github.com/okian/scoutboard/pkg/logger"
	"github.com/okian/scoutboard/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestNewHTTPServer(t *testing.T) {
	convey.Convey("Given a configured HTTP server", t, func() {
		ctx := context.Background()
		cfg := config.New()
		svc := app.New()
		srv := newHTTPServer(ctx, cfg, svc, logger.Get())

		convey.Convey("Then it should use the configured address and timeouts", func() {
			convey.So(srv.Addr, convey.ShouldEqual, ":5000")
			convey.So(srv.ReadTimeout, convey.ShouldEqual, readTimeout)
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
		})

		convey.Convey("Then every route group should be mounted", func() {
			for _, tc := range []struct {
				method, path string
				want         int
			}{
				{http.MethodGet, "/", http.StatusOK},
				{http.MethodGet, "/api-docs", http.StatusOK},
				{http.MethodGet, "/openapi.yaml", http.StatusOK},
				{http.MethodGet, "/healthz", http.StatusOK},
				{http.MethodGet, "/stats", http.StatusOK},
				{http.MethodGet, "/rankings", http.StatusOK},
				{http.MethodGet, "/leaderboard", http.StatusOK},
				{http.MethodPost, "/clear", http.StatusOK},
				{http.MethodPost, "/leaderboard/clear", http.StatusOK},
				{http.MethodGet, "/missing", http.StatusNotFound},
			} {
				w := httptest.NewRecorder()
				srv.Handler.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, tc.want)
			}
		})

		convey.Convey("Then a submission should round-trip through the chain", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/leaderboard/submit", strings.NewReader(`{"username":"ana","score":7}`))
			srv.Handler.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(svc.GetStats()["leaderboardEntries"], convey.ShouldEqual, 1)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a free local address", t, func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		addr := l.Addr().String()
		convey.So(l.Close(), convey.ShouldBeNil)

		cfg := config.New()
		cfg.Addr = addr
		cfg.MetricsIntervalMS = 100

		convey.Convey("When running until the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- run(ctx, cfg) }()

			var resp *http.Response
			for i := 0; i < 50; i++ {
				resp, err = http.Get("http://" + addr + "/leaderboard")
				if err == nil {
					break
				}
				time.Sleep(20 * time.Millisecond)
			}
			cancel()

			convey.Convey("Then it should serve requests and shut down cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				_ = resp.Body.Close()
				select {
				case runErr := <-done:
					convey.So(runErr, convey.ShouldBeNil)
				case <-time.After(5 * time.Second):
					t.Fatal("run did not return after cancel")
				}
			})
		})
	})

	convey.Convey("Given custom metrics names", t, func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		addr := l.Addr().String()
		convey.So(l.Close(), convey.ShouldBeNil)

		cfg := config.New()
		cfg.Addr = addr
		cfg.MetricsNamespace = "pitcrew"
		cfg.MetricsSubsystem = "edge"
		defer metrics.Configure()

		convey.Convey("When the server is running", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- run(ctx, cfg) }()

			var body []byte
			for i := 0; i < 50; i++ {
				resp, getErr := http.Get("http://" + addr + "/healthz")
				if getErr == nil {
					body, err = io.ReadAll(resp.Body)
					_ = resp.Body.Close()
					break
				}
				time.Sleep(20 * time.Millisecond)
			}
			cancel()
			<-done

			convey.Convey("Then /healthz should expose the configured names", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(body), convey.ShouldContainSubstring, "pitcrew_edge_")
				convey.So(string(body), convey.ShouldNotContainSubstring, "scoutboard_api_")
			})
		})
	})

	convey.Convey("Given an address that cannot be bound", t, func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = l.Close() }()

		cfg := config.New()
		cfg.Addr = l.Addr().String()

		convey.Convey("Then run should return the listen error", func() {
			err := run(context.Background(), cfg)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "http server")
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then it should publish a goroutine gauge", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			families, err := metrics.GetRegistry().Gather()
			convey.So(err, convey.ShouldBeNil)
			found := false
			for _, mf := range families {
				if mf.GetName() == "scoutboard_api_system_goroutine_count" {
					found = true
				}
			}
			convey.So(found, convey.ShouldBeTrue)
		})
	})
}
