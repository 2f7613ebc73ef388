package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	service "github.com/okian/ignite/internal/app"
	"github.com/okian/ignite/internal/config"
	"github.com/okian/ignite/internal/server"
	"github.com/okian/ignite/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func TestServer(t *testing.T) {
	Convey("Given a server over an initialized service", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.SampleSize = 60
		cfg.ForestTrees = 10
		cfg.BoostingEstimators = 10
		svc := service.New(service.WithConfig(cfg))
		_, err := svc.Initialize(ctx)
		So(err, ShouldBeNil)

		srv := server.New(ctx, cfg, svc)
		So(srv.Addr, ShouldEqual, cfg.Addr)

		Convey("Then the API and docs routes are served", func() {
			for _, path := range []string{"/healthz", "/stats", "/risks?limit=3", "/risks/EMP0000", "/factors/EMP0000", "/importance", "/departments", "/openapi.yaml"} {
				w := httptest.NewRecorder()
				srv.Handler.ServeHTTP(w, httptest.NewRequest("GET", path, http.NoBody))
				So(w.Code, ShouldEqual, http.StatusOK)
			}
		})

		Convey("Then /risks honours the limit", func() {
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/risks?limit=3", http.NoBody))
			var got []map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 3)
		})
	})

	Convey("Given a running server", t, func() {
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"
		svc := service.New(service.WithConfig(cfg))
		ctx, cancel := context.WithCancel(context.Background())
		srv := server.New(ctx, cfg, svc)

		done := make(chan error, 1)
		go func() { done <- server.Run(ctx, srv) }()

		Convey("When its context is cancelled", func() {
			time.Sleep(50 * time.Millisecond)
			cancel()

			Convey("Then it shuts down cleanly", func() {
				select {
				case err := <-done:
					So(err, ShouldBeNil)
				case <-time.After(5 * time.Second):
					So("timeout", ShouldBeEmpty)
				}
			})
		})
	})
}
