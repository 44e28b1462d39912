package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/infra/config"
)

type okChecker struct{}

func (okChecker) Ping(context.Context) error        { return nil }
func (okChecker) HealthCheck(context.Context) error { return nil }

type failingChecker struct{}

func (failingChecker) Ping(context.Context) error { return errors.New("connection refused") }

func testConfig() *config.AppConfig {
	return &config.AppConfig{App: config.AppSettings{Env: "development"}}
}

func TestHealthz(t *testing.T) {
	engine := Register(Dependencies{Config: testConfig(), Logger: zap.NewNop()})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzHealthy(t *testing.T) {
	engine := Register(Dependencies{
		Config:   testConfig(),
		Logger:   zap.NewNop(),
		Database: okChecker{},
		Cache:    okChecker{},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzDegraded(t *testing.T) {
	engine := Register(Dependencies{
		Config:   testConfig(),
		Logger:   zap.NewNop(),
		Database: failingChecker{},
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	engine := Register(Dependencies{Config: testConfig(), Logger: zap.NewNop()})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
