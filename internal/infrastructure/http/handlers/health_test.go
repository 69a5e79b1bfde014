package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func serveReadiness(t *testing.T, h *HealthDependenciesHandler) (int, readinessResponse) {
	t.Helper()
	code, body := serveReadinessRaw(t, h)
	var resp readinessResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return code, resp
}

func serveReadinessRaw(t *testing.T, h *HealthDependenciesHandler) (int, string) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec.Code, rec.Body.String()
}

func TestReadiness_AllHealthy(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ok := DependencyCheck{Name: "mongodb", Ping: func(context.Context) error { return nil }}
	code, resp := serveReadiness(t, NewHealthDependenciesHandler(zerolog.Nop(), ok, RedisCheck(rdb)))

	if code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected ready, got %d %+v", code, resp)
	}
	if resp.Dependencies["redis"].Status != "ok" {
		t.Fatalf("expected redis ok, got %+v", resp.Dependencies["redis"])
	}
}

func TestReadiness_Degraded(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.7:27017: connection refused")
	down := DependencyCheck{Name: "mongodb", Ping: func(context.Context) error { return cause }}

	var logs bytes.Buffer
	code, body := serveReadinessRaw(t, NewHealthDependenciesHandler(zerolog.New(&logs), down))

	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if strings.Contains(body, "10.0.0.7") || strings.Contains(body, "refused") {
		t.Fatalf("response leaks the failure cause: %s", body)
	}
	var resp readinessResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" || resp.Dependencies["mongodb"].Status != "unhealthy" {
		t.Fatalf("unexpected readiness %+v", resp)
	}
	if !strings.Contains(logs.String(), "10.0.0.7:27017") {
		t.Fatalf("expected the cause to be logged, got %q", logs.String())
	}
}

func TestReadiness_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	code, resp := serveReadiness(t, NewHealthDependenciesHandler(zerolog.Nop(), RedisCheck(rdb)))
	if code != http.StatusServiceUnavailable || resp.Dependencies["redis"].Status != "unhealthy" {
		t.Fatalf("expected redis unhealthy, got %d %+v", code, resp)
	}
}
