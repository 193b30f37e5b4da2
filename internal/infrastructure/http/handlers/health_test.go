package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func serve(t *testing.T, h echo.HandlerFunc) (*httptest.ResponseRecorder, readinessResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, resp
}

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

func TestReadinessAllHealthy(t *testing.T) {
	ok := func(context.Context) error { return nil }
	h := NewHealthDependenciesHandler(zerolog.Nop(), Check{Name: "database", Ping: ok}, Check{Name: "redis", Ping: ok})

	rec, resp := serve(t, h.Readiness)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp.Status != "ok" || len(resp.Dependencies) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestReadinessDegraded(t *testing.T) {
	var logs bytes.Buffer
	h := NewHealthDependenciesHandler(zerolog.New(&logs),
		Check{Name: "database", Ping: func(context.Context) error { return nil }},
		Check{Name: "mongodb", Ping: func(context.Context) error { return errors.New("no reachable servers") }},
	)

	rec, resp := serve(t, h.Readiness)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if resp.Status != "degraded" {
		t.Fatalf("expected degraded, got %q", resp.Status)
	}
	if resp.Dependencies["mongodb"].Status != "unhealthy" {
		t.Fatalf("unexpected mongodb status %+v", resp.Dependencies["mongodb"])
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("no reachable servers")) {
		t.Fatalf("response leaks the failure cause: %s", rec.Body.String())
	}
	if !bytes.Contains(logs.Bytes(), []byte("no reachable servers")) {
		t.Fatalf("expected failure cause in logs, got %s", logs.String())
	}
	if resp.Dependencies["database"].Status != "ok" {
		t.Fatalf("unexpected database status %+v", resp.Dependencies["database"])
	}
}
