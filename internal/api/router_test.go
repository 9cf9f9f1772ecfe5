// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/tomtom215/suggestrank/internal/config"
	"github.com/tomtom215/suggestrank/internal/middleware"
)

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, NewHandler(newTestEngine(t)), nil)

	rec, env := doRequest(t, srv, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != CodeNotFound {
		t.Errorf("unknown route: status = %d error = %+v", rec.Code, env.Error)
	}

	rec, env = doRequest(t, srv, http.MethodGet, "/api/v1/suggestions/trending", "")
	if rec.Code != http.StatusMethodNotAllowed || env.Error == nil {
		t.Errorf("wrong method: status = %d error = %+v", rec.Code, env.Error)
	}
}

func TestRouter_RequestIDAndSecurityHeaders(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, NewHandler(newTestEngine(t)), nil)

	req := newRequest(http.MethodGet, "/api/v1/ranking/config", "")
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := serve(srv, req)

	if got := rec.Header().Get(middleware.RequestIDHeader); got != "req-123" {
		t.Errorf("request id = %q, want req-123", got)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	srv := newTestServer(t, NewHandler(newTestEngine(t)), cfg)

	for i := 0; i < 2; i++ {
		if rec, _ := doRequest(t, srv, http.MethodGet, "/api/v1/ranking/stats", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	rec, env := doRequest(t, srv, http.MethodGet, "/api/v1/ranking/stats", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeRateLimited {
		t.Errorf("error = %+v", env.Error)
	}

	// Probes use their own, larger budget.
	rec, _ = doRequest(t, srv, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	srv := newTestServer(t, NewHandler(newTestEngine(t)), cfg)

	req := newRequest(http.MethodOptions, "/api/v1/suggestions/personalized", "")
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(srv, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allow origin = %q", got)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, NewHandler(newTestEngine(t)), nil)
	rec := serve(srv, newRequest(http.MethodGet, "/metrics", ""))
	if rec.Code != http.StatusOK {
		t.Errorf("metrics status = %d", rec.Code)
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	t.Parallel()

	if got := ChiMiddlewareConfigFromSecurity(nil); got.RateLimitRequests != 300 {
		t.Errorf("nil security = %+v, want defaults", got)
	}

	got := ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{
		CORSOrigins:       []string{"https://a.example"},
		RateLimitReqs:     10,
		RateLimitWindow:   time.Second,
		RateLimitDisabled: true,
		MaxBodyBytes:      1024,
	})
	if len(got.CORSAllowedOrigins) != 1 || got.CORSAllowedOrigins[0] != "https://a.example" {
		t.Errorf("origins = %v", got.CORSAllowedOrigins)
	}
	if got.RateLimitRequests != 10 || got.RateLimitWindow != time.Second || !got.RateLimitDisabled {
		t.Errorf("rate limit = %d/%s disabled=%v", got.RateLimitRequests, got.RateLimitWindow, got.RateLimitDisabled)
	}
	if got.MaxBodyBytes != 1024 {
		t.Errorf("max body = %d", got.MaxBodyBytes)
	}
}
