// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/ranking/standard"
)

// envelope mirrors models.APIResponse with a raw data field.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		Count *int `json:"count"`
	} `json:"metadata"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []publishedEvent
}

type publishedEvent struct {
	eventID string
	userID  int64
	event   *ranking.InteractionEvent
}

func (p *fakePublisher) PublishInteraction(_ context.Context, eventID string, userID int64, event *ranking.InteractionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{eventID: eventID, userID: userID, event: event})
	return nil
}

func newTestEngine(t *testing.T) *ranking.Engine {
	t.Helper()
	engine, err := standard.NewEngine(ranking.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func newTestServer(t *testing.T, h *Handler, cfg *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	if cfg == nil {
		cfg = DefaultChiMiddlewareConfig()
		cfg.RateLimitDisabled = true
	}
	return NewRouter(h, cfg).Setup()
}

func doRequest(t *testing.T, srv http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := newRequest(method, path, body)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}

func newRequest(method, path, body string) *http.Request {
	return httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
}

func serve(srv http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// seedProfile caches a profile for userID through a ranking request.
func seedProfile(t *testing.T, engine *ranking.Engine, userID int64) {
	t.Helper()
	engine.GeneratePersonalizedSuggestions(context.Background(),
		&ranking.User{ID: userID, Role: ranking.RoleUser},
		[]ranking.Suggestion{{ID: 1, Title: "Seed", Category: "UX"}}, nil)
	if _, ok := engine.Profile(userID); !ok {
		t.Fatalf("profile %d not cached", userID)
	}
}
