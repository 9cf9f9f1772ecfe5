// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*PipelineService)(nil)
	_ suture.Service = (*ProfileJanitorService)(nil)
	_ suture.Service = (*EngagementRefreshService)(nil)
	_ suture.Service = (*ConfigReloadService)(nil)
)

func serveAsync(ctx context.Context, svc suture.Service) <-chan error {
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(3 * time.Second):
		t.Fatal("service did not return")
		return nil
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

type mockHTTPServer struct {
	listenErr error
	stopCh    chan struct{}
	started   chan struct{}
	shutdowns atomic.Int32
	once      sync.Once
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{stopCh: make(chan struct{}), started: make(chan struct{}, 1)}
}

func (m *mockHTTPServer) ListenAndServe() error {
	m.started <- struct{}{}
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stopCh
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdowns.Add(1)
	m.once.Do(func() { close(m.stopCh) })
	return nil
}

func TestHTTPServerService(t *testing.T) {
	t.Parallel()

	t.Run("graceful shutdown", func(t *testing.T) {
		t.Parallel()
		srv := newMockHTTPServer()
		svc := NewHTTPServerService(srv, time.Second, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		done := serveAsync(ctx, svc)
		<-srv.started
		cancel()

		if err := waitDone(t, done); !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
		if srv.shutdowns.Load() != 1 {
			t.Errorf("shutdowns = %d, want 1", srv.shutdowns.Load())
		}
	})

	t.Run("listen failure", func(t *testing.T) {
		t.Parallel()
		srv := newMockHTTPServer()
		srv.listenErr = errors.New("address in use")
		svc := NewHTTPServerService(srv, 0, zerolog.Nop())

		err := waitDone(t, serveAsync(context.Background(), svc))
		if err == nil || errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want listen error", err)
		}
	})
}

type mockPipeline struct {
	startErr  error
	running   atomic.Bool
	starts    atomic.Int32
	shutdowns atomic.Int32
}

func (m *mockPipeline) Start(context.Context) error {
	m.starts.Add(1)
	if m.startErr != nil {
		return m.startErr
	}
	m.running.Store(true)
	return nil
}

func (m *mockPipeline) Shutdown(context.Context) error {
	m.shutdowns.Add(1)
	m.running.Store(false)
	return nil
}

func (m *mockPipeline) IsRunning() bool { return m.running.Load() }

func TestPipelineService(t *testing.T) {
	t.Parallel()

	t.Run("start and stop", func(t *testing.T) {
		t.Parallel()
		p := &mockPipeline{}
		ctx, cancel := context.WithCancel(context.Background())
		done := serveAsync(ctx, NewPipelineService(p, time.Second))

		eventually(t, p.IsRunning)
		cancel()

		if err := waitDone(t, done); !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v", err)
		}
		if p.IsRunning() || p.shutdowns.Load() != 1 {
			t.Errorf("running = %v shutdowns = %d", p.IsRunning(), p.shutdowns.Load())
		}
	})

	t.Run("start failure", func(t *testing.T) {
		t.Parallel()
		p := &mockPipeline{startErr: errors.New("nats unreachable")}
		err := waitDone(t, serveAsync(context.Background(), NewPipelineService(p, 0)))
		if err == nil || p.shutdowns.Load() != 0 {
			t.Errorf("Serve() = %v shutdowns = %d", err, p.shutdowns.Load())
		}
	})
}

type mockMaintainer struct {
	cleanups  atomic.Int32
	refreshes atomic.Int32
}

func (m *mockMaintainer) CleanupExpiredProfiles() int {
	m.cleanups.Add(1)
	return 1
}

func (m *mockMaintainer) RefreshEngagement() int {
	m.refreshes.Add(1)
	return 2
}

func (m *mockMaintainer) Stats() ranking.EngineStats {
	return ranking.EngineStats{CachedProfiles: 3}
}

func TestProfileJanitorService(t *testing.T) {
	t.Parallel()

	m := &mockMaintainer{}
	svc := NewProfileJanitorService(m, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := serveAsync(ctx, svc)
	eventually(t, func() bool { return m.cleanups.Load() >= 2 })
	cancel()

	if err := waitDone(t, done); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v", err)
	}
}

func TestEngagementRefreshService(t *testing.T) {
	t.Parallel()

	if _, err := NewEngagementRefreshService(&mockMaintainer{}, "every tuesday", zerolog.Nop()); err == nil {
		t.Error("invalid schedule accepted")
	}

	m := &mockMaintainer{}
	svc, err := NewEngagementRefreshService(m, "@every 1s", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngagementRefreshService() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := serveAsync(ctx, svc)
	eventually(t, func() bool { return m.refreshes.Load() >= 1 })
	cancel()

	if err := waitDone(t, done); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v", err)
	}
}

// fakeWatcher records the registered callback so tests can fire changes.
type fakeWatcher struct {
	mu       sync.Mutex
	onChange func()
	stopped  atomic.Bool
	err      error
}

func (w *fakeWatcher) watch(_ string, onChange func()) (func() error, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.mu.Lock()
	w.onChange = onChange
	w.mu.Unlock()
	return func() error {
		w.stopped.Store(true)
		return nil
	}, nil
}

func (w *fakeWatcher) fire() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.onChange == nil {
		return false
	}
	w.onChange()
	return true
}

func TestConfigReloadService(t *testing.T) {
	t.Parallel()

	w := &fakeWatcher{}
	var reloads atomic.Int32
	var failNext atomic.Bool
	reload := func() error {
		reloads.Add(1)
		if failNext.Swap(false) {
			return errors.New("invalid weights")
		}
		return nil
	}
	svc := NewConfigReloadService("config.yaml", w.watch, reload, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := serveAsync(ctx, svc)

	eventually(t, w.fire)
	eventually(t, func() bool { return reloads.Load() == 1 })

	failNext.Store(true)
	w.fire()
	eventually(t, func() bool { return reloads.Load() == 2 })

	// The service keeps serving after a rejected reload.
	w.fire()
	eventually(t, func() bool { return reloads.Load() == 3 })

	cancel()
	if err := waitDone(t, done); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v", err)
	}
	if !w.stopped.Load() {
		t.Error("watch not stopped")
	}
}

func TestConfigReloadService_WatchFailure(t *testing.T) {
	t.Parallel()

	w := &fakeWatcher{err: errors.New("no such file")}
	svc := NewConfigReloadService("missing.yaml", w.watch, func() error { return nil }, zerolog.Nop())
	if err := waitDone(t, serveAsync(context.Background(), svc)); err == nil {
		t.Error("Serve() = nil, want watch error")
	}
}
