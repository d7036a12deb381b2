// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount atomic.Int32
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount.Add(1)
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run(t.Context())

	for i, w := range []*mockWorker{w1, w2, w3} {
		if got := w.runCount.Load(); got != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, got)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not block on empty workers list
	ws.Run(t.Context())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(t.Context())
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Run(t.Context())
	ws.Run(t.Context())
	ws.Run(t.Context())

	if got := w.runCount.Load(); got != 3 {
		t.Errorf("expected runCount=3 after 3 calls, got %d", got)
	}
}

// blockingWorker runs until its context is cancelled.
type blockingWorker struct {
	stopped atomic.Bool
}

func (b *blockingWorker) Run(ctx context.Context) {
	<-ctx.Done()
	b.stopped.Store(true)
}

func TestWorkers_Run_WaitsForCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	b1, b2 := &blockingWorker{}, &blockingWorker{}

	done := make(chan struct{})
	go func() {
		NewWorkers(b1, b2).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Run returned before cancellation")
	case <-time.After(20 * time.Millisecond):
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	if !b1.stopped.Load() || !b2.stopped.Load() {
		t.Error("expected every worker to observe cancellation")
	}
}

func TestTickerWorker_RunsTaskUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	var mu sync.Mutex
	calls := 0
	task := func(context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 3 {
			cancel()
		}
		// errors are logged, the worker keeps ticking
		return errors.New("transient")
	}

	done := make(chan struct{})
	go func() {
		NewTickerWorker("test", time.Millisecond, task, logger.Nop()).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker worker did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls < 3 {
		t.Errorf("expected at least 3 task calls, got %d", calls)
	}
}

func TestTickerWorker_NonPositiveInterval(t *testing.T) {
	called := false
	w := NewTickerWorker("disabled", 0, func(context.Context) error {
		called = true
		return nil
	}, logger.Nop())

	// returns immediately without ticking
	w.Run(t.Context())

	if called {
		t.Error("task must not run with a non-positive interval")
	}
}
