package cli

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meet-captions/internal/logger"
)

func TestRunComponentsWaitsForShutdown(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var finished atomic.Bool
	slow := func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
		return ctx.Err()
	}
	early := func(ctx context.Context) error { return nil }

	go func() {
		time.Sleep(10 * time.Millisecond)
		stop()
	}()

	if err := runComponents(ctx, stop, logger.Discard(), early, slow); err != nil {
		t.Fatalf("runComponents() error = %v", err)
	}
	if !finished.Load() {
		t.Error("runComponents() returned before every component finished")
	}
}

func TestRunComponentsStopsOnError(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	boom := errors.New("listen failed")
	var cancelled atomic.Bool
	failing := func(context.Context) error { return boom }
	other := func(ctx context.Context) error {
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}

	done := make(chan error, 1)
	go func() {
		done <- runComponents(ctx, stop, logger.Discard(), other, failing)
	}()

	select {
	case err := <-done:
		if !errors.Is(err, boom) {
			t.Errorf("runComponents() error = %v, want %v", err, boom)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runComponents() did not return after a component failed")
	}
	if !cancelled.Load() {
		t.Error("remaining components were not cancelled and awaited")
	}
}
