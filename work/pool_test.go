package work

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestPool(t *testing.T) {
	t.Run("submit and await", func(t *testing.T) {
		p := NewPool(2)
		defer p.Shutdown(context.Background(), ShutdownGraceful)

		f, err := p.Submit(func() (any, error) { return 42, nil })
		if err != nil {
			t.Fatal(err)
		}
		got, err := f.Await(context.Background())
		if err != nil || got != 42 {
			t.Fatalf("got %v, %v", got, err)
		}
	})

	t.Run("task errors reach the future", func(t *testing.T) {
		p := NewPool(1)
		defer p.Shutdown(context.Background(), ShutdownGraceful)

		want := fmt.Errorf("boom")
		f, _ := p.Submit(func() (any, error) { return nil, want })
		if _, err := f.Await(context.Background()); !errors.Is(err, want) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("await honors context", func(t *testing.T) {
		p := NewPool(1)
		release := make(chan struct{})
		f, _ := p.Submit(func() (any, error) {
			<-release
			return nil, nil
		})
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if _, err := f.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v", err)
		}
		close(release)
		p.Shutdown(context.Background(), ShutdownGraceful)
	})

	t.Run("graceful shutdown drains queued work", func(t *testing.T) {
		p := NewPool(1)
		var futures []*Future
		for i := 0; i < 5; i++ {
			i := i
			f, err := p.Submit(func() (any, error) { return i, nil })
			if err != nil {
				t.Fatal(err)
			}
			futures = append(futures, f)
		}
		if err := p.Shutdown(context.Background(), ShutdownGraceful); err != nil {
			t.Fatal(err)
		}
		for i, f := range futures {
			if !f.Done() {
				t.Fatalf("future %d not drained", i)
			}
			if got, _ := f.Await(context.Background()); got != i {
				t.Errorf("future %d = %v", i, got)
			}
		}
	})

	t.Run("abort discards queued work", func(t *testing.T) {
		p := NewPool(1)
		started := make(chan struct{})
		release := make(chan struct{})
		running, _ := p.Submit(func() (any, error) {
			close(started)
			<-release
			return "done", nil
		})
		<-started
		queued, _ := p.Submit(func() (any, error) { return "never", nil })

		shutdownDone := make(chan error, 1)
		go func() { shutdownDone <- p.Shutdown(context.Background(), ShutdownAbort) }()

		if _, err := queued.Await(context.Background()); !errors.Is(err, ErrPoolClosed) {
			t.Errorf("queued future err = %v", err)
		}
		close(release)
		if err := <-shutdownDone; err != nil {
			t.Fatal(err)
		}
		// the in-flight task still ran to completion
		if got, err := running.Await(context.Background()); err != nil || got != "done" {
			t.Errorf("running future = %v, %v", got, err)
		}
	})

	t.Run("shutdown does not queue behind a blocked submit", func(t *testing.T) {
		p := NewPool(1)
		started := make(chan struct{})
		release := make(chan struct{})
		if _, err := p.Submit(func() (any, error) {
			close(started)
			<-release
			return nil, nil
		}); err != nil {
			t.Fatal(err)
		}
		<-started
		// fill the buffered queue so the next send has nowhere to go
		for i := 0; i < 2; i++ {
			if _, err := p.Submit(func() (any, error) { return nil, nil }); err != nil {
				t.Fatal(err)
			}
		}
		submitErr := make(chan error, 1)
		go func() {
			_, err := p.Submit(func() (any, error) { return nil, nil })
			submitErr <- err
		}()
		shutdownErr := make(chan error, 1)
		go func() { shutdownErr <- p.Shutdown(context.Background(), ShutdownAbort) }()

		// the stuck submit resolves while the worker is still busy
		if err := <-submitErr; !errors.Is(err, ErrPoolClosed) {
			t.Errorf("blocked submit err = %v", err)
		}
		close(release)
		if err := <-shutdownErr; err != nil {
			t.Fatal(err)
		}
	})

	t.Run("submit after shutdown fails", func(t *testing.T) {
		p := NewPool(1)
		if err := p.Shutdown(context.Background(), ShutdownGraceful); err != nil {
			t.Fatal(err)
		}
		if _, err := p.Submit(func() (any, error) { return nil, nil }); !errors.Is(err, ErrPoolClosed) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("repeated shutdown is safe", func(t *testing.T) {
		p := NewPool(1)
		if err := p.Shutdown(context.Background(), ShutdownGraceful); err != nil {
			t.Fatal(err)
		}
		if err := p.Shutdown(context.Background(), ShutdownGraceful); err != nil {
			t.Fatal(err)
		}
	})
}
