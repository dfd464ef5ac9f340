package utils

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultTaskTimeout = 30 * time.Second

// TaskRunner owns every goroutine started outside a request: one-shot
// notification tasks and long-lived named loops. Panics are recovered and
// logged; Shutdown stops the loops and drains pending tasks.
type TaskRunner struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	processes map[string]context.CancelFunc
	mu        sync.Mutex
	closed    bool
	inflight  atomic.Int64
	failed    atomic.Int64
}

func NewTaskRunner() *TaskRunner {
	ctx, cancel := context.WithCancel(context.Background())
	return &TaskRunner{
		ctx:       ctx,
		cancel:    cancel,
		processes: make(map[string]context.CancelFunc),
	}
}

// Go runs fn once in the background with DefaultTaskTimeout. The caller never
// observes its result; failures are logged with the task name.
func (r *TaskRunner) Go(name string, fn func(ctx context.Context) error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		slog.Warn("Task runner stopped, dropping task",
			slog.String("type", "sys"),
			slog.String("task", name))
		return
	}
	r.wg.Add(1)
	r.inflight.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer r.inflight.Add(-1)

		ctx, cancel := context.WithTimeout(r.ctx, DefaultTaskTimeout)
		defer cancel()

		if err := r.run(ctx, fn); err != nil {
			r.failed.Add(1)
			slog.Error("Background task failed",
				slog.String("type", "sys"),
				slog.String("task", name),
				slog.Any("error", err))
		}
	}()
}

func (r *TaskRunner) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}

// StartProcess starts a named long-running loop, replacing one with the same name.
func (r *TaskRunner) StartProcess(name, description string, fn func(ctx context.Context)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		slog.Warn("Task runner stopped, not starting process",
			slog.String("type", "sys"),
			slog.String("process", name))
		return
	}

	if stop, exists := r.processes[name]; exists {
		slog.Warn("Process already exists, stopping existing one", slog.String("process", name))
		stop()
	}

	processCtx, processCancel := context.WithCancel(r.ctx)
	r.processes[name] = processCancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				slog.Error("Background process panic",
					slog.String("type", "sys"),
					slog.String("process", name),
					slog.Any("panic", p))
			}
		}()

		slog.Info("Starting background process",
			slog.String("type", "sys"),
			slog.String("process", name),
			slog.String("description", description))

		fn(processCtx)

		slog.Info("Background process ended",
			slog.String("type", "sys"),
			slog.String("process", name))
	}()
}

// Every calls fn on each tick of interval until the runner shuts down.
func Every(interval time.Duration, fn func(ctx context.Context)) func(ctx context.Context) {
	return func(ctx context.Context) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}
}

func (r *TaskRunner) Inflight() int64 {
	return r.inflight.Load()
}

func (r *TaskRunner) Failed() int64 {
	return r.failed.Load()
}

// Shutdown stops accepting work, stops every process and gives pending
// one-shot tasks up to timeout to finish before cancelling them.
func (r *TaskRunner) Shutdown(timeout time.Duration) error {
	r.mu.Lock()
	r.closed = true
	processCount := len(r.processes)
	for name, stop := range r.processes {
		stop()
		delete(r.processes, name)
	}
	r.mu.Unlock()
	defer r.cancel()

	slog.Info("Shutting down background tasks",
		slog.String("type", "sys"),
		slog.Int("process_count", processCount),
		slog.Int64("inflight", r.Inflight()))

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("All background tasks stopped gracefully", slog.String("type", "sys"))
		return nil
	case <-time.After(timeout):
		slog.Warn("Timeout waiting for background tasks to stop",
			slog.String("type", "sys"),
			slog.Duration("timeout", timeout),
			slog.Int64("inflight", r.Inflight()))
		return context.DeadlineExceeded
	}
}

// Wait blocks until all current tasks finished. Used by one-shot commands and tests.
func (r *TaskRunner) Wait() {
	r.wg.Wait()
}
