package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/riverqueue/river"

	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare/logger"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/domain/reconciler"
)

//go:generate mockgen -source=worker.go -destination=mock/worker.go -package=mock

// Runner is satisfied by *reconciler.Reconciler.
type Runner interface {
	Run(ctx context.Context) (*reconciler.RunReport, error)
}

type ReconcileWorker struct {
	river.WorkerDefaults[ReconcileArgs]
	runner Runner
}

func NewReconcileWorker(runner Runner) *ReconcileWorker {
	return &ReconcileWorker{runner: runner}
}

func (w *ReconcileWorker) Timeout(*river.Job[ReconcileArgs]) time.Duration {
	return reconcileTimeout
}

// Work returns the reconciler error so River retries the pass.
func (w *ReconcileWorker) Work(ctx context.Context, job *river.Job[ReconcileArgs]) error {
	start := time.Now()
	report, err := w.runner.Run(ctx)

	attrs := []any{
		slog.Int64("job_id", job.ID),
		slog.Int("attempt", job.Attempt),
		slog.String("trigger", job.Args.Trigger),
	}
	if report != nil {
		attrs = append(attrs, slog.String("run_id", report.RunID))
	}
	logger.LogJob(KindReconcile, time.Since(start), err, attrs...)
	return err
}
