package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/robfig/cron/v3"
)

const DefaultSchedule = "0 * * * *"

type Config struct {
	Enabled    bool
	Schedule   string
	RunOnStart bool
	// Exclusive keeps at most one reconcile job per hour window, so a
	// start-up run and the next tick cannot both be queued.
	Exclusive bool
}

// Scheduler owns the River client that runs the periodic reconcile job.
type Scheduler struct {
	client *river.Client[pgx.Tx]
	cfg    Config
}

func NewScheduler(pool *pgxpool.Pool, runner Runner, cfg Config) (*Scheduler, error) {
	periodic, err := PeriodicJobs(cfg)
	if err != nil {
		return nil, err
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewReconcileWorker(runner))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			QueueReconciler: {MaxWorkers: 1},
		},
		Workers:      workers,
		PeriodicJobs: periodic,
		Logger:       slog.Default().With(slog.String("type", "job"), slog.String("component", "river")),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &Scheduler{client: client, cfg: cfg}, nil
}

// PeriodicJobs is empty when the reconciler is disabled for this environment.
func PeriodicJobs(cfg Config) ([]*river.PeriodicJob, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	schedule, err := ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, err
	}

	opts := reconcileInsertOpts(cfg)
	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			schedule,
			func() (river.JobArgs, *river.InsertOpts) {
				return ReconcileArgs{Trigger: "schedule"}, opts
			},
			&river.PeriodicJobOpts{RunOnStart: cfg.RunOnStart},
		),
	}, nil
}

func ParseSchedule(spec string) (cron.Schedule, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid reconciler schedule %q: %w", spec, err)
	}
	return schedule, nil
}

func reconcileInsertOpts(cfg Config) *river.InsertOpts {
	opts := ReconcileArgs{}.InsertOpts()
	if cfg.Exclusive {
		opts.UniqueOpts = river.UniqueOpts{ByPeriod: time.Hour}
	}
	return &opts
}

func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	slog.Info("Job scheduler started",
		slog.String("type", "job"),
		slog.Bool("reconciler_enabled", s.cfg.Enabled),
		slog.String("schedule", s.cfg.Schedule),
		slog.Bool("run_on_start", s.cfg.RunOnStart))
	return nil
}

func (s *Scheduler) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	slog.Info("Job scheduler stopped", slog.String("type", "job"))
	return nil
}

// Enqueue inserts a manual reconcile run, honouring the uniqueness settings.
func (s *Scheduler) Enqueue(ctx context.Context, trigger string) error {
	_, err := s.client.Insert(ctx, ReconcileArgs{Trigger: trigger}, reconcileInsertOpts(s.cfg))
	return err
}

// Migrate brings River's own tables up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}

	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{})
	if err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}

	slog.Info("River migrations applied",
		slog.String("type", "db"),
		slog.Int("versions", len(res.Versions)))
	return nil
}
