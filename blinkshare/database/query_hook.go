package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/barkprotocol/blinkshare-platform-sub000/blinkshare/logger"
)

const slowQueryThreshold = 500 * time.Millisecond

// QueryHook logs every bun query through the shared logger. Queries slower
// than the threshold are raised to warn level. sql.ErrNoRows is not a failure.
type QueryHook struct {
	slow time.Duration
}

func NewQueryHook() *QueryHook {
	return &QueryHook{slow: slowQueryThreshold}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)

	err := event.Err
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}

	if err == nil && duration > h.slow {
		slog.Warn("Slow query",
			slog.String("type", "db"),
			slog.String("operation", event.Operation()),
			slog.String("query", event.Query),
			slog.Duration("took", duration))
		return
	}
	logger.LogQuery(event.Query, duration, err)
}
