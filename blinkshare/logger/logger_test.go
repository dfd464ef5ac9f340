package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(NewHandler("Test", level).WithOutput(&buf)), &buf
}

func TestHandler_Format(t *testing.T) {
	tests := []struct {
		name     string
		log      func(l *slog.Logger)
		contains []string
		excludes []string
	}{
		{
			name: "type and attrs",
			log: func(l *slog.Logger) {
				l.Info("Job completed", slog.String("type", "job"), slog.String("run_id", "abc"))
			},
			contains: []string{"[Test]", "INFO", "[" + string(TypeJob) + "]", "Job completed", "run_id=abc"},
			excludes: []string{"type=job"},
		},
		{
			name: "error folded into message",
			log: func(l *slog.Logger) {
				l.Warn("Revoke failed", slog.String("type", "rpc"), slog.Any("error", errors.New("boom")))
			},
			contains: []string{"WARN", "Revoke failed: boom"},
			excludes: []string{"error=boom"},
		},
		{
			name: "component and status",
			log: func(l *slog.Logger) {
				l.Info("Sync", slog.String("component", "command_sync"), slog.String("status", "success"))
			},
			contains: []string{"[command_sync] Sync [Status: success]", "[" + string(TypeSystem) + "]"},
		},
		{
			name: "handler attrs carry the type",
			log: func(l *slog.Logger) {
				l.With(slog.String("type", "http")).Info("Request")
			},
			contains: []string{"[" + string(TypeHTTP) + "]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestLogger(slog.LevelDebug)
			tt.log(l)
			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestHandler_Filtering(t *testing.T) {
	t.Run("below level", func(t *testing.T) {
		l, buf := newTestLogger(slog.LevelWarn)
		l.Info("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("noisy gateway debug", func(t *testing.T) {
		l, buf := newTestLogger(slog.LevelDebug)
		l.Debug("sending heartbeat")
		l.Debug("new request", slog.String("url", "x"))
		assert.Empty(t, buf.String())

		l.Debug("cache refreshed")
		assert.Contains(t, buf.String(), "cache refreshed")
	})
}
