package jobs

import (
	"time"

	"github.com/riverqueue/river"
)

const (
	QueueReconciler = "reconciler"
	KindReconcile   = "reconcile_role_expiry"

	reconcileTimeout     = 10 * time.Minute
	reconcileMaxAttempts = 3
)

// ReconcileArgs triggers one expiry reconciler pass.
type ReconcileArgs struct {
	Trigger string `json:"trigger"`
}

func (ReconcileArgs) Kind() string { return KindReconcile }

func (ReconcileArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       QueueReconciler,
		MaxAttempts: reconcileMaxAttempts,
	}
}
