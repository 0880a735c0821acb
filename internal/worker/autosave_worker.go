package worker

import (
	"context"
	"time"

	"github.com/thclabs/growroom/internal/logger"
	"github.com/thclabs/growroom/internal/room"
	"github.com/thclabs/growroom/internal/scheduler"
)

// flushJob persists every dirty session through the room service.
type flushJob struct {
	svc room.Service
}

func (j flushJob) Process(ctx context.Context) error {
	j.svc.FlushDirty(ctx)
	return nil
}

// AutosaveWorker periodically hands dirty-session flushes to the job pool so
// a slow store never stalls the timer loop.
type AutosaveWorker struct {
	repeating *scheduler.Repeating
}

// StartAutosaveWorker begins sweeping dirty sessions every interval.
func StartAutosaveWorker(clock scheduler.Clock, interval time.Duration, svc room.Service, pool *Pool) *AutosaveWorker {
	r := scheduler.Repeat(clock, interval, AutosaveWorkerName, func(ctx context.Context, _ time.Time) {
		if !pool.TryEnqueue(flushJob{svc: svc}) {
			logger.FromContext(ctx).Warn(LogMsgAutosaveDeferred)
		}
	})
	return &AutosaveWorker{repeating: r}
}

// Stop halts the autosave sweeps and waits for an in-flight sweep to finish.
func (w *AutosaveWorker) Stop() {
	w.repeating.Stop()
}
