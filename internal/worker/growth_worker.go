package worker

import (
	"context"
	"time"

	"github.com/thclabs/growroom/internal/room"
	"github.com/thclabs/growroom/internal/scheduler"
)

// GrowthWorker drives plant growth for all connected sessions at a fixed
// tick interval.
type GrowthWorker struct {
	repeating *scheduler.Repeating
}

// StartGrowthWorker begins ticking the room service every interval.
func StartGrowthWorker(clock scheduler.Clock, interval time.Duration, svc room.Service) *GrowthWorker {
	r := scheduler.Repeat(clock, interval, GrowthWorkerName, func(ctx context.Context, now time.Time) {
		svc.Tick(ctx, now)
	})
	return &GrowthWorker{repeating: r}
}

// Stop halts the growth ticks and waits for an in-flight tick to finish.
func (w *GrowthWorker) Stop() {
	w.repeating.Stop()
}
