package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/thclabs/growroom/internal/logger"
)

// Task is a repeating unit of work. The now argument is the clock reading
// that triggered this run.
type Task func(ctx context.Context, now time.Time)

// Repeating runs a Task at a fixed interval until stopped.
type Repeating struct {
	clock    Clock
	interval time.Duration
	task     Task
	name     string

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// Repeat starts running task every interval on the given clock and returns a
// handle that cancels it. The task is never run concurrently with itself.
func Repeat(clock Clock, interval time.Duration, name string, task Task) *Repeating {
	r := &Repeating{
		clock:    clock,
		interval: interval,
		task:     task,
		name:     name,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *Repeating) loop() {
	defer close(r.done)
	ctx := context.Background()
	log := logger.FromContext(ctx)
	for {
		select {
		case <-r.stop:
			return
		case now := <-r.clock.After(r.interval):
			func() {
				defer func() {
					if rec := recover(); rec != nil {
						log.Error("repeating task panicked", "task", r.name, "panic", rec)
					}
				}()
				r.task(ctx, now)
			}()
		}
	}
}

// Stop cancels the repeating task and waits for an in-flight run to finish.
// Safe to call more than once.
func (r *Repeating) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}
