package room

import (
	"context"
	"time"

	"github.com/thclabs/growroom/internal/equipment"
	"github.com/thclabs/growroom/internal/growth"
	"github.com/thclabs/growroom/internal/metrics"
)

// Tick implements Service. Each connected session is advanced by the time
// since its own last tick, so sessions that connected mid-interval are not
// over-credited.
func (s *service) Tick(ctx context.Context, now time.Time) {
	for _, address := range s.sessions.Keys() {
		sess, ok := s.sessions.Peek(address)
		if !ok {
			continue
		}
		s.tickSession(sess, now)
	}
	metrics.GrowthTicks.Inc()
}

func (s *service) tickSession(sess *session, now time.Time) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	elapsed := now.Sub(sess.lastTick)
	if elapsed <= 0 {
		return
	}
	sess.lastTick = now

	mult := equipment.Calculate(sess.state.Equipment)
	changed := false
	for i := range sess.state.Plants {
		if !sess.state.Plants[i].IsGrowing {
			continue
		}
		sess.state.Plants[i] = growth.Advance(sess.state.Plants[i], mult.Speed, mult.Quality, elapsed)
		changed = true
	}
	if changed {
		sess.dirty = true
	}
}

// FlushDirty implements Service. The autosave sweep is the safety net on top
// of the per-mutation saves.
func (s *service) FlushDirty(ctx context.Context) {
	for _, address := range s.sessions.Keys() {
		sess, ok := s.sessions.Peek(address)
		if !ok {
			continue
		}
		sess.mu.Lock()
		if sess.dirty {
			s.save(ctx, sess)
		}
		sess.mu.Unlock()
	}
}
