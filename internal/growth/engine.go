// Package growth implements the plant lifecycle engine: pure functions that
// advance a plant through its growth stages from elapsed time and the
// multipliers derived from equipment.
package growth

import (
	"time"

	"github.com/thclabs/growroom/internal/domain"
)

// Advance returns a copy of p moved forward by elapsed wall-clock time under
// the given speed and quality multipliers. It is pure and total: no input
// combination fails. Multipliers at or below zero are treated as 1.
//
// Elapsed time can span several stage transitions (the offline credit applied
// on session load can be hours); progress carries across each transition and
// resets to zero. Once Harvest is reached the plant stops growing and any
// remaining time is discarded.
func Advance(p domain.Plant, speedMultiplier, qualityMultiplier float64, elapsed time.Duration) domain.Plant {
	if elapsed <= 0 || p.Stage.Terminal() {
		if p.Stage.Terminal() {
			p.IsGrowing = false
			p.Progress = 0
		}
		return p
	}
	if speedMultiplier <= 0 {
		speedMultiplier = 1
	}
	if qualityMultiplier <= 0 {
		qualityMultiplier = 1
	}

	remaining := elapsed
	var grown time.Duration
	for remaining > 0 && !p.Stage.Terminal() {
		stageDur := StageDuration(p.Stage)
		// Time still needed to finish the current stage at this speed.
		left := time.Duration(float64(stageDur) * (100 - p.Progress) / 100 / speedMultiplier)
		if remaining < left {
			p.Progress += float64(remaining) * speedMultiplier / float64(stageDur) * 100
			if p.Progress > 100 {
				p.Progress = 100
			}
			grown += remaining
			break
		}
		remaining -= left
		grown += left
		p.Stage = p.Stage.Next()
		p.Progress = 0
	}

	// Quality and growth time only accumulate while the plant is actually
	// growing; time past the final transition is discarded.
	p.TotalGrowthTime += grown
	p.Quality = accrueQuality(p.Quality, qualityMultiplier, grown)

	if p.Stage.Terminal() {
		p.IsGrowing = false
		p.Progress = 0
	}
	return p
}

func accrueQuality(current, multiplier float64, elapsed time.Duration) float64 {
	q := current + elapsed.Seconds()*multiplier*QualityAccrualRate
	if q > domain.MaxQuality {
		return domain.MaxQuality
	}
	return q
}

// NewPlant returns a freshly planted seed.
func NewPlant(id int, now time.Time) domain.Plant {
	return domain.Plant{
		ID:        id,
		Stage:     domain.StageSeed,
		Progress:  0,
		IsGrowing: true,
		Quality:   0,
		PlantedAt: now,
	}
}
