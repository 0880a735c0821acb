package growth

import (
	"time"

	"github.com/thclabs/growroom/internal/domain"
)

// Base durations per growth stage at 1.0x speed. Harvest is terminal and
// has no duration.
const (
	SeedDuration       = 60 * time.Second
	SproutDuration     = 120 * time.Second
	VegetativeDuration = 180 * time.Second
	FloweringDuration  = 240 * time.Second
)

// QualityAccrualRate is quality points gained per second at 1.0x quality
const QualityAccrualRate = 0.01

// StageDuration returns the base duration of a stage, or 0 for Harvest.
func StageDuration(stage domain.GrowthStage) time.Duration {
	switch stage {
	case domain.StageSeed:
		return SeedDuration
	case domain.StageSprout:
		return SproutDuration
	case domain.StageVegetative:
		return VegetativeDuration
	case domain.StageFlowering:
		return FloweringDuration
	default:
		return 0
	}
}

// TotalGrowDuration is the base wall-clock time from seed to harvest at 1.0x speed.
func TotalGrowDuration() time.Duration {
	return SeedDuration + SproutDuration + VegetativeDuration + FloweringDuration
}
