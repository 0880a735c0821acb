package domain

import "time"

// GrowthStage represents one phase of a plant's lifecycle
type GrowthStage int

const (
	StageSeed GrowthStage = iota
	StageSprout
	StageVegetative
	StageFlowering
	StageHarvest
)

var stageNames = map[GrowthStage]string{
	StageSeed:       "seed",
	StageSprout:     "sprout",
	StageVegetative: "vegetative",
	StageFlowering:  "flowering",
	StageHarvest:    "harvest",
}

func (s GrowthStage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Next returns the following stage. Harvest is terminal and returns itself.
func (s GrowthStage) Next() GrowthStage {
	if s >= StageHarvest {
		return StageHarvest
	}
	return s + 1
}

// Terminal reports whether the stage has no further growth.
func (s GrowthStage) Terminal() bool {
	return s >= StageHarvest
}

// Plant is a single plant in a grow room.
// Stage only ever advances forward through the fixed order; Progress is the
// percentage through the current stage and resets to zero on each transition.
type Plant struct {
	ID              int           `json:"id"`
	Stage           GrowthStage   `json:"stage"`
	Progress        float64       `json:"progress"`
	TotalGrowthTime time.Duration `json:"total_growth_time"`
	IsGrowing       bool          `json:"is_growing"`
	Quality         float64       `json:"quality"`
	PlantedAt       time.Time     `json:"planted_at"`
}

// Ready reports whether the plant can be harvested.
func (p Plant) Ready() bool {
	return p.Stage == StageHarvest
}
