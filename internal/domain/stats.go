package domain

import "time"

// LeaderboardMetric selects the ordering of a leaderboard view
type LeaderboardMetric string

const (
	MetricTotalTHC       LeaderboardMetric = "total_thc"
	MetricTotalPlants    LeaderboardMetric = "total_plants"
	MetricHighestQuality LeaderboardMetric = "highest_quality"
	MetricFastestGrow    LeaderboardMetric = "fastest_grow"
)

// Valid reports whether m names a known leaderboard metric.
func (m LeaderboardMetric) Valid() bool {
	switch m {
	case MetricTotalTHC, MetricTotalPlants, MetricHighestQuality, MetricFastestGrow:
		return true
	}
	return false
}

// PlantRecord is one harvested plant in a player's history (append-only)
type PlantRecord struct {
	PlantID     int       `json:"plant_id"`
	Quality     float64   `json:"quality"`
	GrowTimeMs  int64     `json:"grow_time_ms"`
	THCProduced float64   `json:"thc_produced"`
	HarvestedAt time.Time `json:"harvested_at"`
}

// PlayerStats accumulates one player's harvest history across sessions.
// FastestGrowTimeMs is nil until the first harvest is recorded; an explicit
// optional rather than a magic sentinel value.
type PlayerStats struct {
	Address             string                      `json:"address"`
	TotalPlantsGrown    int                         `json:"total_plants_grown"`
	TotalTHCProduced    float64                     `json:"total_thc_produced"`
	FastestGrowTimeMs   *int64                      `json:"fastest_grow_time_ms,omitempty"`
	HighestQualityPlant float64                     `json:"highest_quality_plant"`
	LastActive          time.Time                   `json:"last_active"`
	PlantStats          []PlantRecord               `json:"plant_stats"`
	Equipment           map[EquipmentType]Equipment `json:"equipment,omitempty"`
}

// AggregateStats is the on-demand fold over all leaderboard entries
type AggregateStats struct {
	TotalPlayers      int     `json:"total_players"`
	TotalPlantsGrown  int     `json:"total_plants_grown"`
	TotalTHCProduced  float64 `json:"total_thc_produced"`
	AvgPlantsPerUser  float64 `json:"avg_plants_per_user"`
	AvgTHCPerUser     float64 `json:"avg_thc_per_user"`
	AvgHighestQuality float64 `json:"avg_highest_quality"`
}

// ArcadeScore is a player's best score in the arcade mini-game
type ArcadeScore struct {
	Address    string    `json:"address"`
	Score      int64     `json:"score"`
	AchievedAt time.Time `json:"achieved_at"`
}
