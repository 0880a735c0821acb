package domain

// Game economy constants
const (
	// SeedCost is the THC price of planting one seed
	SeedCost = 0.1

	// CapacityUpgradeCostFactor escalates the capacity upgrade price:
	// cost = current capacity * factor
	CapacityUpgradeCostFactor = 15.0

	// MaxPlantCapacity caps how far the grow room can be expanded
	MaxPlantCapacity = 50

	// InitialPlantCapacity is the capacity of a freshly created room
	InitialPlantCapacity = 1

	// HarvestBaseYield is the THC credited for any harvested plant
	HarvestBaseYield = 0.5

	// HarvestQualityYield is the additional THC credited per quality point
	HarvestQualityYield = 0.3

	// MaxQuality bounds the quality a plant can accumulate
	MaxQuality = 10.0
)

// HarvestYield returns the THC produced by harvesting a plant of the given
// quality. Monotone in quality and always positive.
func HarvestYield(quality float64) float64 {
	if quality < 0 {
		quality = 0
	}
	if quality > MaxQuality {
		quality = MaxQuality
	}
	return HarvestBaseYield + quality*HarvestQualityYield
}
