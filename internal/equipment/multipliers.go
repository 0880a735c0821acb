package equipment

import "github.com/thclabs/growroom/internal/domain"

// Multipliers is the aggregate effect of a room's equipment
type Multipliers struct {
	Speed   float64 `json:"speed"`
	Quality float64 `json:"quality"`
}

// speedSlots and qualitySlots name which equipment contributes to each
// multiplier. Automation contributes to both.
var (
	speedSlots   = []domain.EquipmentType{domain.EquipmentLight, domain.EquipmentVentilation, domain.EquipmentAutomation}
	qualitySlots = []domain.EquipmentType{domain.EquipmentPot, domain.EquipmentNutrients, domain.EquipmentAutomation}
)

// Calculate derives the room multipliers as the product of the contributing
// boosts. Pure function of the current equipment; callers recompute it after
// every upgrade rather than caching.
func Calculate(loadout map[domain.EquipmentType]domain.Equipment) Multipliers {
	m := Multipliers{Speed: 1, Quality: 1}
	for _, t := range speedSlots {
		if eq, ok := loadout[t]; ok && eq.Effect.SpeedBoost > 0 {
			m.Speed *= eq.Effect.SpeedBoost
		}
	}
	for _, t := range qualitySlots {
		if eq, ok := loadout[t]; ok && eq.Effect.QualityBoost > 0 {
			m.Quality *= eq.Effect.QualityBoost
		}
	}
	return m
}
