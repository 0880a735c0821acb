package domain

// EquipmentType identifies one of the five equipment slots in a grow room
type EquipmentType string

const (
	EquipmentLight       EquipmentType = "light"
	EquipmentPot         EquipmentType = "pot"
	EquipmentNutrients   EquipmentType = "nutrients"
	EquipmentVentilation EquipmentType = "ventilation"
	EquipmentAutomation  EquipmentType = "automation"
)

// EquipmentTypes lists all slots in display order
var EquipmentTypes = []EquipmentType{
	EquipmentLight,
	EquipmentPot,
	EquipmentNutrients,
	EquipmentVentilation,
	EquipmentAutomation,
}

// Valid reports whether t names a known equipment slot.
func (t EquipmentType) Valid() bool {
	switch t {
	case EquipmentLight, EquipmentPot, EquipmentNutrients, EquipmentVentilation, EquipmentAutomation:
		return true
	}
	return false
}

// EquipmentEffect holds the multiplicative factors an equipment piece contributes.
// Both factors are >= 1.
type EquipmentEffect struct {
	SpeedBoost   float64 `json:"speed_boost"`
	QualityBoost float64 `json:"quality_boost"`
}

// EquipmentUpgrade describes the next tier available for a slot
type EquipmentUpgrade struct {
	Name   string          `json:"name"`
	Effect EquipmentEffect `json:"effect"`
	Cost   float64         `json:"cost"`
}

// Equipment is one slot's current state. NextLevel is nil at max level.
type Equipment struct {
	Type      EquipmentType     `json:"type"`
	Name      string            `json:"name"`
	Level     int               `json:"level"`
	Effect    EquipmentEffect   `json:"effect"`
	NextLevel *EquipmentUpgrade `json:"next_level,omitempty"`
}
