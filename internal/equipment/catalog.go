// Package equipment holds the static equipment catalog and the multiplier
// calculator that folds equipment effects into room-wide growth multipliers.
package equipment

import "github.com/thclabs/growroom/internal/domain"

// tier describes one level of one equipment slot in the static catalog
type tier struct {
	name   string
	effect domain.EquipmentEffect
	cost   float64
}

// catalog is the full two-tier equipment table. Tier 1 is the starting
// loadout; tier 2 is the only upgrade. Costs are in THC.
var catalog = map[domain.EquipmentType][]tier{
	domain.EquipmentLight: {
		{name: "CFL Bulb", effect: domain.EquipmentEffect{SpeedBoost: 1.0, QualityBoost: 1.0}},
		{name: "LED Panel", effect: domain.EquipmentEffect{SpeedBoost: 1.5, QualityBoost: 1.1}, cost: 5},
	},
	domain.EquipmentPot: {
		{name: "Plastic Pot", effect: domain.EquipmentEffect{SpeedBoost: 1.0, QualityBoost: 1.0}},
		{name: "Fabric Smart Pot", effect: domain.EquipmentEffect{SpeedBoost: 1.0, QualityBoost: 1.4}, cost: 3},
	},
	domain.EquipmentNutrients: {
		{name: "Basic Nutrients", effect: domain.EquipmentEffect{SpeedBoost: 1.0, QualityBoost: 1.0}},
		{name: "Organic Blend", effect: domain.EquipmentEffect{SpeedBoost: 1.1, QualityBoost: 1.5}, cost: 4},
	},
	domain.EquipmentVentilation: {
		{name: "Clip Fan", effect: domain.EquipmentEffect{SpeedBoost: 1.0, QualityBoost: 1.0}},
		{name: "Inline Exhaust", effect: domain.EquipmentEffect{SpeedBoost: 1.3, QualityBoost: 1.0}, cost: 4},
	},
	domain.EquipmentAutomation: {
		{name: "Manual Timer", effect: domain.EquipmentEffect{SpeedBoost: 1.0, QualityBoost: 1.0}},
		{name: "Smart Controller", effect: domain.EquipmentEffect{SpeedBoost: 1.2, QualityBoost: 1.2}, cost: 8},
	},
}

// DefaultLoadout returns the five tier-1 equipment records, each carrying its
// tier-2 upgrade descriptor. Exactly one record per type.
func DefaultLoadout() map[domain.EquipmentType]domain.Equipment {
	loadout := make(map[domain.EquipmentType]domain.Equipment, len(catalog))
	for _, t := range domain.EquipmentTypes {
		tiers := catalog[t]
		eq := domain.Equipment{
			Type:   t,
			Name:   tiers[0].name,
			Level:  1,
			Effect: tiers[0].effect,
			NextLevel: &domain.EquipmentUpgrade{
				Name:   tiers[1].name,
				Effect: tiers[1].effect,
				Cost:   tiers[1].cost,
			},
		}
		loadout[t] = eq
	}
	return loadout
}
