package growth_bench

import (
	"testing"
	"time"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/equipment"
	"github.com/thclabs/growroom/internal/growth"
)

// fullyUpgraded returns a loadout with every slot at its top tier, the
// worst case for the multiplier fold.
func fullyUpgraded() map[domain.EquipmentType]domain.Equipment {
	loadout := equipment.DefaultLoadout()
	for slot, eq := range loadout {
		for eq.NextLevel != nil {
			eq.Name = eq.NextLevel.Name
			eq.Effect = eq.NextLevel.Effect
			eq.Level++
			eq.NextLevel = nil
		}
		loadout[slot] = eq
	}
	return loadout
}

func BenchmarkAdvance_SingleTick(b *testing.B) {
	mult := equipment.Calculate(equipment.DefaultLoadout())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		plant := growth.NewPlant(1, time.Now())
		growth.Advance(plant, mult.Speed, mult.Quality, time.Second)
	}
}

func BenchmarkAdvance_FullLifecycle(b *testing.B) {
	// One call spanning the whole lifecycle exercises the stage-carry loop.
	mult := equipment.Calculate(fullyUpgraded())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		plant := growth.NewPlant(1, time.Now())
		growth.Advance(plant, mult.Speed, mult.Quality, 15*time.Minute)
	}
}

func BenchmarkAdvance_FullRoom(b *testing.B) {
	mult := equipment.Calculate(equipment.DefaultLoadout())
	plants := make([]domain.Plant, domain.MaxPlantCapacity)
	for i := range plants {
		plants[i] = growth.NewPlant(i+1, time.Now())
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range plants {
			plants[j] = growth.Advance(plants[j], mult.Speed, mult.Quality, time.Second)
		}
	}
}

func BenchmarkCalculate(b *testing.B) {
	loadout := fullyUpgraded()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		equipment.Calculate(loadout)
	}
}
