package domain

import "time"

// RoomState is the full grow-room state owned by one wallet address.
// It is the unit of persistence: every mutation writes the whole state back.
type RoomState struct {
	Address       string                      `json:"address"`
	THCAmount     float64                     `json:"thc_amount"`
	Plants        []Plant                     `json:"plants"`
	Equipment     map[EquipmentType]Equipment `json:"equipment"`
	PlantCapacity int                         `json:"plant_capacity"`
	NextPlantID   int                         `json:"next_plant_id"`
	LastSaved     time.Time                   `json:"last_saved"`
}

// Clone returns a deep copy safe to hand outside the owning session.
func (r *RoomState) Clone() *RoomState {
	cp := *r
	cp.Plants = make([]Plant, len(r.Plants))
	copy(cp.Plants, r.Plants)
	cp.Equipment = make(map[EquipmentType]Equipment, len(r.Equipment))
	for t, eq := range r.Equipment {
		if eq.NextLevel != nil {
			next := *eq.NextLevel
			eq.NextLevel = &next
		}
		cp.Equipment[t] = eq
	}
	return &cp
}

// PlantByID returns the index of the plant with the given id, or -1.
func (r *RoomState) PlantByID(id int) int {
	for i := range r.Plants {
		if r.Plants[i].ID == id {
			return i
		}
	}
	return -1
}
