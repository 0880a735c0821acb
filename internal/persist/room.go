// Package persist implements the repository interfaces over the key-value
// store, owning the JSON codec and the key scheme.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/equipment"
	"github.com/thclabs/growroom/internal/logger"
	"github.com/thclabs/growroom/internal/metrics"
	"github.com/thclabs/growroom/internal/store"
)

const (
	roomKeyPrefix = "room:"
)

// RoomRepository stores one JSON document per wallet address.
type RoomRepository struct {
	store store.Store
}

// NewRoomRepository creates a room repository over the given store.
func NewRoomRepository(s store.Store) *RoomRepository {
	return &RoomRepository{store: s}
}

func roomKey(address string) string {
	return roomKeyPrefix + strings.ToLower(address)
}

// Save implements repository.Room.
func (r *RoomRepository) Save(ctx context.Context, state *domain.RoomState) error {
	state.LastSaved = time.Now()
	data, err := json.Marshal(state)
	if err != nil {
		metrics.PersistenceErrors.Inc()
		return fmt.Errorf("failed to encode room state for %s: %w", state.Address, err)
	}
	if err := r.store.Set(ctx, roomKey(state.Address), data); err != nil {
		metrics.PersistenceErrors.Inc()
		return fmt.Errorf("failed to save room state for %s: %w", state.Address, err)
	}
	return nil
}

// Load implements repository.Room. A missing or corrupt entry falls back to
// a default room; the session must come up playable no matter what is on disk.
func (r *RoomRepository) Load(ctx context.Context, address string) (*domain.RoomState, error) {
	log := logger.FromContext(ctx)

	data, err := r.store.Get(ctx, roomKey(address))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			log.Debug("No stored room, starting fresh", "address", address)
			return DefaultRoom(address), nil
		}
		return nil, fmt.Errorf("failed to load room state for %s: %w", address, err)
	}

	var state domain.RoomState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Error("Corrupt room state, falling back to defaults", "address", address, "error", err)
		metrics.PersistenceErrors.Inc()
		return DefaultRoom(address), nil
	}
	normalize(&state, address)
	return &state, nil
}

// Addresses implements repository.Room.
func (r *RoomRepository) Addresses(ctx context.Context) ([]string, error) {
	keys, err := r.store.Keys(ctx, roomKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list room keys: %w", err)
	}
	addresses := make([]string, 0, len(keys))
	for _, key := range keys {
		addresses = append(addresses, strings.TrimPrefix(key, roomKeyPrefix))
	}
	return addresses, nil
}

// DefaultRoom is the state of a never-before-seen address.
func DefaultRoom(address string) *domain.RoomState {
	return &domain.RoomState{
		Address:       strings.ToLower(address),
		THCAmount:     0,
		Plants:        []domain.Plant{},
		Equipment:     equipment.DefaultLoadout(),
		PlantCapacity: domain.InitialPlantCapacity,
		NextPlantID:   1,
	}
}

// normalize repairs fields a hand-edited or older-version blob may be
// missing, keeping the invariants the services rely on.
func normalize(state *domain.RoomState, address string) {
	if state.Address == "" {
		state.Address = strings.ToLower(address)
	}
	if state.Plants == nil {
		state.Plants = []domain.Plant{}
	}
	if len(state.Equipment) != len(domain.EquipmentTypes) {
		loadout := equipment.DefaultLoadout()
		for t, eq := range state.Equipment {
			if t.Valid() {
				loadout[t] = eq
			}
		}
		state.Equipment = loadout
	}
	if state.PlantCapacity < domain.InitialPlantCapacity {
		state.PlantCapacity = domain.InitialPlantCapacity
	}
	if state.PlantCapacity > domain.MaxPlantCapacity {
		state.PlantCapacity = domain.MaxPlantCapacity
	}
	if state.THCAmount < 0 {
		state.THCAmount = 0
	}
	maxID := 0
	for i := range state.Plants {
		if state.Plants[i].ID > maxID {
			maxID = state.Plants[i].ID
		}
	}
	if state.NextPlantID <= maxID {
		state.NextPlantID = maxID + 1
	}
}
