package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thclabs/growroom/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Common event types
const (
	SeedPlanted       Type = "room.seed_planted"
	HarvestCompleted  Type = "room.harvest_completed"
	EquipmentUpgraded Type = "room.equipment_upgraded"
	CapacityUpgraded  Type = "room.capacity_upgraded"
	SessionConnected  Type = "session.connected"
	SessionClosed     Type = "session.closed"
)

// Typed event payloads for type safety

// SeedPlantedPayloadV1 is the typed payload for seed planted events
type SeedPlantedPayloadV1 struct {
	Address   string `json:"address"`
	PlantID   int    `json:"plant_id"`
	Timestamp int64  `json:"timestamp"`
}

// HarvestCompletedPayloadV1 is the typed payload for harvest events.
// The leaderboard aggregator folds these into per-player stats.
type HarvestCompletedPayloadV1 struct {
	Address     string                                    `json:"address"`
	Record      domain.PlantRecord                        `json:"record"`
	Equipment   map[domain.EquipmentType]domain.Equipment `json:"equipment"`
	THCProduced float64                                   `json:"thc_produced"`
	Timestamp   int64                                     `json:"timestamp"`
}

// EquipmentUpgradedPayloadV1 is the typed payload for equipment upgrade events
type EquipmentUpgradedPayloadV1 struct {
	Address   string  `json:"address"`
	Type      string  `json:"equipment_type"`
	NewLevel  int     `json:"new_level"`
	Cost      float64 `json:"cost"`
	Timestamp int64   `json:"timestamp"`
}

// CapacityUpgradedPayloadV1 is the typed payload for capacity upgrade events
type CapacityUpgradedPayloadV1 struct {
	Address     string  `json:"address"`
	NewCapacity int     `json:"new_capacity"`
	Cost        float64 `json:"cost"`
	Timestamp   int64   `json:"timestamp"`
}

// SessionPayloadV1 is the typed payload for session lifecycle events
type SessionPayloadV1 struct {
	Address   string `json:"address"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewSeedPlantedEvent creates a new seed planted event
func NewSeedPlantedEvent(address string, plantID int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SeedPlanted,
		Payload: SeedPlantedPayloadV1{
			Address:   address,
			PlantID:   plantID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewHarvestCompletedEvent creates a new harvest completed event
func NewHarvestCompletedEvent(address string, record domain.PlantRecord, loadout map[domain.EquipmentType]domain.Equipment) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HarvestCompleted,
		Payload: HarvestCompletedPayloadV1{
			Address:     address,
			Record:      record,
			Equipment:   loadout,
			THCProduced: record.THCProduced,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewEquipmentUpgradedEvent creates a new equipment upgraded event
func NewEquipmentUpgradedEvent(address string, equipmentType domain.EquipmentType, newLevel int, cost float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EquipmentUpgraded,
		Payload: EquipmentUpgradedPayloadV1{
			Address:   address,
			Type:      string(equipmentType),
			NewLevel:  newLevel,
			Cost:      cost,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewCapacityUpgradedEvent creates a new capacity upgraded event
func NewCapacityUpgradedEvent(address string, newCapacity int, cost float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CapacityUpgraded,
		Payload: CapacityUpgradedPayloadV1{
			Address:     address,
			NewCapacity: newCapacity,
			Cost:        cost,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewSessionEvent creates a session lifecycle event of the given type
func NewSessionEvent(eventType Type, address string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: SessionPayloadV1{
			Address:   address,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
// Handler errors are collected; a failing handler does not stop the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
