package leaderboard

import (
	"context"
	"fmt"

	"github.com/thclabs/growroom/internal/event"
	"github.com/thclabs/growroom/internal/logger"
)

// EventHandler feeds harvest events from the bus into the aggregator, so the
// room service never calls the leaderboard directly.
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new leaderboard event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.HarvestCompleted, h.HandleHarvestCompleted)
}

// HandleHarvestCompleted folds one harvest into the player's stats
func (h *EventHandler) HandleHarvestCompleted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.HarvestCompletedPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode harvest payload: %w", err)
	}

	if err := h.service.RecordHarvest(ctx, payload.Address, payload.Record, payload.Equipment); err != nil {
		logger.FromContext(ctx).Warn("Failed to record harvest stat", "error", err, "address", payload.Address)
		return err
	}
	return nil
}
