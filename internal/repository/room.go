// Package repository defines the persistence interfaces consumed by the
// service layer. Implementations live in internal/persist.
package repository

import (
	"context"

	"github.com/thclabs/growroom/internal/domain"
)

// Room persists grow-room state keyed by wallet address.
type Room interface {
	// Save writes the full state. LastSaved is stamped by the implementation.
	Save(ctx context.Context, state *domain.RoomState) error
	// Load reads the state for an address. A missing or corrupt entry yields
	// a fresh default room, never an error; only backend I/O failures are
	// returned.
	Load(ctx context.Context, address string) (*domain.RoomState, error)
	// Addresses lists every address with a stored room.
	Addresses(ctx context.Context) ([]string, error)
}
