package repository

import (
	"context"

	"github.com/thclabs/growroom/internal/domain"
)

// Leaderboard persists the cumulative player statistics and arcade scores.
// Both collections are small (tens of players) and stored as single
// documents, so load-modify-store is the whole contract.
type Leaderboard interface {
	LoadStats(ctx context.Context) (map[string]*domain.PlayerStats, error)
	SaveStats(ctx context.Context, stats map[string]*domain.PlayerStats) error

	LoadArcadeScores(ctx context.Context) (map[string]*domain.ArcadeScore, error)
	SaveArcadeScores(ctx context.Context, scores map[string]*domain.ArcadeScore) error
}
