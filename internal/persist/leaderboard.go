package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/logger"
	"github.com/thclabs/growroom/internal/metrics"
	"github.com/thclabs/growroom/internal/store"
)

const (
	leaderboardKey = "leaderboard"
	arcadeKey      = "arcade"
)

// LeaderboardRepository stores the whole leaderboard as one JSON document,
// and the arcade scores as another. Cardinality is tens of players, so the
// blob stays small and load-modify-store is cheap.
type LeaderboardRepository struct {
	store store.Store
}

// NewLeaderboardRepository creates a leaderboard repository over the given store.
func NewLeaderboardRepository(s store.Store) *LeaderboardRepository {
	return &LeaderboardRepository{store: s}
}

// LoadStats implements repository.Leaderboard.
func (r *LeaderboardRepository) LoadStats(ctx context.Context) (map[string]*domain.PlayerStats, error) {
	stats := make(map[string]*domain.PlayerStats)
	if err := r.loadDoc(ctx, leaderboardKey, &stats); err != nil {
		return nil, err
	}
	if stats == nil {
		stats = make(map[string]*domain.PlayerStats)
	}
	return stats, nil
}

// SaveStats implements repository.Leaderboard.
func (r *LeaderboardRepository) SaveStats(ctx context.Context, stats map[string]*domain.PlayerStats) error {
	return r.saveDoc(ctx, leaderboardKey, stats)
}

// LoadArcadeScores implements repository.Leaderboard.
func (r *LeaderboardRepository) LoadArcadeScores(ctx context.Context) (map[string]*domain.ArcadeScore, error) {
	scores := make(map[string]*domain.ArcadeScore)
	if err := r.loadDoc(ctx, arcadeKey, &scores); err != nil {
		return nil, err
	}
	if scores == nil {
		scores = make(map[string]*domain.ArcadeScore)
	}
	return scores, nil
}

// SaveArcadeScores implements repository.Leaderboard.
func (r *LeaderboardRepository) SaveArcadeScores(ctx context.Context, scores map[string]*domain.ArcadeScore) error {
	return r.saveDoc(ctx, arcadeKey, scores)
}

func (r *LeaderboardRepository) loadDoc(ctx context.Context, key string, out interface{}) error {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Same fallback policy as room state: corrupt data starts empty.
		logger.FromContext(ctx).Error("Corrupt document, starting empty", "key", key, "error", err)
		metrics.PersistenceErrors.Inc()
		// Discard any partially decoded content.
		_ = json.Unmarshal([]byte("null"), out)
	}
	return nil
}

func (r *LeaderboardRepository) saveDoc(ctx context.Context, key string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		metrics.PersistenceErrors.Inc()
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		metrics.PersistenceErrors.Inc()
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
