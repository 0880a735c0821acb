// Package leaderboard folds harvest events into per-player cumulative
// statistics and serves sorted views. Cardinality is small (tens of
// players), so aggregates are computed on demand rather than maintained
// incrementally.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/logger"
	"github.com/thclabs/growroom/internal/repository"
	"github.com/thclabs/growroom/internal/scheduler"
)

// Service defines the leaderboard business logic
type Service interface {
	// RecordHarvest updates a player's cumulative stats with one harvest.
	RecordHarvest(ctx context.Context, address string, record domain.PlantRecord, loadout map[domain.EquipmentType]domain.Equipment) error
	// Sorted returns players ordered by the chosen metric.
	Sorted(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.PlayerStats, error)
	// Player returns one player's stats, or nil if they never harvested.
	Player(ctx context.Context, address string) (*domain.PlayerStats, error)
	// Aggregate folds all entries into system-wide totals and averages.
	Aggregate(ctx context.Context) (*domain.AggregateStats, error)

	// SubmitArcadeScore records an arcade run; only a player's best survives.
	SubmitArcadeScore(ctx context.Context, address string, score int64) (*domain.ArcadeScore, error)
	// TopArcadeScores returns the best scores, descending.
	TopArcadeScores(ctx context.Context, limit int) ([]domain.ArcadeScore, error)
}

type service struct {
	repo  repository.Leaderboard
	clock scheduler.Clock

	mu     sync.RWMutex
	stats  map[string]*domain.PlayerStats
	arcade map[string]*domain.ArcadeScore
}

// NewService loads the persisted leaderboard and returns the service.
func NewService(ctx context.Context, repo repository.Leaderboard, clock scheduler.Clock) (Service, error) {
	stats, err := repo.LoadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	arcade, err := repo.LoadArcadeScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load arcade scores: %w", err)
	}
	return &service{
		repo:   repo,
		clock:  clock,
		stats:  stats,
		arcade: arcade,
	}, nil
}

// RecordHarvest implements Service.
func (s *service) RecordHarvest(ctx context.Context, address string, record domain.PlantRecord, loadout map[domain.EquipmentType]domain.Equipment) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgRecordHarvestCalled, "address", address, "plant_id", record.PlantID)

	if address == "" {
		return errors.New(ErrMsgAddressRequired)
	}
	addr := strings.ToLower(address)

	s.mu.Lock()
	entry, ok := s.stats[addr]
	if !ok {
		entry = &domain.PlayerStats{Address: addr}
		s.stats[addr] = entry
	}

	entry.TotalPlantsGrown++
	entry.TotalTHCProduced += record.THCProduced
	if record.Quality > entry.HighestQualityPlant {
		entry.HighestQualityPlant = record.Quality
	}
	// Grow times of zero or less carry no information and never beat a real time.
	if record.GrowTimeMs > 0 && (entry.FastestGrowTimeMs == nil || record.GrowTimeMs < *entry.FastestGrowTimeMs) {
		growTime := record.GrowTimeMs
		entry.FastestGrowTimeMs = &growTime
	}
	entry.LastActive = record.HarvestedAt
	entry.PlantStats = append(entry.PlantStats, record)
	entry.Equipment = loadout

	snapshot := s.cloneStatsLocked()
	s.mu.Unlock()

	if err := s.repo.SaveStats(ctx, snapshot); err != nil {
		// The in-memory board stays authoritative; the next harvest retries.
		log.Error(LogMsgStatsSaveFailed, "error", err)
	}
	return nil
}

// Sorted implements Service. All metrics sort descending except fastest
// grow time, which sorts ascending with unset entries pushed to the end.
func (s *service) Sorted(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.PlayerStats, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownMetric, metric)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	s.mu.RLock()
	entries := make([]domain.PlayerStats, 0, len(s.stats))
	for _, entry := range s.stats {
		entries = append(entries, *entry)
	}
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return less(metric, entries[i], entries[j])
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func less(metric domain.LeaderboardMetric, a, b domain.PlayerStats) bool {
	switch metric {
	case domain.MetricTotalPlants:
		return a.TotalPlantsGrown > b.TotalPlantsGrown
	case domain.MetricHighestQuality:
		return a.HighestQualityPlant > b.HighestQualityPlant
	case domain.MetricFastestGrow:
		// Ascending, with unset entries after every set one. A persisted
		// zero counts as unset, not as an instant grow.
		switch {
		case !fastestSet(a.FastestGrowTimeMs):
			return false
		case !fastestSet(b.FastestGrowTimeMs):
			return true
		default:
			return *a.FastestGrowTimeMs < *b.FastestGrowTimeMs
		}
	default: // MetricTotalTHC
		return a.TotalTHCProduced > b.TotalTHCProduced
	}
}

func fastestSet(ms *int64) bool {
	return ms != nil && *ms > 0
}

// Player implements Service.
func (s *service) Player(ctx context.Context, address string) (*domain.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.stats[strings.ToLower(address)]
	if !ok {
		return nil, nil
	}
	cp := *entry
	return &cp, nil
}

// Aggregate implements Service.
func (s *service) Aggregate(ctx context.Context) (*domain.AggregateStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agg := &domain.AggregateStats{TotalPlayers: len(s.stats)}
	var qualitySum float64
	for _, entry := range s.stats {
		agg.TotalPlantsGrown += entry.TotalPlantsGrown
		agg.TotalTHCProduced += entry.TotalTHCProduced
		qualitySum += entry.HighestQualityPlant
	}
	if agg.TotalPlayers > 0 {
		n := float64(agg.TotalPlayers)
		agg.AvgPlantsPerUser = float64(agg.TotalPlantsGrown) / n
		agg.AvgTHCPerUser = agg.TotalTHCProduced / n
		agg.AvgHighestQuality = qualitySum / n
	}
	return agg, nil
}

func (s *service) cloneStatsLocked() map[string]*domain.PlayerStats {
	snapshot := make(map[string]*domain.PlayerStats, len(s.stats))
	for addr, entry := range s.stats {
		cp := *entry
		snapshot[addr] = &cp
	}
	return snapshot
}
