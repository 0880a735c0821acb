package leaderboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/event"
	"github.com/thclabs/growroom/internal/scheduler"
)

const (
	addr1 = "0x1111111111111111111111111111111111111111"
	addr2 = "0x2222222222222222222222222222222222222222"
	addr3 = "0x3333333333333333333333333333333333333333"
)

// memLeaderboardRepo is an in-memory repository.Leaderboard for tests.
type memLeaderboardRepo struct {
	mu       sync.Mutex
	stats    map[string]*domain.PlayerStats
	arcade   map[string]*domain.ArcadeScore
	failSave bool
	saves    int
}

func newMemLeaderboardRepo() *memLeaderboardRepo {
	return &memLeaderboardRepo{
		stats:  make(map[string]*domain.PlayerStats),
		arcade: make(map[string]*domain.ArcadeScore),
	}
}

func (r *memLeaderboardRepo) LoadStats(ctx context.Context) (map[string]*domain.PlayerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats, nil
}

func (r *memLeaderboardRepo) SaveStats(ctx context.Context, stats map[string]*domain.PlayerStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errors.New("save failed")
	}
	r.saves++
	r.stats = stats
	return nil
}

func (r *memLeaderboardRepo) LoadArcadeScores(ctx context.Context) (map[string]*domain.ArcadeScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.arcade, nil
}

func (r *memLeaderboardRepo) SaveArcadeScores(ctx context.Context, scores map[string]*domain.ArcadeScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errors.New("save failed")
	}
	r.arcade = scores
	return nil
}

func newTestService(t *testing.T) (Service, *memLeaderboardRepo, *scheduler.FakeClock) {
	t.Helper()
	repo := newMemLeaderboardRepo()
	clock := scheduler.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, err := NewService(context.Background(), repo, clock)
	require.NoError(t, err)
	return svc, repo, clock
}

func record(plantID int, quality float64, growMs int64, thc float64) domain.PlantRecord {
	return domain.PlantRecord{
		PlantID:     plantID,
		Quality:     quality,
		GrowTimeMs:  growMs,
		THCProduced: thc,
		HarvestedAt: time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC),
	}
}

func TestRecordHarvest_AccumulatesStats(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RecordHarvest(ctx, addr1, record(1, 4.0, 600000, 1.7), nil))
	require.NoError(t, svc.RecordHarvest(ctx, addr1, record(2, 6.5, 450000, 2.45), nil))
	require.NoError(t, svc.RecordHarvest(ctx, addr1, record(3, 2.0, 700000, 1.1), nil))

	stats, err := svc.Player(ctx, addr1)
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, 3, stats.TotalPlantsGrown)
	assert.InDelta(t, 5.25, stats.TotalTHCProduced, 0.0001)
	assert.Equal(t, 6.5, stats.HighestQualityPlant)
	require.NotNil(t, stats.FastestGrowTimeMs)
	assert.Equal(t, int64(450000), *stats.FastestGrowTimeMs, "minimum grow time wins")
	assert.Len(t, stats.PlantStats, 3)
	assert.Equal(t, 3, repo.saves, "each harvest snapshot is persisted")
}

func TestRecordHarvest_IgnoresZeroGrowTime(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RecordHarvest(ctx, addr1, record(1, 1.0, 0, 0.8), nil))

	stats, err := svc.Player(ctx, addr1)
	require.NoError(t, err)
	assert.Nil(t, stats.FastestGrowTimeMs, "zero grow time carries no information")
}

func TestRecordHarvest_RequiresAddress(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.RecordHarvest(context.Background(), "", record(1, 1.0, 1000, 0.8), nil)
	assert.Error(t, err)
}

func TestRecordHarvest_SurvivesSaveFailure(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	repo.failSave = true

	require.NoError(t, svc.RecordHarvest(ctx, addr1, record(1, 1.0, 1000, 0.8), nil))

	stats, err := svc.Player(ctx, addr1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPlantsGrown, "in-memory stats stay authoritative")
}

func TestPlayer_UnknownAddress(t *testing.T) {
	svc, _, _ := newTestService(t)

	stats, err := svc.Player(context.Background(), addr1)
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func seedThreePlayers(t *testing.T, svc Service) {
	t.Helper()
	ctx := context.Background()
	// addr1: most THC, slowest. addr2: fastest. addr3: never grew to harvest.
	require.NoError(t, svc.RecordHarvest(ctx, addr1, record(1, 5.0, 900000, 2.0), nil))
	require.NoError(t, svc.RecordHarvest(ctx, addr1, record(2, 3.0, 800000, 1.4), nil))
	require.NoError(t, svc.RecordHarvest(ctx, addr2, record(1, 8.0, 400000, 2.9), nil))
	require.NoError(t, svc.RecordHarvest(ctx, addr3, record(1, 1.0, 0, 0.8), nil))
}

func TestSorted(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedThreePlayers(t, svc)

	tests := []struct {
		name     string
		metric   domain.LeaderboardMetric
		expected []string
	}{
		{name: "by total THC", metric: domain.MetricTotalTHC, expected: []string{addr1, addr2, addr3}},
		// addr2 and addr3 tie on plant count, so only the leader is stable.
		{name: "by total plants", metric: domain.MetricTotalPlants, expected: []string{addr1}},
		{name: "by highest quality", metric: domain.MetricHighestQuality, expected: []string{addr2, addr1, addr3}},
		{name: "by fastest grow, unset last", metric: domain.MetricFastestGrow, expected: []string{addr2, addr1, addr3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := svc.Sorted(context.Background(), tt.metric, 10)
			require.NoError(t, err)

			require.Len(t, entries, 3)
			got := make([]string, len(entries))
			for i, e := range entries {
				got[i] = e.Address
			}
			assert.Equal(t, tt.expected, got[:len(tt.expected)])
		})
	}
}

func TestSorted_FastestGrowZeroTreatedAsUnset(t *testing.T) {
	// A legacy persisted blob can carry an explicit zero instead of omitting
	// the field; it must not sort as an instant grow.
	repo := newMemLeaderboardRepo()
	zero := int64(0)
	timed := int64(420000)
	repo.stats[addr1] = &domain.PlayerStats{Address: addr1, FastestGrowTimeMs: &zero}
	repo.stats[addr2] = &domain.PlayerStats{Address: addr2, FastestGrowTimeMs: &timed}
	repo.stats[addr3] = &domain.PlayerStats{Address: addr3}

	clock := scheduler.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, err := NewService(context.Background(), repo, clock)
	require.NoError(t, err)

	entries, err := svc.Sorted(context.Background(), domain.MetricFastestGrow, 10)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, addr2, entries[0].Address, "the only timed entry leads; zero sorts with unset")
}

func TestSorted_LimitAndUnknownMetric(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedThreePlayers(t, svc)

	entries, err := svc.Sorted(context.Background(), domain.MetricTotalTHC, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = svc.Sorted(context.Background(), "coolness", 10)
	assert.Error(t, err)
}

func TestAggregate(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedThreePlayers(t, svc)

	agg, err := svc.Aggregate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, agg.TotalPlayers)
	assert.Equal(t, 4, agg.TotalPlantsGrown)
	assert.InDelta(t, 7.1, agg.TotalTHCProduced, 0.0001)
	assert.InDelta(t, 4.0/3.0, agg.AvgPlantsPerUser, 0.0001)
	assert.InDelta(t, 7.1/3.0, agg.AvgTHCPerUser, 0.0001)
	assert.InDelta(t, (5.0+8.0+1.0)/3.0, agg.AvgHighestQuality, 0.0001)
}

func TestAggregate_Empty(t *testing.T) {
	svc, _, _ := newTestService(t)

	agg, err := svc.Aggregate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, agg.TotalPlayers)
	assert.Zero(t, agg.AvgTHCPerUser)
}

func TestSubmitArcadeScore_KeepsBestOnly(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	best, err := svc.SubmitArcadeScore(ctx, addr1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), best.Score)

	best, err = svc.SubmitArcadeScore(ctx, addr1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(100), best.Score, "a worse run never lowers the best")

	best, err = svc.SubmitArcadeScore(ctx, addr1, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(250), best.Score)
}

func TestSubmitArcadeScore_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SubmitArcadeScore(context.Background(), "", 10)
	assert.Error(t, err)

	_, err = svc.SubmitArcadeScore(context.Background(), addr1, -1)
	assert.Error(t, err)
}

func TestTopArcadeScores(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitArcadeScore(ctx, addr1, 300)
	require.NoError(t, err)
	_, err = svc.SubmitArcadeScore(ctx, addr2, 500)
	require.NoError(t, err)
	_, err = svc.SubmitArcadeScore(ctx, addr3, 100)
	require.NoError(t, err)

	top, err := svc.TopArcadeScores(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, addr2, top[0].Address)
	assert.Equal(t, addr1, top[1].Address)
}

func TestEventHandler_RecordsHarvestFromBus(t *testing.T) {
	svc, _, _ := newTestService(t)
	bus := event.NewMemoryBus()
	NewEventHandler(svc).Register(bus)

	rec := record(4, 7.2, 520000, 2.66)
	err := bus.Publish(context.Background(), event.NewHarvestCompletedEvent(addr1, rec, nil))
	require.NoError(t, err)

	stats, err := svc.Player(context.Background(), addr1)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.TotalPlantsGrown)
	assert.Equal(t, 7.2, stats.HighestQualityPlant)
}
