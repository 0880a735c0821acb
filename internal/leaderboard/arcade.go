package leaderboard

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/logger"
	"github.com/thclabs/growroom/internal/metrics"
)

// SubmitArcadeScore implements Service. Only a player's personal best is kept.
func (s *service) SubmitArcadeScore(ctx context.Context, address string, score int64) (*domain.ArcadeScore, error) {
	log := logger.FromContext(ctx)

	if address == "" {
		return nil, errors.New(ErrMsgAddressRequired)
	}
	if score < 0 {
		return nil, errors.New(ErrMsgNegativeScore)
	}
	addr := strings.ToLower(address)

	s.mu.Lock()
	entry, ok := s.arcade[addr]
	if !ok || score > entry.Score {
		entry = &domain.ArcadeScore{
			Address:    addr,
			Score:      score,
			AchievedAt: s.clock.Now(),
		}
		s.arcade[addr] = entry
	}
	best := *entry
	snapshot := make(map[string]*domain.ArcadeScore, len(s.arcade))
	for a, sc := range s.arcade {
		cp := *sc
		snapshot[a] = &cp
	}
	s.mu.Unlock()

	metrics.ArcadeScores.Inc()
	if err := s.repo.SaveArcadeScores(ctx, snapshot); err != nil {
		log.Error(LogMsgArcadeSaveFailed, "error", err)
	}
	log.Info(LogMsgScoreSubmitted, "address", addr, "score", score, "best", best.Score)
	return &best, nil
}

// TopArcadeScores implements Service.
func (s *service) TopArcadeScores(ctx context.Context, limit int) ([]domain.ArcadeScore, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	s.mu.RLock()
	scores := make([]domain.ArcadeScore, 0, len(s.arcade))
	for _, entry := range s.arcade {
		scores = append(scores, *entry)
	}
	s.mu.RUnlock()

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}
