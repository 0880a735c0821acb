package handler

import (
	"net/http"
	"strconv"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/leaderboard"
	"github.com/thclabs/growroom/internal/logger"
)

// LeaderboardHandler handles leaderboard HTTP requests
type LeaderboardHandler struct {
	lbSvc leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(lbSvc leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{lbSvc: lbSvc}
}

// GetLeaderboard handles the sorted leaderboard endpoint
// @Summary Get players sorted by a metric
// @Tags leaderboard
// @Produce json
// @Param metric query string false "total_thc | total_plants | highest_quality | fastest_grow" default(total_thc)
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {array} domain.PlayerStats
// @Failure 400 {object} ErrorResponse "Unknown metric"
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	metric := domain.LeaderboardMetric(GetOptionalQueryParam(r, "metric", string(domain.MetricTotalTHC)))
	if !metric.Valid() {
		log.Warn("Unknown leaderboard metric requested", "metric", metric)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidMetric)
		return
	}

	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	entries, err := h.lbSvc.Sorted(r.Context(), metric, limit)
	if err != nil {
		respondServiceError(w, r, "Get leaderboard", err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// GetPlayer handles the per-player stats endpoint
// @Summary Get one player's cumulative stats
// @Tags leaderboard
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} domain.PlayerStats
// @Failure 404 {object} ErrorResponse "Player never harvested"
// @Router /leaderboard/player [get]
func (h *LeaderboardHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	address, ok := GetQueryParam(r, w, "address")
	if !ok {
		return
	}

	stats, err := h.lbSvc.Player(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, "Get player stats", err)
		return
	}
	if stats == nil {
		respondError(w, http.StatusNotFound, "No stats for that address")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetAggregate handles the system-wide stats endpoint
// @Summary Get system-wide aggregate stats
// @Tags leaderboard
// @Produce json
// @Success 200 {object} domain.AggregateStats
// @Router /leaderboard/aggregate [get]
func (h *LeaderboardHandler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	agg, err := h.lbSvc.Aggregate(r.Context())
	if err != nil {
		respondServiceError(w, r, "Get aggregate stats", err)
		return
	}

	respondJSON(w, http.StatusOK, agg)
}

// parseLimit reads the optional limit query parameter. On a malformed value
// the error response has been written and ok is false.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := GetOptionalQueryParam(r, "limit", strconv.Itoa(leaderboard.DefaultLimit))
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	return limit, true
}
