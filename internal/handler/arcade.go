package handler

import (
	"net/http"

	"github.com/thclabs/growroom/internal/leaderboard"
	"github.com/thclabs/growroom/internal/logger"
)

// SubmitArcadeScoreRequest represents an arcade run submission
type SubmitArcadeScoreRequest struct {
	Address string `json:"address" validate:"required,wallet_addr"`
	Score   int64  `json:"score" validate:"min=0"`
}

// ArcadeHandler handles arcade mini-game HTTP requests
type ArcadeHandler struct {
	lbSvc leaderboard.Service
}

// NewArcadeHandler creates a new arcade handler
func NewArcadeHandler(lbSvc leaderboard.Service) *ArcadeHandler {
	return &ArcadeHandler{lbSvc: lbSvc}
}

// SubmitScore handles the arcade score submission endpoint
// @Summary Submit an arcade run score
// @Description Records the run; only a player's personal best is kept
// @Tags arcade
// @Accept json
// @Produce json
// @Param request body SubmitArcadeScoreRequest true "Score submission"
// @Success 200 {object} domain.ArcadeScore "The player's best score"
// @Failure 400 {object} ErrorResponse "Invalid submission"
// @Router /arcade/score [post]
func (h *ArcadeHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req SubmitArcadeScoreRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit arcade score"); err != nil {
		return
	}

	best, err := h.lbSvc.SubmitArcadeScore(r.Context(), req.Address, req.Score)
	if err != nil {
		respondServiceError(w, r, "Submit arcade score", err)
		return
	}

	log.Info("Arcade score submitted", "address", req.Address, "score", req.Score)
	respondJSON(w, http.StatusOK, best)
}

// TopScores handles the arcade leaderboard endpoint
// @Summary Get the best arcade scores
// @Tags arcade
// @Produce json
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {array} domain.ArcadeScore
// @Router /arcade/top [get]
func (h *ArcadeHandler) TopScores(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	scores, err := h.lbSvc.TopArcadeScores(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Get arcade scores", err)
		return
	}

	respondJSON(w, http.StatusOK, scores)
}
