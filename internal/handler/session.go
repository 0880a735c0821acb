package handler

import (
	"net/http"

	"github.com/thclabs/growroom/internal/logger"
	"github.com/thclabs/growroom/internal/room"
)

// ConnectRequest represents the request to open a grow-room session
type ConnectRequest struct {
	Address string `json:"address" validate:"required,wallet_addr"`
}

// DisconnectRequest represents the request to close a session
type DisconnectRequest struct {
	Address string `json:"address" validate:"required,wallet_addr"`
}

// SessionHandler handles session lifecycle HTTP requests
type SessionHandler struct {
	roomSvc room.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(roomSvc room.Service) *SessionHandler {
	return &SessionHandler{roomSvc: roomSvc}
}

// Connect handles the session connect endpoint
// @Summary Connect a wallet and open its grow room
// @Description Loads (or creates) the room for the address, credits offline growth, and starts a session
// @Tags session
// @Accept json
// @Produce json
// @Param request body ConnectRequest true "Connect request"
// @Success 200 {object} domain.RoomState "Room state"
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 503 {object} ErrorResponse "Wallet provider unavailable"
// @Router /session/connect [post]
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ConnectRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Connect"); err != nil {
		return
	}

	log.Info("Connect request received", "address", req.Address)

	state, err := h.roomSvc.Connect(r.Context(), req.Address)
	if err != nil {
		respondServiceError(w, r, "Connect", err)
		return
	}

	log.Info("Session connected", "address", state.Address, "plants", len(state.Plants))
	respondJSON(w, http.StatusOK, state)
}

// Disconnect handles the session disconnect endpoint
// @Summary Close a grow-room session
// @Description Saves the room and drops the in-memory session
// @Tags session
// @Accept json
// @Produce json
// @Param request body DisconnectRequest true "Disconnect request"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "No active session"
// @Router /session/disconnect [post]
func (h *SessionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	var req DisconnectRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Disconnect"); err != nil {
		return
	}

	if err := h.roomSvc.Disconnect(r.Context(), req.Address); err != nil {
		respondServiceError(w, r, "Disconnect", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "session closed"})
}
