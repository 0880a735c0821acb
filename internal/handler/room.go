package handler

import (
	"net/http"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/logger"
	"github.com/thclabs/growroom/internal/room"
)

// PlantSeedRequest represents the request to plant a seed
type PlantSeedRequest struct {
	Address string `json:"address" validate:"required,wallet_addr"`
}

// HarvestPlantRequest represents the request to harvest a plant
type HarvestPlantRequest struct {
	Address string `json:"address" validate:"required,wallet_addr"`
	PlantID int    `json:"plant_id" validate:"min=0"`
}

// UpgradeEquipmentRequest represents the request to upgrade an equipment slot
type UpgradeEquipmentRequest struct {
	Address       string `json:"address" validate:"required,wallet_addr"`
	EquipmentType string `json:"equipment_type" validate:"required,oneof=light pot nutrients ventilation automation"`
}

// UpgradeCapacityRequest represents the request to add a plant slot
type UpgradeCapacityRequest struct {
	Address string `json:"address" validate:"required,wallet_addr"`
}

// RoomHandler handles grow-room HTTP requests
type RoomHandler struct {
	roomSvc room.Service
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomSvc room.Service) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// GetRoom handles the room state endpoint
// @Summary Get current room state
// @Tags room
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} domain.RoomState
// @Failure 404 {object} ErrorResponse "No active session"
// @Router /room [get]
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	address, ok := GetQueryParam(r, w, "address")
	if !ok {
		return
	}

	state, err := h.roomSvc.Room(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, "Get room", err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// GetMultipliers handles the aggregate-multiplier endpoint
// @Summary Get the room's aggregate equipment multipliers
// @Tags room
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} equipment.Multipliers
// @Failure 404 {object} ErrorResponse "No active session"
// @Router /room/multipliers [get]
func (h *RoomHandler) GetMultipliers(w http.ResponseWriter, r *http.Request) {
	address, ok := GetQueryParam(r, w, "address")
	if !ok {
		return
	}

	mult, err := h.roomSvc.Multipliers(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, "Get multipliers", err)
		return
	}

	respondJSON(w, http.StatusOK, mult)
}

// PlantSeed handles the plant endpoint
// @Summary Plant a seed
// @Description Pays the seed cost and adds a new plant to the room
// @Tags room
// @Accept json
// @Produce json
// @Param request body PlantSeedRequest true "Plant request"
// @Success 200 {object} domain.RoomState
// @Failure 409 {object} ErrorResponse "Room full or not enough THC"
// @Failure 429 {object} ErrorResponse "Payment already in flight"
// @Failure 502 {object} ErrorResponse "Payment failed"
// @Router /room/plant [post]
func (h *RoomHandler) PlantSeed(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req PlantSeedRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant seed"); err != nil {
		return
	}

	state, err := h.roomSvc.PlantSeed(r.Context(), req.Address)
	if err != nil {
		respondServiceError(w, r, "Plant seed", err)
		return
	}

	log.Info("Seed planted", "address", req.Address, "plants", len(state.Plants))
	respondJSON(w, http.StatusOK, state)
}

// Harvest handles the harvest endpoint
// @Summary Harvest a mature plant
// @Description Removes the plant, credits the THC yield, and records the harvest
// @Tags room
// @Accept json
// @Produce json
// @Param request body HarvestPlantRequest true "Harvest request"
// @Success 200 {object} room.HarvestResult
// @Failure 404 {object} ErrorResponse "Plant not found"
// @Failure 409 {object} ErrorResponse "Plant not ready"
// @Router /room/harvest [post]
func (h *RoomHandler) Harvest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req HarvestPlantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest"); err != nil {
		return
	}

	result, err := h.roomSvc.HarvestPlant(r.Context(), req.Address, req.PlantID)
	if err != nil {
		respondServiceError(w, r, "Harvest", err)
		return
	}

	log.Info("Harvest successful",
		"address", req.Address,
		"plant_id", req.PlantID,
		"thc_produced", result.THCProduced,
		"quality", result.Record.Quality)
	respondJSON(w, http.StatusOK, result)
}

// UpgradeEquipment handles the equipment upgrade endpoint
// @Summary Upgrade an equipment slot to its next tier
// @Tags room
// @Accept json
// @Produce json
// @Param request body UpgradeEquipmentRequest true "Upgrade request"
// @Success 200 {object} domain.RoomState
// @Failure 409 {object} ErrorResponse "Max level or not enough THC"
// @Failure 429 {object} ErrorResponse "Payment already in flight"
// @Failure 502 {object} ErrorResponse "Payment failed"
// @Router /room/equipment/upgrade [post]
func (h *RoomHandler) UpgradeEquipment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req UpgradeEquipmentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Upgrade equipment"); err != nil {
		return
	}

	state, err := h.roomSvc.UpgradeEquipment(r.Context(), req.Address, domain.EquipmentType(req.EquipmentType))
	if err != nil {
		respondServiceError(w, r, "Upgrade equipment", err)
		return
	}

	log.Info("Equipment upgraded", "address", req.Address, "type", req.EquipmentType)
	respondJSON(w, http.StatusOK, state)
}

// UpgradeCapacity handles the capacity upgrade endpoint
// @Summary Add one plant slot to the room
// @Tags room
// @Accept json
// @Produce json
// @Param request body UpgradeCapacityRequest true "Upgrade request"
// @Success 200 {object} domain.RoomState
// @Failure 409 {object} ErrorResponse "Capacity cap reached or not enough THC"
// @Failure 429 {object} ErrorResponse "Payment already in flight"
// @Failure 502 {object} ErrorResponse "Payment failed"
// @Router /room/capacity/upgrade [post]
func (h *RoomHandler) UpgradeCapacity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req UpgradeCapacityRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Upgrade capacity"); err != nil {
		return
	}

	state, err := h.roomSvc.UpgradeCapacity(r.Context(), req.Address)
	if err != nil {
		respondServiceError(w, r, "Upgrade capacity", err)
		return
	}

	log.Info("Capacity upgraded", "address", req.Address, "capacity", state.PlantCapacity)
	respondJSON(w, http.StatusOK, state)
}
