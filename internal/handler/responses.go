package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/logger"
)

// encodeBuffers recycles the scratch buffers respondJSON encodes into;
// most responses fit the initial capacity.
var encodeBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		encodeBuffers.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgInsufficientFundsError = "Not enough THC for that"
	ErrMsgCapacityFullError      = "Your grow room is full. Upgrade capacity or harvest a plant"
	ErrMsgCapacityLimitError     = "Room capacity is already at its maximum"
	ErrMsgMaxLevelError          = "That equipment is already fully upgraded"
	ErrMsgPlantNotFoundError     = "Plant not found"
	ErrMsgPlantNotReadyError     = "That plant is not ready to harvest yet"
	ErrMsgInvalidEquipmentError  = "Unknown equipment type"
	ErrMsgInvalidAddressError    = "Invalid wallet address"
	ErrMsgPaymentPendingError    = "A payment for that action is already in flight"
	ErrMsgPaymentFailedError     = "Payment failed. No changes were made"
	ErrMsgWalletUnavailableError = "Wallet service is unavailable. Please try again later"
	ErrMsgSessionNotFoundError   = "No active session for that address. Connect first"
)

// mapServiceErrorToUserMessage maps domain errors to user-facing HTTP
// responses. Business rejections (funds, capacity, readiness) are conflicts,
// a duplicate in-flight action is 429, and a provider failure is 502 so the
// client can distinguish "you can't" from "we couldn't".
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict, ErrMsgInsufficientFundsError
	case errors.Is(err, domain.ErrCapacityFull):
		return http.StatusConflict, ErrMsgCapacityFullError
	case errors.Is(err, domain.ErrCapacityLimit):
		return http.StatusConflict, ErrMsgCapacityLimitError
	case errors.Is(err, domain.ErrMaxLevelReached):
		return http.StatusConflict, ErrMsgMaxLevelError
	case errors.Is(err, domain.ErrPlantNotReady):
		return http.StatusConflict, ErrMsgPlantNotReadyError
	case errors.Is(err, domain.ErrPlantNotFound):
		return http.StatusNotFound, ErrMsgPlantNotFoundError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrInvalidEquipment):
		return http.StatusBadRequest, ErrMsgInvalidEquipmentError
	case errors.Is(err, domain.ErrInvalidAddress):
		return http.StatusBadRequest, ErrMsgInvalidAddressError
	case errors.Is(err, domain.ErrPaymentPending):
		return http.StatusTooManyRequests, ErrMsgPaymentPendingError
	case errors.Is(err, domain.ErrPaymentFailed):
		return http.StatusBadGateway, ErrMsgPaymentFailedError
	case errors.Is(err, domain.ErrWalletUnavailable):
		return http.StatusServiceUnavailable, ErrMsgWalletUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped error
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, statusCode, userMsg)
}
