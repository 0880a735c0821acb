package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/equipment"
	"github.com/thclabs/growroom/internal/room"
)

const testAddr = "0x1234567890abcdef1234567890abcdef12345678"

// stubRoomService implements room.Service with canned responses.
type stubRoomService struct {
	state *domain.RoomState
	err   error
}

func (s *stubRoomService) Connect(ctx context.Context, address string) (*domain.RoomState, error) {
	return s.state, s.err
}

func (s *stubRoomService) Disconnect(ctx context.Context, address string) error {
	return s.err
}

func (s *stubRoomService) Room(ctx context.Context, address string) (*domain.RoomState, error) {
	return s.state, s.err
}

func (s *stubRoomService) Multipliers(ctx context.Context, address string) (equipment.Multipliers, error) {
	return equipment.Multipliers{Speed: 1, Quality: 1}, s.err
}

func (s *stubRoomService) PlantSeed(ctx context.Context, address string) (*domain.RoomState, error) {
	return s.state, s.err
}

func (s *stubRoomService) HarvestPlant(ctx context.Context, address string, plantID int) (*room.HarvestResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &room.HarvestResult{State: s.state, THCProduced: 2.3}, nil
}

func (s *stubRoomService) UpgradeEquipment(ctx context.Context, address string, equipmentType domain.EquipmentType) (*domain.RoomState, error) {
	return s.state, s.err
}

func (s *stubRoomService) UpgradeCapacity(ctx context.Context, address string) (*domain.RoomState, error) {
	return s.state, s.err
}

func (s *stubRoomService) Tick(ctx context.Context, now time.Time) {}

func (s *stubRoomService) FlushDirty(ctx context.Context) {}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func okState() *domain.RoomState {
	return &domain.RoomState{
		Address:       testAddr,
		THCAmount:     9.9,
		Plants:        []domain.Plant{{ID: 1, Stage: domain.StageSeed, IsGrowing: true}},
		PlantCapacity: 1,
	}
}

func TestPlantSeedHandler_Success(t *testing.T) {
	h := NewRoomHandler(&stubRoomService{state: okState()})

	w := postJSON(t, h.PlantSeed, PlantSeedRequest{Address: testAddr})

	require.Equal(t, http.StatusOK, w.Code)
	var state domain.RoomState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, testAddr, state.Address)
	assert.Len(t, state.Plants, 1)
}

func TestPlantSeedHandler_ValidationError(t *testing.T) {
	h := NewRoomHandler(&stubRoomService{state: okState()})

	w := postJSON(t, h.PlantSeed, PlantSeedRequest{Address: "garbage"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "address")
}

func TestHandlers_ServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "insufficient funds", err: domain.ErrInsufficientFunds, expectedStatus: http.StatusConflict},
		{name: "capacity full", err: domain.ErrCapacityFull, expectedStatus: http.StatusConflict},
		{name: "capacity limit", err: domain.ErrCapacityLimit, expectedStatus: http.StatusConflict},
		{name: "max level", err: domain.ErrMaxLevelReached, expectedStatus: http.StatusConflict},
		{name: "plant not ready", err: domain.ErrPlantNotReady, expectedStatus: http.StatusConflict},
		{name: "plant not found", err: domain.ErrPlantNotFound, expectedStatus: http.StatusNotFound},
		{name: "session not found", err: domain.ErrSessionNotFound, expectedStatus: http.StatusNotFound},
		{name: "payment pending", err: domain.ErrPaymentPending, expectedStatus: http.StatusTooManyRequests},
		{name: "payment failed", err: domain.ErrPaymentFailed, expectedStatus: http.StatusBadGateway},
		{name: "wallet unavailable", err: domain.ErrWalletUnavailable, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRoomHandler(&stubRoomService{err: tt.err})

			w := postJSON(t, h.PlantSeed, PlantSeedRequest{Address: testAddr})

			assert.Equal(t, tt.expectedStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHarvestHandler_Success(t *testing.T) {
	h := NewRoomHandler(&stubRoomService{state: okState()})

	w := postJSON(t, h.Harvest, HarvestPlantRequest{Address: testAddr, PlantID: 1})

	require.Equal(t, http.StatusOK, w.Code)
	var result room.HarvestResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2.3, result.THCProduced)
}

func TestUpgradeEquipmentHandler_RejectsUnknownSlot(t *testing.T) {
	h := NewRoomHandler(&stubRoomService{state: okState()})

	w := postJSON(t, h.UpgradeEquipment, UpgradeEquipmentRequest{Address: testAddr, EquipmentType: "laser"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRoomHandler(t *testing.T) {
	h := NewRoomHandler(&stubRoomService{state: okState()})

	req := httptest.NewRequest(http.MethodGet, "/?address="+testAddr, nil)
	w := httptest.NewRecorder()
	h.GetRoom(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetRoomHandler_MissingAddress(t *testing.T) {
	h := NewRoomHandler(&stubRoomService{state: okState()})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.GetRoom(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MalformedBody(t *testing.T) {
	h := NewRoomHandler(&stubRoomService{state: okState()})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{broken")))
	w := httptest.NewRecorder()
	h.PlantSeed(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
