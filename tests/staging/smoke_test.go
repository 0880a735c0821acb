//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

type roomStateResponse struct {
	Address   string  `json:"address"`
	THCAmount float64 `json:"thc_amount"`
	Plants    []struct {
		ID    int  `json:"id"`
		Stage int  `json:"stage"`
		Grown bool `json:"is_growing"`
	} `json:"plants"`
	PlantCapacity int `json:"plant_capacity"`
}

func TestConnectAndPlantFlow(t *testing.T) {
	// Connect opens the session and faucets a fresh wallet.
	resp, body := makeRequest(t, "POST", "/api/v1/session/connect", map[string]string{
		"address": testWallet,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Connect: expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var state roomStateResponse
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("Failed to unmarshal room state: %v", err)
	}
	if state.Address != testWallet {
		t.Errorf("Expected address %s, got %s", testWallet, state.Address)
	}
	if state.PlantCapacity < 1 {
		t.Errorf("Expected at least one plant slot, got %d", state.PlantCapacity)
	}

	// Plant a seed if the room has space and funds.
	if len(state.Plants) < state.PlantCapacity && state.THCAmount > 0 {
		resp, body = makeRequest(t, "POST", "/api/v1/room/plant", map[string]string{
			"address": testWallet,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Plant: expected status 200, got %d: %s", resp.StatusCode, body)
		}

		if err := json.Unmarshal(body, &state); err != nil {
			t.Fatalf("Failed to unmarshal room state: %v", err)
		}
		if len(state.Plants) == 0 {
			t.Error("Expected at least one plant after planting")
		}
	}

	// Room state survives a reconnect.
	resp, _ = makeRequest(t, "GET", "/api/v1/room?address="+testWallet, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Get room: expected status 200, got %d", resp.StatusCode)
	}

	resp, _ = makeRequest(t, "POST", "/api/v1/session/disconnect", map[string]string{
		"address": testWallet,
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Disconnect: expected status 200, got %d", resp.StatusCode)
	}
}

func TestWalletBalance(t *testing.T) {
	makeRequest(t, "POST", "/api/v1/session/connect", map[string]string{"address": testWallet})

	resp, body := makeRequest(t, "GET", "/api/v1/wallet/balance?address="+testWallet, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var balance struct {
		Address string  `json:"address"`
		Balance float64 `json:"balance"`
	}
	if err := json.Unmarshal(body, &balance); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if balance.Balance < 0 {
		t.Errorf("Expected non-negative balance, got %f", balance.Balance)
	}
}

func TestLeaderboardEndpoints(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/leaderboard?metric=total_thc&limit=5", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		t.Fatalf("Failed to unmarshal leaderboard: %v", err)
	}
	if len(entries) > 5 {
		t.Errorf("Expected at most 5 entries, got %d", len(entries))
	}

	resp, _ = makeRequest(t, "GET", "/api/v1/leaderboard/aggregate", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Aggregate: expected status 200, got %d", resp.StatusCode)
	}

	resp, _ = makeRequest(t, "GET", "/api/v1/leaderboard?metric=bogus", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Unknown metric: expected status 400, got %d", resp.StatusCode)
	}
}

func TestArcadeScoreFlow(t *testing.T) {
	resp, body := makeRequest(t, "POST", "/api/v1/arcade/score", map[string]interface{}{
		"address": testWallet,
		"score":   int64(1234),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Submit: expected status 200, got %d: %s", resp.StatusCode, body)
	}

	resp, body = makeRequest(t, "GET", "/api/v1/arcade/top?limit=10", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Top: expected status 200, got %d", resp.StatusCode)
	}

	var scores []struct {
		Address string `json:"address"`
		Score   int64  `json:"score"`
	}
	if err := json.Unmarshal(body, &scores); err != nil {
		t.Fatalf("Failed to unmarshal scores: %v", err)
	}

	found := false
	for _, s := range scores {
		if s.Address == testWallet && s.Score >= 1234 {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected submitted score to appear in the arcade top list")
	}
}
