package handler

import (
	"net/http"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/wallet"
)

// BalanceResponse represents a wallet balance
type BalanceResponse struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

// WalletHandler handles wallet HTTP requests
type WalletHandler struct {
	provider wallet.Provider
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(provider wallet.Provider) *WalletHandler {
	return &WalletHandler{provider: provider}
}

// Balance handles the wallet balance endpoint
// @Summary Get the THC balance of a wallet
// @Tags wallet
// @Produce json
// @Param address query string true "Wallet address"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Router /wallet/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	address, ok := GetQueryParam(r, w, "address")
	if !ok {
		return
	}
	if err := wallet.RequireValidAddress(address); err != nil {
		respondServiceError(w, r, "Get balance", err)
		return
	}
	if h.provider == nil {
		respondServiceError(w, r, "Get balance", domain.ErrWalletUnavailable)
		return
	}

	balance, err := h.provider.Balance(r.Context(), address)
	if err != nil {
		respondServiceError(w, r, "Get balance", err)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{Address: address, Balance: balance})
}
