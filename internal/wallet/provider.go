// Package wallet defines the payment collaborator contract and a simulated
// in-memory provider. Real chain integration stays behind the Provider
// interface; the game only needs connect, balance, and pay.
package wallet

import (
	"context"
	"regexp"

	"github.com/thclabs/growroom/internal/domain"
)

// Provider is the external payment collaborator. SendPayment is asynchronous
// from the game's point of view: it may take time, fail, or be rejected, and
// no state may change unless it reports success.
type Provider interface {
	// Connect establishes a session for an address (registering it with the
	// provider if needed) and returns the canonical address.
	Connect(ctx context.Context, address string) (string, error)
	// Balance returns the THC balance of an address.
	Balance(ctx context.Context, address string) (float64, error)
	// SendPayment moves amount from one address to another and returns a
	// transaction ID on success.
	SendPayment(ctx context.Context, from, to string, amount float64) (string, error)
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidAddress reports whether s looks like a wallet address (0x + 40 hex).
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// RequireValidAddress returns domain.ErrInvalidAddress for malformed addresses.
func RequireValidAddress(s string) error {
	if !ValidAddress(s) {
		return domain.ErrInvalidAddress
	}
	return nil
}
