package wallet

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/logger"
)

// Simulated is an in-memory Provider. New addresses are seeded from a faucet
// on first connect so a fresh player can afford their first seed. Tests can
// dial in latency and a failure rate to exercise the payment error paths.
type Simulated struct {
	mu       sync.Mutex
	balances map[string]float64

	faucetAmount float64
	latency      time.Duration
	failureRate  float64
	rng          *rand.Rand
}

// SimulatedOption configures a Simulated provider.
type SimulatedOption func(*Simulated)

// WithLatency makes every SendPayment take d before resolving.
func WithLatency(d time.Duration) SimulatedOption {
	return func(s *Simulated) { s.latency = d }
}

// WithFailureRate makes the given fraction of payments fail, for tests.
func WithFailureRate(rate float64) SimulatedOption {
	return func(s *Simulated) { s.failureRate = rate }
}

// NewSimulated creates a simulated provider with the given faucet amount.
func NewSimulated(faucetAmount float64, opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		balances:     make(map[string]float64),
		faucetAmount: faucetAmount,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect implements Provider. First connect of an address seeds it from the
// faucet.
func (s *Simulated) Connect(ctx context.Context, address string) (string, error) {
	if err := RequireValidAddress(address); err != nil {
		return "", err
	}
	addr := strings.ToLower(address)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.balances[addr]; !ok {
		s.balances[addr] = s.faucetAmount
		logger.FromContext(ctx).Info("Faucet seeded new wallet", "address", addr, "amount", s.faucetAmount)
	}
	return addr, nil
}

// Balance implements Provider.
func (s *Simulated) Balance(ctx context.Context, address string) (float64, error) {
	if err := RequireValidAddress(address); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[strings.ToLower(address)], nil
}

// SendPayment implements Provider.
func (s *Simulated) SendPayment(ctx context.Context, from, to string, amount float64) (string, error) {
	if err := RequireValidAddress(from); err != nil {
		return "", err
	}
	if err := RequireValidAddress(to); err != nil {
		return "", err
	}
	if amount <= 0 {
		return "", fmt.Errorf("%w: payment amount must be positive", domain.ErrPaymentFailed)
	}

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", domain.ErrPaymentFailed, ctx.Err())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failureRate > 0 && s.rng.Float64() < s.failureRate {
		return "", fmt.Errorf("%w: simulated network failure", domain.ErrPaymentFailed)
	}

	fromAddr, toAddr := strings.ToLower(from), strings.ToLower(to)
	if s.balances[fromAddr] < amount {
		return "", fmt.Errorf("%w: on-chain balance too low", domain.ErrPaymentFailed)
	}

	s.balances[fromAddr] -= amount
	s.balances[toAddr] += amount

	txID := uuid.NewString()
	logger.FromContext(ctx).Debug("Simulated payment settled",
		"tx_id", txID, "from", fromAddr, "to", toAddr, "amount", amount)
	return txID, nil
}

// Credit adds funds to an address outside the payment flow (harvest rewards).
func (s *Simulated) Credit(ctx context.Context, address string, amount float64) error {
	if err := RequireValidAddress(address); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("%w: credit amount must be non-negative", domain.ErrPaymentFailed)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[strings.ToLower(address)] += amount
	return nil
}
