// Package room implements the grow-room game service: session lifecycle,
// the user actions (plant, harvest, upgrade), and the growth tick that
// advances every connected room.
package room

import (
	"context"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/equipment"
	"github.com/thclabs/growroom/internal/event"
	"github.com/thclabs/growroom/internal/growth"
	"github.com/thclabs/growroom/internal/logger"
	"github.com/thclabs/growroom/internal/metrics"
	"github.com/thclabs/growroom/internal/notify"
	"github.com/thclabs/growroom/internal/repository"
	"github.com/thclabs/growroom/internal/scheduler"
	"github.com/thclabs/growroom/internal/wallet"
)

// HarvestResult is what a successful harvest returns to the caller
type HarvestResult struct {
	State       *domain.RoomState  `json:"state"`
	Record      domain.PlantRecord `json:"record"`
	THCProduced float64            `json:"thc_produced"`
}

// Service defines the grow-room business logic
type Service interface {
	// Connect loads (or creates) the room for an address and starts a session.
	Connect(ctx context.Context, address string) (*domain.RoomState, error)
	// Disconnect saves and drops the in-memory session. The stored state remains.
	Disconnect(ctx context.Context, address string) error
	// Room returns a copy of the current room state.
	Room(ctx context.Context, address string) (*domain.RoomState, error)
	// Multipliers returns the room's current aggregate equipment multipliers.
	Multipliers(ctx context.Context, address string) (equipment.Multipliers, error)

	PlantSeed(ctx context.Context, address string) (*domain.RoomState, error)
	HarvestPlant(ctx context.Context, address string, plantID int) (*HarvestResult, error)
	UpgradeEquipment(ctx context.Context, address string, equipmentType domain.EquipmentType) (*domain.RoomState, error)
	UpgradeCapacity(ctx context.Context, address string) (*domain.RoomState, error)

	// Tick advances growth for every connected session; driven by the growth worker.
	Tick(ctx context.Context, now time.Time)
	// FlushDirty persists sessions with unsaved changes; driven by the autosave worker.
	FlushDirty(ctx context.Context)
}

// Options tunes service behavior
type Options struct {
	// TreasuryAddress receives action payments and pays out harvests.
	TreasuryAddress string
	// MaxOfflineCredit caps how much wall-clock absence is credited as
	// growth when a session reconnects.
	MaxOfflineCredit time.Duration
	// SessionCacheSize bounds the in-memory session cache.
	SessionCacheSize int
}

type service struct {
	repo     repository.Room
	provider wallet.Provider
	bus      event.Bus
	notifier notify.Notifier
	clock    scheduler.Clock
	opts     Options

	sessions *lru.Cache[string, *session]
}

// NewService creates a new grow-room service
func NewService(repo repository.Room, provider wallet.Provider, bus event.Bus, notifier notify.Notifier, clock scheduler.Clock, opts Options) (Service, error) {
	if opts.SessionCacheSize <= 0 {
		opts.SessionCacheSize = DefaultSessionCacheSize
	}
	s := &service{
		repo:     repo,
		provider: provider,
		bus:      bus,
		notifier: notifier,
		clock:    clock,
		opts:     opts,
	}

	// Evicted sessions are flushed so a busy instance never loses progress;
	// the next action on that address transparently reloads it.
	cache, err := lru.NewWithEvict(opts.SessionCacheSize, s.onEvict)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	s.sessions = cache
	return s, nil
}

func (s *service) onEvict(address string, sess *session) {
	ctx := context.Background()
	sess.mu.Lock()
	state := sess.state.Clone()
	sess.dirty = false
	sess.mu.Unlock()

	log := logger.FromContext(ctx)
	if err := s.repo.Save(ctx, state); err != nil {
		log.Error(LogMsgSaveFailed, "address", address, "error", err)
	}
	log.Debug(LogMsgSessionEvicted, "address", address)
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))
}

// Connect implements Service.
func (s *service) Connect(ctx context.Context, address string) (*domain.RoomState, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgConnectCalled, "address", address)

	if s.provider == nil {
		return nil, domain.ErrWalletUnavailable
	}

	addr, err := s.provider.Connect(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("wallet connect failed: %w", err)
	}

	if sess, ok := s.sessions.Get(addr); ok {
		sess.mu.Lock()
		state := sess.state.Clone()
		sess.mu.Unlock()
		return state, nil
	}

	state, err := s.repo.Load(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to load room: %w", err)
	}

	now := s.clock.Now()
	s.reconcileOffline(ctx, state, now)

	// The local THC amount mirrors the provider's balance.
	balance, err := s.provider.Balance(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet balance: %w", err)
	}
	state.THCAmount = balance
	log.Debug(LogMsgBalanceRefreshed, "address", addr, "balance", balance)

	sess := newSession(state, now)
	s.sessions.Add(addr, sess)
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))

	if err := s.bus.Publish(ctx, event.NewSessionEvent(event.SessionConnected, addr)); err != nil {
		log.Warn("Failed to publish session event", "error", err)
	}

	if err := s.repo.Save(ctx, state); err != nil {
		log.Error(LogMsgSaveFailed, "address", addr, "error", err)
	}
	return state.Clone(), nil
}

// reconcileOffline credits growth for the wall-clock time the room was
// unloaded, capped so a month-old save does not finish every plant instantly.
func (s *service) reconcileOffline(ctx context.Context, state *domain.RoomState, now time.Time) {
	if state.LastSaved.IsZero() {
		return
	}
	elapsed := now.Sub(state.LastSaved)
	if elapsed <= 0 {
		return
	}
	if s.opts.MaxOfflineCredit > 0 && elapsed > s.opts.MaxOfflineCredit {
		elapsed = s.opts.MaxOfflineCredit
	}

	mult := equipment.Calculate(state.Equipment)
	advanced := 0
	for i := range state.Plants {
		if !state.Plants[i].IsGrowing {
			continue
		}
		state.Plants[i] = growth.Advance(state.Plants[i], mult.Speed, mult.Quality, elapsed)
		advanced++
	}
	if advanced > 0 {
		logger.FromContext(ctx).Info(LogMsgOfflineCredit,
			"address", state.Address, "elapsed", elapsed, "plants", advanced)
	}
}

// Disconnect implements Service.
func (s *service) Disconnect(ctx context.Context, address string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDisconnectCalled, "address", address)

	addr := strings.ToLower(address)
	sess, ok := s.sessions.Get(addr)
	if !ok {
		return domain.ErrSessionNotFound
	}

	sess.mu.Lock()
	state := sess.state.Clone()
	sess.dirty = false
	sess.mu.Unlock()

	if err := s.repo.Save(ctx, state); err != nil {
		log.Error(LogMsgSaveFailed, "address", addr, "error", err)
	}

	s.sessions.Remove(addr)
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))

	if err := s.bus.Publish(ctx, event.NewSessionEvent(event.SessionClosed, addr)); err != nil {
		log.Warn("Failed to publish session event", "error", err)
	}
	return nil
}

// Room implements Service.
func (s *service) Room(ctx context.Context, address string) (*domain.RoomState, error) {
	sess, err := s.session(address)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state.Clone(), nil
}

// Multipliers implements Service.
func (s *service) Multipliers(ctx context.Context, address string) (equipment.Multipliers, error) {
	sess, err := s.session(address)
	if err != nil {
		return equipment.Multipliers{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return equipment.Calculate(sess.state.Equipment), nil
}

// session returns the live session for an address.
func (s *service) session(address string) (*session, error) {
	sess, ok := s.sessions.Get(strings.ToLower(address))
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// save persists a session's state. Save failures are logged and swallowed:
// the in-memory state stays authoritative for the rest of the session.
func (s *service) save(ctx context.Context, sess *session) {
	state := sess.state.Clone()
	sess.dirty = false
	if err := s.repo.Save(ctx, state); err != nil {
		logger.FromContext(ctx).Error(LogMsgSaveFailed, "address", state.Address, "error", err)
	}
}
