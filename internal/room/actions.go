package room

import (
	"context"
	"fmt"

	"github.com/thclabs/growroom/internal/domain"
	"github.com/thclabs/growroom/internal/event"
	"github.com/thclabs/growroom/internal/growth"
	"github.com/thclabs/growroom/internal/logger"
	"github.com/thclabs/growroom/internal/metrics"
	"github.com/thclabs/growroom/internal/notify"
)

// withPayment funnels a paid action through the shared payment flow:
// local precondition check first (no payment attempted on failure), then the
// provider transfer, and only on success the state mutation. The session
// mutex is released while the transfer is pending, so a slow provider never
// stalls the growth tick or the autosave sweep; the in-flight guard keeps a
// duplicate request for the same action kind out until the transfer settles,
// and the precondition is re-checked under the lock before the mutation.
func (s *service) withPayment(ctx context.Context, sess *session, action string, check func(*domain.RoomState) (float64, error), apply func(*domain.RoomState)) error {
	log := logger.FromContext(ctx)

	if s.provider == nil {
		return domain.ErrWalletUnavailable
	}
	if !sess.tryBegin(action) {
		metrics.Payments.WithLabelValues(action, metrics.OutcomeRejected).Inc()
		return domain.ErrPaymentPending
	}
	defer sess.end(action)

	sess.mu.Lock()
	from := sess.state.Address
	cost, err := check(sess.state)
	if err == nil && sess.state.THCAmount < cost {
		err = fmt.Errorf("%w: need %.2f THC, have %.2f", domain.ErrInsufficientFunds, cost, sess.state.THCAmount)
	}
	sess.mu.Unlock()
	if err != nil {
		metrics.Payments.WithLabelValues(action, metrics.OutcomeRejected).Inc()
		return err
	}

	// Unlocked: the provider is allowed to take its time here.
	txID, err := s.provider.SendPayment(ctx, from, s.opts.TreasuryAddress, cost)
	if err != nil {
		metrics.Payments.WithLabelValues(action, metrics.OutcomeFailed).Inc()
		log.Warn(LogMsgPaymentFailed, "action", action, "address", from, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// The in-flight guard keeps this action kind out while the transfer is
	// pending, but the session kept running unlocked. If the precondition no
	// longer holds, send the transfer back instead of forcing the mutation.
	if _, err := check(sess.state); err != nil {
		metrics.Payments.WithLabelValues(action, metrics.OutcomeRejected).Inc()
		s.refund(ctx, from, cost)
		return err
	}
	metrics.Payments.WithLabelValues(action, metrics.OutcomeSuccess).Inc()

	sess.state.THCAmount -= cost
	if sess.state.THCAmount < 0 {
		sess.state.THCAmount = 0
	}
	apply(sess.state)
	sess.dirty = true
	s.save(ctx, sess)

	log.Debug("Payment settled", "action", action, "tx_id", txID, "cost", cost)
	return nil
}

// refund returns a settled transfer from the treasury after a post-payment
// precondition failure. Best effort: a failed refund is logged, the action
// error still reaches the caller.
func (s *service) refund(ctx context.Context, address string, amount float64) {
	if _, err := s.provider.SendPayment(ctx, s.opts.TreasuryAddress, address, amount); err != nil {
		logger.FromContext(ctx).Warn(LogMsgRefundFailed, "address", address, "amount", amount, "error", err)
	}
}

// PlantSeed implements Service.
func (s *service) PlantSeed(ctx context.Context, address string) (*domain.RoomState, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPlantSeedCalled, "address", address)

	sess, err := s.session(address)
	if err != nil {
		return nil, err
	}

	var planted domain.Plant
	err = s.withPayment(ctx, sess, ActionPlantSeed,
		func(state *domain.RoomState) (float64, error) {
			if len(state.Plants) >= state.PlantCapacity {
				return 0, fmt.Errorf("%w: %d/%d plants", domain.ErrCapacityFull, len(state.Plants), state.PlantCapacity)
			}
			return domain.SeedCost, nil
		},
		func(state *domain.RoomState) {
			planted = growth.NewPlant(state.NextPlantID, s.clock.Now())
			state.NextPlantID++
			state.Plants = append(state.Plants, planted)
		})
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	state := sess.state.Clone()
	sess.mu.Unlock()

	metrics.SeedsPlanted.Inc()
	if err := s.bus.Publish(ctx, event.NewSeedPlantedEvent(state.Address, planted.ID)); err != nil {
		log.Warn("Failed to publish seed planted event", "error", err)
	}
	log.Info(LogMsgSeedPlanted, "address", address, "plant_id", planted.ID)
	return state, nil
}

// HarvestPlant implements Service. Harvest is a reward, not a cost: no
// payment is attempted, the yield is credited from the treasury.
func (s *service) HarvestPlant(ctx context.Context, address string, plantID int) (*HarvestResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgHarvestCalled, "address", address, "plant_id", plantID)

	sess, err := s.session(address)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()

	idx := sess.state.PlantByID(plantID)
	if idx < 0 {
		sess.mu.Unlock()
		return nil, fmt.Errorf("%w: id %d", domain.ErrPlantNotFound, plantID)
	}
	plant := sess.state.Plants[idx]
	if !plant.Ready() {
		sess.mu.Unlock()
		return nil, fmt.Errorf("%w: plant %d is at stage %s", domain.ErrPlantNotReady, plantID, plant.Stage)
	}

	now := s.clock.Now()
	produced := domain.HarvestYield(plant.Quality)
	record := domain.PlantRecord{
		PlantID:     plant.ID,
		Quality:     plant.Quality,
		GrowTimeMs:  now.Sub(plant.PlantedAt).Milliseconds(),
		THCProduced: produced,
		HarvestedAt: now,
	}

	sess.state.Plants = append(sess.state.Plants[:idx], sess.state.Plants[idx+1:]...)
	sess.state.THCAmount += produced
	sess.dirty = true
	s.save(ctx, sess)

	state := sess.state.Clone()
	sess.mu.Unlock()

	// Mirror the reward on the simulated chain. A failed credit leaves the
	// in-memory balance authoritative, same as any other save failure.
	if crediter, ok := s.provider.(interface {
		Credit(ctx context.Context, address string, amount float64) error
	}); ok {
		if err := crediter.Credit(ctx, state.Address, produced); err != nil {
			log.Warn("Failed to credit harvest reward on chain", "error", err)
		}
	}

	metrics.Harvests.Inc()
	metrics.THCProduced.Add(produced)

	if err := s.bus.Publish(ctx, event.NewHarvestCompletedEvent(state.Address, record, state.Equipment)); err != nil {
		log.Warn("Failed to publish harvest event", "error", err)
	}

	s.notifier.Notify(ctx, notify.HarvestNotification(state.Address, produced, record.Quality))
	log.Info(LogMsgPlantHarvested,
		"address", address, "plant_id", plantID, "quality", record.Quality, "thc", produced)

	return &HarvestResult{State: state, Record: record, THCProduced: produced}, nil
}

// UpgradeEquipment implements Service.
func (s *service) UpgradeEquipment(ctx context.Context, address string, equipmentType domain.EquipmentType) (*domain.RoomState, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUpgradeEquipCalled, "address", address, "equipment_type", equipmentType)

	if !equipmentType.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEquipment, equipmentType)
	}

	sess, err := s.session(address)
	if err != nil {
		return nil, err
	}

	var newLevel int
	var cost float64
	err = s.withPayment(ctx, sess, ActionUpgradeEquipment,
		func(state *domain.RoomState) (float64, error) {
			eq := state.Equipment[equipmentType]
			if eq.NextLevel == nil {
				return 0, fmt.Errorf("%w: %s", domain.ErrMaxLevelReached, equipmentType)
			}
			cost = eq.NextLevel.Cost
			return cost, nil
		},
		func(state *domain.RoomState) {
			eq := state.Equipment[equipmentType]
			next := eq.NextLevel
			eq.Name = next.Name
			eq.Effect = next.Effect
			eq.Level++
			// Two-tier catalog: past the second tier there is nothing left.
			eq.NextLevel = nil
			state.Equipment[equipmentType] = eq
			newLevel = eq.Level
		})
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	state := sess.state.Clone()
	sess.mu.Unlock()

	metrics.EquipmentUpgrades.WithLabelValues(string(equipmentType)).Inc()
	if err := s.bus.Publish(ctx, event.NewEquipmentUpgradedEvent(state.Address, equipmentType, newLevel, cost)); err != nil {
		log.Warn("Failed to publish equipment event", "error", err)
	}
	log.Info(LogMsgEquipmentUpgraded, "address", address, "equipment_type", equipmentType, "level", newLevel)
	return state, nil
}

// UpgradeCapacity implements Service.
func (s *service) UpgradeCapacity(ctx context.Context, address string) (*domain.RoomState, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUpgradeCapCalled, "address", address)

	sess, err := s.session(address)
	if err != nil {
		return nil, err
	}

	var newCapacity int
	var cost float64
	err = s.withPayment(ctx, sess, ActionUpgradeCapacity,
		func(state *domain.RoomState) (float64, error) {
			if state.PlantCapacity >= domain.MaxPlantCapacity {
				return 0, fmt.Errorf("%w: %d plants", domain.ErrCapacityLimit, state.PlantCapacity)
			}
			cost = float64(state.PlantCapacity) * domain.CapacityUpgradeCostFactor
			return cost, nil
		},
		func(state *domain.RoomState) {
			state.PlantCapacity++
			newCapacity = state.PlantCapacity
		})
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	state := sess.state.Clone()
	sess.mu.Unlock()

	metrics.CapacityUpgrades.Inc()
	if err := s.bus.Publish(ctx, event.NewCapacityUpgradedEvent(state.Address, newCapacity, cost)); err != nil {
		log.Warn("Failed to publish capacity event", "error", err)
	}
	log.Info(LogMsgCapacityUpgraded, "address", address, "capacity", newCapacity)
	return state, nil
}
