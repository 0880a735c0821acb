package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Validation errors (local checks, no payment attempted)
	ErrMsgInsufficientFunds = "insufficient THC balance"
	ErrMsgCapacityFull      = "grow room is at capacity"
	ErrMsgCapacityLimit     = "plant capacity is at its maximum"
	ErrMsgMaxLevelReached   = "equipment is already at max level"
	ErrMsgPlantNotFound     = "plant not found"
	ErrMsgPlantNotReady     = "plant is not ready to harvest"
	ErrMsgInvalidEquipment  = "unknown equipment type"
	ErrMsgInvalidAddress    = "invalid wallet address"

	// Payment errors (payment attempted, collaborator reported failure)
	ErrMsgPaymentFailed     = "transaction failed"
	ErrMsgPaymentPending    = "a payment is already pending for this action"
	ErrMsgWalletUnavailable = "no wallet provider available"

	// Session errors
	ErrMsgSessionNotFound = "no grow room session for address"

	// Persistence errors
	ErrMsgKeyNotFound = "key not found"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: details") for additional context and check
// with errors.Is at the handler boundary.
var (
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrCapacityFull      = errors.New(ErrMsgCapacityFull)
	ErrCapacityLimit     = errors.New(ErrMsgCapacityLimit)
	ErrMaxLevelReached   = errors.New(ErrMsgMaxLevelReached)
	ErrPlantNotFound     = errors.New(ErrMsgPlantNotFound)
	ErrPlantNotReady     = errors.New(ErrMsgPlantNotReady)
	ErrInvalidEquipment  = errors.New(ErrMsgInvalidEquipment)
	ErrInvalidAddress    = errors.New(ErrMsgInvalidAddress)

	ErrPaymentFailed     = errors.New(ErrMsgPaymentFailed)
	ErrPaymentPending    = errors.New(ErrMsgPaymentPending)
	ErrWalletUnavailable = errors.New(ErrMsgWalletUnavailable)

	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)

	ErrKeyNotFound = errors.New(ErrMsgKeyNotFound)
)
