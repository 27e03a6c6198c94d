package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgItemNotFound = "item not found"

	// Character errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgItemNotInBackpack = "item not in backpack"
	ErrMsgAttunementFull    = "attunement slots full"
	ErrMsgNotAttuned        = "item is not attuned"

	// Shop errors
	ErrMsgAlreadyPurchased    = "item already purchased"
	ErrMsgItemReserved        = "item is reserved by another character"
	ErrMsgAlreadyReserved     = "item already reserved"
	ErrMsgReservationNotFound = "reservation not found"
	ErrMsgNotReserver         = "reservation belongs to another character"
	ErrMsgNoTrade             = "the local clan refuses to trade"
	ErrMsgNotReservable       = "only rare and legendary items can be reserved"

	// Store errors
	ErrMsgStoreUnavailable = "persistence unavailable"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrItemNotInBackpack = errors.New(ErrMsgItemNotInBackpack)
	ErrAttunementFull    = errors.New(ErrMsgAttunementFull)
	ErrNotAttuned        = errors.New(ErrMsgNotAttuned)

	ErrAlreadyPurchased    = errors.New(ErrMsgAlreadyPurchased)
	ErrItemReserved        = errors.New(ErrMsgItemReserved)
	ErrAlreadyReserved     = errors.New(ErrMsgAlreadyReserved)
	ErrReservationNotFound = errors.New(ErrMsgReservationNotFound)
	ErrNotReserver         = errors.New(ErrMsgNotReserver)
	ErrNoTrade             = errors.New(ErrMsgNoTrade)
	ErrNotReservable       = errors.New(ErrMsgNotReservable)

	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// LocalOnlyNotice is attached to every mutating result while the store is unavailable
const LocalOnlyNotice = "persistence unavailable: changes are local to this session"
