package repository

import (
	"context"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

// Shop persists the unique-stock ledger and item holds
type Shop interface {
	ListPurchases(ctx context.Context) ([]domain.PurchaseRecord, error)
	// CreatePurchase inserts rec unless the item already has a record,
	// in which case it returns domain.ErrAlreadyPurchased.
	CreatePurchase(ctx context.Context, rec domain.PurchaseRecord) error
	DeletePurchase(ctx context.Context, itemID string) error

	ListReservations(ctx context.Context) ([]domain.ReservationRecord, error)
	// CreateReservation returns domain.ErrAlreadyReserved when the item is held.
	CreateReservation(ctx context.Context, rec domain.ReservationRecord) error
	// DeleteReservation is a no-op for items that are not reserved.
	DeleteReservation(ctx context.Context, itemID string) error
}

// World persists the admin-controlled campaign context
type World interface {
	GetHonor(ctx context.Context) (map[string]int, error)
	SetHonor(ctx context.Context, clan string, score int) error
	GetQuest(ctx context.Context) (*domain.ActiveQuest, error)
	// SetQuest replaces the active quest; nil clears it.
	SetQuest(ctx context.Context, quest *domain.ActiveQuest) error
	GetLocation(ctx context.Context) (*domain.PartyLocation, error)
	SetLocation(ctx context.Context, loc *domain.PartyLocation) error
}

// Character persists character documents. Saves are last-write-wins.
type Character interface {
	ListCharacters(ctx context.Context) ([]domain.Character, error)
	GetCharacter(ctx context.Context, id string) (*domain.Character, error)
	SaveCharacter(ctx context.Context, c domain.Character) error
}

// Notifier delivers a notice whenever another writer changes a shared table.
// The channel closes when ctx is done.
type Notifier interface {
	Subscribe(ctx context.Context) (<-chan domain.ChangeNotice, error)
}

// Store is the full persistence collaborator
type Store interface {
	Shop
	World
	Character
	Notifier
	BeginTx(ctx context.Context) (Tx, error)
	Ping(ctx context.Context) error
	Close()
}
