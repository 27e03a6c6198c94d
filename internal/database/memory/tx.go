package memory

import (
	"context"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/repository"
)

// tx holds the store's write lock from BeginTx until Commit or Rollback.
// Rollback restores the snapshot taken at begin.
type tx struct {
	s        *Store
	snapshot data
	changed  []domain.ChangeSource
	done     bool
}

// BeginTx starts a transaction. Do not call Store methods from the
// same goroutine until it finishes.
func (s *Store) BeginTx(context.Context) (repository.Tx, error) {
	s.mu.Lock()
	return &tx{s: s, snapshot: s.data.clone()}, nil
}

func (t *tx) Commit(context.Context) error {
	if t.done {
		return repository.ErrTxClosed
	}
	t.done = true
	t.s.mu.Unlock()
	t.s.notify(t.changed...)
	return nil
}

func (t *tx) Rollback(context.Context) error {
	if t.done {
		return repository.ErrTxClosed
	}
	t.done = true
	t.s.data = t.snapshot
	t.s.mu.Unlock()
	return nil
}

func (t *tx) touch(src domain.ChangeSource) {
	t.changed = append(t.changed, src)
}

func (t *tx) ListPurchases(context.Context) ([]domain.PurchaseRecord, error) {
	return listPurchases(&t.s.data), nil
}

func (t *tx) CreatePurchase(_ context.Context, rec domain.PurchaseRecord) error {
	if err := createPurchase(&t.s.data, rec); err != nil {
		return err
	}
	t.touch(domain.ChangePurchases)
	return nil
}

func (t *tx) DeletePurchase(_ context.Context, itemID string) error {
	if _, ok := t.s.data.purchases[itemID]; ok {
		delete(t.s.data.purchases, itemID)
		t.touch(domain.ChangePurchases)
	}
	return nil
}

func (t *tx) ListReservations(context.Context) ([]domain.ReservationRecord, error) {
	return listReservations(&t.s.data), nil
}

func (t *tx) CreateReservation(_ context.Context, rec domain.ReservationRecord) error {
	if err := createReservation(&t.s.data, rec); err != nil {
		return err
	}
	t.touch(domain.ChangeReservations)
	return nil
}

func (t *tx) DeleteReservation(_ context.Context, itemID string) error {
	if deleteReservation(&t.s.data, itemID) {
		t.touch(domain.ChangeReservations)
	}
	return nil
}

func (t *tx) ListCharacters(context.Context) ([]domain.Character, error) {
	return listCharacters(&t.s.data), nil
}

func (t *tx) GetCharacter(_ context.Context, id string) (*domain.Character, error) {
	return getCharacter(&t.s.data, id)
}

func (t *tx) SaveCharacter(_ context.Context, c domain.Character) error {
	t.s.data.characters[c.ID] = c.Clone()
	t.touch(domain.ChangeCharacters)
	return nil
}
