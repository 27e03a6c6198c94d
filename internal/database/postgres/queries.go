package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

// queries implements the shop and character tables against any querier,
// so the pool-backed Store and its transactions share one set of SQL.
type queries struct {
	db querier
}

// ---- Purchases ----

func (q queries) ListPurchases(ctx context.Context) ([]domain.PurchaseRecord, error) {
	rows, err := q.db.Query(ctx, `
		SELECT item_id, purchased_by, purchased_at, week
		FROM purchases
		ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPurchases, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.PurchaseRecord])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPurchases, err)
	}
	return records, nil
}

// CreatePurchase is a conditional insert: the first buyer wins.
func (q queries) CreatePurchase(ctx context.Context, rec domain.PurchaseRecord) error {
	tag, err := q.db.Exec(ctx, `
		INSERT INTO purchases (item_id, purchased_by, purchased_at, week)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id) DO NOTHING`,
		rec.ItemID, rec.PurchasedBy, rec.PurchasedAt, rec.Week)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPurchase, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyPurchased
	}
	return nil
}

func (q queries) DeletePurchase(ctx context.Context, itemID string) error {
	if _, err := q.db.Exec(ctx, `DELETE FROM purchases WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeletePurchase, err)
	}
	return nil
}

// ---- Reservations ----

func (q queries) ListReservations(ctx context.Context) ([]domain.ReservationRecord, error) {
	rows, err := q.db.Query(ctx, `
		SELECT item_id, reserved_by, reserved_at, deposit_paid, full_price
		FROM reservations
		ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryReservations, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ReservationRecord])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryReservations, err)
	}
	return records, nil
}

func (q queries) CreateReservation(ctx context.Context, rec domain.ReservationRecord) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO reservations (item_id, reserved_by, reserved_at, deposit_paid, full_price)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ItemID, rec.ReservedBy, rec.ReservedAt, rec.DepositPaid, rec.FullPrice)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyReserved
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertReservation, err)
	}
	return nil
}

func (q queries) DeleteReservation(ctx context.Context, itemID string) error {
	if _, err := q.db.Exec(ctx, `DELETE FROM reservations WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteReservation, err)
	}
	return nil
}

// ---- Characters ----

func (q queries) ListCharacters(ctx context.Context) ([]domain.Character, error) {
	rows, err := q.db.Query(ctx, `SELECT data FROM characters ORDER BY character_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryCharacters, err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryCharacters, err)
	}

	out := make([]domain.Character, 0, len(docs))
	for _, doc := range docs {
		var c domain.Character
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalCharacter, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (q queries) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	var doc []byte
	err := q.db.QueryRow(ctx, `SELECT data FROM characters WHERE character_id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}

	var c domain.Character
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalCharacter, err)
	}
	return &c, nil
}

// SaveCharacter upserts the whole document; concurrent saves are last-write-wins
func (q queries) SaveCharacter(ctx context.Context, c domain.Character) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalCharacter, err)
	}
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err = q.db.Exec(ctx, `
		INSERT INTO characters (character_id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (character_id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		c.ID, doc, updatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveCharacter, err)
	}
	return nil
}
