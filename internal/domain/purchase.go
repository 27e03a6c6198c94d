package domain

import "time"

// PurchaseRecord marks a rare or legendary item as sold.
// The item stays out of every weekly selection until an admin restores it.
type PurchaseRecord struct {
	ItemID      string    `json:"itemId" db:"item_id"`
	PurchasedBy string    `json:"purchasedBy" db:"purchased_by"`
	PurchasedAt time.Time `json:"purchasedAt" db:"purchased_at"`
	Week        int       `json:"week" db:"week"`
}

// ReservationRecord holds an item for one character against a deposit
type ReservationRecord struct {
	ItemID      string    `json:"itemId" db:"item_id"`
	ReservedBy  string    `json:"reservedBy" db:"reserved_by"`
	ReservedAt  time.Time `json:"reservedAt" db:"reserved_at"`
	DepositPaid int       `json:"depositPaid" db:"deposit_paid"`
	FullPrice   int       `json:"fullPrice" db:"full_price"`
}

// Balance is what the reserver still owes when completing the purchase
func (r ReservationRecord) Balance() int {
	if r.DepositPaid >= r.FullPrice {
		return 0
	}
	return r.FullPrice - r.DepositPaid
}
