// Package reservation decides when item holds lapse and what deposit they require.
package reservation

import (
	"math"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

// Duration is how long a reservation holds an item
const Duration = 14 * 24 * time.Hour

// DefaultDepositRate is the share of the full price paid up front
const DefaultDepositRate = 0.1

// Status is the lifecycle position of an item's reservation
type Status string

const (
	StatusUnreserved Status = "unreserved"
	StatusReserved   Status = "reserved"
	StatusExpired    Status = "expired"
)

// IsExpired reports whether r has outlived Duration at now
func IsExpired(r domain.ReservationRecord, now time.Time) bool {
	return now.Sub(r.ReservedAt) > Duration
}

// ExpiresAt is the instant r stops holding its item
func ExpiresAt(r domain.ReservationRecord) time.Time {
	return r.ReservedAt.Add(Duration)
}

// StatusOf evaluates the reservation for one item. A nil record means unreserved.
func StatusOf(r *domain.ReservationRecord, now time.Time) Status {
	switch {
	case r == nil:
		return StatusUnreserved
	case IsExpired(*r, now):
		return StatusExpired
	default:
		return StatusReserved
	}
}

// Partition splits records into those still live and those that have expired.
// Order within each group follows the input.
func Partition(records []domain.ReservationRecord, now time.Time) (live, expired []domain.ReservationRecord) {
	for _, r := range records {
		if IsExpired(r, now) {
			expired = append(expired, r)
		} else {
			live = append(live, r)
		}
	}
	return live, expired
}

// Deposit returns the up-front payment for a reservation at fullPrice, in whole gold
func Deposit(fullPrice int, rate float64) int {
	if rate <= 0 || fullPrice <= 0 {
		return 0
	}
	if rate >= 1 {
		return fullPrice
	}
	return int(math.Ceil(float64(fullPrice) * rate))
}

// New builds a reservation record for characterID
func New(itemID, characterID string, fullPrice int, rate float64, now time.Time) domain.ReservationRecord {
	return domain.ReservationRecord{
		ItemID:      itemID,
		ReservedBy:  characterID,
		ReservedAt:  now,
		DepositPaid: Deposit(fullPrice, rate),
		FullPrice:   fullPrice,
	}
}
