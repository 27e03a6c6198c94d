package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		reservedAt time.Time
		want       bool
	}{
		{"fifteen days old", now.Add(-15 * 24 * time.Hour), true},
		{"one day old", now.Add(-24 * time.Hour), false},
		{"exactly fourteen days", now.Add(-Duration), false},
		{"just past fourteen days", now.Add(-Duration - time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.ReservationRecord{ItemID: "x", ReservedAt: tt.reservedAt}
			assert.Equal(t, tt.want, IsExpired(r, now))
		})
	}
}

func TestStatusOf(t *testing.T) {
	now := time.Now()
	assert.Equal(t, StatusUnreserved, StatusOf(nil, now))
	assert.Equal(t, StatusReserved, StatusOf(&domain.ReservationRecord{ReservedAt: now}, now))
	assert.Equal(t, StatusExpired, StatusOf(&domain.ReservationRecord{ReservedAt: now.Add(-20 * 24 * time.Hour)}, now))
}

func TestPartition(t *testing.T) {
	now := time.Now()
	records := []domain.ReservationRecord{
		{ItemID: "a", ReservedAt: now.Add(-30 * 24 * time.Hour)},
		{ItemID: "b", ReservedAt: now.Add(-time.Hour)},
		{ItemID: "c", ReservedAt: now.Add(-15 * 24 * time.Hour)},
	}

	live, expired := Partition(records, now)

	assert.Len(t, live, 1)
	assert.Equal(t, "b", live[0].ItemID)
	assert.Len(t, expired, 2)
	assert.Equal(t, "a", expired[0].ItemID)
	assert.Equal(t, "c", expired[1].ItemID)
}

func TestDeposit(t *testing.T) {
	assert.Equal(t, 50, Deposit(500, 0.1))
	assert.Equal(t, 1, Deposit(3, 0.1), "rounds up to a whole coin")
	assert.Equal(t, 0, Deposit(500, 0))
	assert.Equal(t, 500, Deposit(500, 2))
	assert.Equal(t, 0, Deposit(0, 0.1))
}

func TestNew(t *testing.T) {
	now := time.Now()
	r := New("flame-tongue", "char-1", 4000, DefaultDepositRate, now)

	assert.Equal(t, "flame-tongue", r.ItemID)
	assert.Equal(t, "char-1", r.ReservedBy)
	assert.Equal(t, 400, r.DepositPaid)
	assert.Equal(t, 3600, r.Balance())
	assert.Equal(t, now.Add(Duration), ExpiresAt(r))
}
