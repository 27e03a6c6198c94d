package worker

import (
	"context"

	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
)

// ReservationExpirer releases lapsed item holds
type ReservationExpirer interface {
	ExpireReservations(ctx context.Context) (int, error)
}

// ReservationExpiryJob is the periodic poll that deletes reservations past their hold
type ReservationExpiryJob struct {
	shop ReservationExpirer
}

// NewReservationExpiryJob creates the expiry poll job
func NewReservationExpiryJob(shop ReservationExpirer) *ReservationExpiryJob {
	return &ReservationExpiryJob{shop: shop}
}

func (j *ReservationExpiryJob) Name() string { return "reservation-expiry" }

// Process runs one expiry pass
func (j *ReservationExpiryJob) Process(ctx context.Context) error {
	n, err := j.shop.ExpireReservations(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgReservationsExpired, "count", n)
	}
	return nil
}
