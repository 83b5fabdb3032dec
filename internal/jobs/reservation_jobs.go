package jobs

import (
	"context"
	"errors"

	"ecoride-backend/internal/domain"
	"ecoride-backend/internal/logger"
	"ecoride-backend/internal/utils"
)

// CompleteFinishedReservations completes every ACTIVE reservation whose
// rental period has ended and frees its car.
func (jr *JobRunner) CompleteFinishedReservations() {
	jr.runWithRecovery("CompleteFinishedReservations", func() {
		completed, err := jr.completeFinished(context.Background())
		if err != nil {
			logger.Error("Failed to complete finished reservations", "error", err)
			return
		}
		logger.Info("Completed finished reservations", "count", completed)
	})
}

func (jr *JobRunner) completeFinished(ctx context.Context) (int, error) {
	reservations, err := jr.services.Booking.ListReservations(ctx)
	if err != nil {
		return 0, err
	}

	today := utils.DateOf(jr.clock.Now())
	completed := 0
	for _, r := range reservations {
		if r.Status != domain.ReservationStatusActive {
			continue
		}
		if utils.DateOf(r.RentalEndDate()).After(today) {
			continue
		}
		if err := jr.services.Booking.CompleteReservation(ctx, r.ID); err != nil {
			// Another caller may have closed it since the listing.
			if errors.Is(err, domain.ErrReservationNotActive) {
				continue
			}
			logger.Error("Failed to complete reservation", "reservationID", r.ID, "error", err)
			continue
		}
		completed++
	}
	return completed, nil
}
