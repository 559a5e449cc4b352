package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/fleet-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Confirm moves a booking to confirmed and stamps ConfirmedAt. The driver
// assignment is optional: a booking may be confirmed before a driver is
// found, leaving DriverID nil.
func Confirm(b *models.Booking, driverID *uint, now time.Time) {
	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now

	if driverID != nil {
		b.DriverID = driverID
	}
	if b.CustomerVerifyToken == "" {
		b.CustomerVerifyToken = uuid.NewString()
	}
}

// Decline cancels a booking. The core never hard-deletes: a declined
// booking stays on record with status cancelled.
func Decline(b *models.Booking, now time.Time) {
	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
}

func Complete(b *models.Booking, now time.Time) {
	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
}

func MarkNoShow(b *models.Booking) {
	b.Status = string(StatusNoShow)
}

// Reschedule moves the booking window, snapshotting the original window on
// the first move and counting every move since.
func Reschedule(b *models.Booking, start, end time.Time) {
	if b.OriginalStartTime == nil {
		origStart := b.StartTime
		origEnd := b.EndTime
		b.OriginalStartTime = &origStart
		b.OriginalEndTime = &origEnd
	}
	b.StartTime = start
	b.EndTime = end
	b.MoveCount++
}
