package booking

import (
	"context"
	"time"

	"github.com/fleetops/fleet-scheduler/internal/audit"
	"github.com/fleetops/fleet-scheduler/internal/dispatch"
	domain "github.com/fleetops/fleet-scheduler/internal/domain/booking"
	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type ConfirmBooking struct {
	repo   domain.Repository
	audit  AuditSink
	events EventSink
}

func NewConfirmBooking(
	repo domain.Repository,
	audit AuditSink,
	events EventSink,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:   repo,
		audit:  audit,
		events: events,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute confirms the booking, optionally assigning a driver first. A
// driver is not required: dispatch may confirm before a driver is found,
// leaving the booking confirmed with a nil driver.
func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	id uint,
	actorRole string,
	driverID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	var driverEmail string
	if driverID != nil {
		driver, err := uc.repo.GetActiveDriver(ctx, *driverID)
		if err != nil {
			return nil, httperr.ErrBusiness("driver_not_found")
		}
		driverEmail = driver.Email
	} else if b.DriverID != nil {
		if driver, err := uc.repo.GetActiveDriver(ctx, *b.DriverID); err == nil {
			driverEmail = driver.Email
		}
	}

	now := time.Now().UTC()
	domain.Confirm(b, driverID, now)

	fields := map[string]any{
		"status":                b.Status,
		"confirmed_at":          b.ConfirmedAt,
		"customer_verify_token": b.CustomerVerifyToken,
	}
	if driverID != nil {
		fields["driver_id"] = *driverID
	}

	if err := uc.repo.UpdateBookingFields(ctx, id, fields); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BookingID: id,
		ActorRole: actorRole,
		Action:    "confirm",
	})

	uc.events.Dispatch(dispatch.Event{
		Type:        dispatch.EventConfirmed,
		Booking:     *b,
		DriverEmail: driverEmail,
	})

	return b, nil
}
