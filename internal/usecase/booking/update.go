package booking

import (
	"context"
	"time"

	"github.com/fleetops/fleet-scheduler/internal/audit"
	"github.com/fleetops/fleet-scheduler/internal/dispatch"
	domain "github.com/fleetops/fleet-scheduler/internal/domain/booking"
	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/models"
	"github.com/fleetops/fleet-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// UpdateBookingPatch carries partial-update semantics: nil means "leave the
// column untouched". Status may be set directly; that is the admin escape
// hatch for correcting state and deliberately bypasses the lifecycle.
type UpdateBookingPatch struct {
	ServiceTypeID *uint

	StartTime *string
	EndTime   *string

	DriverID  *uint
	VehicleID *uint

	Status *string
	Source *string

	ContactName  *string
	ContactPhone *string
	ContactEmail *string

	FareCents *int64
	AdminNote *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateBooking struct {
	repo     domain.Repository
	audit    AuditSink
	events   EventSink
	timezone string
}

func NewUpdateBooking(
	repo domain.Repository,
	audit AuditSink,
	events EventSink,
	tz string,
) *UpdateBooking {
	return &UpdateBooking{
		repo:     repo,
		audit:    audit,
		events:   events,
		timezone: tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	id uint,
	actorRole string,
	patch UpdateBookingPatch,
) (*models.Booking, error) {

	current, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	// Captured before the write so a reassignment can still reach the
	// driver the booking is moving away from.
	previousDriverID := current.DriverID

	fields := map[string]any{}

	// -------- window --------

	if patch.StartTime != nil || patch.EndTime != nil {
		start := current.StartTime
		end := current.EndTime

		if patch.StartTime != nil {
			start, err = timezone.ParseClientTime(*patch.StartTime, uc.timezone)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_start_time")
			}
		}
		if patch.EndTime != nil {
			end, err = timezone.ParseClientTime(*patch.EndTime, uc.timezone)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_end_time")
			}
		}
		if !start.Before(end) {
			return nil, httperr.ErrBusiness("invalid_window")
		}

		if !start.Equal(current.StartTime) || !end.Equal(current.EndTime) {
			moved := *current
			domain.Reschedule(&moved, start, end)

			fields["start_time"] = moved.StartTime
			fields["end_time"] = moved.EndTime
			fields["original_start_time"] = moved.OriginalStartTime
			fields["original_end_time"] = moved.OriginalEndTime
			fields["move_count"] = moved.MoveCount
		}
	}

	// -------- enums --------

	if patch.Status != nil {
		if !domain.IsValidStatus(*patch.Status) {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		fields["status"] = *patch.Status

		now := time.Now().UTC()
		switch domain.Status(*patch.Status) {
		case domain.StatusCancelled:
			fields["cancelled_at"] = now
		case domain.StatusCompleted:
			fields["completed_at"] = now
		case domain.StatusConfirmed:
			fields["confirmed_at"] = now
		}
	}

	if patch.Source != nil {
		if !domain.IsValidSource(*patch.Source) {
			return nil, httperr.ErrBusiness("invalid_source")
		}
		fields["source"] = *patch.Source
	}

	// -------- references --------

	if patch.ServiceTypeID != nil {
		if _, err := uc.repo.GetActiveServiceType(ctx, *patch.ServiceTypeID); err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		fields["service_type_id"] = *patch.ServiceTypeID
	}

	if patch.DriverID != nil {
		if _, err := uc.repo.GetActiveDriver(ctx, *patch.DriverID); err != nil {
			return nil, httperr.ErrBusiness("driver_not_found")
		}
		fields["driver_id"] = *patch.DriverID
	}

	if patch.VehicleID != nil {
		if _, err := uc.repo.GetActiveVehicle(ctx, *patch.VehicleID); err != nil {
			return nil, httperr.ErrBusiness("vehicle_not_found")
		}
		fields["vehicle_id"] = *patch.VehicleID
	}

	// -------- plain columns --------

	if patch.ContactName != nil {
		fields["contact_name"] = *patch.ContactName
	}
	if patch.ContactPhone != nil {
		fields["contact_phone"] = *patch.ContactPhone
	}
	if patch.ContactEmail != nil {
		fields["contact_email"] = *patch.ContactEmail
	}
	if patch.FareCents != nil {
		fields["fare_cents"] = *patch.FareCents
	}
	if patch.AdminNote != nil {
		fields["admin_note"] = *patch.AdminNote
	}

	if err := uc.repo.UpdateBookingFields(ctx, id, fields); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	note := ""
	if patch.AdminNote != nil {
		note = *patch.AdminNote
	}

	uc.audit.Dispatch(audit.Event{
		BookingID: id,
		ActorRole: actorRole,
		Action:    "update",
		Note:      note,
	})

	updated, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(dispatch.Event{
		Type:                dispatch.EventUpdated,
		Booking:             *updated,
		DriverEmail:         uc.driverEmail(ctx, updated.DriverID),
		PreviousDriverEmail: uc.previousDriverEmail(ctx, previousDriverID, updated.DriverID),
	})

	return updated, nil
}

func (uc *UpdateBooking) driverEmail(ctx context.Context, driverID *uint) string {
	if driverID == nil {
		return ""
	}
	driver, err := uc.repo.GetActiveDriver(ctx, *driverID)
	if err != nil {
		return ""
	}
	return driver.Email
}

// previousDriverEmail resolves the pre-update driver only when the update
// actually moved the booking off them.
func (uc *UpdateBooking) previousDriverEmail(ctx context.Context, previous, current *uint) string {
	if previous == nil {
		return ""
	}
	if current != nil && *current == *previous {
		return ""
	}
	return uc.driverEmail(ctx, previous)
}
