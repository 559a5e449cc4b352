package booking

import (
	"context"

	"github.com/google/uuid"

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

type CreateBookingInput struct {
	ServiceTypeID uint

	// Naive client timestamps, pattern YYYY-MM-DDTHH:mm[:ss].
	StartTime string
	EndTime   string

	Source string

	DriverID  *uint
	VehicleID *uint

	ContactName  string
	ContactPhone string
	ContactEmail string

	CreatedByRole string
	CreatedByName string

	FareCents int64
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    AuditSink
	events   EventSink
	timezone string
}

func NewCreateBooking(
	repo domain.Repository,
	audit AuditSink,
	events EventSink,
	tz string,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    audit,
		events:   events,
		timezone: tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	start, err := timezone.ParseClientTime(in.StartTime, uc.timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_start_time")
	}

	end, err := timezone.ParseClientTime(in.EndTime, uc.timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_end_time")
	}

	if !start.Before(end) {
		return nil, httperr.ErrBusiness("invalid_window")
	}

	if !domain.IsValidSource(in.Source) {
		return nil, httperr.ErrBusiness("invalid_source")
	}

	if in.ServiceTypeID == 0 {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if _, err := uc.repo.GetActiveServiceType(ctx, in.ServiceTypeID); err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// Assignment references must resolve to active records before anything
	// is written. Note: no overlap check here; double-booking prevention at
	// create time is advisory and lives behind the availability endpoint.
	if in.DriverID != nil {
		if _, err := uc.repo.GetActiveDriver(ctx, *in.DriverID); err != nil {
			return nil, httperr.ErrBusiness("driver_not_found")
		}
	}

	if in.VehicleID != nil {
		if _, err := uc.repo.GetActiveVehicle(ctx, *in.VehicleID); err != nil {
			return nil, httperr.ErrBusiness("vehicle_not_found")
		}
	}

	b := &models.Booking{
		ServiceTypeID: in.ServiceTypeID,
		DriverID:      in.DriverID,
		VehicleID:     in.VehicleID,
		StartTime:     start,
		EndTime:       end,
		Status:        string(domain.InitialStatus()),
		Source:        in.Source,
		CreatedByRole: in.CreatedByRole,
		CreatedByName: in.CreatedByName,
		ContactName:   in.ContactName,
		ContactPhone:  in.ContactPhone,
		ContactEmail:  in.ContactEmail,
		FareCents:     in.FareCents,

		// Minted up front; the admin pending notification carries it as
		// the approval reference for this booking.
		AdminApproveToken: uuid.NewString(),
	}

	// Web bookings get linked to a customer record by contact phone. The
	// link is opportunistic; the contact snapshot above is authoritative.
	if in.Source == string(domain.SourceWeb) && in.ContactPhone != "" {
		if customer, err := uc.repo.GetOrCreateCustomer(
			ctx, in.ContactName, in.ContactPhone, in.ContactEmail,
		); err == nil {
			b.CustomerID = &customer.ID
		}
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BookingID: b.ID,
		ActorRole: in.CreatedByRole,
		Action:    "create",
	})

	uc.events.Dispatch(dispatch.Event{
		Type:    dispatch.EventCreated,
		Booking: *b,
	})

	return b, nil
}
