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

const (
	DecisionConfirm = "confirm"
	DecisionDecline = "decline"
)

// ======================================================
// USE CASE
// ======================================================

type DecideBooking struct {
	repo    domain.Repository
	confirm *ConfirmBooking
	audit   AuditSink
	events  EventSink
}

func NewDecideBooking(
	repo domain.Repository,
	confirm *ConfirmBooking,
	audit AuditSink,
	events EventSink,
) *DecideBooking {
	return &DecideBooking{
		repo:    repo,
		confirm: confirm,
		audit:   audit,
		events:  events,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *DecideBooking) Execute(
	ctx context.Context,
	id uint,
	actorRole string,
	action string,
	reason string,
) (*models.Booking, error) {

	switch action {
	case DecisionConfirm:
		// Confirm decisions delegate with an empty body: no driver change.
		return uc.confirm.Execute(ctx, id, actorRole, nil)
	case DecisionDecline:
		return uc.decline(ctx, id, actorRole, reason)
	default:
		return nil, httperr.ErrBusiness("invalid_action")
	}
}

func (uc *DecideBooking) decline(
	ctx context.Context,
	id uint,
	actorRole string,
	reason string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := time.Now().UTC()
	domain.Decline(b, now)

	fields := map[string]any{
		"status":       b.Status,
		"cancelled_at": b.CancelledAt,
	}

	if err := uc.repo.UpdateBookingFields(ctx, id, fields); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BookingID: id,
		ActorRole: actorRole,
		Action:    "cancel",
		Note:      reason,
	})

	uc.events.Dispatch(dispatch.Event{
		Type:    dispatch.EventDeclined,
		Booking: *b,
		Reason:  reason,
	})

	return b, nil
}
