package booking

import (
	"context"

	domain "github.com/fleetops/fleet-scheduler/internal/domain/booking"
	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CheckAvailabilityInput struct {
	StartTime string
	EndTime   string

	DriverID  *uint
	VehicleID *uint

	ExcludeBookingID uint
}

// ======================================================
// USE CASE
// ======================================================

type CheckAvailability struct {
	repo     domain.Repository
	timezone string
}

func NewCheckAvailability(repo domain.Repository, tz string) *CheckAvailability {
	return &CheckAvailability{repo: repo, timezone: tz}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute checks driver and vehicle independently: a window can conflict on
// the driver but not the vehicle, and vice versa. A missing resource id
// means that resource cannot conflict, so its availability is not reported
// at all. The result is advisory; nothing stops a concurrent create from
// landing in the same window afterwards.
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in CheckAvailabilityInput,
) (*domain.AvailabilityResult, error) {

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

	result := &domain.AvailabilityResult{
		Conflicts: []domain.Conflict{},
	}

	if in.DriverID != nil {
		conflicts, err := uc.repo.FindConflicts(
			ctx, domain.ResourceDriver, *in.DriverID, start, end, in.ExcludeBookingID,
		)
		if err != nil {
			return nil, err
		}

		available := len(conflicts) == 0
		result.DriverAvailable = &available
		result.Conflicts = append(result.Conflicts, conflicts...)
	}

	if in.VehicleID != nil {
		conflicts, err := uc.repo.FindConflicts(
			ctx, domain.ResourceVehicle, *in.VehicleID, start, end, in.ExcludeBookingID,
		)
		if err != nil {
			return nil, err
		}

		available := len(conflicts) == 0
		result.VehicleAvailable = &available
		result.Conflicts = append(result.Conflicts, conflicts...)
	}

	return result, nil
}
