package booking

import (
	"context"

	domain "github.com/fleetops/fleet-scheduler/internal/domain/booking"
	"github.com/fleetops/fleet-scheduler/internal/dto"
	"github.com/fleetops/fleet-scheduler/internal/httperr"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute returns bookings newest-created-first. The DTO keeps admin-only
// fields out: any valid bearer token may call list, including customers.
func (uc *ListBookings) Execute(
	ctx context.Context,
	statusFilter string,
	sourceFilter string,
) ([]dto.BookingListDTO, error) {

	if statusFilter != "" && !domain.IsValidStatus(statusFilter) {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	if sourceFilter != "" && !domain.IsValidSource(sourceFilter) {
		return nil, httperr.ErrBusiness("invalid_source")
	}

	bookings, err := uc.repo.ListBookings(ctx, domain.ListFilter{
		Status: statusFilter,
		Source: sourceFilter,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.NewBookingListDTO(&b))
	}

	return out, nil
}
