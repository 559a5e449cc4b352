package booking

import (
	"context"
	"time"

	"github.com/fleetops/fleet-scheduler/internal/models"
)

// ListFilter narrows ListBookings. Zero values mean no filter.
type ListFilter struct {
	Status string
	Source string
}

type Repository interface {
	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error

	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	// UpdateBookingFields applies a partial update: only the given columns
	// change, everything else is untouched.
	UpdateBookingFields(ctx context.Context, id uint, fields map[string]any) error

	ListBookings(ctx context.Context, f ListFilter) ([]models.Booking, error)

	// -------- Conflicts --------

	// FindConflicts returns every other booking for the resource whose
	// window overlaps [start,end) and whose status is scheduled or
	// confirmed. excludeID skips the booking being updated in place.
	FindConflicts(
		ctx context.Context,
		kind ResourceKind,
		resourceID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]Conflict, error)

	// -------- References --------

	// GetActiveDriver resolves id to a user with role driver and status
	// active; anything else is a reference failure.
	GetActiveDriver(ctx context.Context, id uint) (*models.User, error)

	GetActiveVehicle(ctx context.Context, id uint) (*models.Vehicle, error)

	GetActiveServiceType(ctx context.Context, id uint) (*models.ServiceType, error)

	// GetOrCreateCustomer links web-source bookings to a customer record
	// keyed by contact phone.
	GetOrCreateCustomer(ctx context.Context, name, phone, email string) (*models.User, error)
}
