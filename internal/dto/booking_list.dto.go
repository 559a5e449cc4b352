package dto

import (
	"time"

	"github.com/fleetops/fleet-scheduler/internal/models"
)

// BookingListDTO is the list-endpoint projection. Admin-only fields
// (admin_note, tokens) stay out: list is readable by any bearer token.
type BookingListDTO struct {
	ID uint `json:"id"`

	ServiceTypeID uint  `json:"service_type_id"`
	DriverID      *uint `json:"driver_id"`
	VehicleID     *uint `json:"vehicle_id"`
	CustomerID    *uint `json:"customer_id"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	OriginalStartTime *string `json:"original_start_time,omitempty"`
	OriginalEndTime   *string `json:"original_end_time,omitempty"`
	MoveCount         int     `json:"move_count"`

	Status string `json:"status"`
	Source string `json:"source"`

	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`

	FareCents int64 `json:"fare_cents"`

	ConfirmedAt *string `json:"confirmed_at,omitempty"`
	CancelledAt *string `json:"cancelled_at,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func iso(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func isoPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := iso(*t)
	return &s
}

func NewBookingListDTO(b *models.Booking) BookingListDTO {
	return BookingListDTO{
		ID:                b.ID,
		ServiceTypeID:     b.ServiceTypeID,
		DriverID:          b.DriverID,
		VehicleID:         b.VehicleID,
		CustomerID:        b.CustomerID,
		StartTime:         iso(b.StartTime),
		EndTime:           iso(b.EndTime),
		OriginalStartTime: isoPtr(b.OriginalStartTime),
		OriginalEndTime:   isoPtr(b.OriginalEndTime),
		MoveCount:         b.MoveCount,
		Status:            b.Status,
		Source:            b.Source,
		ContactName:       b.ContactName,
		ContactPhone:      b.ContactPhone,
		ContactEmail:      b.ContactEmail,
		FareCents:         b.FareCents,
		ConfirmedAt:       isoPtr(b.ConfirmedAt),
		CancelledAt:       isoPtr(b.CancelledAt),
		CompletedAt:       isoPtr(b.CompletedAt),
		CreatedAt:         iso(b.CreatedAt),
		UpdatedAt:         iso(b.UpdatedAt),
	}
}
