package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceTypeID uint        `json:"service_type_id"`
	ServiceType   ServiceType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service_type"`

	DriverID *uint `gorm:"index" json:"driver_id"`
	Driver   *User `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"driver,omitempty"`

	VehicleID *uint    `gorm:"index" json:"vehicle_id"`
	Vehicle   *Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle,omitempty"`

	CustomerID *uint `gorm:"index" json:"customer_id"`
	Customer   *User `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Reschedule history: the first window move snapshots the original
	// window, every move bumps MoveCount.
	OriginalStartTime *time.Time `json:"original_start_time"`
	OriginalEndTime   *time.Time `json:"original_end_time"`
	MoveCount         int        `gorm:"default:0" json:"move_count"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`
	Source string `gorm:"size:20;default:'web'" json:"source"`

	CreatedByRole string `gorm:"size:20" json:"created_by_role"`
	CreatedByName string `gorm:"size:100" json:"created_by_name"`

	// Contact snapshot taken at creation time. Deliberately denormalized:
	// a booking keeps its contact info even if the customer record changes.
	ContactName  string `gorm:"size:100" json:"contact_name"`
	ContactPhone string `gorm:"size:20" json:"contact_phone"`
	ContactEmail string `gorm:"size:100" json:"contact_email"`

	FareCents int64 `gorm:"default:0" json:"fare_cents"`

	AdminNote string `gorm:"size:500" json:"admin_note,omitempty"`
	Deleted   bool   `gorm:"default:false" json:"-"`

	CustomerVerifyToken string `gorm:"size:64" json:"-"`
	AdminApproveToken   string `gorm:"size:64" json:"-"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
