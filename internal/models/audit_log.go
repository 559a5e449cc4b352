package models

import "time"

// BookingAudit is append-only. Rows are never updated or deleted.
type BookingAudit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint   `gorm:"index" json:"booking_id"`
	ActorRole string `gorm:"size:20" json:"actor_role"`
	Action    string `gorm:"size:50;not null" json:"action"`
	Note      string `gorm:"size:500" json:"note"`

	CreatedAt time.Time `json:"created_at"`
}
