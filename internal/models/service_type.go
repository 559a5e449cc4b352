package models

import "time"

// ServiceType is the bookable ride product (airport transfer, hourly hire, ...).
type ServiceType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	DurationMin int    `gorm:"default:60" json:"duration_min"`
	PriceCents  int64  `gorm:"default:0" json:"price_cents"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
