package models

import "time"

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Make     string `gorm:"size:50" json:"make"`
	Model    string `gorm:"size:50" json:"model"`
	Plate    string `gorm:"size:20;uniqueIndex;not null" json:"plate"`
	VIN      string `gorm:"size:32" json:"vin"`
	Capacity int    `gorm:"default:4" json:"capacity"`

	Status string `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
