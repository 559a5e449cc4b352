package models

import "time"

// DriverProfile carries the employment side of a driver. The assignability
// check looks at User.Status, not EmploymentStatus.
type DriverProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	LicenseNumber    string     `gorm:"size:50" json:"license_number"`
	LicenseExpiry    *time.Time `json:"license_expiry"`
	EmploymentStatus string     `gorm:"size:20;default:'employed'" json:"employment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
