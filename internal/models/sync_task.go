package models

import "time"

// SyncTask is the calendar-sync outbox row. A booking change enqueues a task
// here in the same process; the worker drains it with retry/backoff.
type SyncTask struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TaskType  string `gorm:"size:30;not null" json:"task_type"`
	BookingID uint   `gorm:"index" json:"booking_id"`
	Payload   string `gorm:"type:text" json:"payload"`

	Status     string `gorm:"size:20;default:'pending';index" json:"status"`
	RetryCount int    `gorm:"default:0" json:"retry_count"`
	LastError  string `gorm:"size:500" json:"last_error"`

	NextRetryAt *time.Time `json:"next_retry_at"`
	ProcessedAt *time.Time `json:"processed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
