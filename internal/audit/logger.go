package audit

import (
	"gorm.io/gorm"

	"github.com/fleetops/fleet-scheduler/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(bookingID uint, actorRole, action, note string) error {
	row := models.BookingAudit{
		BookingID: bookingID,
		ActorRole: actorRole,
		Action:    action,
		Note:      note,
	}

	return l.db.Create(&row).Error
}
