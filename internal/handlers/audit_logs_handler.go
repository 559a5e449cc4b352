package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/httpresp"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns recent audit rows, newest first. Optional filters:
// ?booking_id= and ?action=.
func (h *AuditLogsHandler) List(c *gin.Context) {
	q := h.db.Order("id desc").Limit(200)

	if raw := c.Query("booking_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_booking_id", "booking_id must be numeric.")
			return
		}
		q = q.Where("booking_id = ?", id)
	}

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var logs []models.BookingAudit
	if err := q.Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs)
}

// ForBooking returns the full trail for one booking, oldest first.
func (h *AuditLogsHandler) ForBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	var logs []models.BookingAudit
	if err := h.db.Where("booking_id = ?", id).Order("id asc").Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not load audit trail.")
		return
	}

	httpresp.List(c, logs)
}
