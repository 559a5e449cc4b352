package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/httpresp"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

type DriverHandler struct {
	db *gorm.DB
}

func NewDriverHandler(db *gorm.DB) *DriverHandler {
	return &DriverHandler{db: db}
}

// List returns driver accounts with their profiles. Only active drivers
// unless ?status= asks otherwise.
func (h *DriverHandler) List(c *gin.Context) {
	status := c.DefaultQuery("status", "active")

	q := h.db.Preload("DriverProfile").Where("role = ?", "driver").Order("id asc")
	if status != "all" {
		q = q.Where("status = ?", status)
	}

	var drivers []models.User
	if err := q.Find(&drivers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_drivers", "Could not list drivers.")
		return
	}

	httpresp.List(c, drivers)
}
