package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/httpresp"
	"github.com/fleetops/fleet-scheduler/internal/middleware"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) Me(c *gin.Context) {
	userID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Missing authentication.")
		return
	}

	var user models.User
	if err := h.db.Preload("DriverProfile").First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User no longer exists.")
		return
	}

	httpresp.OK(c, gin.H{"user": user})
}
