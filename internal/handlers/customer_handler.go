package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/httpresp"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

func (h *CustomerHandler) List(c *gin.Context) {
	q := h.db.Where("role = ?", "customer").Order("id asc")

	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	var customers []models.User
	if err := q.Find(&customers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Could not list customers.")
		return
	}

	httpresp.List(c, customers)
}
