package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/httpresp"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

type ServiceTypeHandler struct {
	db *gorm.DB
}

func NewServiceTypeHandler(db *gorm.DB) *ServiceTypeHandler {
	return &ServiceTypeHandler{db: db}
}

type CreateServiceTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	DurationMin int    `json:"duration_min"`
	PriceCents  int64  `json:"price_cents"`
}

type UpdateServiceTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DurationMin *int    `json:"duration_min"`
	PriceCents  *int64  `json:"price_cents"`
	Active      *bool   `json:"active"`
}

func (h *ServiceTypeHandler) List(c *gin.Context) {
	q := h.db.Order("id asc")
	if c.Query("include_inactive") != "true" {
		q = q.Where("active = ?", true)
	}

	var serviceTypes []models.ServiceType
	if err := q.Find(&serviceTypes).Error; err != nil {
		httperr.Internal(c, "failed_to_list_service_types", "Could not list service types.")
		return
	}

	httpresp.List(c, serviceTypes)
}

func (h *ServiceTypeHandler) Create(c *gin.Context) {
	var req CreateServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	duration := req.DurationMin
	if duration <= 0 {
		duration = 60
	}

	serviceType := models.ServiceType{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: duration,
		PriceCents:  req.PriceCents,
		Active:      true,
	}

	if err := h.db.Create(&serviceType).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service_type", "Could not create service type.")
		return
	}

	httpresp.Created(c, gin.H{"service_type": serviceType})
}

func (h *ServiceTypeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Service type id must be numeric.")
		return
	}

	var req UpdateServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var serviceType models.ServiceType
	if err := h.db.First(&serviceType, id).Error; err != nil {
		httperr.NotFound(c, "service_type_not_found", "Service type not found.")
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.DurationMin != nil {
		fields["duration_min"] = *req.DurationMin
	}
	if req.PriceCents != nil {
		fields["price_cents"] = *req.PriceCents
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}

	if len(fields) > 0 {
		if err := h.db.Model(&serviceType).Updates(fields).Error; err != nil {
			httperr.Internal(c, "failed_to_update_service_type", "Could not update service type.")
			return
		}
	}

	h.db.First(&serviceType, id)
	httpresp.OK(c, gin.H{"service_type": serviceType})
}
