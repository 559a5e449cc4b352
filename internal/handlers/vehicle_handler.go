package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/httpresp"
	"github.com/fleetops/fleet-scheduler/internal/models"
)

type VehicleHandler struct {
	db *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{db: db}
}

type CreateVehicleRequest struct {
	Make     string `json:"make" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Plate    string `json:"plate" binding:"required"`
	VIN      string `json:"vin"`
	Capacity int    `json:"capacity"`
}

type UpdateVehicleRequest struct {
	Make     *string `json:"make"`
	Model    *string `json:"model"`
	Plate    *string `json:"plate"`
	VIN      *string `json:"vin"`
	Capacity *int    `json:"capacity"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (h *VehicleHandler) List(c *gin.Context) {
	q := h.db.Order("id asc")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var vehicles []models.Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_vehicles", "Could not list vehicles.")
		return
	}

	httpresp.List(c, vehicles)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 4
	}

	vehicle := models.Vehicle{
		Make:     req.Make,
		Model:    req.Model,
		Plate:    req.Plate,
		VIN:      req.VIN,
		Capacity: capacity,
		Status:   "active",
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		httperr.BadRequest(c, "failed_to_create_vehicle", "Could not create vehicle. The plate may already be registered.")
		return
	}

	httpresp.Created(c, gin.H{"vehicle": vehicle})
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Vehicle id must be numeric.")
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var vehicle models.Vehicle
	if err := h.db.First(&vehicle, id).Error; err != nil {
		httperr.NotFound(c, "vehicle_not_found", "Vehicle not found.")
		return
	}

	fields := map[string]any{}
	if req.Make != nil {
		fields["make"] = *req.Make
	}
	if req.Model != nil {
		fields["model"] = *req.Model
	}
	if req.Plate != nil {
		fields["plate"] = *req.Plate
	}
	if req.VIN != nil {
		fields["vin"] = *req.VIN
	}
	if req.Capacity != nil {
		fields["capacity"] = *req.Capacity
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		if err := h.db.Model(&vehicle).Updates(fields).Error; err != nil {
			httperr.Internal(c, "failed_to_update_vehicle", "Could not update vehicle.")
			return
		}
	}

	h.db.First(&vehicle, id)
	httpresp.OK(c, gin.H{"vehicle": vehicle})
}
