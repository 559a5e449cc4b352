package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/httpresp"
	ucBooking "github.com/fleetops/fleet-scheduler/internal/usecase/booking"
)

type AvailabilityHandler struct {
	checkUC *ucBooking.CheckAvailability
}

func NewAvailabilityHandler(checkUC *ucBooking.CheckAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{checkUC: checkUC}
}

type availabilityRequest struct {
	StartTime string `json:"start_time" form:"start_time" binding:"required"`
	EndTime   string `json:"end_time" form:"end_time" binding:"required"`

	DriverID  *uint `json:"driver_id" form:"driver_id"`
	VehicleID *uint `json:"vehicle_id" form:"vehicle_id"`

	ExcludeBookingID uint `json:"exclude_booking_id" form:"exclude_booking_id"`
}

// Check serves both GET (query params) and POST (JSON body). The result is
// advisory only; it is the caller's responsibility to check before
// submitting a booking.
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req availabilityRequest

	var err error
	if c.Request.Method == "GET" {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	result, err := h.checkUC.Execute(c.Request.Context(), ucBooking.CheckAvailabilityInput{
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		DriverID:         req.DriverID,
		VehicleID:        req.VehicleID,
		ExcludeBookingID: req.ExcludeBookingID,
	})
	if err != nil {
		if respondBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_check_availability", "Could not check availability.")
		return
	}

	body := gin.H{"conflicts": result.Conflicts}
	if result.DriverAvailable != nil {
		body["driver_available"] = *result.DriverAvailable
	}
	if result.VehicleAvailable != nil {
		body["vehicle_available"] = *result.VehicleAvailable
	}

	httpresp.OK(c, body)
}
