package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fleetops/fleet-scheduler/internal/httperr"
)

// Business codes that mean the booking resource itself is missing. A bad
// driver/vehicle/service reference is a 400, not a 404: the booking exists,
// the payload points at something that does not.
var notFoundCodes = map[string]bool{
	"booking_not_found": true,
}

var badRequestMessages = map[string]string{
	"invalid_start_time": "Invalid start time; expected YYYY-MM-DDTHH:mm[:ss].",
	"invalid_end_time":   "Invalid end time; expected YYYY-MM-DDTHH:mm[:ss].",
	"invalid_window":     "Start time must be before end time.",
	"invalid_source":     "Source must be one of email, phone, web.",
	"invalid_status":     "Unknown booking status.",
	"invalid_action":     "Action must be confirm or decline.",
	"service_not_found":  "Service type not found or inactive.",
	"driver_not_found":   "Driver not found or inactive.",
	"vehicle_not_found":  "Vehicle not found or inactive.",
	"time_conflict":      "The window conflicts with an existing booking.",
}

func respondBusinessError(c *gin.Context, err error) bool {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		return false
	}

	if notFoundCodes[code] {
		httperr.NotFound(c, code, "Booking not found.")
		return true
	}

	msg := badRequestMessages[code]
	if msg == "" {
		msg = "Invalid request."
	}
	httperr.BadRequest(c, code, msg)
	return true
}
