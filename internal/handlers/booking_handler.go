package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/fleet-scheduler/internal/httperr"
	"github.com/fleetops/fleet-scheduler/internal/httpresp"
	"github.com/fleetops/fleet-scheduler/internal/middleware"
	ucBooking "github.com/fleetops/fleet-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC  *ucBooking.CreateBooking
	updateUC  *ucBooking.UpdateBooking
	confirmUC *ucBooking.ConfirmBooking
	decideUC  *ucBooking.DecideBooking
	listUC    *ucBooking.ListBookings
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	updateUC *ucBooking.UpdateBooking,
	confirmUC *ucBooking.ConfirmBooking,
	decideUC *ucBooking.DecideBooking,
	listUC *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		createUC:  createUC,
		updateUC:  updateUC,
		confirmUC: confirmUC,
		decideUC:  decideUC,
		listUC:    listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceTypeID uint   `json:"service_type_id" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	Source        string `json:"source" binding:"required"`

	DriverID  *uint `json:"driver_id"`
	VehicleID *uint `json:"vehicle_id"`

	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`

	FareCents int64 `json:"fare_cents"`
}

type UpdateBookingRequest struct {
	ServiceTypeID *uint `json:"service_type_id"`

	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`

	DriverID  *uint `json:"driver_id"`
	VehicleID *uint `json:"vehicle_id"`

	Status *string `json:"status"`
	Source *string `json:"source"`

	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	ContactEmail *string `json:"contact_email"`

	FareCents *int64  `json:"fare_cents"`
	AdminNote *string `json:"admin_note"`
}

type ConfirmBookingRequest struct {
	DriverID *uint `json:"driver_id"`
}

type DecisionRequest struct {
	Action string `json:"action" binding:"required,oneof=confirm decline"`
	Reason string `json:"reason"`
}

// ======================================================
// HELPERS
// ======================================================

func bookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be a positive integer.")
		return 0, false
	}
	return uint(id), true
}

func actorRole(c *gin.Context) string {
	if role, ok := c.Get(middleware.ContextActorRole); ok {
		return role.(string)
	}
	if role, ok := c.Get(middleware.ContextUserRole); ok {
		return role.(string)
	}
	return ""
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	role, _ := c.Get(middleware.ContextUserRole)
	name, _ := c.Get(middleware.ContextUserName)

	in := ucBooking.CreateBookingInput{
		ServiceTypeID: req.ServiceTypeID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Source:        req.Source,
		DriverID:      req.DriverID,
		VehicleID:     req.VehicleID,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		FareCents:     req.FareCents,
	}
	if role != nil {
		in.CreatedByRole, _ = role.(string)
	}
	if name != nil {
		in.CreatedByName, _ = name.(string)
	}

	b, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		if respondBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_booking", "Could not create booking.")
		return
	}

	httpresp.Created(c, gin.H{"id": b.ID})
}

// ======================================================
// UPDATE (PARTIAL)
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	patch := ucBooking.UpdateBookingPatch{
		ServiceTypeID: req.ServiceTypeID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DriverID:      req.DriverID,
		VehicleID:     req.VehicleID,
		Status:        req.Status,
		Source:        req.Source,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		FareCents:     req.FareCents,
		AdminNote:     req.AdminNote,
	}

	if _, err := h.updateUC.Execute(c.Request.Context(), id, actorRole(c), patch); err != nil {
		if respondBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_update_booking", "Could not update booking.")
		return
	}

	httpresp.OK(c, nil)
}

// ======================================================
// CONFIRM
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	// An empty body is legal: confirm without assigning a driver.
	var req ConfirmBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
	}

	if _, err := h.confirmUC.Execute(c.Request.Context(), id, actorRole(c), req.DriverID); err != nil {
		if respondBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_confirm_booking", "Could not confirm booking.")
		return
	}

	httpresp.OK(c, nil)
}

// ======================================================
// DECISION
// ======================================================

func (h *BookingHandler) Decide(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if _, err := h.decideUC.Execute(c.Request.Context(), id, actorRole(c), req.Action, req.Reason); err != nil {
		if respondBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_decide_booking", "Could not apply decision.")
		return
	}

	httpresp.OK(c, nil)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	items, err := h.listUC.Execute(
		c.Request.Context(),
		c.Query("status"),
		c.Query("source"),
	)
	if err != nil {
		if respondBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, items)
}
