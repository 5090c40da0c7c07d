package handlers

import (
	"errors"
	"net/http"
	"time"

	"salonbook/services/booking"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the public booking endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(bookings booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

// CreateBooking handles POST /api/public/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Bookings.CreateBooking(req)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// CancelBooking handles POST /api/public/salons/:salonID/bookings/:bookingID/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	err := h.Bookings.CancelBooking(c.Param("salonID"), c.Param("bookingID"))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "canceled"})
}

// RescheduleBooking handles POST /api/public/salons/:salonID/bookings/:bookingID/reschedule.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	var req struct {
		StartTime time.Time `json:"startTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Bookings.RescheduleBooking(c.Param("salonID"), c.Param("bookingID"), req.StartTime)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// writeBookingError maps booking failures onto HTTP statuses. Conflicts and
// holds answer 409 so clients know to refresh availability and retry.
func writeBookingError(c *gin.Context, err error) {
	var conflict *booking.ConflictError
	switch {
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, "slot unavailable", conflict.Reason.Error())
	case errors.Is(err, booking.ErrSlotHeld):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, booking.ErrUnknownService),
		errors.Is(err, booking.ErrUnknownProfessional),
		errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking failed, please try again", "")
	}
}
