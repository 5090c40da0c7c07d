package routes

import (
	"salonbook/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the customer-facing booking endpoints.
// All of them are unauthenticated; the rate limiter guards abuse.
func RegisterPublicRoutes(r *gin.Engine, availability *handlers.AvailabilityHandler, bookings *handlers.BookingHandler) {
	api := r.Group("/api/public")
	{
		api.GET("/salons/:salonID/availability", availability.GetAvailableSlots)
		api.GET("/salons/:salonID/professionals", availability.ListProfessionals)

		api.POST("/bookings", bookings.CreateBooking)
		api.POST("/salons/:salonID/bookings/:bookingID/cancel", bookings.CancelBooking)
		api.POST("/salons/:salonID/bookings/:bookingID/reschedule", bookings.RescheduleBooking)
	}
}
