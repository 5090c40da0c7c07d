package handlers

import (
	"net/http"
	"strconv"

	professionalRepo "salonbook/database/repository/professional"
	salonRepo "salonbook/database/repository/salon"
	"salonbook/services/calendar"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the public slot-search endpoints.
type AvailabilityHandler struct {
	Salons        salonRepo.SalonRepository
	Professionals professionalRepo.ProfessionalRepository
	Calendar      calendar.CalendarService
}

func NewAvailabilityHandler(salons salonRepo.SalonRepository, pros professionalRepo.ProfessionalRepository, cal calendar.CalendarService) *AvailabilityHandler {
	return &AvailabilityHandler{Salons: salons, Professionals: pros, Calendar: cal}
}

// GetAvailableSlots handles GET /api/public/salons/:salonID/availability.
// An optional professionalId query parameter restricts the search to one
// professional's agenda. The handler answers an empty slot list rather
// than an error for closed days and configuration problems; only unknown
// salons and bad requests fail.
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	salonID := c.Param("salonID")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)", "")
		return
	}

	salon, err := h.Salons.GetByID(salonID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "salon not found", "")
		return
	}

	duration := 0
	if serviceID := c.Query("serviceId"); serviceID != "" {
		svc, ok := salon.ServiceByID(serviceID)
		if !ok {
			utils.JSONError(c, http.StatusNotFound, "unknown service", "")
			return
		}
		duration = svc.DurationMinutes
	} else if raw := c.Query("durationMinutes"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "durationMinutes must be a positive integer", "")
			return
		}
	} else {
		utils.JSONError(c, http.StatusBadRequest, "serviceId or durationMinutes is required", "")
		return
	}

	professionalID := c.Query("professionalId")

	slots, err := h.Calendar.FindAvailableSlots(salon, professionalID, duration, date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salonId":        salonID,
		"date":           date,
		"professionalId": professionalID,
		"slots":          slots,
	})
}

// ListProfessionals handles GET /api/public/salons/:salonID/professionals.
// Booking UIs use it to offer a professional picker before slot search.
func (h *AvailabilityHandler) ListProfessionals(c *gin.Context) {
	salonID := c.Param("salonID")
	if _, err := h.Salons.GetByID(salonID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "salon not found", "")
		return
	}

	pros, err := h.Professionals.ListBySalon(salonID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list professionals", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salonId":       salonID,
		"professionals": pros,
	})
}
