package handlers

import (
	"net/http"

	"sportify/models"
	"sportify/services/reservation"
	"sportify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the booking engine over HTTP.
type ReservationHandler struct {
	Service reservation.BookingService
}

// AvailableSlotsHandler handles GET /api/facilities/:id/slots?date=YYYY-MM-DD.
func (h *ReservationHandler) AvailableSlotsHandler(c *gin.Context) {
	facilityID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	slots, err := h.Service.AvailableSlots(c.Request.Context(), facilityID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"facilityId": facilityID, "date": date, "slots": slots})
}

// CreateReservationHandler handles POST /api/reservations for authenticated
// customers. The requester identity comes from the token, never the body.
func (h *ReservationHandler) CreateReservationHandler(c *gin.Context) {
	var input reservation.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	userID, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	input.Requester.Kind = models.RequesterUser
	input.Requester.ID = userID.(string)
	input.Status = ""
	input.HandledBy = ""

	res, err := h.Service.ValidateAndCreate(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// CreateGuestReservationHandler handles POST /api/reservations/guest. No
// authentication; the body carries the guest's contact details.
func (h *ReservationHandler) CreateGuestReservationHandler(c *gin.Context) {
	var input reservation.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	input.Requester.Kind = models.RequesterGuest
	input.Requester.ID = ""
	input.Status = ""
	input.HandledBy = ""

	res, err := h.Service.ValidateAndCreate(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// CreateStaffReservationHandler handles POST /api/staff/reservations: the
// walk-in path, which may record a cash payment collected in person.
func (h *ReservationHandler) CreateStaffReservationHandler(c *gin.Context) {
	var input reservation.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	staffID, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	input.Requester.Kind = models.RequesterStaff
	input.HandledBy = staffID.(string)

	res, err := h.Service.ValidateAndCreate(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GetReservationHandler handles GET /api/reservations/:id.
func (h *ReservationHandler) GetReservationHandler(c *gin.Context) {
	res, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListReservationsHandler handles GET /api/staff/reservations.
func (h *ReservationHandler) ListReservationsHandler(c *gin.Context) {
	all, err := h.Service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": all, "count": len(all)})
}

// EditReservationHandler handles PATCH /api/staff/reservations/:id.
func (h *ReservationHandler) EditReservationHandler(c *gin.Context) {
	var input reservation.EditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ReservationID = c.Param("id")
	if staffID, ok := c.Get("userID"); ok {
		input.HandledBy = staffID.(string)
	}

	res, err := h.Service.Edit(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteReservationHandler handles DELETE /api/admin/reservations/:id.
func (h *ReservationHandler) DeleteReservationHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.GetLogger().Info("reservation deleted", zap.String("reservationID", id))
	c.JSON(http.StatusOK, gin.H{"message": "reservation deleted"})
}
