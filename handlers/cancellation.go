package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestCancellationHandler handles POST /api/reservations/:id/cancel, the
// self-service path for customers and guests.
func (h *ReservationHandler) RequestCancellationHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := h.Service.RequestCancellation(c.Request.Context(), c.Param("id"), input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ConfirmCancellationHandler handles POST /api/staff/reservations/:id/cancel/confirm.
func (h *ReservationHandler) ConfirmCancellationHandler(c *gin.Context) {
	staffID, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	res, err := h.Service.ConfirmCancellation(c.Request.Context(), c.Param("id"), staffID.(string))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DirectCancelHandler handles POST /api/staff/reservations/:id/cancel: staff
// cancelling an unpaid reservation outright, no refund review.
func (h *ReservationHandler) DirectCancelHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	staffID, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	res, err := h.Service.DirectCancel(c.Request.Context(), c.Param("id"), input.Reason, staffID.(string))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
