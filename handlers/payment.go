package handlers

import (
	"net/http"

	"sportify/services/payment"
	"sportify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment flow over HTTP.
type PaymentHandler struct {
	Service payment.PaymentService
}

// InitiatePaymentHandler handles POST /api/payments. Guests supply an email
// here if they skipped it at booking time.
func (h *PaymentHandler) InitiatePaymentHandler(c *gin.Context) {
	var input struct {
		ReservationID string `json:"reservationId" binding:"required"`
		Email         string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.Initiate(c.Request.Context(), input.ReservationID, input.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reference":   session.Reference,
		"redirectUrl": session.RedirectURL,
	})
}

// VerifyPaymentHandler handles POST /api/payments/:reference/verify, the
// client-initiated fallback when the webhook is delayed. Same idempotent
// confirmation the webhook uses.
func (h *PaymentHandler) VerifyPaymentHandler(c *gin.Context) {
	res, err := h.Service.Confirm(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PaymentWebhookHandler handles POST /webhooks/payments. Always acknowledges
// events it cannot act on so the provider stops retrying.
func (h *PaymentHandler) PaymentWebhookHandler(c *gin.Context) {
	var event payment.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
		return
	}

	if err := h.Service.HandleWebhook(c.Request.Context(), event); err != nil {
		utils.GetLogger().Error("webhook processing failed",
			zap.String("reference", event.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
