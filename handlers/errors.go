package handlers

import (
	"errors"
	"net/http"

	reservationRepo "sportify/database/repository/reservation"
	"sportify/services/reservation"
	"sportify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError translates service errors into HTTP responses. Typed service
// errors map to client-facing statuses with their message intact; anything
// else is logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var validation *reservation.ValidationError
	var notFound *reservation.NotFoundError
	var outOfHours *reservation.OutOfHoursError
	var conflict *reservation.SlotConflictError
	var transition *reservation.TransitionError
	var provider *reservation.PaymentProviderError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &outOfHours):
		c.JSON(http.StatusBadRequest, gin.H{"error": outOfHours.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &conflict), errors.Is(err, reservationRepo.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
	case errors.As(err, &provider):
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider is unavailable, please try again"})
	default:
		utils.GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
