package handlers

import (
	"net/http"

	facilityRepo "sportify/database/repository/facility"
	"sportify/services/reservation"

	"github.com/gin-gonic/gin"
)

// FacilityHandler exposes the facility catalog (read-only).
type FacilityHandler struct {
	Repo facilityRepo.FacilityRepository
}

// ListFacilitiesHandler handles GET /api/facilities.
func (h *FacilityHandler) ListFacilitiesHandler(c *gin.Context) {
	facilities, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"facilities": facilities, "count": len(facilities)})
}

// GetFacilityHandler handles GET /api/facilities/:id.
func (h *FacilityHandler) GetFacilityHandler(c *gin.Context) {
	id := c.Param("id")
	facility, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if facility == nil {
		respondError(c, &reservation.NotFoundError{Resource: "facility", ID: id})
		return
	}
	c.JSON(http.StatusOK, facility)
}
