package facilityRepo

import (
	"context"

	"sportify/models"
)

// FacilityRepository defines read access to the facility catalog. The booking
// engine never writes facilities; staff tooling owns that side.
type FacilityRepository interface {
	// GetByID retrieves a facility by its unique ID. Returns (nil, nil) when
	// no facility exists with that id.
	GetByID(ctx context.Context, id string) (*models.Facility, error)
	// GetAll retrieves all facilities.
	GetAll(ctx context.Context) ([]models.Facility, error)
}
