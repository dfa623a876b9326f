package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportify/models"
	"sportify/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create claims the reservation's hour buckets and inserts the document. The
// claims are only held while the reservation stays in {Pending, Paid}.
func (r *MongoReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if res.Status.IsActive() {
		hours, err := utils.HourRange(res.StartTime, res.EndTime)
		if err != nil {
			return fmt.Errorf("invalid reservation window: %w", err)
		}
		if err := r.claimSlots(ctx, res.FacilityID, res.Date, hours, res.ID); err != nil {
			return err
		}
	}

	if _, err := r.coll.InsertOne(ctx, res); err != nil {
		r.releaseSlots(ctx, res.ID)
		return fmt.Errorf("failed to create reservation %s: %w", res.ID, err)
	}
	return nil
}

func (r *MongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch reservation %s: %w", id, err)
	}
	return &res, nil
}

// Delete removes a reservation and its claims unconditionally. This is the
// administrative cleanup path, not part of the booking workflow.
func (r *MongoReservationRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reservation %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	r.releaseSlots(ctx, id)
	return nil
}
