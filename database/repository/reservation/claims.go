package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"sportify/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// slotClaim is one booked hour bucket for a facility on a calendar day. The
// unique (facility_id, date, hour) index turns overlapping inserts into
// duplicate-key errors, closing the check-then-insert race.
type slotClaim struct {
	FacilityID    string `bson:"facility_id"`
	Date          string `bson:"date"`
	Hour          int    `bson:"hour"`
	ReservationID string `bson:"reservation_id"`
}

// claimSlots inserts one claim per hour. On a duplicate-key collision it rolls
// back any claims this reservation managed to insert and reports ErrSlotTaken.
func (r *MongoReservationRepo) claimSlots(ctx context.Context, facilityID, date string, hours []int, reservationID string) error {
	docs := make([]interface{}, 0, len(hours))
	for _, h := range hours {
		docs = append(docs, slotClaim{
			FacilityID:    facilityID,
			Date:          date,
			Hour:          h,
			ReservationID: reservationID,
		})
	}

	if _, err := r.claims.InsertMany(ctx, docs); err != nil {
		r.releaseSlots(ctx, reservationID)
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to claim slots for %s: %w", reservationID, err)
	}
	return nil
}

// releaseSlots frees every hour bucket held by a reservation. Called when a
// reservation leaves the {Pending, Paid} set or fails to persist.
func (r *MongoReservationRepo) releaseSlots(ctx context.Context, reservationID string) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.claims.DeleteMany(ctx, bson.M{"reservation_id": reservationID}); err != nil {
		utils.GetLogger().Error("failed to release slot claims",
			zap.String("reservationID", reservationID), zap.Error(err))
	}
}
