package reservationRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the indexes backing the reservation queries and the
// overlap guard.
func (r *MongoReservationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reservationIdx := []mongo.IndexModel{
		// Primary availability query: facility + date filtered by status.
		{
			Keys:    bson.D{{Key: "facility_id", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("facility_date_status_idx"),
		},
		// Webhook lookup key. Unique per in-flight payment; sparse so cash
		// reservations (null reference) don't collide.
		{
			Keys: bson.D{{Key: "payment_reference", Value: 1}},
			Options: options.Index().
				SetName("unique_payment_reference").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"payment_reference": bson.M{"$type": "string"}}),
		},
		// Listing order.
		{
			Keys:    bson.D{{Key: "date", Value: -1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("listing_order_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, reservationIdx); err != nil {
		return err
	}

	// One claim document per booked hour; the unique index is what makes
	// check-then-insert safe under concurrent requests for the same slot.
	claimIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "facility_id", Value: 1}, {Key: "date", Value: 1}, {Key: "hour", Value: 1}},
		Options: options.Index().SetName("unique_slot_claim").SetUnique(true),
	}
	_, err := r.claims.Indexes().CreateOne(ctx, claimIdx)
	return err
}
