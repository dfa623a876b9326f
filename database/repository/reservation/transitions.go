package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findOneAndUpdate applies update to the single document matching filter and
// returns the post-update document, or (nil, nil) when nothing matched.
func (r *MongoReservationRepo) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var res models.Reservation
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("reservation update failed: %w", err)
	}
	return &res, nil
}

// SetPaymentPending only matches a reservation still Pending: a concurrent
// payment confirmation or cancellation between the caller's read and this
// write must not have its state or reference overwritten.
func (r *MongoReservationRepo) SetPaymentPending(ctx context.Context, id, reference string, method models.PaymentMethod, handledBy string) (*models.Reservation, error) {
	filter := bson.M{
		"_id":    id,
		"status": models.StatusPending,
	}
	update := bson.M{"$set": bson.M{
		"payment_status":    models.PaymentPending,
		"payment_reference": reference,
		"payment_method":    method,
		"handled_by":        handledBy,
		"updated_at":        time.Now(),
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *MongoReservationRepo) SetContactEmail(ctx context.Context, id, email string) error {
	res, err := r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"email": email, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res == nil {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkPaidByReference performs the idempotent payment confirmation: only a
// reservation still Pending transitions, so webhook replays and a concurrent
// manual verify cannot double-apply.
func (r *MongoReservationRepo) MarkPaidByReference(ctx context.Context, reference, handledBy string, paidAt time.Time) (*models.Reservation, error) {
	filter := bson.M{
		"payment_reference": reference,
		"status":            models.StatusPending,
	}
	update := bson.M{"$set": bson.M{
		"status":         models.StatusPaid,
		"payment_status": models.PaymentPaid,
		"date_paid":      paidAt,
		"handled_by":     handledBy,
		"updated_at":     paidAt,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *MongoReservationRepo) RequestCancellation(ctx context.Context, id, reason string, at time.Time) (*models.Reservation, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": models.ActiveStatuses},
	}
	update := bson.M{"$set": bson.M{
		"status":              models.StatusCancelling,
		"payment_status":      models.PaymentRefundPending,
		"cancellation_reason": reason,
		"date_cancelled":      at,
		"updated_at":          at,
	}}
	res, err := r.findOneAndUpdate(ctx, filter, update)
	if err != nil || res == nil {
		return res, err
	}
	// Cancelling no longer blocks the slot.
	r.releaseSlots(ctx, id)
	return res, nil
}

func (r *MongoReservationRepo) FinalizeCancellation(ctx context.Context, id, handledBy string, at time.Time) (*models.Reservation, error) {
	filter := bson.M{
		"_id":    id,
		"status": models.StatusCancelling,
	}
	update := bson.M{"$set": bson.M{
		"status":         models.StatusCancelled,
		"payment_status": models.PaymentRefunded,
		"handled_by":     handledBy,
		"date_cancelled": at,
		"updated_at":     at,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *MongoReservationRepo) DirectCancel(ctx context.Context, id, reason, handledBy string, at time.Time) (*models.Reservation, error) {
	filter := bson.M{
		"_id":            id,
		"status":         bson.M{"$nin": []models.ReservationStatus{models.StatusCancelled, models.StatusCompleted}},
		"payment_status": bson.M{"$ne": models.PaymentPaid},
	}
	update := bson.M{"$set": bson.M{
		"status":              models.StatusCancelled,
		"cancellation_reason": reason,
		"handled_by":          handledBy,
		"date_cancelled":      at,
		"updated_at":          at,
	}}
	res, err := r.findOneAndUpdate(ctx, filter, update)
	if err != nil || res == nil {
		return res, err
	}
	r.releaseSlots(ctx, id)
	return res, nil
}

func (r *MongoReservationRepo) MarkCompleted(ctx context.Context, id string) (*models.Reservation, error) {
	filter := bson.M{
		"_id":    id,
		"status": models.StatusPaid,
	}
	update := bson.M{"$set": bson.M{
		"status":     models.StatusCompleted,
		"updated_at": time.Now(),
	}}
	res, err := r.findOneAndUpdate(ctx, filter, update)
	if err != nil || res == nil {
		return res, err
	}
	r.releaseSlots(ctx, id)
	return res, nil
}

func (r *MongoReservationRepo) UpdateFields(ctx context.Context, id string, fields bson.M, notIn []models.ReservationStatus) (*models.Reservation, error) {
	filter := bson.M{"_id": id}
	if len(notIn) > 0 {
		filter["status"] = bson.M{"$nin": notIn}
	}
	fields["updated_at"] = time.Now()
	res, err := r.findOneAndUpdate(ctx, filter, bson.M{"$set": fields})
	if err != nil || res == nil {
		return res, err
	}
	if !res.Status.IsActive() {
		r.releaseSlots(ctx, id)
	}
	return res, nil
}
