package reservationRepo

import (
	"context"
	"errors"
	"time"

	"sportify/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrSlotTaken is returned by Create when a concurrent reservation claimed one
// of the requested hour buckets first.
var ErrSlotTaken = errors.New("time slot already claimed")

// ReservationRepository is the reservation store. State transitions are
// conditional updates: each transition method applies its change only when the
// document still satisfies the expected precondition, and returns (nil, nil)
// when no document matched. Callers disambiguate "missing" from "wrong state"
// with a follow-up read.
type ReservationRepository interface {
	// Create persists a new reservation after claiming its hour buckets.
	// Returns ErrSlotTaken when a claim collides with an existing one.
	Create(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	GetByReference(ctx context.Context, reference string) (*models.Reservation, error)
	// FindByFacilityAndDate returns reservations for a facility on a calendar
	// day whose status is in statusIn.
	FindByFacilityAndDate(ctx context.Context, facilityID, date string, statusIn []models.ReservationStatus) ([]models.Reservation, error)
	// GetAll returns every reservation, most recent date first, earliest
	// start time first within a date.
	GetAll(ctx context.Context) ([]models.Reservation, error)

	// SetPaymentPending records an initiated payment session on a reservation
	// still Pending; a reservation paid or cancelled concurrently is left
	// untouched.
	SetPaymentPending(ctx context.Context, id, reference string, method models.PaymentMethod, handledBy string) (*models.Reservation, error)
	// SetContactEmail persists a guest contact email on the reservation.
	SetContactEmail(ctx context.Context, id, email string) error
	// MarkPaidByReference transitions Pending -> Paid for the reservation
	// holding the payment reference. Safe under concurrent replay: only one
	// caller ever observes the transition.
	MarkPaidByReference(ctx context.Context, reference, handledBy string, paidAt time.Time) (*models.Reservation, error)
	// RequestCancellation transitions Pending|Paid -> Cancelling and frees the
	// reservation's hour buckets.
	RequestCancellation(ctx context.Context, id, reason string, at time.Time) (*models.Reservation, error)
	// FinalizeCancellation transitions Cancelling -> Cancelled.
	FinalizeCancellation(ctx context.Context, id, handledBy string, at time.Time) (*models.Reservation, error)
	// DirectCancel transitions a non-terminal, not-yet-paid reservation
	// straight to Cancelled, bypassing review.
	DirectCancel(ctx context.Context, id, reason, handledBy string, at time.Time) (*models.Reservation, error)
	// MarkCompleted transitions Paid -> Completed.
	MarkCompleted(ctx context.Context, id string) (*models.Reservation, error)

	// UpdateFields patches a reservation document, refusing documents whose
	// current status is in notIn.
	UpdateFields(ctx context.Context, id string, fields bson.M, notIn []models.ReservationStatus) (*models.Reservation, error)
	// Delete removes a reservation unconditionally (administrative cleanup).
	Delete(ctx context.Context, id string) error
}
