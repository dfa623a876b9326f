package reservation

import (
	"context"

	"sportify/models"
)

// CreateInput is the single booking entry point's request. The authenticated,
// staff-assisted and guest paths all build one of these; the Requester variant
// is what distinguishes them.
type CreateInput struct {
	FacilityID  string           `json:"facilityId"`
	PackageName string           `json:"packageName"`
	Date        string           `json:"date"`
	StartTime   string           `json:"startTime"`
	EndTime     string           `json:"endTime"`
	Requester   models.Requester `json:"requester"`

	// Client-computed totals, re-validated server-side. Zero means "compute
	// for me".
	TotalPrice float64 `json:"totalPrice,omitempty"`
	TotalHours int     `json:"totalHours,omitempty"`

	// Staff-assisted walk-ins may start life already Paid (cash collected in
	// person). Empty means Pending.
	Status        models.ReservationStatus `json:"status,omitempty"`
	PaymentMethod models.PaymentMethod     `json:"paymentMethod,omitempty"`
	HandledBy     string                   `json:"handledBy,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
}

// EditInput is a staff patch of an existing reservation.
type EditInput struct {
	ReservationID string                    `json:"reservationId"`
	Status        *models.ReservationStatus `json:"status,omitempty"`
	PaymentStatus *models.PaymentStatus     `json:"paymentStatus,omitempty"`
	Notes         *string                   `json:"notes,omitempty"`
	HandledBy     string                    `json:"handledBy,omitempty"`
}

// BookingService is the reservation booking engine: validation, slot
// availability, creation, staff edits and the cancellation workflow.
type BookingService interface {
	// AvailableSlots returns the facility's hourly slot labels for a date,
	// booked hours tagged with a "(booked)" marker.
	AvailableSlots(ctx context.Context, facilityID, date string) ([]string, error)
	// ValidateAndCreate runs the booking validation pipeline and persists the
	// reservation. The one and only implementation of the overlap rule.
	ValidateAndCreate(ctx context.Context, input CreateInput) (*models.Reservation, error)

	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	GetAll(ctx context.Context) ([]models.Reservation, error)
	// Edit applies a staff patch, enforcing the lifecycle transition table
	// and the terminal-state guard.
	Edit(ctx context.Context, input EditInput) (*models.Reservation, error)
	// Delete is the unconditional administrative cleanup path.
	Delete(ctx context.Context, id string) error

	// RequestCancellation is the self-service path: Pending|Paid ->
	// Cancelling, awaiting staff review.
	RequestCancellation(ctx context.Context, id, reason string) (*models.Reservation, error)
	// ConfirmCancellation is the staff review outcome: Cancelling ->
	// Cancelled with refund bookkeeping.
	ConfirmCancellation(ctx context.Context, id, handledBy string) (*models.Reservation, error)
	// DirectCancel lets staff cancel outright when no refund is owed.
	DirectCancel(ctx context.Context, id, reason, handledBy string) (*models.Reservation, error)
	// Complete marks a paid reservation whose window has passed.
	Complete(ctx context.Context, id string) (*models.Reservation, error)
}
