package models

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "Pending"
	StatusPaid       ReservationStatus = "Paid"
	StatusCancelling ReservationStatus = "Cancelling" // awaiting staff review
	StatusCancelled  ReservationStatus = "Cancelled"
	StatusCompleted  ReservationStatus = "Completed"
)

// PaymentStatus tracks the money side of a reservation independently of its
// lifecycle status.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentPaid          PaymentStatus = "Paid"
	PaymentFailed        PaymentStatus = "Failed"
	PaymentRefundPending PaymentStatus = "Refund Pending"
	PaymentRefunded      PaymentStatus = "Refunded"
)

// PaymentMethod identifies how a reservation is (to be) paid.
type PaymentMethod string

const (
	MethodOnline PaymentMethod = "Online"
	MethodCash   PaymentMethod = "Cash"
)

// HandlerSystem is recorded as the handler id for transitions performed by
// the platform itself (online payments, webhooks) rather than a staff member.
const HandlerSystem = "SYSTEM"

// statusTransitions is the single source of truth for which lifecycle moves
// are legal. Cancelled and Completed are terminal.
var statusTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:    {StatusPaid, StatusCancelling, StatusCancelled},
	StatusPaid:       {StatusCancelling, StatusCancelled, StatusCompleted},
	StatusCancelling: {StatusCancelled},
	StatusCancelled:  {},
	StatusCompleted:  {},
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// transition.
func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further lifecycle transitions are allowed.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsActive reports whether the reservation still occupies its time slot for
// overlap purposes.
func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusPaid
}

// ActiveStatuses are the states that block a time slot.
var ActiveStatuses = []ReservationStatus{StatusPending, StatusPaid}

// RequesterKind discriminates who placed a reservation.
type RequesterKind string

const (
	RequesterUser  RequesterKind = "user"
	RequesterStaff RequesterKind = "staff"
	RequesterGuest RequesterKind = "guest"
)

// Requester identifies who a reservation is for. Guest requesters supply
// contact details inline and are assigned a synthetic id; user and staff
// requesters carry a resolvable account id.
type Requester struct {
	Kind  RequesterKind `json:"kind"`
	ID    string        `json:"id,omitempty"`
	Name  string        `json:"name"`
	Email string        `json:"email,omitempty"`
	Phone string        `json:"phone,omitempty"`
}

// Reservation is the central booking record. Facility and package fields are
// snapshotted at creation time so later catalog edits never rewrite history.
type Reservation struct {
	ID           string `bson:"_id" json:"id"` // e.g. "R1724838000000"
	FacilityID   string `bson:"facility_id" json:"facilityId"`
	FacilityName string `bson:"facility_name" json:"facilityName"`
	Image        string `bson:"image" json:"image"`
	Category     string `bson:"category" json:"category"`

	PackageName string  `bson:"package_name" json:"packageName"`
	PackageFee  float64 `bson:"package_fee" json:"packageFee"`

	TotalPrice float64 `bson:"total_price" json:"totalPrice"`
	TotalHours int     `bson:"total_hours" json:"totalHours"`

	Date      string `bson:"date" json:"date"`            // "YYYY-MM-DD"
	StartTime string `bson:"start_time" json:"startTime"` // "HH:mm"
	EndTime   string `bson:"end_time" json:"endTime"`

	UserID   string        `bson:"user_id" json:"userId"`
	UserName string        `bson:"user_name" json:"userName"`
	UserType RequesterKind `bson:"user_type" json:"userType"`
	Email    string        `bson:"email,omitempty" json:"email,omitempty"` // guest contact

	Status        ReservationStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus     `bson:"payment_status" json:"paymentStatus"`
	PaymentMethod PaymentMethod     `bson:"payment_method" json:"paymentMethod"`

	// External provider transaction id; the webhook's lookup key. Nil for cash.
	PaymentReference *string `bson:"payment_reference" json:"paymentReference"`

	// Staff member who processed payment or cancellation, or HandlerSystem.
	HandledBy string `bson:"handled_by,omitempty" json:"handledBy,omitempty"`

	Notes              string `bson:"notes" json:"notes"`
	CancellationReason string `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`

	DatePaid      *time.Time `bson:"date_paid" json:"datePaid"`
	DateCancelled *time.Time `bson:"date_cancelled" json:"dateCancelled"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updatedAt"`
}
