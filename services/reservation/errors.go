package reservation

import (
	"fmt"

	"sportify/models"
)

// ValidationError reports missing or malformed input the caller can fix.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing facility, reservation or payment reference.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// OutOfHoursError reports a requested window outside the facility's operating
// hours. The message cites the facility's actual hours.
type OutOfHoursError struct {
	Start, End  string
	Open, Close string
}

func (e *OutOfHoursError) Error() string {
	return fmt.Sprintf("the requested time (%s - %s) is outside the facility's operating hours (%s - %s)",
		e.Start, e.End, e.Open, e.Close)
}

// SlotConflictError reports an overlap with an existing booking, naming the
// conflicting window so the caller can pick a different time.
type SlotConflictError struct {
	Start, End                 string
	ConflictStart, ConflictEnd string
}

func (e *SlotConflictError) Error() string {
	if e.ConflictStart == "" {
		return "the selected time slot is already booked, please choose a different time"
	}
	return fmt.Sprintf("the selected time slot conflicts with an existing booking from %s to %s",
		e.ConflictStart, e.ConflictEnd)
}

// TransitionError reports an attempt to move a reservation somewhere its
// current lifecycle state does not allow.
type TransitionError struct {
	Current models.ReservationStatus
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s (current status: %s)", e.Message, e.Current)
}

// PaymentProviderError wraps a failure from the external payment provider.
// These are retryable and surfaced to the caller as "try again later".
type PaymentProviderError struct {
	Err error
}

func (e *PaymentProviderError) Error() string {
	return fmt.Sprintf("payment provider error: %v", e.Err)
}

func (e *PaymentProviderError) Unwrap() error { return e.Err }
