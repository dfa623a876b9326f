package notification

import (
	"context"
	"time"

	"sportify/models"
)

// NotificationService dispatches reservation emails. Dispatch is
// fire-and-forget: callers log a returned error and move on, a failed email
// never fails the operation that triggered it.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, payload models.EmailPayload) error
	SendPaymentSuccess(ctx context.Context, payload models.EmailPayload) error
	SendCancellationNotice(ctx context.Context, payload models.EmailPayload) error
}

// CompletionScheduler defers the auto-completion of a paid reservation to the
// end of its booked window.
type CompletionScheduler interface {
	ScheduleCompletion(ctx context.Context, reservationID string, at time.Time) error
}
