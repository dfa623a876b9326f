package notification

import (
	"encoding/json"

	"sportify/models"

	"github.com/hibiken/asynq"
)

const (
	// TypeEmailSend delivers a queued reservation email.
	TypeEmailSend = "email:send"
	// TypeReservationComplete marks a paid reservation Completed once its
	// booked window has passed.
	TypeReservationComplete = "reservation:complete"
)

// NewEmailTask builds the asynq task carrying an email payload.
func NewEmailTask(payload models.EmailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailSend, b), nil
}

// CompletionPayload schedules the auto-completion of a paid reservation.
type CompletionPayload struct {
	ReservationID string `json:"reservationId"`
}

// NewCompletionTask builds the deferred auto-completion task.
func NewCompletionTask(reservationID string) (*asynq.Task, error) {
	b, err := json.Marshal(CompletionPayload{ReservationID: reservationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReservationComplete, b), nil
}
