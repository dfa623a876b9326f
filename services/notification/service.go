package notification

import (
	"context"
	"fmt"
	"time"

	"sportify/models"
	"sportify/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultNotificationService queues emails onto asynq; the worker in cron/
// performs the actual SMTP delivery so request handlers never block on a mail
// server.
type DefaultNotificationService struct {
	Client *asynq.Client
}

func (s *DefaultNotificationService) enqueue(ctx context.Context, payload models.EmailPayload) error {
	if payload.To == "" {
		return fmt.Errorf("no recipient for %s email on reservation %s", payload.Kind, payload.ReservationID)
	}
	task, err := NewEmailTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build email task: %w", err)
	}
	info, err := s.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	if err != nil {
		return fmt.Errorf("failed to enqueue %s email: %w", payload.Kind, err)
	}
	utils.GetLogger().Debug("email queued",
		zap.String("kind", string(payload.Kind)),
		zap.String("reservationID", payload.ReservationID),
		zap.String("taskID", info.ID))
	return nil
}

func (s *DefaultNotificationService) SendBookingConfirmation(ctx context.Context, payload models.EmailPayload) error {
	payload.Kind = models.EmailBookingConfirmation
	return s.enqueue(ctx, payload)
}

func (s *DefaultNotificationService) SendPaymentSuccess(ctx context.Context, payload models.EmailPayload) error {
	payload.Kind = models.EmailPaymentSuccess
	return s.enqueue(ctx, payload)
}

func (s *DefaultNotificationService) SendCancellationNotice(ctx context.Context, payload models.EmailPayload) error {
	payload.Kind = models.EmailCancellationNotice
	return s.enqueue(ctx, payload)
}

// ScheduleCompletion queues the deferred task that moves a paid reservation
// to Completed once its booked window has passed.
func (s *DefaultNotificationService) ScheduleCompletion(ctx context.Context, reservationID string, at time.Time) error {
	task, err := NewCompletionTask(reservationID)
	if err != nil {
		return fmt.Errorf("failed to build completion task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, asynq.ProcessAt(at), asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("failed to schedule completion for %s: %w", reservationID, err)
	}
	return nil
}
