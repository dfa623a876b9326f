package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reservationRepo "sportify/database/repository/reservation"
	userRepo "sportify/database/repository/user"
	"sportify/models"
	"sportify/services/notification"
	"sportify/services/reservation"
	"sportify/utils"

	"go.uber.org/zap"
)

// WebhookEvent is the inbound provider notification: the payment reference
// and the provider's status for it.
type WebhookEvent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PaymentService drives the online payment flow: session creation against the
// configured provider, and the idempotent confirmation the webhook and the
// manual verify endpoint share.
type PaymentService interface {
	// Initiate creates a payment session for a reservation and records the
	// reference on it.
	Initiate(ctx context.Context, reservationID, guestEmail string) (*Session, error)
	// Confirm transitions the reservation holding the reference to Paid.
	// Replays for an already-paid reservation are a no-op, not an error.
	Confirm(ctx context.Context, reference string) (*models.Reservation, error)
	// HandleWebhook processes a provider event. Unknown references are
	// logged and acknowledged so the provider stops retrying.
	HandleWebhook(ctx context.Context, event WebhookEvent) error
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Reservations reservationRepo.ReservationRepository
	Users        userRepo.UserRepository
	Provider     Provider
	Notifier     notification.NotificationService
	Scheduler    notification.CompletionScheduler
}

func (s *DefaultPaymentService) Initiate(ctx context.Context, reservationID, guestEmail string) (*Session, error) {
	if reservationID == "" {
		return nil, reservation.NewValidationError("reservation id is required")
	}

	res, err := s.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, &reservation.NotFoundError{Resource: "reservation", ID: reservationID}
	}
	if res.Status.IsTerminal() {
		return nil, &reservation.TransitionError{Current: res.Status, Message: "reservation can no longer be paid"}
	}
	if res.PaymentStatus == models.PaymentPaid {
		return nil, &reservation.TransitionError{Current: res.Status, Message: "reservation is already paid"}
	}

	// A guest may only hand over their email at payment time; persist it so
	// the webhook can notify them.
	if guestEmail != "" && strings.Contains(guestEmail, "@") {
		if err := s.Reservations.SetContactEmail(ctx, res.ID, guestEmail); err != nil {
			utils.GetLogger().Warn("could not persist guest email",
				zap.String("reservationID", res.ID), zap.Error(err))
		} else {
			res.Email = guestEmail
		}
	}

	session, err := s.Provider.CreateSession(ctx, res)
	if err != nil {
		return nil, &reservation.PaymentProviderError{Err: err}
	}

	updated, err := s.Reservations.SetPaymentPending(ctx, res.ID, session.Reference, models.MethodOnline, models.HandlerSystem)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &reservation.TransitionError{Current: res.Status, Message: "reservation can no longer be paid"}
	}

	utils.GetLogger().Info("payment session created",
		zap.String("reservationID", res.ID), zap.String("reference", session.Reference))
	return session, nil
}

func (s *DefaultPaymentService) Confirm(ctx context.Context, reference string) (*models.Reservation, error) {
	if reference == "" {
		return nil, reservation.NewValidationError("payment reference is required")
	}

	current, err := s.Reservations.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &reservation.NotFoundError{Resource: "payment reference", ID: reference}
	}

	// Preserve a staff handler if one already processed this reservation.
	handledBy := current.HandledBy
	if handledBy == "" {
		handledBy = models.HandlerSystem
	}

	res, err := s.Reservations.MarkPaidByReference(ctx, reference, handledBy, time.Now())
	if err != nil {
		return nil, err
	}
	if res == nil {
		// Nothing matched the conditional update: the reservation was not
		// Pending anymore. Replay on an already-paid reservation is the
		// expected webhook behavior and must stay silent.
		if current.Status == models.StatusPaid {
			return current, nil
		}
		return nil, &reservation.TransitionError{Current: current.Status, Message: "payment cannot be applied in the reservation's current state"}
	}

	if recipient := s.recipientEmail(ctx, res); recipient != "" {
		if err := s.Notifier.SendPaymentSuccess(ctx, res.EmailSummary(models.EmailPaymentSuccess, recipient)); err != nil {
			utils.GetLogger().Warn("payment success email not dispatched",
				zap.String("reservationID", res.ID), zap.Error(err))
		}
	}
	s.scheduleCompletion(ctx, res)

	utils.GetLogger().Info("reservation marked paid",
		zap.String("reservationID", res.ID), zap.String("reference", reference))
	return res, nil
}

func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, event WebhookEvent) error {
	logger := utils.GetLogger()
	if event.Status != "PAID" {
		logger.Debug("ignoring webhook event", zap.String("id", event.ID), zap.String("status", event.Status))
		return nil
	}

	_, err := s.Confirm(ctx, event.ID)
	if err != nil {
		var notFound *reservation.NotFoundError
		var transition *reservation.TransitionError
		switch {
		case errors.As(err, &notFound):
			// Permanently unmatched event: acknowledge receipt so the
			// provider stops retrying, but keep the trace.
			logger.Warn("webhook references unknown payment", zap.String("reference", event.ID))
			return nil
		case errors.As(err, &transition):
			logger.Warn("webhook payment not applicable", zap.String("reference", event.ID), zap.Error(err))
			return nil
		default:
			return err
		}
	}
	return nil
}

// recipientEmail prefers the reservation's stored contact email, then the
// requester's profile email.
func (s *DefaultPaymentService) recipientEmail(ctx context.Context, res *models.Reservation) string {
	if res.Email != "" {
		return res.Email
	}
	if s.Users == nil || res.UserID == "" {
		return ""
	}
	user, err := s.Users.GetByID(ctx, res.UserID)
	if err != nil || user == nil {
		return ""
	}
	return user.Email
}

func (s *DefaultPaymentService) scheduleCompletion(ctx context.Context, res *models.Reservation) {
	if s.Scheduler == nil {
		return
	}
	at, err := slotEnd(res.Date, res.EndTime)
	if err != nil {
		utils.GetLogger().Warn("cannot schedule auto-completion",
			zap.String("reservationID", res.ID), zap.Error(err))
		return
	}
	if err := s.Scheduler.ScheduleCompletion(ctx, res.ID, at); err != nil {
		utils.GetLogger().Warn("auto-completion not scheduled",
			zap.String("reservationID", res.ID), zap.Error(err))
	}
}

// slotEnd resolves a reservation's date and end time to a wall-clock instant.
func slotEnd(date, endTime string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	minutes, err := utils.ClockToMinutes(endTime)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}
