package reservation

import (
	"context"
	"time"

	"sportify/models"
	"sportify/utils"

	"go.uber.org/zap"
)

// RequestCancellation is the self-service path for both guests and customers.
// It never touches money: the reservation lands in Cancelling with payment
// status Refund Pending and waits for staff review. Paid reservations are
// allowed here deliberately; the review step is where refunds are decided.
func (s *DefaultBookingService) RequestCancellation(ctx context.Context, id, reason string) (*models.Reservation, error) {
	if reason == "" {
		return nil, NewValidationError("a cancellation reason is required")
	}

	res, err := s.Reservations.RequestCancellation(ctx, id, reason, time.Now())
	if err != nil {
		return nil, err
	}
	if res == nil {
		current, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, &TransitionError{Current: current.Status, Message: "reservation cannot be cancelled from its current state"}
	}

	utils.GetLogger().Info("cancellation requested",
		zap.String("reservationID", res.ID), zap.String("reason", reason))
	return res, nil
}

// ConfirmCancellation finalizes a reviewed cancellation: Cancelling ->
// Cancelled, payment status Refunded, handler recorded, notice dispatched.
func (s *DefaultBookingService) ConfirmCancellation(ctx context.Context, id, handledBy string) (*models.Reservation, error) {
	if handledBy == "" {
		return nil, NewValidationError("a handler id is required to confirm a cancellation")
	}

	res, err := s.Reservations.FinalizeCancellation(ctx, id, handledBy, time.Now())
	if err != nil {
		return nil, err
	}
	if res == nil {
		current, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, &TransitionError{Current: current.Status, Message: "only reservations awaiting review can be finalized"}
	}

	s.dispatchCancellationNotice(ctx, res)
	utils.GetLogger().Info("cancellation confirmed",
		zap.String("reservationID", res.ID), zap.String("handledBy", handledBy))
	return res, nil
}

// DirectCancel lets staff cancel a reservation outright when no refund is
// owed, e.g. a cash booking whose payment was never collected. Reservations
// with collected money must go through the review path instead.
func (s *DefaultBookingService) DirectCancel(ctx context.Context, id, reason, handledBy string) (*models.Reservation, error) {
	if reason == "" {
		return nil, NewValidationError("a cancellation reason is required")
	}
	if handledBy == "" {
		return nil, NewValidationError("a handler id is required")
	}

	res, err := s.Reservations.DirectCancel(ctx, id, reason, handledBy, time.Now())
	if err != nil {
		return nil, err
	}
	if res == nil {
		current, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.PaymentStatus == models.PaymentPaid {
			return nil, &TransitionError{Current: current.Status, Message: "paid reservations require the cancellation review flow"}
		}
		return nil, &TransitionError{Current: current.Status, Message: "reservation cannot be cancelled from its current state"}
	}

	s.dispatchCancellationNotice(ctx, res)
	utils.GetLogger().Info("reservation cancelled directly",
		zap.String("reservationID", res.ID), zap.String("handledBy", handledBy))
	return res, nil
}

func (s *DefaultBookingService) dispatchCancellationNotice(ctx context.Context, res *models.Reservation) {
	recipient := s.recipientEmail(ctx, res)
	if recipient == "" {
		return
	}
	payload := res.EmailSummary(models.EmailCancellationNotice, recipient)
	payload.Reason = res.CancellationReason
	if err := s.Notifier.SendCancellationNotice(ctx, payload); err != nil {
		utils.GetLogger().Warn("cancellation email not dispatched",
			zap.String("reservationID", res.ID), zap.Error(err))
	}
}

// recipientEmail prefers the contact email stored on the reservation, falling
// back to the requester's profile email for registered users.
func (s *DefaultBookingService) recipientEmail(ctx context.Context, res *models.Reservation) string {
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
