package reservation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	facilityRepo "sportify/database/repository/facility"
	reservationRepo "sportify/database/repository/reservation"
	userRepo "sportify/database/repository/user"
	"sportify/models"
	"sportify/services/notification"
	"sportify/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService on top of the facility
// catalog and the reservation store.
type DefaultBookingService struct {
	Facilities   facilityRepo.FacilityRepository
	Reservations reservationRepo.ReservationRepository
	Users        userRepo.UserRepository
	Notifier     notification.NotificationService
}

// newReservationID generates a time-prefixed id so listings sorted by id stay
// roughly chronological, matching the store's historical id shape. The random
// suffix keeps two creations in the same millisecond from colliding.
func newReservationID(now time.Time) string {
	return fmt.Sprintf("R%d%04d", now.UnixMilli(), rand.Intn(10000))
}

// ValidateAndCreate is the single booking entry point. Validation order is
// fixed: required fields, facility existence, package/price, operating hours,
// overlap. Each stage fails with its own error kind.
func (s *DefaultBookingService) ValidateAndCreate(ctx context.Context, input CreateInput) (*models.Reservation, error) {
	logger := utils.GetLogger()

	if err := validateRequired(&input); err != nil {
		return nil, err
	}

	facility, err := s.Facilities.GetByID(ctx, input.FacilityID)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, &NotFoundError{Resource: "facility", ID: input.FacilityID}
	}
	// Staff can still book a facility switched off for maintenance; the
	// public paths cannot.
	if !facility.Available && input.Requester.Kind != models.RequesterStaff {
		return nil, NewValidationError("facility %s is currently unavailable for booking", facility.Name)
	}

	pkg, ok := facility.Package(input.PackageName)
	if !ok {
		return nil, &NotFoundError{Resource: "pricing package", ID: input.PackageName}
	}

	startMin, err := utils.ClockToMinutes(input.StartTime)
	if err != nil {
		return nil, NewValidationError("invalid start time %q", input.StartTime)
	}
	endMin, err := utils.ClockToMinutes(input.EndTime)
	if err != nil {
		return nil, NewValidationError("invalid end time %q", input.EndTime)
	}
	openMin, err := utils.ClockToMinutes(facility.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("facility %s has malformed open time %q: %w", facility.ID, facility.OpenTime, err)
	}
	closeMin, err := utils.ClockToMinutes(facility.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("facility %s has malformed close time %q: %w", facility.ID, facility.CloseTime, err)
	}

	if startMin >= endMin || startMin < openMin || endMin > closeMin {
		return nil, &OutOfHoursError{
			Start: input.StartTime, End: input.EndTime,
			Open: facility.OpenTime, Close: facility.CloseTime,
		}
	}

	totalHours := int(math.Ceil(float64(endMin-startMin) / 60.0))
	if totalHours < facility.MinBookingHours {
		return nil, NewValidationError("bookings at %s must be at least %d hour(s)", facility.Name, facility.MinBookingHours)
	}
	totalPrice := float64(totalHours) * pkg.FeePerHour

	// The price is computed here, from the catalog fee. Client-supplied
	// totals are only accepted when they agree.
	if input.TotalPrice != 0 && math.Abs(input.TotalPrice-totalPrice) > 0.01 {
		return nil, NewValidationError("total price mismatch: expected %.2f for %d hour(s) at %.2f/hr", totalPrice, totalHours, pkg.FeePerHour)
	}
	if input.TotalHours != 0 && input.TotalHours != totalHours {
		return nil, NewValidationError("total hours mismatch: expected %d", totalHours)
	}

	// Overlap pre-check so conflicts can name the colliding window. The
	// store's slot-claim unique index closes the remaining race.
	existing, err := s.Reservations.FindByFacilityAndDate(ctx, facility.ID, input.Date, models.ActiveStatuses)
	if err != nil {
		return nil, err
	}
	if conflict := findOverlap(existing, startMin, endMin); conflict != nil {
		return nil, &SlotConflictError{
			Start: input.StartTime, End: input.EndTime,
			ConflictStart: conflict.StartTime, ConflictEnd: conflict.EndTime,
		}
	}

	now := time.Now()
	res := buildReservation(input, facility, pkg, totalHours, totalPrice, now)

	if err := s.Reservations.Create(ctx, res); err != nil {
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			// Lost the race after the pre-check passed; re-read to name the
			// winner's window if we can.
			return nil, s.conflictAfterRace(ctx, facility.ID, input, startMin, endMin)
		}
		return nil, err
	}

	if res.Email != "" {
		if err := s.Notifier.SendBookingConfirmation(ctx, res.EmailSummary(models.EmailBookingConfirmation, res.Email)); err != nil {
			logger.Warn("booking confirmation email not dispatched",
				zap.String("reservationID", res.ID), zap.Error(err))
		}
	}

	logger.Info("reservation created",
		zap.String("reservationID", res.ID),
		zap.String("facilityID", res.FacilityID),
		zap.String("date", res.Date),
		zap.String("window", res.StartTime+"-"+res.EndTime))
	return res, nil
}

func validateRequired(input *CreateInput) error {
	switch {
	case input.FacilityID == "":
		return NewValidationError("facility id is required")
	case input.PackageName == "":
		return NewValidationError("package name is required")
	case input.Date == "":
		return NewValidationError("date is required")
	case input.StartTime == "" || input.EndTime == "":
		return NewValidationError("start and end time are required")
	case input.Requester.Name == "":
		return NewValidationError("requester name is required")
	}

	switch input.Requester.Kind {
	case models.RequesterGuest:
		if input.Requester.Email == "" {
			return NewValidationError("guest reservations require a contact email")
		}
		if input.Requester.ID == "" {
			input.Requester.ID = "G-" + uuid.New().String()
		}
	case models.RequesterUser, models.RequesterStaff:
		if input.Requester.ID == "" {
			return NewValidationError("requester id is required")
		}
	default:
		return NewValidationError("unknown requester kind %q", input.Requester.Kind)
	}

	if input.Status != "" && input.Status != models.StatusPending && input.Status != models.StatusPaid {
		return NewValidationError("a reservation can only be created as Pending or Paid")
	}
	if input.Status == models.StatusPaid && input.Requester.Kind != models.RequesterStaff {
		return NewValidationError("only staff-assisted bookings may start as Paid")
	}
	return nil
}

// findOverlap returns the first active reservation whose [start,end) interval
// intersects the requested one.
func findOverlap(existing []models.Reservation, startMin, endMin int) *models.Reservation {
	for i := range existing {
		other := &existing[i]
		otherStart, err := utils.ClockToMinutes(other.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := utils.ClockToMinutes(other.EndTime)
		if err != nil {
			continue
		}
		if startMin < otherEnd && endMin > otherStart {
			return other
		}
	}
	return nil
}

func (s *DefaultBookingService) conflictAfterRace(ctx context.Context, facilityID string, input CreateInput, startMin, endMin int) error {
	existing, err := s.Reservations.FindByFacilityAndDate(ctx, facilityID, input.Date, models.ActiveStatuses)
	if err == nil {
		if conflict := findOverlap(existing, startMin, endMin); conflict != nil {
			return &SlotConflictError{
				Start: input.StartTime, End: input.EndTime,
				ConflictStart: conflict.StartTime, ConflictEnd: conflict.EndTime,
			}
		}
	}
	return &SlotConflictError{Start: input.StartTime, End: input.EndTime}
}

func buildReservation(input CreateInput, facility *models.Facility, pkg models.PricingPackage, totalHours int, totalPrice float64, now time.Time) *models.Reservation {
	status := input.Status
	if status == "" {
		status = models.StatusPending
	}
	paymentStatus := models.PaymentPending
	if status == models.StatusPaid {
		paymentStatus = models.PaymentPaid
	}
	method := input.PaymentMethod
	if method == "" {
		method = models.MethodOnline
	}

	res := &models.Reservation{
		ID:           newReservationID(now),
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		Image:        facility.Image,
		Category:     facility.Category,

		PackageName: pkg.Name,
		PackageFee:  pkg.FeePerHour,
		TotalPrice:  totalPrice,
		TotalHours:  totalHours,

		Date:      input.Date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,

		UserID:   input.Requester.ID,
		UserName: input.Requester.Name,
		UserType: input.Requester.Kind,
		Email:    input.Requester.Email,

		Status:        status,
		PaymentStatus: paymentStatus,
		PaymentMethod: method,
		HandledBy:     input.HandledBy,
		Notes:         input.Notes,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == models.StatusPaid {
		paid := now
		res.DatePaid = &paid
	}
	return res
}

func (s *DefaultBookingService) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, &NotFoundError{Resource: "reservation", ID: id}
	}
	return res, nil
}

func (s *DefaultBookingService) GetAll(ctx context.Context) ([]models.Reservation, error) {
	return s.Reservations.GetAll(ctx)
}

// Edit applies a staff patch. Status changes go through the transition table;
// terminal reservations reject any status-mutating edit.
func (s *DefaultBookingService) Edit(ctx context.Context, input EditInput) (*models.Reservation, error) {
	if input.ReservationID == "" {
		return nil, NewValidationError("reservation id is required")
	}

	current, err := s.GetByID(ctx, input.ReservationID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}
	if input.PaymentStatus != nil {
		fields["payment_status"] = *input.PaymentStatus
	}
	if input.HandledBy != "" {
		fields["handled_by"] = input.HandledBy
	}

	var guard []models.ReservationStatus
	if input.Status != nil && *input.Status != current.Status {
		if current.Status.IsTerminal() {
			return nil, &TransitionError{Current: current.Status, Message: "reservation can no longer be modified"}
		}
		if !current.Status.CanTransition(*input.Status) {
			return nil, &TransitionError{
				Current: current.Status,
				Message: fmt.Sprintf("cannot move reservation to %s", *input.Status),
			}
		}
		fields["status"] = *input.Status
		// Guard against a concurrent transition between the read and the
		// write: refuse if the document reached a terminal state meanwhile.
		guard = []models.ReservationStatus{models.StatusCancelled, models.StatusCompleted}
	}
	if len(fields) == 0 {
		return current, nil
	}

	updated, err := s.Reservations.UpdateFields(ctx, input.ReservationID, fields, guard)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &TransitionError{Current: current.Status, Message: "reservation changed state concurrently, edit not applied"}
	}
	return updated, nil
}

func (s *DefaultBookingService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Reservations.Delete(ctx, id)
}

// Complete marks a paid reservation Completed; used by the deferred
// auto-completion worker and by staff tooling.
func (s *DefaultBookingService) Complete(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.Reservations.MarkCompleted(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		current, err := s.Reservations.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, &NotFoundError{Resource: "reservation", ID: id}
		}
		if current.Status == models.StatusCompleted {
			return current, nil // already done, idempotent
		}
		return nil, &TransitionError{Current: current.Status, Message: "only paid reservations can be completed"}
	}
	return res, nil
}
