package reservation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	reservationRepo "sportify/database/repository/reservation"
	"sportify/models"
	"sportify/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// memFacilityRepo is an in-memory facility catalog for tests.
type memFacilityRepo struct {
	facilities map[string]*models.Facility
}

func (r *memFacilityRepo) GetByID(ctx context.Context, id string) (*models.Facility, error) {
	f, ok := r.facilities[id]
	if !ok {
		return nil, nil
	}
	copied := *f
	return &copied, nil
}

func (r *memFacilityRepo) GetAll(ctx context.Context) ([]models.Facility, error) {
	var out []models.Facility
	for _, f := range r.facilities {
		out = append(out, *f)
	}
	return out, nil
}

// memReservationRepo mirrors the Mongo repository's conditional-update
// contract: transitions return (nil, nil) when the precondition fails, and
// hour-bucket claims make concurrent overlapping creates fail.
type memReservationRepo struct {
	mu     sync.Mutex
	items  map[string]*models.Reservation
	claims map[string]string // "facility|date|hour" -> reservation id
}

func newMemReservationRepo() *memReservationRepo {
	return &memReservationRepo{
		items:  make(map[string]*models.Reservation),
		claims: make(map[string]string),
	}
}

func claimKey(facilityID, date string, hour int) string {
	return fmt.Sprintf("%s|%s|%d", facilityID, date, hour)
}

func (r *memReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Status.IsActive() {
		hours, err := utils.HourRange(res.StartTime, res.EndTime)
		if err != nil {
			return err
		}
		for _, h := range hours {
			if _, taken := r.claims[claimKey(res.FacilityID, res.Date, h)]; taken {
				return reservationRepo.ErrSlotTaken
			}
		}
		for _, h := range hours {
			r.claims[claimKey(res.FacilityID, res.Date, h)] = res.ID
		}
	}
	copied := *res
	r.items[res.ID] = &copied
	return nil
}

func (r *memReservationRepo) releaseLocked(res *models.Reservation) {
	for key, id := range r.claims {
		if id == res.ID {
			delete(r.claims, key)
		}
	}
}

func (r *memReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *res
	return &copied, nil
}

func (r *memReservationRepo) GetByReference(ctx context.Context, reference string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.items {
		if res.PaymentReference != nil && *res.PaymentReference == reference {
			copied := *res
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memReservationRepo) FindByFacilityAndDate(ctx context.Context, facilityID, date string, statusIn []models.ReservationStatus) ([]models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reservation
	for _, res := range r.items {
		if res.FacilityID != facilityID || res.Date != date {
			continue
		}
		for _, s := range statusIn {
			if res.Status == s {
				out = append(out, *res)
				break
			}
		}
	}
	return out, nil
}

func (r *memReservationRepo) GetAll(ctx context.Context) ([]models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reservation
	for _, res := range r.items {
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *memReservationRepo) SetPaymentPending(ctx context.Context, id, reference string, method models.PaymentMethod, handledBy string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok || res.Status != models.StatusPending {
		return nil, nil
	}
	res.PaymentReference = &reference
	res.PaymentMethod = method
	res.HandledBy = handledBy
	res.UpdatedAt = time.Now()
	copied := *res
	return &copied, nil
}

func (r *memReservationRepo) SetContactEmail(ctx context.Context, id, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.items[id]; ok {
		res.Email = email
	}
	return nil
}

func (r *memReservationRepo) MarkPaidByReference(ctx context.Context, reference, handledBy string, paidAt time.Time) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.items {
		if res.PaymentReference == nil || *res.PaymentReference != reference {
			continue
		}
		if res.Status != models.StatusPending {
			return nil, nil
		}
		res.Status = models.StatusPaid
		res.PaymentStatus = models.PaymentPaid
		res.HandledBy = handledBy
		res.DatePaid = &paidAt
		res.UpdatedAt = paidAt
		copied := *res
		return &copied, nil
	}
	return nil, nil
}

func (r *memReservationRepo) RequestCancellation(ctx context.Context, id, reason string, at time.Time) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok || !res.Status.IsActive() {
		return nil, nil
	}
	res.Status = models.StatusCancelling
	res.PaymentStatus = models.PaymentRefundPending
	res.CancellationReason = reason
	res.UpdatedAt = at
	r.releaseLocked(res)
	copied := *res
	return &copied, nil
}

func (r *memReservationRepo) FinalizeCancellation(ctx context.Context, id, handledBy string, at time.Time) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok || res.Status != models.StatusCancelling {
		return nil, nil
	}
	res.Status = models.StatusCancelled
	res.PaymentStatus = models.PaymentRefunded
	res.HandledBy = handledBy
	res.DateCancelled = &at
	res.UpdatedAt = at
	copied := *res
	return &copied, nil
}

func (r *memReservationRepo) DirectCancel(ctx context.Context, id, reason, handledBy string, at time.Time) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok || res.Status.IsTerminal() || res.PaymentStatus == models.PaymentPaid {
		return nil, nil
	}
	res.Status = models.StatusCancelled
	res.CancellationReason = reason
	res.HandledBy = handledBy
	res.DateCancelled = &at
	res.UpdatedAt = at
	r.releaseLocked(res)
	copied := *res
	return &copied, nil
}

func (r *memReservationRepo) MarkCompleted(ctx context.Context, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok || res.Status != models.StatusPaid {
		return nil, nil
	}
	res.Status = models.StatusCompleted
	res.UpdatedAt = time.Now()
	r.releaseLocked(res)
	copied := *res
	return &copied, nil
}

func (r *memReservationRepo) UpdateFields(ctx context.Context, id string, fields bson.M, notIn []models.ReservationStatus) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	for _, blocked := range notIn {
		if res.Status == blocked {
			return nil, nil
		}
	}
	for key, value := range fields {
		switch key {
		case "status":
			res.Status = value.(models.ReservationStatus)
		case "payment_status":
			res.PaymentStatus = value.(models.PaymentStatus)
		case "notes":
			res.Notes = value.(string)
		case "handled_by":
			res.HandledBy = value.(string)
		}
	}
	if !res.Status.IsActive() {
		r.releaseLocked(res)
	}
	res.UpdatedAt = time.Now()
	copied := *res
	return &copied, nil
}

func (r *memReservationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.items[id]; ok {
		r.releaseLocked(res)
		delete(r.items, id)
	}
	return nil
}

// memUserRepo resolves requester ids for email fallback.
type memUserRepo struct {
	users map[string]*models.User
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

// recordingNotifier captures dispatched emails instead of queueing them.
type recordingNotifier struct {
	sent []models.EmailPayload
}

func (n *recordingNotifier) SendBookingConfirmation(ctx context.Context, payload models.EmailPayload) error {
	payload.Kind = models.EmailBookingConfirmation
	n.sent = append(n.sent, payload)
	return nil
}

func (n *recordingNotifier) SendPaymentSuccess(ctx context.Context, payload models.EmailPayload) error {
	payload.Kind = models.EmailPaymentSuccess
	n.sent = append(n.sent, payload)
	return nil
}

func (n *recordingNotifier) SendCancellationNotice(ctx context.Context, payload models.EmailPayload) error {
	payload.Kind = models.EmailCancellationNotice
	n.sent = append(n.sent, payload)
	return nil
}

func (n *recordingNotifier) kinds() []models.EmailKind {
	var out []models.EmailKind
	for _, p := range n.sent {
		out = append(out, p.Kind)
	}
	return out
}

func testFacility() *models.Facility {
	return &models.Facility{
		ID:              "F001",
		Name:            "Center Court",
		Category:        "Basketball",
		OpenTime:        "08:00",
		CloseTime:       "22:00",
		MinBookingHours: 1,
		Available:       true,
		PricingPackages: []models.PricingPackage{
			{Name: "Standard", FeePerHour: 500},
			{Name: "Full Court", FeePerHour: 900},
		},
	}
}

func newTestService() (*DefaultBookingService, *memReservationRepo, *recordingNotifier) {
	reservations := newMemReservationRepo()
	notifier := &recordingNotifier{}
	svc := &DefaultBookingService{
		Facilities:   &memFacilityRepo{facilities: map[string]*models.Facility{"F001": testFacility()}},
		Reservations: reservations,
		Users: &memUserRepo{users: map[string]*models.User{
			"U100": {ID: "U100", Name: "Alex Reyes", Email: "alex@example.com"},
		}},
		Notifier: notifier,
	}
	return svc, reservations, notifier
}

func userInput() CreateInput {
	return CreateInput{
		FacilityID:  "F001",
		PackageName: "Standard",
		Date:        "2026-09-12",
		StartTime:   "10:00",
		EndTime:     "12:00",
		Requester: models.Requester{
			Kind: models.RequesterUser,
			ID:   "U100",
			Name: "Alex Reyes",
		},
	}
}
