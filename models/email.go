package models

// EmailKind selects the template an outgoing reservation email uses.
type EmailKind string

const (
	EmailBookingConfirmation EmailKind = "booking_confirmation"
	EmailPaymentSuccess      EmailKind = "payment_success"
	EmailCancellationNotice  EmailKind = "cancellation_notice"
)

// EmailPayload is the queued payload for a reservation email. It carries a
// snapshot of the reservation summary so the worker never has to re-read the
// store to render the message.
type EmailPayload struct {
	Kind          EmailKind `json:"kind"`
	To            string    `json:"to"`
	ReservationID string    `json:"reservationId"`
	FacilityName  string    `json:"facilityName"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	TotalPrice    float64   `json:"totalPrice"`
	UserName      string    `json:"userName"`
	Reason        string    `json:"reason,omitempty"`
}

// EmailSummary builds the email payload for a reservation.
func (r *Reservation) EmailSummary(kind EmailKind, to string) EmailPayload {
	return EmailPayload{
		Kind:          kind,
		To:            to,
		ReservationID: r.ID,
		FacilityName:  r.FacilityName,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		TotalPrice:    r.TotalPrice,
		UserName:      r.UserName,
	}
}
