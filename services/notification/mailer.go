package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"sportify/config"
	"sportify/models"
	"sportify/utils"

	"go.uber.org/zap"
)

// Mailer sends a rendered reservation email.
type Mailer interface {
	Send(payload models.EmailPayload) error
}

// SMTPMailer delivers mail over plain-auth SMTP. When SMTP is not configured
// it logs the message instead of failing, which keeps development setups
// working without a mail account.
type SMTPMailer struct{}

func (m *SMTPMailer) Send(payload models.EmailPayload) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" || cfg.SMTPPort == "" || cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		utils.GetLogger().Info("[MOCK EMAIL]",
			zap.String("kind", string(payload.Kind)),
			zap.String("to", payload.To),
			zap.String("reservationID", payload.ReservationID))
		return nil
	}

	subject, body := renderEmail(payload)

	from := fmt.Sprintf("%s <%s>", cfg.SMTPFromName, cfg.SMTPUsername)
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + payload.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	if err := smtp.SendMail(addr, auth, cfg.SMTPUsername, []string{payload.To}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

func renderEmail(p models.EmailPayload) (subject, body string) {
	summary := fmt.Sprintf(
		"Reservation: %s\nFacility: %s\nDate: %s\nTime: %s - %s\nTotal: %.2f",
		p.ReservationID, p.FacilityName, p.Date, p.StartTime, p.EndTime, p.TotalPrice,
	)

	switch p.Kind {
	case models.EmailBookingConfirmation:
		subject = "Your reservation is confirmed"
		body = fmt.Sprintf("Hi %s,\n\nYour reservation has been received.\n\n%s\n\nPlease settle payment to secure your slot.", p.UserName, summary)
	case models.EmailPaymentSuccess:
		subject = "Payment received"
		body = fmt.Sprintf("Hi %s,\n\nWe have received your payment. See you there!\n\n%s", p.UserName, summary)
	case models.EmailCancellationNotice:
		subject = "Your reservation has been cancelled"
		body = fmt.Sprintf("Hi %s,\n\nYour reservation has been cancelled.\nReason: %s\n\n%s", p.UserName, p.Reason, summary)
	default:
		subject = "Reservation update"
		body = summary
	}
	return subject, body
}
