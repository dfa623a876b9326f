package payment

import (
	"context"

	"sportify/models"
)

// Session is a created payment session. Reference is the provider transaction
// id recorded on the reservation and later matched by the webhook;
// RedirectURL is empty for embedded flows.
type Session struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// Provider creates payment sessions with an external (or local) payment
// processor. One provider is active per deployment, selected by config.
type Provider interface {
	CreateSession(ctx context.Context, res *models.Reservation) (*Session, error)
}
