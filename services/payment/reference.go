package payment

import (
	"context"
	"fmt"
	"time"

	"sportify/models"
)

// ReferenceProvider implements the embedded flow: no external processor, the
// platform mints its own payment reference and the client's payment widget
// reports back through the verify endpoint.
type ReferenceProvider struct{}

func (p *ReferenceProvider) CreateSession(ctx context.Context, res *models.Reservation) (*Session, error) {
	return &Session{Reference: fmt.Sprintf("PAY%d", time.Now().UnixMilli())}, nil
}
