package payment

import (
	"context"
	"fmt"
	"math"

	"sportify/config"
	"sportify/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeProvider implements Provider with Stripe hosted checkout: the caller
// is redirected to Stripe's payment page and the webhook reports the outcome.
type StripeProvider struct{}

func (p *StripeProvider) CreateSession(ctx context.Context, res *models.Reservation) (*Session, error) {
	cfg := config.AppConfig

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(cfg.PaymentSuccessURL),
		CancelURL:         stripe.String(cfg.PaymentFailureURL),
		ClientReferenceID: stripe.String(res.ID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(cfg.PaymentCurrency),
					UnitAmount: stripe.Int64(int64(math.Round(res.TotalPrice * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Reservation %s at %s (%s %s-%s)",
							res.ID, res.FacilityName, res.Date, res.StartTime, res.EndTime)),
					},
				},
			},
		},
	}
	if res.Email != "" {
		params.CustomerEmail = stripe.String(res.Email)
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &Session{Reference: sess.ID, RedirectURL: sess.URL}, nil
}
