// Package billing wraps the payment provider. Two tracks exist: off-session
// PaymentIntents for Corporate-OB per-message fees and Checkout sessions for
// credit pack top-ups. Idempotency and retries are the provider's problem;
// we only record the returned status.
package billing

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// ChargeResult reports the provider's view of a charge attempt.
type ChargeResult struct {
	ProviderID string
	Status     string
	Succeeded  bool
}

// CheckoutResult carries the redirect URL and session id for a top-up.
type CheckoutResult struct {
	SessionID string
	URL       string
}

// CheckoutState is the polled status of a completed (or not) session.
type CheckoutState struct {
	Paid    bool
	UserID  string
	Pack    string
	Credits int
}

// Provider is the payment surface the domain services depend on.
type Provider interface {
	ChargeMessage(customerID, paymentMethodID string, amountJPY int64, description string) (*ChargeResult, error)
	CreateCheckoutSession(userID, pack string, credits int, priceJPY int64) (*CheckoutResult, error)
	GetCheckoutSession(sessionID string) (*CheckoutState, error)
}

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	successURL string
	cancelURL  string
}

// NewStripeProvider sets the global API key and returns the provider.
func NewStripeProvider(secretKey, successURL, cancelURL string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{successURL: successURL, cancelURL: cancelURL}
}

// ChargeMessage creates and confirms an off-session PaymentIntent against a
// stored payment method.
func (p *StripeProvider) ChargeMessage(customerID, paymentMethodID string, amountJPY int64, description string) (*ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountJPY),
		Currency:      stripe.String(string(stripe.CurrencyJPY)),
		Customer:      stripe.String(customerID),
		PaymentMethod: stripe.String(paymentMethodID),
		Description:   stripe.String(description),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &ChargeResult{
		ProviderID: pi.ID,
		Status:     string(pi.Status),
		Succeeded:  pi.Status == stripe.PaymentIntentStatusSucceeded,
	}, nil
}

// CreateCheckoutSession opens a hosted checkout for a credit pack. The user
// id and pack ride along as metadata so crediting can be verified later.
func (p *StripeProvider) CreateCheckoutSession(userID, pack string, credits int, priceJPY int64) (*CheckoutResult, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(p.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyJPY)),
					UnitAmount: stripe.Int64(priceJPY),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%d credits (%s pack)", credits, pack)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("pack", pack)
	params.AddMetadata("credits", fmt.Sprintf("%d", credits))

	sess, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// GetCheckoutSession polls a session and reads back the crediting metadata.
func (p *StripeProvider) GetCheckoutSession(sessionID string) (*CheckoutState, error) {
	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return nil, err
	}

	state := &CheckoutState{
		Paid:   sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		UserID: sess.Metadata["user_id"],
		Pack:   sess.Metadata["pack"],
	}
	if c := sess.Metadata["credits"]; c != "" {
		if _, err := fmt.Sscanf(c, "%d", &state.Credits); err != nil {
			return nil, fmt.Errorf("bad credits metadata %q: %w", c, err)
		}
	}
	return state, nil
}
