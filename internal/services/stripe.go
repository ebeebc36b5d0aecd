package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"meditation-mondays/internal/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

// Ticket pricing constants. Amounts are in minor currency units and the
// server-side computation is the only source of truth for pricing.
const (
	EventName        = "Meditation Mondays"
	TicketCurrency   = "usd"
	TicketUnitAmount = 900 // $9 per ticket for the payment element flow

	// The fixed line item used by the plain hosted checkout flow.
	HostedTicketName       = "Yoga Ticket"
	HostedTicketUnitAmount = 1000

	TicketProductID = "prod_TipeQSvjJhKRuz"
)

// StripeConfig represents Stripe payment service configuration
type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	WebhookSecret  string
	PriceID        string
	BaseURL        string
}

// StripeService handles payments via the Stripe API
type StripeService struct {
	config StripeConfig
	api    *client.API
}

// NewStripeService creates a new Stripe payment service
func NewStripeService(config StripeConfig) *StripeService {
	api := &client.API{}
	api.Init(config.SecretKey, nil)

	return &StripeService{
		config: config,
		api:    api,
	}
}

// CreateTicketIntent creates a payment intent for the clamped ticket
// quantity with automatic payment method negotiation enabled.
func (s *StripeService) CreateTicketIntent(req *models.TicketOrderRequest) (*models.PaymentIntentResult, error) {
	quantity := req.NormalizedQuantity()
	amount := int64(quantity) * TicketUnitAmount

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(TicketCurrency),

		// Enables Apple Pay, Google Pay, Link, cards, etc.
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},

		Description: stripe.String(fmt.Sprintf("%s — %d ticket(s)", EventName, quantity)),
	}
	params.AddMetadata("event", EventName)
	params.AddMetadata("tickets", strconv.Itoa(quantity))
	params.AddMetadata("product_id", TicketProductID)

	// Retries with the same key collapse onto one intent at the provider.
	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}
	params.SetIdempotencyKey(key)

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &models.PaymentIntentResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
	}, nil
}

// CreateCheckoutSession creates a hosted checkout session with the fixed
// single-ticket line item. Redirect URLs are derived from redirectBase,
// which callers must have validated against the origin allow-list.
func (s *StripeService) CreateCheckoutSession(redirectBase string) (*models.CheckoutSessionResult, error) {
	if redirectBase == "" {
		redirectBase = s.config.BaseURL
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(TicketCurrency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(HostedTicketName),
					},
					UnitAmount: stripe.Int64(HostedTicketUnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(redirectBase + "/success"),
		CancelURL:  stripe.String(redirectBase + "/cancel"),
	}

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &models.CheckoutSessionResult{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// CreateQuantityCheckoutSession creates a hosted checkout session for the
// clamped quantity against the configured catalog price.
func (s *StripeService) CreateQuantityCheckoutSession(req *models.TicketOrderRequest) (*models.CheckoutSessionResult, error) {
	quantity := req.NormalizedQuantity()

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.config.PriceID),
				Quantity: stripe.Int64(int64(quantity)),
			},
		},
		SuccessURL: stripe.String(s.config.BaseURL + "/success"),
		CancelURL:  stripe.String(s.config.BaseURL + "/cancel"),
	}
	params.AddMetadata("event", EventName)
	params.AddMetadata("tickets", strconv.Itoa(quantity))

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &models.CheckoutSessionResult{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// VerifyWebhookEvent verifies the raw payload bytes against the signature
// header and the pre-shared webhook secret. Verification requires the
// byte-exact body, so callers must not parse the request before this.
func (s *StripeService) VerifyWebhookEvent(payload []byte, signature string) (*models.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.config.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidSignature, err)
	}

	verified := &models.WebhookEvent{
		ID:   event.ID,
		Type: models.WebhookEventType(event.Type),
		Raw:  event.Data.Raw,
	}

	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded, stripe.EventTypePaymentIntentPaymentFailed:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, fmt.Errorf("failed to decode payment intent payload: %w", err)
		}
		verified.IntentID = intent.ID
		verified.Amount = intent.Amount
		if intent.LastPaymentError != nil {
			verified.ErrorMessage = intent.LastPaymentError.Msg
		}
	}

	return verified, nil
}

// PublishableKey returns the key the browser-side SDK is initialized with.
func (s *StripeService) PublishableKey() string {
	return s.config.PublishableKey
}

// ProviderMessage extracts the provider's human-readable message from a
// payment service error, falling back to the plain error text.
func ProviderMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
