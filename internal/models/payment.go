package models

import "encoding/json"

// PaymentIntentResult is the outcome of creating a payment intent. The
// client secret is returned to the browser once and never persisted.
type PaymentIntentResult struct {
	IntentID     string `json:"-"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"-"`
	Currency     string `json:"-"`
}

// CheckoutSessionResult is the outcome of creating a hosted checkout
// session. The browser follows URL to the provider-hosted page.
type CheckoutSessionResult struct {
	SessionID string `json:"-"`
	URL       string `json:"url"`
}

// WebhookEventType identifies a provider webhook event.
type WebhookEventType string

const (
	WebhookPaymentSucceeded WebhookEventType = "payment_intent.succeeded"
	WebhookPaymentFailed    WebhookEventType = "payment_intent.payment_failed"
)

// WebhookEvent is a signature-verified provider event. IntentID, Amount,
// and ErrorMessage are populated only for the payment intent event types;
// Raw carries the event object for anything else.
type WebhookEvent struct {
	ID           string
	Type         WebhookEventType
	IntentID     string
	Amount       int64
	ErrorMessage string
	Raw          json.RawMessage
}
