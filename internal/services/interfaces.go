package services

import (
	"meditation-mondays/internal/models"
)

// PaymentServiceInterface defines the interface for payment provider services
type PaymentServiceInterface interface {
	// CreateTicketIntent creates a payment intent for the requested ticket
	// quantity. Each call creates a distinct intent unless the same
	// idempotency key is supplied.
	CreateTicketIntent(req *models.TicketOrderRequest) (*models.PaymentIntentResult, error)

	// CreateCheckoutSession creates a hosted checkout session with the
	// fixed single-ticket line item. redirectBase must already be a
	// trusted URL prefix for the success/cancel redirects.
	CreateCheckoutSession(redirectBase string) (*models.CheckoutSessionResult, error)

	// CreateQuantityCheckoutSession creates a hosted checkout session for
	// the requested quantity against the configured catalog price.
	CreateQuantityCheckoutSession(req *models.TicketOrderRequest) (*models.CheckoutSessionResult, error)

	// VerifyWebhookEvent verifies the raw webhook payload against the
	// signature header and returns the decoded event. A verification
	// failure wraps models.ErrInvalidSignature.
	VerifyWebhookEvent(payload []byte, signature string) (*models.WebhookEvent, error)

	// PublishableKey returns the client-side SDK key embedded in pages.
	PublishableKey() string
}

// WebhookLedgerInterface tracks processed webhook event IDs so at-least-once
// deliveries are handled exactly once. Retention is bounded.
type WebhookLedgerInterface interface {
	// MarkProcessed records the event ID and reports whether it was newly
	// recorded. A false result means the event was already handled.
	MarkProcessed(eventID string, eventType string) (bool, error)
}
