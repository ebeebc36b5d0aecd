package services

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"meditation-mondays/internal/models"
)

// MockPaymentService simulates the payment provider. It is used when no
// Stripe credentials are configured so the site still runs locally, and by
// handler tests that need deterministic provider behavior.
type MockPaymentService struct {
	counter atomic.Int64

	// FailWith, when set, is returned by every creation call.
	FailWith error
	// RejectSignature makes VerifyWebhookEvent fail as if the signature
	// check did.
	RejectSignature bool
}

// NewMockPaymentService creates a new mock payment service
func NewMockPaymentService() *MockPaymentService {
	log.Println("Payment service: Using mock (no Stripe credentials provided)")
	return &MockPaymentService{}
}

// CreateTicketIntent simulates intent creation with the real pricing rule.
func (s *MockPaymentService) CreateTicketIntent(req *models.TicketOrderRequest) (*models.PaymentIntentResult, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	quantity := req.NormalizedQuantity()
	n := s.counter.Add(1)
	id := fmt.Sprintf("pi_mock_%d_%d", time.Now().Unix(), n)

	return &models.PaymentIntentResult{
		IntentID:     id,
		ClientSecret: id + "_secret_mock",
		Amount:       int64(quantity) * TicketUnitAmount,
		Currency:     TicketCurrency,
	}, nil
}

// CreateCheckoutSession simulates a hosted checkout session.
func (s *MockPaymentService) CreateCheckoutSession(redirectBase string) (*models.CheckoutSessionResult, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	n := s.counter.Add(1)
	return &models.CheckoutSessionResult{
		SessionID: fmt.Sprintf("cs_mock_%d", n),
		URL:       fmt.Sprintf("https://checkout.stripe.com/mock/cs_mock_%d", n),
	}, nil
}

// CreateQuantityCheckoutSession simulates the catalog-price session.
func (s *MockPaymentService) CreateQuantityCheckoutSession(req *models.TicketOrderRequest) (*models.CheckoutSessionResult, error) {
	return s.CreateCheckoutSession("")
}

// VerifyWebhookEvent accepts any payload unless RejectSignature is set.
func (s *MockPaymentService) VerifyWebhookEvent(payload []byte, signature string) (*models.WebhookEvent, error) {
	if s.RejectSignature {
		return nil, fmt.Errorf("%w: mock rejection", models.ErrInvalidSignature)
	}

	n := s.counter.Add(1)
	return &models.WebhookEvent{
		ID:   fmt.Sprintf("evt_mock_%d", n),
		Type: models.WebhookPaymentSucceeded,
	}, nil
}

// PublishableKey returns a placeholder key.
func (s *MockPaymentService) PublishableKey() string {
	return "pk_test_mock"
}
