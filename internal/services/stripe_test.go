package services

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"meditation-mondays/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

const testWebhookSecret = "whsec_test_secret"

// signedPayload builds a Stripe-Signature header for the payload the same
// way the provider does.
func signedPayload(t *testing.T, payload []byte, secret string) string {
	t.Helper()
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig))
}

func intentEventPayload(eventID, eventType, intentID string, amount int64) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"object": "event",
		"api_version": %q,
		"type": %q,
		"data": {
			"object": {
				"id": %q,
				"object": "payment_intent",
				"amount": %d,
				"currency": "usd"
			}
		}
	}`, eventID, stripe.APIVersion, eventType, intentID, amount))
}

func TestStripeService_VerifyWebhookEvent(t *testing.T) {
	service := NewStripeService(StripeConfig{
		SecretKey:     "sk_test_key",
		WebhookSecret: testWebhookSecret,
	})

	payload := intentEventPayload("evt_1", "payment_intent.succeeded", "pi_123", 2700)

	event, err := service.VerifyWebhookEvent(payload, signedPayload(t, payload, testWebhookSecret))
	require.NoError(t, err)

	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, models.WebhookPaymentSucceeded, event.Type)
	assert.Equal(t, "pi_123", event.IntentID)
	assert.Equal(t, int64(2700), event.Amount)
}

func TestStripeService_VerifyWebhookEvent_InvalidSignature(t *testing.T) {
	service := NewStripeService(StripeConfig{
		SecretKey:     "sk_test_key",
		WebhookSecret: testWebhookSecret,
	})

	payload := intentEventPayload("evt_1", "payment_intent.succeeded", "pi_123", 2700)

	// Signed with the wrong secret
	_, err := service.VerifyWebhookEvent(payload, signedPayload(t, payload, "whsec_other"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidSignature)

	// Payload tampered after signing
	header := signedPayload(t, payload, testWebhookSecret)
	tampered := intentEventPayload("evt_1", "payment_intent.succeeded", "pi_123", 1)
	_, err = service.VerifyWebhookEvent(tampered, header)
	assert.ErrorIs(t, err, models.ErrInvalidSignature)

	// Garbage header
	_, err = service.VerifyWebhookEvent(payload, "not-a-signature")
	assert.ErrorIs(t, err, models.ErrInvalidSignature)
}

func TestStripeService_VerifyWebhookEvent_UnrecognizedType(t *testing.T) {
	service := NewStripeService(StripeConfig{
		SecretKey:     "sk_test_key",
		WebhookSecret: testWebhookSecret,
	})

	payload := []byte(fmt.Sprintf(`{
		"id": "evt_2",
		"object": "event",
		"api_version": %q,
		"type": "customer.created",
		"data": {"object": {"id": "cus_1", "object": "customer"}}
	}`, stripe.APIVersion))

	event, err := service.VerifyWebhookEvent(payload, signedPayload(t, payload, testWebhookSecret))
	require.NoError(t, err)
	assert.Equal(t, models.WebhookEventType("customer.created"), event.Type)
	assert.Empty(t, event.IntentID)
}

func TestMockPaymentService_AmountFollowsQuantity(t *testing.T) {
	service := NewMockPaymentService()

	tests := []struct {
		quantity int
		want     int64
	}{
		{1, 900},
		{3, 2700},
		{10, 9000},
		{15, 9000}, // clamped
		{0, 900},   // defaulted
	}

	for _, tt := range tests {
		result, err := service.CreateTicketIntent(&models.TicketOrderRequest{Quantity: tt.quantity})
		require.NoError(t, err)
		assert.Equal(t, tt.want, result.Amount, "quantity %d", tt.quantity)
		assert.Equal(t, TicketCurrency, result.Currency)
	}
}

func TestMockPaymentService_ConcurrentIntentsAreIsolated(t *testing.T) {
	service := NewMockPaymentService()

	type outcome struct {
		result *models.PaymentIntentResult
		err    error
	}

	small := make(chan outcome, 1)
	large := make(chan outcome, 1)

	go func() {
		r, err := service.CreateTicketIntent(&models.TicketOrderRequest{Quantity: 1})
		small <- outcome{r, err}
	}()
	go func() {
		r, err := service.CreateTicketIntent(&models.TicketOrderRequest{Quantity: 5})
		large <- outcome{r, err}
	}()

	a, b := <-small, <-large
	require.NoError(t, a.err)
	require.NoError(t, b.err)

	assert.Equal(t, int64(900), a.result.Amount)
	assert.Equal(t, int64(4500), b.result.Amount)
	assert.NotEqual(t, a.result.ClientSecret, b.result.ClientSecret)
	assert.NotEqual(t, a.result.IntentID, b.result.IntentID)
}

func TestProviderMessage(t *testing.T) {
	stripeErr := &stripe.Error{Msg: "Your card was declined."}
	wrapped := fmt.Errorf("failed to create payment intent: %w", stripeErr)
	assert.Equal(t, "Your card was declined.", ProviderMessage(wrapped))

	plain := errors.New("connection refused")
	assert.Equal(t, "connection refused", ProviderMessage(plain))
}
