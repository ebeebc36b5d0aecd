package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"meditation-mondays/internal/models"
	"meditation-mondays/internal/services"

	"github.com/gorilla/sessions"
)

// Stripe webhook payloads are small; anything larger is not a real event.
const webhookMaxBodyBytes = 64 * 1024

// PaymentHandler handles the checkout API: intent creation, hosted
// checkout sessions, and provider webhooks.
type PaymentHandler struct {
	paymentService services.PaymentServiceInterface
	ledger         services.WebhookLedgerInterface
	store          sessions.Store
	baseURL        string
	allowedOrigins []string
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService services.PaymentServiceInterface, ledger services.WebhookLedgerInterface, store sessions.Store, baseURL string, allowedOrigins []string) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		ledger:         ledger,
		store:          store,
		baseURL:        baseURL,
		allowedOrigins: allowedOrigins,
	}
}

// CreatePaymentIntent handles POST /create-payment-intent. Malformed input
// is corrected by defaulting and clamping rather than rejected.
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity       any    `json:"quantity"`
		IdempotencyKey string `json:"idempotency_key"`
	}
	// A missing or unparsable body means quantity defaults to 1 below.
	_ = json.NewDecoder(r.Body).Decode(&body)

	req := &models.TicketOrderRequest{
		Quantity:       coerceQuantity(body.Quantity),
		IdempotencyKey: body.IdempotencyKey,
	}

	result, err := h.paymentService.CreateTicketIntent(req)
	if err != nil {
		log.Printf("Payment intent creation failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, services.ProviderMessage(err))
		return
	}

	// Park the intent ID (never the client secret) so the redirect-return
	// page can recognize the payment. Session trouble is not fatal here.
	if session, err := h.store.Get(r, sessionName); err == nil {
		session.Values["pending_payment_id"] = result.IntentID
		if err := session.Save(r, w); err != nil {
			log.Printf("Failed to save checkout session: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": result.ClientSecret})
}

// Checkout handles POST /checkout: a hosted checkout session for the fixed
// single-ticket line item. Redirect URLs come from the request origin only
// when it is on the allow-list; untrusted origins fall back to the
// configured base URL.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.CreateCheckoutSession(h.redirectBase(r))
	if err != nil {
		log.Printf("Checkout session creation failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "checkout session failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": result.URL})
}

// CreateCheckoutSession handles POST /create-checkout-session: a hosted
// session for a client-selected quantity against the catalog price.
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity any `json:"quantity"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	req := &models.TicketOrderRequest{Quantity: coerceQuantity(body.Quantity)}

	result, err := h.paymentService.CreateQuantityCheckoutSession(req)
	if err != nil {
		log.Printf("Checkout session creation failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, services.ProviderMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": result.URL})
}

// StripeWebhook handles POST /stripe-webhook. Signature verification needs
// the byte-exact payload, so the body is read raw before any parsing.
// Verification failure is a hard boundary: 400, no dispatch.
func (h *PaymentHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, webhookMaxBodyBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	event, err := h.paymentService.VerifyWebhookEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("webhook error: %v", err))
		return
	}

	// Delivery is at-least-once; redeliveries are acked without re-running
	// the handler so the provider stops retrying.
	fresh, err := h.ledger.MarkProcessed(event.ID, string(event.Type))
	if err != nil {
		// A broken ledger must not turn a verified event into an error
		// response; treat it as fresh and handle it.
		log.Printf("Webhook ledger error for %s: %v", event.ID, err)
		fresh = true
	}
	if !fresh {
		log.Printf("Webhook event %s already processed, skipping", event.ID)
		writeJSON(w, http.StatusOK, map[string]any{"received": true, "duplicate": true})
		return
	}

	h.dispatchEvent(event)

	writeJSON(w, http.StatusOK, map[string]any{"received": true})
}

// dispatchEvent branches on the verified event's type. Unrecognized types
// are acknowledged without action so new provider events never break us.
func (h *PaymentHandler) dispatchEvent(event *models.WebhookEvent) {
	switch event.Type {
	case models.WebhookPaymentSucceeded:
		log.Printf("PaymentIntent was successful: %s (amount %d)", event.IntentID, event.Amount)
	case models.WebhookPaymentFailed:
		log.Printf("PaymentIntent failed: %s: %s", event.IntentID, event.ErrorMessage)
	default:
		log.Printf("Unhandled event type %s", event.Type)
	}
}

// redirectBase returns the trusted base for payment redirect URLs.
func (h *PaymentHandler) redirectBase(r *http.Request) string {
	origin := r.Header.Get("Origin")
	for _, allowed := range h.allowedOrigins {
		if allowed == origin {
			return origin
		}
	}
	return h.baseURL
}
