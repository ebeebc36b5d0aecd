package handlers

import (
	"log"
	"net/http"

	"meditation-mondays/internal/services"
	"meditation-mondays/web/templates/pages"

	"github.com/a-h/templ"
	"github.com/gorilla/sessions"
)

const successMessage = "Payment Successful! Thank you for purchasing your ticket. See you at the event!"

// PublicHandler serves the marketing pages and the checkout page
type PublicHandler struct {
	paymentService services.PaymentServiceInterface
	store          sessions.Store
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(paymentService services.PaymentServiceInterface, store sessions.Store) *PublicHandler {
	return &PublicHandler{
		paymentService: paymentService,
		store:          store,
	}
}

// HomePage renders the landing page
func (h *PublicHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, pages.HomePage())
}

// ClassesPage renders the weekly schedule
func (h *PublicHandler) ClassesPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, pages.ClassesPage())
}

// MovementPage renders the movement class page
func (h *PublicHandler) MovementPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, pages.MovementPage())
}

// TicketsPage renders the payment element page, or the payment outcome when
// a redirect-based payment method lands back here with a status marker. The
// marker path never starts a new checkout.
func (h *PublicHandler) TicketsPage(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("redirect_status"); status != "" {
		message, succeeded := confirmationOutcome(status, "")
		if succeeded {
			h.clearPendingPayment(w, r)
		}
		renderPage(w, r, pages.PaymentResultPage(message, succeeded))
		return
	}

	renderPage(w, r, pages.TicketsPage(h.paymentService.PublishableKey()))
}

// SuccessPage renders the hosted checkout success target
func (h *PublicHandler) SuccessPage(w http.ResponseWriter, r *http.Request) {
	h.clearPendingPayment(w, r)
	renderPage(w, r, pages.SuccessPage())
}

// CancelPage renders the hosted checkout cancel target
func (h *PublicHandler) CancelPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, pages.CancelPage())
}

// confirmationOutcome maps a provider confirmation result to the message
// shown to the user. A provider-supplied error is surfaced verbatim; only
// a succeeded status produces the success copy.
func confirmationOutcome(status, providerError string) (string, bool) {
	if providerError != "" {
		return providerError, false
	}

	switch status {
	case "succeeded":
		return successMessage, true
	case "processing":
		return "Your payment is processing. We will confirm shortly.", false
	default:
		return "Your payment was not completed. Please try again.", false
	}
}

func (h *PublicHandler) clearPendingPayment(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		return
	}
	if _, ok := session.Values["pending_payment_id"]; ok {
		delete(session.Values, "pending_payment_id")
		if err := session.Save(r, w); err != nil {
			log.Printf("Failed to clear pending payment from session: %v", err)
		}
	}
}

func renderPage(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		log.Printf("Failed to render page: %v", err)
	}
}
