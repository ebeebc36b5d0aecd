package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestPublicHandler(payment *MockPaymentService) *PublicHandler {
	store := sessions.NewCookieStore([]byte("test-secret"))
	return NewPublicHandler(payment, store)
}

func TestConfirmationOutcome(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		providerError string
		wantMessage   string
		wantSucceeded bool
	}{
		{"succeeded", "succeeded", "", successMessage, true},
		{"processing", "processing", "", "Your payment is processing. We will confirm shortly.", false},
		{"requires payment method", "requires_payment_method", "", "Your payment was not completed. Please try again.", false},
		{"unknown status", "canceled", "", "Your payment was not completed. Please try again.", false},
		{"provider error wins", "succeeded", "Your card was declined.", "Your card was declined.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message, succeeded := confirmationOutcome(tt.status, tt.providerError)
			assert.Equal(t, tt.wantMessage, message)
			assert.Equal(t, tt.wantSucceeded, succeeded)
		})
	}
}

func TestTicketsPage_RendersPaymentForm(t *testing.T) {
	payment := new(MockPaymentService)
	payment.On("PublishableKey").Return("pk_test_embedded")

	handler := newTestPublicHandler(payment)

	req := httptest.NewRequest("GET", "/tickets", nil)
	rr := httptest.NewRecorder()

	handler.TicketsPage(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "pk_test_embedded")
	assert.Contains(t, rr.Body.String(), "payment-element")
}

func TestTicketsPage_RedirectReturnShowsOutcome(t *testing.T) {
	payment := new(MockPaymentService)
	handler := newTestPublicHandler(payment)

	req := httptest.NewRequest("GET", "/tickets?redirect_status=succeeded", nil)
	rr := httptest.NewRecorder()

	handler.TicketsPage(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), successMessage)

	// The return leg only reports the outcome; no new checkout starts.
	payment.AssertNotCalled(t, "CreateTicketIntent", mock.Anything)
	payment.AssertNotCalled(t, "PublishableKey")
}

func TestTicketsPage_RedirectReturnFailure(t *testing.T) {
	payment := new(MockPaymentService)
	handler := newTestPublicHandler(payment)

	req := httptest.NewRequest("GET", "/tickets?redirect_status=failed", nil)
	rr := httptest.NewRecorder()

	handler.TicketsPage(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Your payment was not completed")
	payment.AssertNotCalled(t, "CreateTicketIntent", mock.Anything)
}

func TestStaticPages(t *testing.T) {
	payment := new(MockPaymentService)
	handler := newTestPublicHandler(payment)

	tests := []struct {
		name    string
		path    string
		serve   func(http.ResponseWriter, *http.Request)
		content string
	}{
		{"home", "/", handler.HomePage, "Meditation Mondays"},
		{"classes", "/classes", handler.ClassesPage, "Meditation Mondays"},
		{"movement", "/movement", handler.MovementPage, "Movement"},
		{"success", "/success", handler.SuccessPage, "Payment Successful"},
		{"cancel", "/cancel", handler.CancelPage, "Payment Canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			rr := httptest.NewRecorder()

			tt.serve(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rr.Body.String(), tt.content)
		})
	}
}
