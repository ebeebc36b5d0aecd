package models

// MinTicketsPerOrder and MaxTicketsPerOrder bound a single checkout attempt.
// Anything outside the range is clamped, not rejected.
const (
	MinTicketsPerOrder = 1
	MaxTicketsPerOrder = 10
)

// TicketOrderRequest is the client-supplied body for intent and session
// creation. It lives only for the duration of one request.
type TicketOrderRequest struct {
	Quantity       int    `json:"quantity"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// NormalizedQuantity clamps the client-supplied quantity to the allowed
// range. Missing, zero, or negative values become the minimum.
func (r *TicketOrderRequest) NormalizedQuantity() int {
	return ClampTicketQuantity(r.Quantity)
}

// ClampTicketQuantity clamps q to [MinTicketsPerOrder, MaxTicketsPerOrder].
func ClampTicketQuantity(q int) int {
	if q < MinTicketsPerOrder {
		return MinTicketsPerOrder
	}
	if q > MaxTicketsPerOrder {
		return MaxTicketsPerOrder
	}
	return q
}
