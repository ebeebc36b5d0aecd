package models

import "errors"

// Common errors used throughout the application
var (
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	ErrDuplicateEvent   = errors.New("webhook event already processed")
	ErrInvalidInput     = errors.New("invalid input")
)
