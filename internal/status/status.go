package status

import "errors"

var (
	ErrAuthRequired      = errors.New("booking: authentication required")
	ErrInsufficientSeats = errors.New("booking: not enough seats available")
	ErrSubmitInFlight    = errors.New("booking: submission already in progress")
	ErrSessionNotFound   = errors.New("payment: session not found or expired")
)
