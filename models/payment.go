package models

import (
	"time"
)

// PaymentSession is ephemeral checkout state kept in Redis with a TTL. It is
// created when the payment dialog opens and discarded when the dialog closes
// or the booking completes; it is never written to the primary store.
type PaymentSession struct {
	ID        string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	Seats     int       `json:"seats"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"` // jazzcash, easypaisa, nayapay, sadapay
	Status    string    `json:"status"` // pending, completed, cancelled
	QRPayload string    `json:"qr_payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
