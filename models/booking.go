package models

import (
	"time"
)

type Booking struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	Seats         int       `json:"seats"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`         // pending, confirmed, cancelled
	PaymentMethod string    `json:"payment_method"` // jazzcash, easypaisa, nayapay, sadapay
	CreatedAt     time.Time `json:"created_at"`
}

// NewBooking carries the fields the caller controls; id and created_at are
// generated by the store on insert.
type NewBooking struct {
	EventID       string  `json:"event_id"`
	UserID        string  `json:"user_id"`
	Seats         int     `json:"seats"`
	TotalAmount   float64 `json:"total_amount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
}

type EventStats struct {
	EventID       string  `json:"event_id"`
	EventTitle    string  `json:"event_title"`
	TotalBookings int     `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
	BookedSeats   int     `json:"booked_seats"`
}
