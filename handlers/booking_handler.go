package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/syedfahad54/Eventify/internal/booking"
	"github.com/syedfahad54/Eventify/internal/status"
	"github.com/syedfahad54/Eventify/internal/wallet"
	"github.com/syedfahad54/Eventify/monitoring"
	"github.com/syedfahad54/Eventify/services"
)

type BookingHandler struct {
	app      *pocketbase.PocketBase
	bookings *services.BookingService
	payments *services.PaymentService
	notifier booking.Notifier
	wallets  *wallet.Registry
	verifier wallet.Verifier
	monitor  *monitoring.Monitor
}

func NewBookingHandler(
	app *pocketbase.PocketBase,
	bookings *services.BookingService,
	payments *services.PaymentService,
	notifier booking.Notifier,
	wallets *wallet.Registry,
	verifier wallet.Verifier,
	monitor *monitoring.Monitor,
) *BookingHandler {
	return &BookingHandler{
		app:      app,
		bookings: bookings,
		payments: payments,
		notifier: notifier,
		wallets:  wallets,
		verifier: verifier,
		monitor:  monitor,
	}
}

// ConfirmBooking - The terminal "payment complete" click: runs the checkout
// flow end to end against the payment session and writes exactly one booking.
func (h *BookingHandler) ConfirmBooking(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		EventID       string `json:"event_id"`
		SessionID     string `json:"session_id"`
		Seats         int    `json:"seats"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	method, ok := wallet.ParseProvider(req.PaymentMethod)
	if !ok {
		return apis.NewBadRequestError("Unknown payment method: "+req.PaymentMethod, nil)
	}

	ctx := e.Request.Context()

	session, err := h.payments.GetSession(ctx, req.SessionID)
	if err != nil {
		return apis.NewBadRequestError("Payment session expired, please start over", err)
	}
	if session.UserID != e.Auth.Id {
		return apis.NewForbiddenError("Access denied", nil)
	}
	if session.EventID != req.EventID {
		return apis.NewBadRequestError("Payment session does not match this event", nil)
	}
	if session.Seats != req.Seats {
		// the QR the user paid covered the session's quantity, not this one
		return apis.NewBadRequestError("Seat count does not match the payment session", nil)
	}

	// cross-request duplicate-submit guard
	if err := h.payments.AcquireSubmitLock(ctx, req.EventID, e.Auth.Id); err != nil {
		if errors.Is(err, status.ErrSubmitInFlight) {
			return apis.NewBadRequestError("A booking for this event is already being submitted", err)
		}
		return apis.NewBadRequestError("Failed to submit booking", err)
	}
	defer h.payments.ReleaseSubmitLock(ctx, req.EventID, e.Auth.Id)

	flow := booking.NewFlow(newAuthSession(e.Auth), h.bookings, h.notifier, h.wallets, h.verifier)
	if err := flow.Load(ctx, req.EventID); err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}
	flow.SetSeats(req.Seats)

	if err := flow.BeginCheckout(ctx); err != nil {
		if errors.Is(err, status.ErrInsufficientSeats) {
			h.monitor.TrackBookingOperation("confirm", req.EventID, "insufficient_seats")
			return apis.NewBadRequestError("The requested number of seats is not available", err)
		}
		return apis.NewBadRequestError("Failed to start checkout", err)
	}
	if err := flow.SelectMethod(method); err != nil {
		return apis.NewBadRequestError("Failed to select payment method", err)
	}
	if _, err := flow.GenerateQR(ctx); err != nil {
		return apis.NewBadRequestError("Failed to prepare payment", err)
	}

	started := time.Now()
	persisted, err := flow.ConfirmPayment(ctx)
	h.monitor.TrackSubmitDuration(req.EventID, time.Since(started))
	if err != nil {
		h.monitor.TrackBookingOperation("confirm", req.EventID, "failed")
		// the store's error text reaches the client unmodified
		return apis.NewBadRequestError(err.Error(), err)
	}

	h.payments.CompleteSession(ctx, req.SessionID)
	h.monitor.TrackBookingOperation("confirm", req.EventID, "confirmed")

	return e.JSON(http.StatusOK, map[string]any{
		"booking":         persisted,
		"available_seats": flow.Event().AvailableSeats,
	})
}

// GetBookingHistory - The current user's bookings, newest first
func (h *BookingHandler) GetBookingHistory(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	bookings, err := h.bookings.BookingsByUser(e.Request.Context(), e.Auth.Id, 20)
	if err != nil {
		return apis.NewBadRequestError("Failed to get bookings", err)
	}

	result := make([]map[string]any, 0, len(bookings))
	for _, b := range bookings {
		entry := map[string]any{
			"id":             b.ID,
			"event_id":       b.EventID,
			"seats":          b.Seats,
			"total_amount":   b.TotalAmount,
			"status":         b.Status,
			"payment_method": b.PaymentMethod,
			"created":        b.CreatedAt,
		}
		if event, err := h.app.FindRecordById("events", b.EventID); err == nil {
			entry["event_title"] = event.GetString("title")
			entry["event_date"] = event.GetString("date")
		}
		result = append(result, entry)
	}

	return e.JSON(http.StatusOK, result)
}
