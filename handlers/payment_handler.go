package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"github.com/syedfahad54/Eventify/internal/booking"
	"github.com/syedfahad54/Eventify/internal/status"
	"github.com/syedfahad54/Eventify/internal/wallet"
	"github.com/syedfahad54/Eventify/monitoring"
	"github.com/syedfahad54/Eventify/services"
)

type PaymentHandler struct {
	app      *pocketbase.PocketBase
	bookings *services.BookingService
	payments *services.PaymentService
	wallets  *wallet.Registry
	monitor  *monitoring.Monitor
}

func NewPaymentHandler(
	app *pocketbase.PocketBase,
	bookings *services.BookingService,
	payments *services.PaymentService,
	wallets *wallet.Registry,
	monitor *monitoring.Monitor,
) *PaymentHandler {
	return &PaymentHandler{
		app:      app,
		bookings: bookings,
		payments: payments,
		wallets:  wallets,
		monitor:  monitor,
	}
}

// CreateSession - Open the payment dialog: validates seats against the
// current availability snapshot and creates the ephemeral session.
func (h *PaymentHandler) CreateSession(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	var req struct {
		EventID string `json:"event_id"`
		Seats   int    `json:"seats"`
		Method  string `json:"method"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	method := wallet.DefaultProvider
	if req.Method != "" {
		parsed, ok := wallet.ParseProvider(req.Method)
		if !ok {
			return apis.NewBadRequestError("Unknown payment method: "+req.Method, nil)
		}
		method = parsed
	}

	ctx := e.Request.Context()

	event, err := h.bookings.FetchEvent(ctx, req.EventID)
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}

	seats := booking.ClampSeats(req.Seats)
	if event.AvailableSeats < seats {
		return apis.NewBadRequestError("The requested number of seats is not available", status.ErrInsufficientSeats)
	}

	amount := decimal.NewFromFloat(event.Price).Mul(decimal.NewFromInt(int64(seats)))

	session, err := h.payments.CreateSession(ctx, e.Auth.Id, req.EventID, seats, amount.InexactFloat64(), method)
	if err != nil {
		return apis.NewBadRequestError("Failed to create payment session", err)
	}

	methods := make([]map[string]any, 0, len(wallet.Providers()))
	for _, p := range wallet.Providers() {
		methods = append(methods, map[string]any{
			"id":   string(p),
			"name": p.DisplayName(),
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"session": session,
		"methods": methods,
	})
}

// SelectMethod - Switch the session's payment channel
func (h *PaymentHandler) SelectMethod(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	sessionID := e.Request.PathValue("sessionId")

	var req struct {
		Method string `json:"method"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	method, ok := wallet.ParseProvider(req.Method)
	if !ok {
		return apis.NewBadRequestError("Unknown payment method: "+req.Method, nil)
	}

	ctx := e.Request.Context()
	if err := h.ownSession(ctx, sessionID, e.Auth.Id); err != nil {
		return err
	}

	if err := h.payments.SelectMethod(ctx, sessionID, method); err != nil {
		return apis.NewBadRequestError("Failed to select payment method", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"method": string(method)})
}

// GetQR - Derive the wallet payload for the session's chosen method
func (h *PaymentHandler) GetQR(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	sessionID := e.Request.PathValue("sessionId")
	ctx := e.Request.Context()

	session, err := h.payments.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, status.ErrSessionNotFound) {
			return apis.NewNotFoundError("Payment session not found", err)
		}
		return apis.NewBadRequestError("Failed to load payment session", err)
	}
	if session.UserID != e.Auth.Id {
		return apis.NewForbiddenError("Access denied", nil)
	}

	payload, err := h.payments.GenerateQR(ctx, sessionID)
	if err != nil {
		return apis.NewBadRequestError("Failed to generate QR code", err)
	}
	h.monitor.TrackQRGenerated(session.Method)

	return e.JSON(http.StatusOK, map[string]any{
		"session_id": sessionID,
		"method":     session.Method,
		"amount":     session.Amount,
		"qr_payload": payload,
	})
}

// CancelSession - Close the dialog and discard the ephemeral session
func (h *PaymentHandler) CancelSession(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	sessionID := e.Request.PathValue("sessionId")
	ctx := e.Request.Context()

	if err := h.ownSession(ctx, sessionID, e.Auth.Id); err != nil {
		return err
	}

	if err := h.payments.CancelSession(ctx, sessionID); err != nil {
		return apis.NewBadRequestError("Failed to cancel payment session", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"message": "Payment cancelled"})
}

func (h *PaymentHandler) ownSession(ctx context.Context, sessionID, userID string) error {
	session, err := h.payments.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, status.ErrSessionNotFound) {
			return apis.NewNotFoundError("Payment session not found", err)
		}
		return apis.NewBadRequestError("Failed to load payment session", err)
	}
	if session.UserID != userID {
		return apis.NewForbiddenError("Access denied", nil)
	}
	return nil
}
