package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/syedfahad54/Eventify/internal/status"
	"github.com/syedfahad54/Eventify/internal/wallet"
	"github.com/syedfahad54/Eventify/models"
)

// State is the position of one checkout in the booking flow.
type State int

const (
	StateIdle State = iota
	StateAwaitingLogin
	StateSeatSelected
	StatePaymentPending
	StateQRPending
	StateSubmitting
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingLogin:
		return "awaiting_login"
	case StateSeatSelected:
		return "seat_selected"
	case StatePaymentPending:
		return "payment_pending"
	case StateQRPending:
		return "qr_pending"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// PaymentSelection is the ephemeral dialog state: created when the payment
// dialog opens, discarded when it closes or the flow completes.
type PaymentSelection struct {
	Method    wallet.Provider
	QRPayload string
	CreatedAt time.Time
}

// Flow orchestrates one checkout from seat selection through simulated
// payment to ticket issuance. It is single-threaded by design: every method
// is a UI callback, and in-flight submissions are guarded by state, not locks.
type Flow struct {
	session  SessionProvider
	store    Store
	notifier Notifier
	wallets  *wallet.Registry
	verifier wallet.Verifier
	now      func() time.Time

	state     State
	event     *models.Event
	seats     *SeatCounter
	selection *PaymentSelection
	booking   *models.Booking
}

func NewFlow(session SessionProvider, store Store, notifier Notifier, wallets *wallet.Registry, verifier wallet.Verifier) *Flow {
	return &Flow{
		session:  session,
		store:    store,
		notifier: notifier,
		wallets:  wallets,
		verifier: verifier,
		now:      time.Now,
		state:    StateIdle,
		seats:    NewSeatCounter(),
	}
}

// WithClock pins the flow's clock, for tests.
func (f *Flow) WithClock(now func() time.Time) *Flow {
	f.now = now
	return f
}

func (f *Flow) State() State             { return f.state }
func (f *Flow) Event() *models.Event     { return f.event }
func (f *Flow) Seats() int               { return f.seats.Count() }
func (f *Flow) Booking() *models.Booking { return f.booking }

// Selection returns the ephemeral payment selection, nil outside the dialog.
func (f *Flow) Selection() *PaymentSelection { return f.selection }

// Load fetches the event and opens seat selection.
func (f *Flow) Load(ctx context.Context, eventID string) error {
	event, err := f.store.FetchEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("fetch event %s: %w", eventID, err)
	}
	f.event = event
	f.seats.Reset()
	f.state = StateSeatSelected
	return nil
}

func (f *Flow) IncrementSeats() int { return f.seats.Increment() }
func (f *Flow) DecrementSeats() int { return f.seats.Decrement() }
func (f *Flow) SetSeats(n int) int  { return f.seats.Set(n) }

// TotalAmount is seats × price evaluated against the loaded event snapshot.
func (f *Flow) TotalAmount() decimal.Decimal {
	if f.event == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f.event.Price).Mul(decimal.NewFromInt(int64(f.seats.Count())))
}

// BeginCheckout attempts to open the payment dialog. Booking without a
// session halts the flow at AwaitingLogin; no store write is ever issued
// unauthenticated. Requesting more seats than the last-known availability is
// blocked inline before any network call.
func (f *Flow) BeginCheckout(ctx context.Context) error {
	if f.event == nil {
		return fmt.Errorf("booking flow: no event loaded")
	}
	if f.session.CurrentUser() == nil {
		f.state = StateAwaitingLogin
		return status.ErrAuthRequired
	}
	if f.event.AvailableSeats < f.seats.Count() {
		f.state = StateSeatSelected
		return status.ErrInsufficientSeats
	}

	f.selection = &PaymentSelection{
		Method:    wallet.DefaultProvider,
		CreatedAt: f.now(),
	}
	f.state = StatePaymentPending
	return nil
}

// SelectMethod changes the chosen payment channel while the dialog shows
// method selection.
func (f *Flow) SelectMethod(p wallet.Provider) error {
	if f.state != StatePaymentPending {
		return fmt.Errorf("booking flow: cannot select method in state %s", f.state)
	}
	if _, err := f.wallets.Get(p); err != nil {
		return err
	}
	f.selection.Method = p
	return nil
}

// GenerateQR derives the one-time payment payload and moves the dialog to QR
// presentation. The payload is deterministic at render time.
func (f *Flow) GenerateQR(ctx context.Context) (string, error) {
	if f.state != StatePaymentPending {
		return "", fmt.Errorf("booking flow: cannot generate QR in state %s", f.state)
	}
	w, err := f.wallets.Get(f.selection.Method)
	if err != nil {
		return "", err
	}
	payload, err := w.GenerateQR(ctx, &wallet.PaymentRequest{
		Amount:          f.TotalAmount(),
		Currency:        "PKR",
		ReferenceNumber: f.event.ID,
		Description:     f.event.Title,
	})
	if err != nil {
		return "", fmt.Errorf("generate %s QR: %w", f.selection.Method, err)
	}
	f.selection.QRPayload = payload
	f.state = StateQRPending
	return payload, nil
}

// Back returns from QR presentation to method selection.
func (f *Flow) Back() error {
	if f.state != StateQRPending {
		return fmt.Errorf("booking flow: cannot go back in state %s", f.state)
	}
	f.selection.QRPayload = ""
	f.state = StatePaymentPending
	return nil
}

// Cancel closes the dialog and discards the selection, keeping the seat count.
func (f *Flow) Cancel() {
	if f.state == StatePaymentPending || f.state == StateQRPending {
		f.selection = nil
		f.state = StateSeatSelected
	}
}

// ConfirmPayment is the sole trigger that writes a booking: the user has
// declared "payment complete" on the QR screen. While the insert is in
// flight further confirms are rejected, so two rapid clicks produce exactly
// one store write. On success the seat count resets and availability is
// refreshed from the store, never computed client-side. On failure the
// dialog closes, the seat selection survives for a retry, and the store's
// error text reaches the user unmodified.
func (f *Flow) ConfirmPayment(ctx context.Context) (*models.Booking, error) {
	if f.state == StateSubmitting {
		return nil, status.ErrSubmitInFlight
	}
	if f.state != StateQRPending {
		return nil, fmt.Errorf("booking flow: cannot confirm in state %s", f.state)
	}

	user := f.session.CurrentUser()
	if user == nil {
		f.state = StateAwaitingLogin
		return nil, status.ErrAuthRequired
	}

	method := f.selection.Method
	total := f.TotalAmount()

	if err := f.verifier.VerifyPayment(ctx, method, f.event.ID, total); err != nil {
		return nil, fmt.Errorf("verify %s payment: %w", method, err)
	}

	f.state = StateSubmitting
	persisted, err := f.store.InsertBooking(ctx, models.NewBooking{
		EventID:       f.event.ID,
		UserID:        user.ID,
		Seats:         f.seats.Count(),
		TotalAmount:   total.InexactFloat64(),
		Status:        "confirmed",
		PaymentMethod: string(method),
	})
	f.selection = nil
	if err != nil {
		f.state = StateFailed
		f.notifier.Notify(ctx, user.ID, "Booking Failed", err.Error(), "error")
		return nil, err
	}

	f.booking = persisted
	if refreshed, ferr := f.store.FetchEvent(ctx, f.event.ID); ferr == nil {
		f.event = refreshed
	}
	f.seats.Reset()
	f.state = StateCompleted
	f.notifier.Notify(ctx, user.ID, "Payment Successful!", "Your booking is confirmed. Ticket generated successfully.", "info")
	return persisted, nil
}

// Retry reopens seat selection after a failed submission.
func (f *Flow) Retry() {
	if f.state == StateFailed {
		f.state = StateSeatSelected
	}
}
