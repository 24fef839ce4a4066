package booking

import (
	"context"

	"github.com/syedfahad54/Eventify/models"
)

// User is the identity attached to a checkout. Role is "organizer" for event
// publishers and empty for regular attendees.
type User struct {
	ID   string
	Role string
}

// SessionProvider exposes the current authenticated session. It is passed
// explicitly to every component that needs identity so there is no ambient
// global auth state.
type SessionProvider interface {
	CurrentUser() *User
	Role() string
	SignOut()
}

// Store is the external data store boundary. All operations return either a
// result row or an error; there are no partial-success semantics.
type Store interface {
	// FetchEvent returns the event row by id.
	FetchEvent(ctx context.Context, eventID string) (*models.Event, error)

	// InsertBooking writes one booking and returns the persisted row
	// including the generated id and timestamp.
	InsertBooking(ctx context.Context, b models.NewBooking) (*models.Booking, error)

	// BookingsByEvent returns bookings for one event filtered by status,
	// for analytics aggregation.
	BookingsByEvent(ctx context.Context, eventID, status string) ([]models.Booking, error)
}

// Notifier is the toast/notification sink: fire-and-forget, no acknowledgment.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message, severity string)
}
