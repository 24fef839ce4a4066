package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"

	"github.com/syedfahad54/Eventify/internal/status"
	"github.com/syedfahad54/Eventify/models"
)

// availabilityCacheTTL bounds how stale the Redis availability snapshot can
// get before a reader falls through to the store.
const availabilityCacheTTL = time.Minute

// BookingService is the data-store boundary for events and bookings. It
// implements booking.Store on top of the PocketBase collections and keeps a
// Redis snapshot of availability for the metrics collector and list views.
type BookingService struct {
	app   core.App
	redis *redis.Client
}

func NewBookingService(app core.App, redisClient *redis.Client) *BookingService {
	return &BookingService{
		app:   app,
		redis: redisClient,
	}
}

// FetchEvent returns the event row by id. Availability always comes from the
// store; the Redis snapshot is refreshed as a side effect, never read here.
func (s *BookingService) FetchEvent(ctx context.Context, eventID string) (*models.Event, error) {
	record, err := s.app.FindRecordById("events", eventID)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", eventID, err)
	}

	event := eventFromRecord(record)
	s.cacheAvailability(ctx, event.ID, event.AvailableSeats)
	return event, nil
}

// InsertBooking writes one booking with a store-side conditional decrement of
// the event's availability, inside a single transaction. A decrement that
// would underflow rejects the write with ErrInsufficientSeats, so two bookers
// racing past the client-side check cannot oversell the event.
func (s *BookingService) InsertBooking(ctx context.Context, b models.NewBooking) (*models.Booking, error) {
	if b.Seats < 1 {
		return nil, fmt.Errorf("booking: seats must be positive, got %d", b.Seats)
	}

	var persisted *models.Booking
	err := s.app.RunInTransaction(func(txApp core.App) error {
		event, err := txApp.FindRecordById("events", b.EventID)
		if err != nil {
			return fmt.Errorf("event %s: %w", b.EventID, err)
		}

		available := event.GetInt("available_seats")
		if available < b.Seats {
			return status.ErrInsufficientSeats
		}

		collection, err := txApp.FindCollectionByNameOrId("bookings")
		if err != nil {
			return fmt.Errorf("bookings collection: %w", err)
		}

		record := core.NewRecord(collection)
		record.Set("event_id", b.EventID)
		record.Set("user_id", b.UserID)
		record.Set("seats", b.Seats)
		record.Set("total_amount", b.TotalAmount)
		record.Set("status", b.Status)
		record.Set("payment_method", b.PaymentMethod)
		if err := txApp.SaveWithContext(ctx, record); err != nil {
			return err
		}

		event.Set("available_seats", available-b.Seats)
		if err := txApp.SaveWithContext(ctx, event); err != nil {
			return fmt.Errorf("decrement availability: %w", err)
		}

		persisted = bookingFromRecord(record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if record, ferr := s.app.FindRecordById("events", b.EventID); ferr == nil {
		s.cacheAvailability(ctx, b.EventID, record.GetInt("available_seats"))
	}
	return persisted, nil
}

// BookingsByEvent returns bookings for one event filtered by status.
func (s *BookingService) BookingsByEvent(ctx context.Context, eventID, bookingStatus string) ([]models.Booking, error) {
	records, err := s.app.FindRecordsByFilter(
		"bookings",
		"event_id = {:eventId} && status = {:status}",
		"-created",
		-1,
		0,
		map[string]any{"eventId": eventID, "status": bookingStatus},
	)
	if err != nil {
		return nil, fmt.Errorf("bookings for event %s: %w", eventID, err)
	}

	bookings := make([]models.Booking, 0, len(records))
	for _, record := range records {
		bookings = append(bookings, *bookingFromRecord(record))
	}
	return bookings, nil
}

// BookingsByUser returns the user's booking history, newest first.
func (s *BookingService) BookingsByUser(ctx context.Context, userID string, limit int) ([]models.Booking, error) {
	records, err := s.app.FindRecordsByFilter(
		"bookings",
		"user_id = {:userId}",
		"-created",
		limit,
		0,
		map[string]any{"userId": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("bookings for user %s: %w", userID, err)
	}

	bookings := make([]models.Booking, 0, len(records))
	for _, record := range records {
		bookings = append(bookings, *bookingFromRecord(record))
	}
	return bookings, nil
}

// FetchBooking returns one booking row by id.
func (s *BookingService) FetchBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	record, err := s.app.FindRecordById("bookings", bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, err)
	}
	return bookingFromRecord(record), nil
}

func (s *BookingService) cacheAvailability(ctx context.Context, eventID string, available int) {
	if s.redis == nil {
		return
	}
	key := fmt.Sprintf("event:avail:%s", eventID)
	s.redis.Set(ctx, key, available, availabilityCacheTTL)
}

func eventFromRecord(record *core.Record) *models.Event {
	return &models.Event{
		ID:             record.Id,
		Title:          record.GetString("title"),
		Description:    record.GetString("description"),
		Venue:          record.GetString("venue"),
		City:           record.GetString("city"),
		Date:           record.GetString("date"),
		Time:           record.GetString("time"),
		Category:       record.GetString("category"),
		Price:          record.GetFloat("price"),
		ImageURL:       record.GetString("image_url"),
		OrganizerID:    record.GetString("organizer_id"),
		OrganizerName:  record.GetString("organizer_name"),
		AvailableSeats: record.GetInt("available_seats"),
		TotalSeats:     record.GetInt("total_seats"),
	}
}

func bookingFromRecord(record *core.Record) *models.Booking {
	return &models.Booking{
		ID:            record.Id,
		EventID:       record.GetString("event_id"),
		UserID:        record.GetString("user_id"),
		Seats:         record.GetInt("seats"),
		TotalAmount:   record.GetFloat("total_amount"),
		Status:        record.GetString("status"),
		PaymentMethod: record.GetString("payment_method"),
		CreatedAt:     record.GetDateTime("created").Time(),
	}
}
