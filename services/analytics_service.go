package services

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"github.com/syedfahad54/Eventify/models"
)

// AnalyticsService aggregates confirmed bookings for organizer dashboards.
// Simple aggregation only: counts, revenue and seat sums per event.
type AnalyticsService struct {
	app core.App
}

func NewAnalyticsService(app core.App) *AnalyticsService {
	return &AnalyticsService{app: app}
}

type aggRow struct {
	TotalBookings int     `db:"total_bookings"`
	TotalRevenue  float64 `db:"total_revenue"`
	BookedSeats   int     `db:"booked_seats"`
}

// EventStats aggregates one event's confirmed bookings.
func (s *AnalyticsService) EventStats(ctx context.Context, eventID, eventTitle string) (*models.EventStats, error) {
	var row aggRow
	err := s.app.DB().NewQuery(`
		SELECT
			COUNT(id)                    AS total_bookings,
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COALESCE(SUM(seats), 0)        AS booked_seats
		FROM bookings
		WHERE event_id = {:eventId} AND status = 'confirmed'
	`).Bind(dbx.Params{"eventId": eventID}).One(&row)
	if err != nil {
		return nil, fmt.Errorf("aggregate bookings for event %s: %w", eventID, err)
	}

	return &models.EventStats{
		EventID:       eventID,
		EventTitle:    eventTitle,
		TotalBookings: row.TotalBookings,
		TotalRevenue:  row.TotalRevenue,
		BookedSeats:   row.BookedSeats,
	}, nil
}

// OrganizerStats aggregates every event the organizer has published,
// newest first.
func (s *AnalyticsService) OrganizerStats(ctx context.Context, organizerID string) ([]models.EventStats, error) {
	events, err := s.app.FindRecordsByFilter(
		"events",
		"organizer_id = {:organizerId}",
		"-created",
		-1,
		0,
		map[string]any{"organizerId": organizerID},
	)
	if err != nil {
		return nil, fmt.Errorf("events for organizer %s: %w", organizerID, err)
	}

	stats := make([]models.EventStats, 0, len(events))
	for _, event := range events {
		eventStats, err := s.EventStats(ctx, event.Id, event.GetString("title"))
		if err != nil {
			return nil, err
		}
		stats = append(stats, *eventStats)
	}
	return stats, nil
}
