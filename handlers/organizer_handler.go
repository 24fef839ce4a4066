package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/syedfahad54/Eventify/services"
)

type OrganizerHandler struct {
	app       *pocketbase.PocketBase
	analytics *services.AnalyticsService
}

func NewOrganizerHandler(app *pocketbase.PocketBase, analytics *services.AnalyticsService) *OrganizerHandler {
	return &OrganizerHandler{
		app:       app,
		analytics: analytics,
	}
}

// Dashboard - Per-event sales aggregates for the authenticated organizer
func (h *OrganizerHandler) Dashboard(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}
	if e.Auth.GetString("role") != "organizer" {
		return apis.NewForbiddenError("Organizer account required", nil)
	}

	stats, err := h.analytics.OrganizerStats(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return apis.NewBadRequestError("Failed to load dashboard", err)
	}

	var totalRevenue float64
	var totalBookings, totalSeats int
	for _, s := range stats {
		totalRevenue += s.TotalRevenue
		totalBookings += s.TotalBookings
		totalSeats += s.BookedSeats
	}

	return e.JSON(http.StatusOK, map[string]any{
		"events":         stats,
		"total_events":   len(stats),
		"total_bookings": totalBookings,
		"total_revenue":  totalRevenue,
		"total_seats":    totalSeats,
	})
}
