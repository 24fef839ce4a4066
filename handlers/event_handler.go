package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/syedfahad54/Eventify/models"
	"github.com/syedfahad54/Eventify/services"
)

type EventHandler struct {
	app      *pocketbase.PocketBase
	bookings *services.BookingService
}

func NewEventHandler(app *pocketbase.PocketBase, bookings *services.BookingService) *EventHandler {
	return &EventHandler{
		app:      app,
		bookings: bookings,
	}
}

// ListEvents - Browse events, optionally filtered by city and/or category
func (h *EventHandler) ListEvents(e *core.RequestEvent) error {
	city := e.Request.URL.Query().Get("city")
	category := e.Request.URL.Query().Get("category")

	var filters []string
	params := map[string]any{}
	if city != "" {
		filters = append(filters, "city = {:city}")
		params["city"] = city
	}
	if category != "" {
		filters = append(filters, "category = {:category}")
		params["category"] = category
	}

	filter := strings.Join(filters, " && ")
	if filter == "" {
		filter = "id != ''"
	}

	events, err := h.app.FindRecordsByFilter("events", filter, "date", -1, 0, params)
	if err != nil {
		return apis.NewBadRequestError("Failed to get events", err)
	}

	result := make([]map[string]any, 0, len(events))
	for _, event := range events {
		result = append(result, eventResponse(event))
	}

	return e.JSON(http.StatusOK, result)
}

// GetEvent - Event detail with the current availability snapshot
func (h *EventHandler) GetEvent(e *core.RequestEvent) error {
	eventID := e.Request.PathValue("eventId")

	event, err := h.bookings.FetchEvent(e.Request.Context(), eventID)
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}

	return e.JSON(http.StatusOK, event)
}

// CreateEvent - Publish a new event (organizer role required)
func (h *EventHandler) CreateEvent(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}
	if e.Auth.GetString("role") != "organizer" {
		return apis.NewForbiddenError("You need to be an organizer to create events", nil)
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Venue       string  `json:"venue"`
		City        string  `json:"city"`
		Date        string  `json:"date"`
		Time        string  `json:"time"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		ImageURL    string  `json:"image_url"`
		TotalSeats  int     `json:"total_seats"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if req.Title == "" || req.Venue == "" || req.City == "" || req.Date == "" {
		return apis.NewBadRequestError("Title, venue, city and date are required", nil)
	}
	if !models.ValidCategory(req.Category) {
		return apis.NewBadRequestError("Unknown category: "+req.Category, nil)
	}
	if req.Price < 0 {
		return apis.NewBadRequestError("Price cannot be negative", nil)
	}
	if req.TotalSeats < 1 {
		return apis.NewBadRequestError("Event needs at least one seat", nil)
	}

	collection, err := h.app.FindCollectionByNameOrId("events")
	if err != nil {
		return apis.NewBadRequestError("Failed to create event", err)
	}

	record := core.NewRecord(collection)
	record.Set("title", req.Title)
	record.Set("description", req.Description)
	record.Set("venue", req.Venue)
	record.Set("city", req.City)
	record.Set("date", req.Date)
	record.Set("time", req.Time)
	record.Set("category", req.Category)
	record.Set("price", req.Price)
	record.Set("image_url", req.ImageURL)
	record.Set("organizer_id", e.Auth.Id)
	record.Set("organizer_name", e.Auth.GetString("name"))
	record.Set("total_seats", req.TotalSeats)
	record.Set("available_seats", req.TotalSeats)

	if err := h.app.SaveWithContext(e.Request.Context(), record); err != nil {
		return apis.NewBadRequestError("Failed to create event", err)
	}

	return e.JSON(http.StatusCreated, eventResponse(record))
}

func eventResponse(record *core.Record) map[string]any {
	return map[string]any{
		"id":              record.Id,
		"title":           record.GetString("title"),
		"description":     record.GetString("description"),
		"venue":           record.GetString("venue"),
		"city":            record.GetString("city"),
		"date":            record.GetString("date"),
		"time":            record.GetString("time"),
		"category":        record.GetString("category"),
		"price":           record.GetFloat("price"),
		"image_url":       record.GetString("image_url"),
		"organizer_id":    record.GetString("organizer_id"),
		"organizer_name":  record.GetString("organizer_name"),
		"available_seats": record.GetInt("available_seats"),
		"total_seats":     record.GetInt("total_seats"),
	}
}
