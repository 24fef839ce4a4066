package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/syedfahad54/Eventify/models"
	"github.com/syedfahad54/Eventify/services"
)

type TicketHandler struct {
	app      *pocketbase.PocketBase
	bookings *services.BookingService
	tickets  *services.TicketService
}

func NewTicketHandler(app *pocketbase.PocketBase, bookings *services.BookingService, tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{
		app:      app,
		bookings: bookings,
		tickets:  tickets,
	}
}

// GetTicket - Render the receipt for a confirmed booking
func (h *TicketHandler) GetTicket(e *core.RequestEvent) error {
	receipt, err := h.loadReceipt(e)
	if err != nil {
		return err
	}
	return e.JSON(http.StatusOK, receipt)
}

// DownloadTicket - Export the receipt's QR code as a PNG attachment
func (h *TicketHandler) DownloadTicket(e *core.RequestEvent) error {
	receipt, err := h.loadReceipt(e)
	if err != nil {
		return err
	}

	png, err := h.tickets.ExportPNG(receipt)
	if err != nil {
		// the receipt itself stays intact; the client can retry the download
		return apis.NewApiError(http.StatusInternalServerError, "Failed to export ticket image", err)
	}

	filename := h.tickets.Filename(receipt.BookingID)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return e.Blob(http.StatusOK, "image/png", png)
}

func (h *TicketHandler) loadReceipt(e *core.RequestEvent) (*services.Receipt, error) {
	if e.Auth == nil {
		return nil, apis.NewUnauthorizedError("Unauthorized", nil)
	}

	bookingID := e.Request.PathValue("bookingId")
	ctx := e.Request.Context()

	b, err := h.bookings.FetchBooking(ctx, bookingID)
	if err != nil {
		return nil, apis.NewNotFoundError("Booking not found", err)
	}
	if b.UserID != e.Auth.Id {
		return nil, apis.NewForbiddenError("Access denied", nil)
	}

	event, err := h.bookings.FetchEvent(ctx, b.EventID)
	if err != nil {
		// the booking outlives its event snapshot; render with what we have
		event = &models.Event{ID: b.EventID, Title: "Unknown event"}
	}

	return h.tickets.BuildReceipt(b, event), nil
}
