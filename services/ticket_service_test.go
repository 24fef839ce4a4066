package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syedfahad54/Eventify/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:            "bk_1a2b3c4d5e6f",
		EventID:       "evt_1",
		UserID:        "usr_1",
		Seats:         2,
		TotalAmount:   2500,
		Status:        "confirmed",
		PaymentMethod: "easypaisa",
		CreatedAt:     time.Unix(1700000000, 0),
	}
}

func sampleEvent() *models.Event {
	return &models.Event{
		ID:       "evt_1",
		Title:    "Karachi Tech Conference",
		Venue:    "Expo Centre",
		City:     "Karachi",
		Date:     "2026-11-03",
		Time:     "09:00",
		Category: "Conference",
	}
}

func TestTicketService_BuildReceipt(t *testing.T) {
	s := NewTicketService()
	receipt := s.BuildReceipt(sampleBooking(), sampleEvent())

	assert.Equal(t, "bk_1a2b3c4d5e6f", receipt.BookingID)
	assert.Equal(t, "bk_1a2b3", receipt.BookingRef, "ticket shows the truncated id")
	assert.Equal(t, "TICKET:bk_1a2b3c4d5e6f", receipt.QRContent)
	assert.Equal(t, "Karachi Tech Conference", receipt.EventTitle)
	assert.Equal(t, 2, receipt.Seats)
	assert.Equal(t, 2500.0, receipt.TotalPaid)
	assert.Equal(t, "easypaisa", receipt.PaymentMethod)
}

func TestTicketService_BuildReceipt_ShortID(t *testing.T) {
	s := NewTicketService()
	b := sampleBooking()
	b.ID = "bk1"

	receipt := s.BuildReceipt(b, sampleEvent())
	assert.Equal(t, "bk1", receipt.BookingRef)
}

func TestTicketService_ExportPNG(t *testing.T) {
	s := NewTicketService()
	receipt := s.BuildReceipt(sampleBooking(), sampleEvent())

	png, err := s.ExportPNG(receipt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "export must be a PNG")
}

func TestTicketService_Filename(t *testing.T) {
	s := NewTicketService()
	assert.Equal(t, "ticket-bk_1a2b3c4d5e6f.png", s.Filename("bk_1a2b3c4d5e6f"))
}
