package services

import (
	"fmt"
	"log/slog"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/syedfahad54/Eventify/models"
)

// qrImageSize is the ticket QR raster edge in pixels.
const qrImageSize = 512

// Receipt is the confirmation artifact shown and exported after checkout.
type Receipt struct {
	BookingID     string    `json:"booking_id"`
	BookingRef    string    `json:"booking_ref"` // truncated id shown on the ticket
	EventTitle    string    `json:"event_title"`
	EventDate     string    `json:"event_date"`
	EventTime     string    `json:"event_time"`
	Venue         string    `json:"venue"`
	City          string    `json:"city"`
	Category      string    `json:"category"`
	Seats         int       `json:"seats"`
	TotalPaid     float64   `json:"total_paid"`
	PaymentMethod string    `json:"payment_method"`
	QRContent     string    `json:"qr_content"` // scanned at the venue entrance
	BookedAt      time.Time `json:"booked_at"`
}

// TicketService renders booking confirmations and exports them as images.
type TicketService struct{}

func NewTicketService() *TicketService {
	return &TicketService{}
}

// BuildReceipt composes the receipt from a confirmed booking and its event
// snapshot.
func (s *TicketService) BuildReceipt(b *models.Booking, e *models.Event) *Receipt {
	ref := b.ID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return &Receipt{
		BookingID:     b.ID,
		BookingRef:    ref,
		EventTitle:    e.Title,
		EventDate:     e.Date,
		EventTime:     e.Time,
		Venue:         e.Venue,
		City:          e.City,
		Category:      e.Category,
		Seats:         b.Seats,
		TotalPaid:     b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		QRContent:     fmt.Sprintf("TICKET:%s", b.ID),
		BookedAt:      b.CreatedAt,
	}
}

// ExportPNG rasterizes the receipt's scannable code. Export is best-effort:
// a rasterization failure is logged and reported, but callers treat it as
// non-blocking and let the user retry the download.
func (s *TicketService) ExportPNG(receipt *Receipt) ([]byte, error) {
	png, err := qrcode.Encode(receipt.QRContent, qrcode.High, qrImageSize)
	if err != nil {
		slog.Error("ticket export failed",
			"booking_id", receipt.BookingID,
			"error", err,
		)
		return nil, fmt.Errorf("rasterize ticket %s: %w", receipt.BookingID, err)
	}
	return png, nil
}

// Filename names the downloadable artifact.
func (s *TicketService) Filename(bookingID string) string {
	return fmt.Sprintf("ticket-%s.png", bookingID)
}
