package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	bookingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_operations_total",
			Help: "Total booking operations by outcome",
		},
		[]string{"operation", "event_id", "status"},
	)

	availableSeats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "event_available_seats",
			Help: "Last known available seats per event",
		},
		[]string{"event_id"},
	)

	qrGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_qr_generated_total",
			Help: "QR payloads generated per wallet provider",
		},
		[]string{"provider"},
	)

	submitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_submit_duration_seconds",
			Help:    "Duration of booking store writes",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"event_id"},
	)
)

type Monitor struct {
	redis *redis.Client
}

func NewMonitor(redisClient *redis.Client) *Monitor {
	monitor := &Monitor{redis: redisClient}

	// Start metrics collection
	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.collectAvailabilityMetrics(context.Background())
	}
}

// collectAvailabilityMetrics mirrors the cached availability snapshots into
// the gauge. The cache keys are written by the booking service after every
// store refresh.
func (m *Monitor) collectAvailabilityMetrics(ctx context.Context) {
	keys, _ := m.redis.Keys(ctx, "event:avail:*").Result()
	for _, key := range keys {
		eventID := key[len("event:avail:"):]
		value, err := m.redis.Get(ctx, key).Float64()
		if err != nil {
			continue
		}
		availableSeats.WithLabelValues(eventID).Set(value)
	}
}

// TrackBookingOperation records one booking operation outcome.
func (m *Monitor) TrackBookingOperation(operation, eventID, status string) {
	bookingOperations.WithLabelValues(operation, eventID, status).Inc()
}

// TrackQRGenerated records one QR payload generation.
func (m *Monitor) TrackQRGenerated(provider string) {
	qrGenerated.WithLabelValues(provider).Inc()
}

// TrackSubmitDuration records the latency of one booking store write.
func (m *Monitor) TrackSubmitDuration(eventID string, duration time.Duration) {
	submitDuration.WithLabelValues(eventID).Observe(duration.Seconds())
}
