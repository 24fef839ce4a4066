package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"

	"github.com/syedfahad54/Eventify/config"
	"github.com/syedfahad54/Eventify/handlers"
	"github.com/syedfahad54/Eventify/internal/wallet"
	_ "github.com/syedfahad54/Eventify/migrations"
	"github.com/syedfahad54/Eventify/monitoring"
	"github.com/syedfahad54/Eventify/security"
	"github.com/syedfahad54/Eventify/services"
	"github.com/syedfahad54/Eventify/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize PubNub
	pnConfig := pubnub.NewConfig()
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	pn := pubnub.NewPubNub(pnConfig)
	notifier := services.NewPubNubNotifier(pn)

	// Simulated mobile wallets and the trusting verifier that goes with them
	wallets := wallet.NewSimulatedRegistry()
	verifier := wallet.NewClientTrustedVerifier()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Release wallet sessions once shutdown is signalled
	go func() {
		<-ctx.Done()
		if err := wallets.Close(context.Background()); err != nil {
			slog.Error("wallet shutdown", "error", err)
		}
	}()

	// Initialize services
	bookingService := services.NewBookingService(app, redisClient)
	paymentService := services.NewPaymentService(redisClient, wallets, cfg)
	analyticsService := services.NewAnalyticsService(app)
	ticketService := services.NewTicketService()

	monitor := monitoring.NewMonitor(redisClient)
	rateLimiter := security.NewRateLimiter(redisClient)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(app, bookingService)
	paymentHandler := handlers.NewPaymentHandler(app, bookingService, paymentService, wallets, monitor)
	bookingHandler := handlers.NewBookingHandler(app, bookingService, paymentService, notifier, wallets, verifier, monitor)
	ticketHandler := handlers.NewTicketHandler(app, bookingService, ticketService)
	organizerHandler := handlers.NewOrganizerHandler(app, analyticsService)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Expose Prometheus metrics on a separate port
	if cfg.EnableMetrics {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf(":%s", cfg.MetricsPort)
			if err := http.ListenAndServe(addr, mux); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		syncAvailabilityToRedis(app, redisClient)

		// Event endpoints
		e.Router.GET("/api/v1/events", eventHandler.ListEvents)
		e.Router.POST("/api/v1/events", eventHandler.CreateEvent)
		e.Router.GET("/api/v1/events/{eventId}", eventHandler.GetEvent)

		// Payment session endpoints
		e.Router.POST("/api/v1/payments/sessions", paymentHandler.CreateSession)
		e.Router.PUT("/api/v1/payments/sessions/{sessionId}/method", paymentHandler.SelectMethod)
		e.Router.GET("/api/v1/payments/sessions/{sessionId}/qr", paymentHandler.GetQR)
		e.Router.POST("/api/v1/payments/sessions/{sessionId}/cancel", paymentHandler.CancelSession)

		// Booking endpoints
		e.Router.POST("/api/v1/bookings/confirm", bookingHandler.ConfirmBooking).
			BindFunc(rateLimiter.Limit("booking", cfg.BookingRateLimit, cfg.BookingRateWindow))
		e.Router.GET("/api/v1/bookings/history", bookingHandler.GetBookingHistory)

		// Ticket endpoints
		e.Router.GET("/api/v1/tickets/{bookingId}", ticketHandler.GetTicket)
		e.Router.GET("/api/v1/tickets/{bookingId}/download", ticketHandler.DownloadTicket)

		// Organizer endpoints
		e.Router.GET("/api/v1/organizer/dashboard", organizerHandler.Dashboard)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		setupBookingHooks(app, redisClient, monitor)

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// syncAvailabilityToRedis warms the availability cache from the store so the
// metrics collector and seat selectors see fresh numbers right after boot.
func syncAvailabilityToRedis(app *pocketbase.PocketBase, redisClient *redis.Client) {
	ctx := context.Background()

	var records []dbx.NullStringMap
	if err := app.DB().NewQuery(
		"SELECT id, available_seats FROM events",
	).All(&records); err != nil {
		log.Printf("Error fetching event availability: %v", err)
		return
	}

	for _, record := range records {
		id := record["id"].String
		if id == "" {
			continue
		}
		key := fmt.Sprintf("event:avail:%s", id)
		redisClient.Set(ctx, key, record["available_seats"].String, 0)
	}
	log.Printf("Synced availability for %d events to Redis", len(records))
}

func setupBookingHooks(app *pocketbase.PocketBase, redisClient *redis.Client, monitor *monitoring.Monitor) {
	// Fires after a booking row lands, regardless of which surface wrote it.
	app.OnRecordAfterCreateSuccess("bookings").BindFunc(func(e *core.RecordEvent) error {
		eventID := e.Record.GetString("event_id")

		slog.Info("booking created",
			"booking_id", e.Record.Id,
			"event_id", eventID,
			"seats", e.Record.GetInt("seats"),
			"status", e.Record.GetString("status"),
		)
		monitor.TrackBookingOperation("create", eventID, e.Record.GetString("status"))

		return e.Next()
	})

	// Keep the cached availability in step with organizer edits.
	app.OnRecordAfterUpdateSuccess("events").BindFunc(func(e *core.RecordEvent) error {
		key := fmt.Sprintf("event:avail:%s", e.Record.Id)
		redisClient.Set(context.Background(), key, e.Record.GetInt("available_seats"), 0)
		return e.Next()
	})
}

func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
