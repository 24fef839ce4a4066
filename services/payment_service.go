package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/syedfahad54/Eventify/config"
	"github.com/syedfahad54/Eventify/internal/status"
	"github.com/syedfahad54/Eventify/internal/wallet"
	"github.com/syedfahad54/Eventify/models"
	"github.com/syedfahad54/Eventify/utils"
)

// PaymentService keeps the ephemeral checkout sessions in Redis. A session is
// created when the payment dialog opens, expires with its TTL, and is deleted
// when the dialog closes or the booking completes. Nothing here touches the
// primary store.
type PaymentService struct {
	Redis   *redis.Client
	wallets *wallet.Registry
	cfg     *config.Config
	now     func() time.Time
	newID   func() (string, error)
}

func NewPaymentService(redisClient *redis.Client, wallets *wallet.Registry, cfg *config.Config) *PaymentService {
	return &PaymentService{
		Redis:   redisClient,
		wallets: wallets,
		cfg:     cfg,
		now:     time.Now,
		newID:   newSessionID,
	}
}

func newSessionID() (string, error) {
	code, err := utils.GenerateCode(8)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return "pay_" + code, nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("payment:%s", sessionID)
}

func submitLockKey(eventID, userID string) string {
	return fmt.Sprintf("submit:%s:%s", eventID, userID)
}

// CreateSession opens one payment session for the dialog.
func (s *PaymentService) CreateSession(ctx context.Context, userID, eventID string, seats int, amount float64, method wallet.Provider) (*models.PaymentSession, error) {
	if _, err := s.wallets.Get(method); err != nil {
		return nil, err
	}

	sessionID, err := s.newID()
	if err != nil {
		return nil, err
	}

	createdAt := s.now()
	expiresAt := createdAt.Add(s.cfg.PaymentSessionTTL)

	key := sessionKey(sessionID)
	if err := s.Redis.HSet(ctx, key,
		"user_id", userID,
		"event_id", eventID,
		"seats", seats,
		"amount", amount,
		"method", string(method),
		"status", "pending",
		"created_at", createdAt.UnixMilli(),
	).Err(); err != nil {
		return nil, fmt.Errorf("store payment session: %w", err)
	}
	s.Redis.Expire(ctx, key, s.cfg.PaymentSessionTTL)

	return &models.PaymentSession{
		ID:        sessionID,
		UserID:    userID,
		EventID:   eventID,
		Seats:     seats,
		Amount:    amount,
		Method:    string(method),
		Status:    "pending",
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

// GetSession loads a session; expired or unknown ids report ErrSessionNotFound.
func (s *PaymentService) GetSession(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	data, err := s.Redis.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load payment session: %w", err)
	}
	if len(data) == 0 {
		return nil, status.ErrSessionNotFound
	}

	seats, err := strconv.Atoi(data["seats"])
	if err != nil {
		return nil, fmt.Errorf("payment session %s: bad seats %q: %w", sessionID, data["seats"], err)
	}
	amount, err := strconv.ParseFloat(data["amount"], 64)
	if err != nil {
		return nil, fmt.Errorf("payment session %s: bad amount %q: %w", sessionID, data["amount"], err)
	}
	createdMillis, err := strconv.ParseInt(data["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("payment session %s: bad created_at %q: %w", sessionID, data["created_at"], err)
	}
	createdAt := time.UnixMilli(createdMillis)

	return &models.PaymentSession{
		ID:        sessionID,
		UserID:    data["user_id"],
		EventID:   data["event_id"],
		Seats:     seats,
		Amount:    amount,
		Method:    data["method"],
		Status:    data["status"],
		QRPayload: data["qr_payload"],
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(s.cfg.PaymentSessionTTL),
	}, nil
}

// SelectMethod switches the session's payment channel and clears any payload
// generated for the previous one.
func (s *PaymentService) SelectMethod(ctx context.Context, sessionID string, method wallet.Provider) error {
	if _, err := s.wallets.Get(method); err != nil {
		return err
	}
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return err
	}
	return s.Redis.HSet(ctx, sessionKey(sessionID),
		"method", string(method),
		"qr_payload", "",
	).Err()
}

// GenerateQR derives the wallet payload for the session's chosen method at
// render time and records it on the session.
func (s *PaymentService) GenerateQR(ctx context.Context, sessionID string) (string, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}

	method, ok := wallet.ParseProvider(session.Method)
	if !ok {
		return "", fmt.Errorf("payment: unknown method %q", session.Method)
	}
	w, err := s.wallets.Get(method)
	if err != nil {
		return "", err
	}

	payload, err := w.GenerateQR(ctx, &wallet.PaymentRequest{
		Amount:          decimal.NewFromFloat(session.Amount),
		Currency:        s.cfg.Currency,
		ReferenceNumber: session.EventID,
	})
	if err != nil {
		return "", fmt.Errorf("generate %s QR: %w", method, err)
	}

	if err := s.Redis.HSet(ctx, sessionKey(sessionID), "qr_payload", payload).Err(); err != nil {
		return "", fmt.Errorf("store QR payload: %w", err)
	}
	return payload, nil
}

// CancelSession discards the session when the dialog closes.
func (s *PaymentService) CancelSession(ctx context.Context, sessionID string) error {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return err
	}
	return s.Redis.Del(ctx, sessionKey(sessionID)).Err()
}

// CompleteSession discards the session after the flow completes.
func (s *PaymentService) CompleteSession(ctx context.Context, sessionID string) error {
	return s.Redis.Del(ctx, sessionKey(sessionID)).Err()
}

// AcquireSubmitLock guards against duplicate booking submissions across
// requests: the first confirm takes the lock, later ones are rejected until
// it is released or its TTL lapses.
func (s *PaymentService) AcquireSubmitLock(ctx context.Context, eventID, userID string) error {
	ok, err := s.Redis.SetNX(ctx, submitLockKey(eventID, userID), "1", s.cfg.SubmitLockTTL).Result()
	if err != nil {
		return fmt.Errorf("acquire submit lock: %w", err)
	}
	if !ok {
		return status.ErrSubmitInFlight
	}
	return nil
}

// ReleaseSubmitLock frees the guard after the submission settles.
func (s *PaymentService) ReleaseSubmitLock(ctx context.Context, eventID, userID string) {
	s.Redis.Del(ctx, submitLockKey(eventID, userID))
}
