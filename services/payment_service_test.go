package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syedfahad54/Eventify/config"
	"github.com/syedfahad54/Eventify/internal/status"
	"github.com/syedfahad54/Eventify/internal/wallet"
)

func setupTestPaymentService() (*PaymentService, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()

	registry := wallet.NewRegistry()
	for _, p := range wallet.Providers() {
		registry.Register(p, wallet.NewSimulatedWalletWithClock(p, func() time.Time {
			return time.UnixMilli(1700000000000)
		}))
	}

	cfg := &config.Config{
		Currency:          "PKR",
		PaymentSessionTTL: 10 * time.Minute,
		SubmitLockTTL:     30 * time.Second,
	}

	service := NewPaymentService(db, registry, cfg)
	service.now = func() time.Time { return time.UnixMilli(1700000000000) }
	service.newID = func() (string, error) { return "pay_TESTSESSION", nil }

	return service, mock
}

func TestPaymentService_CreateSession(t *testing.T) {
	service, mock := setupTestPaymentService()
	ctx := context.Background()

	mock.ExpectHSet("payment:pay_TESTSESSION",
		"user_id", "usr_1",
		"event_id", "evt_1",
		"seats", 2,
		"amount", 2500.0,
		"method", "easypaisa",
		"status", "pending",
		"created_at", int64(1700000000000),
	).SetVal(7)
	mock.ExpectExpire("payment:pay_TESTSESSION", 10*time.Minute).SetVal(true)

	session, err := service.CreateSession(ctx, "usr_1", "evt_1", 2, 2500, wallet.ProviderEasyPaisa)
	require.NoError(t, err)

	assert.Equal(t, "pay_TESTSESSION", session.ID)
	assert.Equal(t, "pending", session.Status)
	assert.Equal(t, "easypaisa", session.Method)
	assert.Equal(t, 2, session.Seats)
	assert.Equal(t, 2500.0, session.Amount)
	assert.Equal(t, session.CreatedAt.Add(10*time.Minute), session.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_CreateSession_UnknownMethod(t *testing.T) {
	service, _ := setupTestPaymentService()

	_, err := service.CreateSession(context.Background(), "usr_1", "evt_1", 1, 100, wallet.Provider("stripe"))
	assert.Error(t, err)
}

func TestPaymentService_GetSession_Missing(t *testing.T) {
	service, mock := setupTestPaymentService()

	mock.ExpectHGetAll("payment:pay_GONE").SetVal(map[string]string{})

	_, err := service.GetSession(context.Background(), "pay_GONE")
	assert.ErrorIs(t, err, status.ErrSessionNotFound)
}

func TestPaymentService_GetSession_CorruptedHash(t *testing.T) {
	service, mock := setupTestPaymentService()

	// a mangled seats field must surface as an error, not as a zero session
	mock.ExpectHGetAll("payment:pay_TESTSESSION").SetVal(map[string]string{
		"user_id":    "usr_1",
		"event_id":   "evt_1",
		"seats":      "two",
		"amount":     "2500",
		"method":     "jazzcash",
		"status":     "pending",
		"created_at": "1700000000000",
	})

	_, err := service.GetSession(context.Background(), "pay_TESTSESSION")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad seats")
}

func TestPaymentService_GenerateQR(t *testing.T) {
	service, mock := setupTestPaymentService()
	ctx := context.Background()

	mock.ExpectHGetAll("payment:pay_TESTSESSION").SetVal(map[string]string{
		"user_id":    "usr_1",
		"event_id":   "evt_1",
		"seats":      "1",
		"amount":     "2500",
		"method":     "jazzcash",
		"status":     "pending",
		"created_at": "1700000000000",
	})
	mock.ExpectHSet("payment:pay_TESTSESSION", "qr_payload", "JAZZCASH:PAY:2500:1700000000000").SetVal(1)

	payload, err := service.GenerateQR(ctx, "pay_TESTSESSION")
	require.NoError(t, err)
	assert.Equal(t, "JAZZCASH:PAY:2500:1700000000000", payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_CancelSession(t *testing.T) {
	service, mock := setupTestPaymentService()
	ctx := context.Background()

	mock.ExpectHGetAll("payment:pay_TESTSESSION").SetVal(map[string]string{
		"user_id":    "usr_1",
		"event_id":   "evt_1",
		"seats":      "1",
		"amount":     "2500",
		"method":     "jazzcash",
		"status":     "pending",
		"created_at": "1700000000000",
	})
	mock.ExpectDel("payment:pay_TESTSESSION").SetVal(1)

	err := service.CancelSession(ctx, "pay_TESTSESSION")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentService_SubmitLock(t *testing.T) {
	service, mock := setupTestPaymentService()
	ctx := context.Background()

	mock.ExpectSetNX("submit:evt_1:usr_1", "1", 30*time.Second).SetVal(true)
	require.NoError(t, service.AcquireSubmitLock(ctx, "evt_1", "usr_1"))

	mock.ExpectSetNX("submit:evt_1:usr_1", "1", 30*time.Second).SetVal(false)
	err := service.AcquireSubmitLock(ctx, "evt_1", "usr_1")
	assert.ErrorIs(t, err, status.ErrSubmitInFlight)
}

func TestPaymentService_SelectMethod(t *testing.T) {
	service, mock := setupTestPaymentService()
	ctx := context.Background()

	mock.ExpectHGetAll("payment:pay_TESTSESSION").SetVal(map[string]string{
		"user_id":    "usr_1",
		"event_id":   "evt_1",
		"seats":      "1",
		"amount":     "2500",
		"method":     "jazzcash",
		"status":     "pending",
		"created_at": "1700000000000",
	})
	mock.ExpectHSet("payment:pay_TESTSESSION", "method", "sadapay", "qr_payload", "").SetVal(1)

	err := service.SelectMethod(ctx, "pay_TESTSESSION", wallet.ProviderSadaPay)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
