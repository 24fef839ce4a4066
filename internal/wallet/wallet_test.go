package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRPayload_ExactFormat(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	tests := []struct {
		provider Provider
		amount   int64
		want     string
	}{
		{ProviderJazzCash, 2500, "JAZZCASH:PAY:2500:1700000000000"},
		{ProviderEasyPaisa, 1250, "EASYPAISA:PAY:1250:1700000000000"},
		{ProviderNayaPay, 99, "NAYAPAY:PAY:99:1700000000000"},
		{ProviderSadaPay, 10000, "SADAPAY:PAY:10000:1700000000000"},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			got := QRPayload(tt.provider, decimal.NewFromInt(tt.amount), at)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQRPayload_FractionalAmount(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	got := QRPayload(ProviderJazzCash, decimal.NewFromFloat(1250.5), at)
	assert.Equal(t, "JAZZCASH:PAY:1250.5:1700000000000", got)
}

func TestParseProvider(t *testing.T) {
	p, ok := ParseProvider("  JazzCash ")
	assert.True(t, ok)
	assert.Equal(t, ProviderJazzCash, p)

	_, ok = ParseProvider("stripe")
	assert.False(t, ok)
}

func TestSimulatedWallet_GenerateQR(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	w := NewSimulatedWalletWithClock(ProviderEasyPaisa, func() time.Time { return at })

	payload, err := w.GenerateQR(context.Background(), &PaymentRequest{
		Amount:   decimal.NewFromInt(500),
		Currency: "PKR",
	})
	require.NoError(t, err)
	assert.Equal(t, "EASYPAISA:PAY:500:1700000000000", payload)
}

func TestSimulatedWallet_RejectsNegativeAmount(t *testing.T) {
	w := NewSimulatedWallet(ProviderNayaPay)
	_, err := w.GenerateQR(context.Background(), &PaymentRequest{
		Amount: decimal.NewFromInt(-1),
	})
	assert.Error(t, err)
}

func TestSimulatedWallet_RejectsNilRequest(t *testing.T) {
	w := NewSimulatedWallet(ProviderNayaPay)
	_, err := w.GenerateQR(context.Background(), nil)
	assert.Error(t, err)
}

func TestRegistry_FirstRegisteredIsPrimary(t *testing.T) {
	r := NewRegistry()
	r.Register(ProviderSadaPay, NewSimulatedWallet(ProviderSadaPay))
	r.Register(ProviderJazzCash, NewSimulatedWallet(ProviderJazzCash))

	primary, err := r.GetPrimary()
	require.NoError(t, err)
	assert.Equal(t, ProviderSadaPay, primary.GetProvider())
}

func TestRegistry_UnknownProvider(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get(ProviderJazzCash)
	assert.Error(t, err)

	_, err = r.GetPrimary()
	assert.Error(t, err)
}

func TestSimulatedRegistry_AllProvidersRegistered(t *testing.T) {
	r := NewSimulatedRegistry()
	for _, p := range Providers() {
		w, err := r.Get(p)
		require.NoError(t, err)
		assert.Equal(t, p, w.GetProvider())
	}
	assert.Len(t, r.Available(), 4)
	assert.NoError(t, r.Close(context.Background()))
}

func TestClientTrustedVerifier_AlwaysApproves(t *testing.T) {
	v := NewClientTrustedVerifier()
	err := v.VerifyPayment(context.Background(), ProviderJazzCash, "evt_1", decimal.NewFromInt(2500))
	assert.NoError(t, err)
}

func TestProviderDisplayNames(t *testing.T) {
	assert.Equal(t, "JazzCash", ProviderJazzCash.DisplayName())
	assert.Equal(t, "EasyPaisa", ProviderEasyPaisa.DisplayName())
	assert.Equal(t, "NayaPay", ProviderNayaPay.DisplayName())
	assert.Equal(t, "SadaPay", ProviderSadaPay.DisplayName())
}
