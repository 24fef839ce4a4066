package wallet

import (
	"context"
	"fmt"
	"time"
)

// SimulatedWallet implements WalletInterface for wallets that have no live
// gateway integration. All four supported providers run through it: the QR it
// produces is a display simulation the client scans and then self-reports as
// paid. See Verifier for the trust boundary.
type SimulatedWallet struct {
	provider Provider
	now      func() time.Time
}

func NewSimulatedWallet(provider Provider) *SimulatedWallet {
	return &SimulatedWallet{
		provider: provider,
		now:      time.Now,
	}
}

// NewSimulatedWalletWithClock pins the generation timestamp, for tests.
func NewSimulatedWalletWithClock(provider Provider, now func() time.Time) *SimulatedWallet {
	return &SimulatedWallet{
		provider: provider,
		now:      now,
	}
}

// GetProvider returns the wallet provider type
func (w *SimulatedWallet) GetProvider() Provider {
	return w.provider
}

// GenerateQR derives the payment payload at render time.
func (w *SimulatedWallet) GenerateQR(ctx context.Context, req *PaymentRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("wallet: nil payment request")
	}
	if req.Amount.IsNegative() {
		return "", fmt.Errorf("wallet: negative amount %s", req.Amount)
	}
	return QRPayload(w.provider, req.Amount, w.now()), nil
}

// Close gracefully closes any connections.
// Simulated wallets hold no connections.
func (w *SimulatedWallet) Close(ctx context.Context) error {
	return nil
}
