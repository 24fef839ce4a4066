package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

// Verifier decides whether a wallet payment actually went through before a
// booking is written. It exists so a real gateway verifier can be substituted
// without touching the booking flow.
type Verifier interface {
	VerifyPayment(ctx context.Context, provider Provider, reference string, amount decimal.Decimal) error
}

// ClientTrustedVerifier approves every payment. This is the intentional
// simulation boundary of the product: the user scans the QR and self-reports
// "payment complete", and no server-side verification occurs. Swapping this
// out is how a live gateway integration would land.
type ClientTrustedVerifier struct{}

func NewClientTrustedVerifier() *ClientTrustedVerifier {
	return &ClientTrustedVerifier{}
}

func (v *ClientTrustedVerifier) VerifyPayment(ctx context.Context, provider Provider, reference string, amount decimal.Decimal) error {
	return nil
}
