package wallet

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Provider represents the supported mobile-wallet payment channels.
type Provider string

const (
	ProviderJazzCash  Provider = "jazzcash"
	ProviderEasyPaisa Provider = "easypaisa"
	ProviderNayaPay   Provider = "nayapay"
	ProviderSadaPay   Provider = "sadapay"
)

// Providers returns all supported wallet providers in display order.
// The first entry is the default selection in the payment dialog.
func Providers() []Provider {
	return []Provider{ProviderJazzCash, ProviderEasyPaisa, ProviderNayaPay, ProviderSadaPay}
}

// DefaultProvider is the pre-selected method when the dialog opens.
const DefaultProvider = ProviderJazzCash

func ParseProvider(s string) (Provider, bool) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProviderJazzCash, ProviderEasyPaisa, ProviderNayaPay, ProviderSadaPay:
		return p, true
	}
	return "", false
}

// Tag is the uppercase method tag embedded in QR payloads.
func (p Provider) Tag() string {
	return strings.ToUpper(string(p))
}

func (p Provider) DisplayName() string {
	switch p {
	case ProviderJazzCash:
		return "JazzCash"
	case ProviderEasyPaisa:
		return "EasyPaisa"
	case ProviderNayaPay:
		return "NayaPay"
	case ProviderSadaPay:
		return "SadaPay"
	}
	return string(p)
}

// PaymentRequest represents a generic wallet payment request.
type PaymentRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	ReferenceNumber string          `json:"reference_number"`
	Description     string          `json:"description,omitempty"`
}

// WalletInterface defines the common interface for all wallet payment providers.
type WalletInterface interface {
	// GetProvider returns the wallet provider type
	GetProvider() Provider

	// GenerateQR derives the scannable payment payload for a request
	GenerateQR(ctx context.Context, req *PaymentRequest) (string, error)

	// Close gracefully closes any connections
	Close(ctx context.Context) error
}
