package wallet

import (
	"context"
	"fmt"
)

// Registry manages the wallet instances available to the payment dialog.
type Registry struct {
	wallets map[Provider]WalletInterface
	primary Provider
}

// NewRegistry creates an empty wallet registry.
func NewRegistry() *Registry {
	return &Registry{
		wallets: make(map[Provider]WalletInterface),
	}
}

// NewSimulatedRegistry registers a simulated adapter for every supported
// provider, with the default provider as primary.
func NewSimulatedRegistry() *Registry {
	r := NewRegistry()
	for _, p := range Providers() {
		r.Register(p, NewSimulatedWallet(p))
	}
	return r
}

// Register registers a wallet instance. The first registered wallet becomes
// the primary.
func (r *Registry) Register(provider Provider, w WalletInterface) {
	r.wallets[provider] = w
	if r.primary == "" {
		r.primary = provider
	}
}

// Get returns a wallet instance by provider.
func (r *Registry) Get(provider Provider) (WalletInterface, error) {
	w, exists := r.wallets[provider]
	if !exists {
		return nil, fmt.Errorf("wallet provider %s not registered", provider)
	}
	return w, nil
}

// GetPrimary returns the primary wallet instance.
func (r *Registry) GetPrimary() (WalletInterface, error) {
	if r.primary == "" {
		return nil, fmt.Errorf("no primary wallet configured")
	}
	return r.Get(r.primary)
}

// Available returns the registered providers.
func (r *Registry) Available() []Provider {
	providers := make([]Provider, 0, len(r.wallets))
	for provider := range r.wallets {
		providers = append(providers, provider)
	}
	return providers
}

// Close gracefully closes all wallet connections.
func (r *Registry) Close(ctx context.Context) error {
	for provider, w := range r.wallets {
		if err := w.Close(ctx); err != nil {
			return fmt.Errorf("closing %s wallet: %w", provider, err)
		}
	}
	return nil
}
