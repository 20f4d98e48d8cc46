package providers

//go:generate mockgen -source=provider.go -destination=mocks/mocks.go -package=mocks

import "context"

// Provider fetches raw search pages from a practitioner registry.
type Provider interface {
	// ID returns a unique identifier for this provider instance
	ID() string

	// Fetch GETs url and returns the page body. Failures are *ProviderError.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
