package geo

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ResolvedAddress is what both address-input strategies ultimately produce:
// a human-readable address with resolved coordinates.
type ResolvedAddress struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}

var (
	// ErrAddressNotFound means the provider answered with zero candidates.
	ErrAddressNotFound = errors.New("address not found")
	// ErrProviderUnavailable means the provider could not be reached or
	// answered with garbage.
	ErrProviderUnavailable = errors.New("geocoding service unavailable")
)

// AddressResolver abstracts the two address-input strategies. Resolve accepts
// the first ranked candidate; Suggest returns the ranked candidate list, each
// already carrying coordinates.
type AddressResolver interface {
	Resolve(ctx context.Context, query string) (*ResolvedAddress, error)
	Suggest(ctx context.Context, query string) ([]ResolvedAddress, error)
}

// Outbound provider calls share one bound on latency.
var httpClient = &http.Client{Timeout: 8 * time.Second}

// NewResolver picks the strategy by provider name: "google" selects the
// autocomplete strategy, anything else the manual Nominatim strategy.
func NewResolver(provider, nominatimBaseURL, googleAPIKey string, countries []string, cache *GeocodeCache) AddressResolver {
	if provider == "google" && googleAPIKey != "" {
		return &GoogleResolver{APIKey: googleAPIKey, Countries: countries, Cache: cache}
	}
	return &NominatimResolver{BaseURL: nominatimBaseURL, Cache: cache}
}
