package geo

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// GoogleResolver is the autocomplete strategy: candidates come from the
// Google geocoding endpoint restricted to a country allow-list, each already
// carrying a formatted address and coordinates.
type GoogleResolver struct {
	APIKey    string
	Countries []string
	Cache     *GeocodeCache
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (r *GoogleResolver) Resolve(ctx context.Context, query string) (*ResolvedAddress, error) {
	candidates, err := r.Suggest(ctx, query)
	if err != nil {
		return nil, err
	}
	return &candidates[0], nil
}

func (r *GoogleResolver) Suggest(ctx context.Context, query string) ([]ResolvedAddress, error) {
	if cached := r.Cache.Get(ctx, "google", query); cached != nil {
		return cached, nil
	}

	params := url.Values{}
	params.Set("address", query)
	params.Set("key", r.APIKey)
	if len(r.Countries) > 0 {
		components := make([]string, 0, len(r.Countries))
		for _, country := range r.Countries {
			components = append(components, "country:"+strings.ToUpper(country))
		}
		params.Set("components", strings.Join(components, "|"))
	}

	endpoint := "https://maps.googleapis.com/maps/api/geocode/json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, ErrProviderUnavailable
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Println("[GEO] [ERROR] google geocode request failed:", err)
		return nil, ErrProviderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Println("[GEO] [ERROR] google geocode status:", resp.StatusCode)
		return nil, ErrProviderUnavailable
	}

	var decoded googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Println("[GEO] [ERROR] google geocode decode failed:", err)
		return nil, ErrProviderUnavailable
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, ErrAddressNotFound
	default:
		log.Println("[GEO] [ERROR] google geocode status field:", decoded.Status)
		return nil, ErrProviderUnavailable
	}

	candidates := make([]ResolvedAddress, 0, len(decoded.Results))
	for _, result := range decoded.Results {
		candidates = append(candidates, ResolvedAddress{
			Address: result.FormattedAddress,
			Coordinates: Coordinates{
				Lat: result.Geometry.Location.Lat,
				Lng: result.Geometry.Location.Lng,
			},
		})
	}
	if len(candidates) == 0 {
		return nil, ErrAddressNotFound
	}

	r.Cache.Set(ctx, "google", query, candidates)
	return candidates, nil
}
