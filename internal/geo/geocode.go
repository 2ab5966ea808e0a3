package geo

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// NominatimResolver is the manual geocode strategy: one-shot free-text
// address lookup against a public Nominatim endpoint.
type NominatimResolver struct {
	BaseURL string
	Cache   *GeocodeCache
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (r *NominatimResolver) Resolve(ctx context.Context, query string) (*ResolvedAddress, error) {
	candidates, err := r.Suggest(ctx, query)
	if err != nil {
		return nil, err
	}
	return &candidates[0], nil
}

func (r *NominatimResolver) Suggest(ctx context.Context, query string) ([]ResolvedAddress, error) {
	if cached := r.Cache.Get(ctx, "nominatim", query); cached != nil {
		return cached, nil
	}

	endpoint := strings.TrimRight(r.BaseURL, "/") + "/search?format=json&q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, ErrProviderUnavailable
	}
	// Nominatim usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "janazaboard/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Println("[GEO] [ERROR] nominatim request failed:", err)
		return nil, ErrProviderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Println("[GEO] [ERROR] nominatim status:", resp.StatusCode)
		return nil, ErrProviderUnavailable
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		log.Println("[GEO] [ERROR] nominatim decode failed:", err)
		return nil, ErrProviderUnavailable
	}
	if len(results) == 0 {
		return nil, ErrAddressNotFound
	}

	candidates := make([]ResolvedAddress, 0, len(results))
	for _, result := range results {
		lat, latErr := strconv.ParseFloat(result.Lat, 64)
		lng, lngErr := strconv.ParseFloat(result.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		address := result.DisplayName
		if address == "" {
			address = query
		}
		candidates = append(candidates, ResolvedAddress{
			Address:     address,
			Coordinates: Coordinates{Lat: lat, Lng: lng},
		})
	}
	if len(candidates) == 0 {
		return nil, ErrAddressNotFound
	}

	r.Cache.Set(ctx, "nominatim", query, candidates)
	return candidates, nil
}
