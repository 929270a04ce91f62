package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultNominatimBase = "https://nominatim.openstreetmap.org"

// NominatimProvider queries the OpenStreetMap Nominatim search API,
// restricted to one country. Nominatim's usage policy requires an
// identifying User-Agent and at most one request per second; callers are
// expected to debounce.
type NominatimProvider struct {
	baseURL     string
	countryCode string
	userAgent   string
	client      *http.Client
}

func NewNominatimProvider(baseURL, countryCode, userAgent string) *NominatimProvider {
	if baseURL == "" {
		baseURL = defaultNominatimBase
	}
	if countryCode == "" {
		countryCode = "in"
	}

	return &NominatimProvider{
		baseURL:     baseURL,
		countryCode: countryCode,
		userAgent:   userAgent,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	OsmID       int64  `json:"osm_id"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

func (p *NominatimProvider) SearchPlaces(ctx context.Context, query string, limit int) ([]Place, error) {
	if len(query) < 2 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 6
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("countrycodes", p.countryCode)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", "en")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}

		city := r.Address.City
		if city == "" {
			city = r.Address.Town
		}
		if city == "" {
			city = r.Address.Village
		}

		places = append(places, Place{
			DisplayName: r.DisplayName,
			Lat:         lat,
			Lng:         lng,
			City:        city,
			CountryCode: r.Address.CountryCode,
			PlaceID:     fmt.Sprintf("osm:%d", r.OsmID),
			Type:        r.Type,
		})
	}

	return places, nil
}
