package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// GoogleMapsProvider backs place search with the Google Places text-search
// API, region-biased to the service country.
type GoogleMapsProvider struct {
	client *maps.Client
	region string
}

func NewGoogleMapsProvider(apiKey, region string) (*GoogleMapsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create google maps client: %w", err)
	}
	if region == "" {
		region = "in"
	}

	return &GoogleMapsProvider{client: client, region: region}, nil
}

func (p *GoogleMapsProvider) SearchPlaces(ctx context.Context, query string, limit int) ([]Place, error) {
	if len(query) < 2 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 6
	}

	resp, err := p.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:  query,
		Region: p.region,
	})
	if err != nil {
		return nil, fmt.Errorf("google places search failed: %w", err)
	}

	places := make([]Place, 0, limit)
	for _, r := range resp.Results {
		if len(places) >= limit {
			break
		}

		placeType := ""
		if len(r.Types) > 0 {
			placeType = r.Types[0]
		}

		places = append(places, Place{
			DisplayName: r.FormattedAddress,
			Lat:         r.Geometry.Location.Lat,
			Lng:         r.Geometry.Location.Lng,
			CountryCode: strings.ToLower(p.region),
			PlaceID:     r.PlaceID,
			Type:        placeType,
		})
	}

	return places, nil
}
