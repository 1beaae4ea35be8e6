package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"salva-iguaba-api/internal/dto"
	"salva-iguaba-api/internal/logger"

	"go.uber.org/zap"
)

// Geocoder resolves an address to coordinates via the Google Geocoding API,
// falling back to a keyword table when no key is configured or the provider
// fails. The handler always gets an answer.
type Geocoder struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewGeocoder(apiKey string) *Geocoder {
	return &Geocoder{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/geocode/json",
	}
}

func (g *Geocoder) Geocode(ctx context.Context, address string) *dto.GeocodeResponse {
	if g.apiKey != "" {
		resp, err := g.geocodeGoogle(ctx, address)
		if err == nil {
			return resp
		}
		logger.FromContext(ctx).Warn("google geocoding failed, using fallback", zap.Error(err))
	}

	return fallback(address)
}

func (g *Geocoder) geocodeGoogle(ctx context.Context, address string) (*dto.GeocodeResponse, error) {
	reqURL := fmt.Sprintf("%s?address=%s&key=%s", g.baseURL, url.QueryEscape(address), g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
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
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		return nil, fmt.Errorf("geocode status %q", payload.Status)
	}

	result := payload.Results[0]
	return &dto.GeocodeResponse{
		Lat:              result.Geometry.Location.Lat,
		Lng:              result.Geometry.Location.Lng,
		FormattedAddress: result.FormattedAddress,
	}, nil
}

// Iguaba Grande localities used when no provider is available. A small
// jitter keeps markers from stacking on the exact same point.
var knownLocations = map[string]struct{ lat, lng float64 }{
	"centro":             {-22.8397, -42.2267},
	"praia":              {-22.8377, -42.2247},
	"porto":              {-22.8350, -42.2250},
	"sapiatiba":          {-22.8420, -42.2310},
	"ubas":               {-22.8450, -42.2280},
	"morro de são joão":  {-22.8330, -42.2200},
	"sapê":               {-22.8380, -42.2350},
}

var iguabaCenter = struct{ lat, lng float64 }{-22.8397, -42.2267}

func fallback(address string) *dto.GeocodeResponse {
	addressLower := strings.ToLower(address)

	for keyword, coords := range knownLocations {
		if strings.Contains(addressLower, keyword) {
			return &dto.GeocodeResponse{
				Lat:              coords.lat + jitter(0.003),
				Lng:              coords.lng + jitter(0.003),
				FormattedAddress: address,
			}
		}
	}

	return &dto.GeocodeResponse{
		Lat:              iguabaCenter.lat + jitter(0.01),
		Lng:              iguabaCenter.lng + jitter(0.01),
		FormattedAddress: address,
	}
}

func jitter(spread float64) float64 {
	return (rand.Float64() - 0.5) * spread
}
