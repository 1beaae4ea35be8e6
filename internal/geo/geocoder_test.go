package geo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeocodeFallbackKnownLocality(t *testing.T) {
	g := NewGeocoder("")

	resp := g.Geocode(context.Background(), "Rua das Flores, Centro, Iguaba Grande")
	require.Equal(t, "Rua das Flores, Centro, Iguaba Grande", resp.FormattedAddress)
	require.InDelta(t, -22.8397, resp.Lat, 0.01)
	require.InDelta(t, -42.2267, resp.Lng, 0.01)
}

func TestGeocodeFallbackUnknownAddress(t *testing.T) {
	g := NewGeocoder("")

	resp := g.Geocode(context.Background(), "Endereço Desconhecido, 404")
	require.InDelta(t, iguabaCenter.lat, resp.Lat, 0.05)
	require.InDelta(t, iguabaCenter.lng, resp.Lng, 0.05)
}

func TestGeocodeFallbackJitterSpreadsMarkers(t *testing.T) {
	g := NewGeocoder("")

	a := g.Geocode(context.Background(), "Praia, Iguaba")
	b := g.Geocode(context.Background(), "Praia, Iguaba")

	moved := math.Abs(a.Lat-b.Lat) > 0 || math.Abs(a.Lng-b.Lng) > 0
	require.True(t, moved)
}

func TestGeocodeGoogleProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Rua A, Iguaba Grande", r.URL.Query().Get("address"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Rua A, Iguaba Grande - RJ, Brasil",
				"geometry": {"location": {"lat": -22.84, "lng": -42.22}}
			}]
		}`))
	}))
	defer srv.Close()

	g := NewGeocoder("test-key")
	g.baseURL = srv.URL

	resp := g.Geocode(context.Background(), "Rua A, Iguaba Grande")
	require.Equal(t, -22.84, resp.Lat)
	require.Equal(t, -42.22, resp.Lng)
	require.Equal(t, "Rua A, Iguaba Grande - RJ, Brasil", resp.FormattedAddress)
}

func TestGeocodeGoogleFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	g := NewGeocoder("test-key")
	g.baseURL = srv.URL

	resp := g.Geocode(context.Background(), "Porto da Aldeia")
	require.InDelta(t, knownLocations["porto"].lat, resp.Lat, 0.01)
	require.InDelta(t, knownLocations["porto"].lng, resp.Lng, 0.01)
}
