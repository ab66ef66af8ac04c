package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lastmile/internal/adapters/out/cache"
	"lastmile/internal/adapters/out/routing"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := routing.NewClient("", time.Second, nil)
	require.Error(t, err)
}

func TestNewClient_RequiresTimeout(t *testing.T) {
	_, err := routing.NewClient("http://localhost:8080", 0, nil)
	require.Error(t, err)
}

func TestRouteDistanceKm_ReturnsProviderDistance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route", r.URL.Path)
		assert.Equal(t, "40.99000", r.URL.Query().Get("from_lat"))
		assert.Equal(t, "29.02500", r.URL.Query().Get("from_lon"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"distance_km": 7.5}`))
	}))
	defer server.Close()

	client, err := routing.NewClient(server.URL, time.Second, nil)
	require.NoError(t, err)

	km, err := client.RouteDistanceKm(t.Context(),
		mustGeoPoint(t, 40.99, 29.025), mustGeoPoint(t, 41.0255, 29.0157))

	require.NoError(t, err)
	assert.InDelta(t, 7.5, km, 0.0001)
}

func TestRouteDistanceKm_ErrorsOnProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := routing.NewClient(server.URL, time.Second, nil)
	require.NoError(t, err)

	_, err = client.RouteDistanceKm(t.Context(),
		mustGeoPoint(t, 40.99, 29.025), mustGeoPoint(t, 41.0255, 29.0157))

	require.Error(t, err)
}

func TestRouteDistanceKm_ErrorsOnNegativeDistance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"distance_km": -1}`))
	}))
	defer server.Close()

	client, err := routing.NewClient(server.URL, time.Second, nil)
	require.NoError(t, err)

	_, err = client.RouteDistanceKm(t.Context(),
		mustGeoPoint(t, 40.99, 29.025), mustGeoPoint(t, 41.0255, 29.0157))

	require.Error(t, err)
}

func TestRouteDistanceKm_SecondCallServedFromCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"distance_km": 7.5}`))
	}))
	defer server.Close()

	client, err := routing.NewClient(server.URL, time.Second, cache.NewMemoryCache())
	require.NoError(t, err)

	from := mustGeoPoint(t, 40.99, 29.025)
	to := mustGeoPoint(t, 41.0255, 29.0157)

	km, err := client.RouteDistanceKm(t.Context(), from, to)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, km, 0.0001)

	km, err = client.RouteDistanceKm(t.Context(), from, to)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, km, 0.0001)

	assert.Equal(t, 1, calls)
}
