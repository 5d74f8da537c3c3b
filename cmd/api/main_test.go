// Package main starts the metro ticketing HTTP server. It loads the network
// once at startup, wires the ticket store and serves the handlers package
// behind CORS and metrics middleware.
package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/config"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/handlers"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/network"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/store"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/ticketing"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Network.Path = filepath.Join("..", "..", "data", "network.yml")
	return cfg
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	n, err := loadNetwork(testConfig())
	require.NoError(t, err)
	svc := ticketing.NewService(n, store.NewMemoryStore())
	return newRouter(handlers.New(svc), "*")
}

func TestLoadNetwork(t *testing.T) {
	t.Run("builds the sample network", func(t *testing.T) {
		n, err := loadNetwork(testConfig())

		require.NoError(t, err)
		assert.Equal(t, 12, n.Stats().TotalStations)
		assert.Equal(t, network.DefaultFarePolicy, n.FarePolicy())
	})

	t.Run("applies the configured fare", func(t *testing.T) {
		cfg := testConfig()
		cfg.Fare.Base = 1.20
		cfg.Fare.PerStation = 0.40

		n, err := loadNetwork(cfg)

		require.NoError(t, err)
		assert.Equal(t, network.FarePolicy{Base: 1.20, PerStation: 0.40}, n.FarePolicy())
	})

	t.Run("missing network file", func(t *testing.T) {
		cfg := testConfig()
		cfg.Network.Path = filepath.Join(t.TempDir(), "absent.yml")

		_, err := loadNetwork(cfg)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load network")
	})

	t.Run("missing gtfs feed", func(t *testing.T) {
		cfg := testConfig()
		cfg.Network.GTFSPath = filepath.Join(t.TempDir(), "feed.zip")

		_, err := loadNetwork(cfg)

		assert.Error(t, err)
	})
}

func TestMainRoutes(t *testing.T) {
	router := setupRouter(t)

	t.Run("health endpoint is accessible", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("metrics endpoint is accessible", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "metro_http_requests_total")
	})

	t.Run("preflight is answered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/tickets", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("preflight is not recorded as an unmatched request", func(t *testing.T) {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodOptions, "/stations", nil))

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `method="OPTIONS"`)
	})

	t.Run("non-existent route returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("root path returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPurchaseFlowIntegration(t *testing.T) {
	router := setupRouter(t)

	t.Run("quote then buy central station to park", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/route?from=1&to=10", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var quote models.Itinerary
		require.NoError(t, json.NewDecoder(w.Body).Decode(&quote))

		req = httptest.NewRequest(http.MethodPost, "/tickets", strings.NewReader(`{"origin_id":"1","destination_id":"10"}`))
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var ticket models.Ticket
		require.NoError(t, json.NewDecoder(w.Body).Decode(&ticket))

		assert.InDelta(t, quote.Price, ticket.Price, 1e-9)
		assert.Equal(t, quote.Instructions, ticket.Instructions)
		assert.Equal(t, []string{
			"Board Red Line at Central Station",
			"Change to Green Line at Market Place",
			"Arrive at Park",
		}, ticket.Instructions)
	})

	t.Run("ticket shows up in the listing and stats", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tickets/stats", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var stats models.TicketStats
		require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
		assert.Equal(t, 1, stats.TotalTickets)
		assert.InDelta(t, 6.00, stats.TotalSpent, 1e-9)
	})
}
