// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/network"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/store"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/ticketing"
)

// API serves the network and ticketing endpoints over one ticketing service.
type API struct {
	tickets *ticketing.Service
	network *network.Network
}

func New(svc *ticketing.Service) *API {
	return &API{tickets: svc, network: svc.Network()}
}

// Register mounts every endpoint on mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", a.HealthHandler)
	mux.HandleFunc("/stations", a.StationsHandler)
	mux.HandleFunc("/stations/{id}", a.StationHandler)
	mux.HandleFunc("/lines", a.LinesHandler)
	mux.HandleFunc("/lines/{id}", a.LineHandler)
	mux.HandleFunc("/interchanges", a.InterchangesHandler)
	mux.HandleFunc("/stats", a.StatsHandler)
	mux.HandleFunc("/route", a.RouteHandler)
	mux.HandleFunc("/tickets", a.TicketsHandler)
	mux.HandleFunc("/tickets/stats", a.TicketStatsHandler)
	mux.HandleFunc("/tickets/{id}", a.TicketHandler)
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, network.ErrUnknownStation), errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, network.ErrNoRoute):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ticketing.ErrSameStation),
		errors.Is(err, network.ErrInvalidPath),
		errors.Is(err, network.ErrInvalidFare):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
