// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/ticketing"
)

type PurchaseRequest struct {
	OriginID      string `json:"origin_id"`
	DestinationID string `json:"destination_id"`
}

// TicketsHandler sells a ticket on POST and lists tickets on GET, optionally
// filtered by ?origin= and ?destination=.
func (a *API) TicketsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.purchase(w, r)
	case http.MethodGet:
		a.listTickets(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *API) purchase(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	defer r.Body.Close()

	var req PurchaseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid purchase request: "+err.Error(), http.StatusBadRequest)
		return
	}

	req.OriginID = strings.TrimSpace(req.OriginID)
	req.DestinationID = strings.TrimSpace(req.DestinationID)
	if req.OriginID == "" || req.DestinationID == "" {
		http.Error(w, "Both origin_id and destination_id are required", http.StatusBadRequest)
		return
	}

	ticket, err := a.tickets.Purchase(r.Context(), req.OriginID, req.DestinationID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", "/tickets/"+ticket.ID)
	writeJSON(w, r, http.StatusCreated, ticket)
}

func (a *API) listTickets(w http.ResponseWriter, r *http.Request) {
	filter := ticketing.Filter{
		OriginID:      r.URL.Query().Get("origin"),
		DestinationID: r.URL.Query().Get("destination"),
	}

	tickets, err := a.tickets.Tickets(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, tickets)
}

func (a *API) TicketHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	ticket, err := a.tickets.Ticket(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, ticket)
}

func (a *API) TicketStatsHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := a.tickets.Statistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, stats)
}
