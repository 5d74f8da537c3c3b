// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/network"
)

type StationDetail struct {
	models.Station
	Connections []models.Edge `json:"connections"`
}

type LineDetail struct {
	models.Line
	StationDetails []models.Station `json:"station_details"`
}

// StationsHandler lists stations. ?name= narrows the list to a case-insensitive name match.
func (a *API) StationsHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	if name := r.URL.Query().Get("name"); name != "" {
		st, ok := a.network.StationByName(name)
		if !ok {
			writeError(w, fmt.Errorf("%w: no station named %q", network.ErrUnknownStation, name))
			return
		}
		writeJSON(w, r, http.StatusOK, []models.Station{st})
		return
	}

	writeJSON(w, r, http.StatusOK, a.network.Stations())
}

func (a *API) StationHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	id := r.PathValue("id")
	st, ok := a.network.Station(id)
	if !ok {
		writeError(w, fmt.Errorf("%w: %q", network.ErrUnknownStation, id))
		return
	}

	edges, err := a.network.Neighbours(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, StationDetail{Station: st, Connections: edges})
}

func (a *API) LinesHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, http.StatusOK, a.network.Lines())
}

func (a *API) LineHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	id := r.PathValue("id")
	line, ok := a.network.Line(id)
	if !ok {
		http.Error(w, fmt.Sprintf("line %q not found", id), http.StatusNotFound)
		return
	}
	stations, _ := a.network.StationsOnLine(id)

	writeJSON(w, r, http.StatusOK, LineDetail{Line: line, StationDetails: stations})
}

func (a *API) InterchangesHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, http.StatusOK, a.network.Interchanges())
}

func (a *API) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, http.StatusOK, a.network.Stats())
}

// RouteHandler quotes the shortest route between ?from= and ?to= without selling a ticket.
func (a *API) RouteHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		http.Error(w, "Both from and to are required", http.StatusBadRequest)
		return
	}

	it, err := a.tickets.Quote(from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, r, http.StatusOK, it)
}
