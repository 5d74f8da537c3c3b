// Package network builds the immutable station graph and computes routes,
// fares and rider instructions over it.
package network

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

// Itinerary routes, prices and instructs a journey without issuing a ticket.
func (n *Network) Itinerary(origin, destination string) (models.Itinerary, error) {
	path, err := n.ShortestPath(origin, destination)
	if err != nil {
		return models.Itinerary{}, err
	}

	price, err := n.Price(path)
	if err != nil {
		return models.Itinerary{}, err
	}

	steps, err := n.Instructions(path)
	if err != nil {
		return models.Itinerary{}, err
	}

	return models.Itinerary{
		OriginID:      origin,
		DestinationID: destination,
		Price:         price,
		Path:          path,
		Instructions:  steps,
		LineChanges:   LineChanges(path),
	}, nil
}

// Purchase issues a ticket for the shortest route between two stations.
func (n *Network) Purchase(origin, destination string) (models.Ticket, error) {
	it, err := n.Itinerary(origin, destination)
	if err != nil {
		return models.Ticket{}, err
	}
	return IssueTicket(it, time.Now()), nil
}

// IssueTicket stamps an itinerary with a fresh ticket id and purchase time.
func IssueTicket(it models.Itinerary, at time.Time) models.Ticket {
	return models.Ticket{
		ID:            uuid.NewString(),
		OriginID:      it.OriginID,
		DestinationID: it.DestinationID,
		Price:         it.Price,
		Path: models.Path{
			Stations: slices.Clone(it.Path.Stations),
			Hops:     slices.Clone(it.Path.Hops),
		},
		Instructions: slices.Clone(it.Instructions),
		PurchasedAt:  at.UTC(),
	}
}
