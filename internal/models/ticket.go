// Package models defines the core data structures shared by the network engine,
// the ticket stores and the HTTP API.
package models

import "time"

// Hop is one traversal between adjacent stations on a single line.
type Hop struct {
	From string `json:"from"`
	To   string `json:"to"`
	Line string `json:"line"`
}

// Path lists the stations from origin to destination and the hops between them.
// len(Hops) is always len(Stations)-1.
type Path struct {
	Stations []string `json:"stations"`
	Hops     []Hop    `json:"hops"`
}

func (p Path) Origin() string {
	if len(p.Stations) == 0 {
		return ""
	}
	return p.Stations[0]
}

func (p Path) Destination() string {
	if len(p.Stations) == 0 {
		return ""
	}
	return p.Stations[len(p.Stations)-1]
}

// HopCount is the number of stations crossed, excluding the origin.
func (p Path) HopCount() int {
	if len(p.Stations) == 0 {
		return 0
	}
	return len(p.Stations) - 1
}

// Itinerary is a priced, instructed route that has not been bought yet.
type Itinerary struct {
	OriginID      string   `json:"origin_id"`
	DestinationID string   `json:"destination_id"`
	Price         float64  `json:"price"`
	Path          Path     `json:"path"`
	Instructions  []string `json:"instructions"`
	LineChanges   int      `json:"line_changes"`
}

type Ticket struct {
	ID            string    `json:"ticket_id"`
	OriginID      string    `json:"origin_id"`
	DestinationID string    `json:"destination_id"`
	Price         float64   `json:"price"`
	Path          Path      `json:"path"`
	Instructions  []string  `json:"instructions"`
	PurchasedAt   time.Time `json:"purchase_date"`
}

type TicketStats struct {
	TotalTickets   int     `json:"total_tickets"`
	TotalSpent     float64 `json:"total_spent"`
	AveragePrice   float64 `json:"average_price"`
	MostUsedRoute  *Route  `json:"most_used_route,omitempty"`
	LongestJourney int     `json:"longest_journey"`
}

type Route struct {
	OriginID      string `json:"origin_id"`
	DestinationID string `json:"destination_id"`
	Count         int    `json:"count"`
}
