// Package ticketing sells tickets over a built network: it quotes routes,
// issues and persists tickets, and reports purchase statistics.
package ticketing

import "github.com/prometheus/client_golang/prometheus"

var (
	ticketsSold = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metro_tickets_sold_total",
		Help: "Number of tickets sold",
	})
	ticketRevenue = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metro_ticket_revenue_total",
		Help: "Sum of the prices of every ticket sold",
	})
	journeyLength = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "metro_ticket_journey_stations",
		Help:    "Stations crossed per ticket sold",
		Buckets: prometheus.LinearBuckets(1, 2, 10),
	})
	quoteLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "metro_quote_cache_lookups_total",
		Help: "Quote cache lookups by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(ticketsSold, ticketRevenue, journeyLength, quoteLookups)
}
