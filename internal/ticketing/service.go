// Package ticketing sells tickets over a built network: it quotes routes,
// issues and persists tickets, and reports purchase statistics.
package ticketing

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/bluele/gcache"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/network"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/store"
)

var ErrSameStation = errors.New("origin and destination are the same station")

type Service struct {
	network *network.Network
	store   store.Store
	quotes  gcache.Cache
	now     func() time.Time
}

type Option func(*Service)

// WithQuoteCache memoises itineraries in an LRU of size entries. A size of zero
// disables the cache; a zero ttl keeps entries until evicted.
func WithQuoteCache(size int, ttl time.Duration) Option {
	return func(s *Service) {
		if size <= 0 {
			s.quotes = nil
			return
		}
		b := gcache.New(size).LRU()
		if ttl > 0 {
			b = b.Expiration(ttl)
		}
		s.quotes = b.Build()
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(n *network.Network, st store.Store, opts ...Option) *Service {
	s := &Service{network: n, store: st, now: time.Now}
	WithQuoteCache(512, 10*time.Minute)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Network() *network.Network {
	return s.network
}

// Quote prices and instructs the shortest route without selling a ticket.
func (s *Service) Quote(origin, destination string) (models.Itinerary, error) {
	key := [2]string{origin, destination}

	if s.quotes != nil {
		if cached, err := s.quotes.Get(key); err == nil {
			quoteLookups.WithLabelValues("hit").Inc()
			return cloneItinerary(cached.(models.Itinerary)), nil
		}
		quoteLookups.WithLabelValues("miss").Inc()
	}

	it, err := s.network.Itinerary(origin, destination)
	if err != nil {
		return models.Itinerary{}, err
	}

	if s.quotes != nil {
		if err := s.quotes.Set(key, cloneItinerary(it)); err != nil {
			return models.Itinerary{}, fmt.Errorf("failed to cache quote: %w", err)
		}
	}
	return it, nil
}

// Purchase sells and persists a ticket between two distinct stations.
func (s *Service) Purchase(ctx context.Context, origin, destination string) (models.Ticket, error) {
	if _, ok := s.network.Station(origin); !ok {
		return models.Ticket{}, fmt.Errorf("%w: origin %q", network.ErrUnknownStation, origin)
	}
	if _, ok := s.network.Station(destination); !ok {
		return models.Ticket{}, fmt.Errorf("%w: destination %q", network.ErrUnknownStation, destination)
	}
	if origin == destination {
		return models.Ticket{}, fmt.Errorf("%w: %q", ErrSameStation, origin)
	}

	it, err := s.Quote(origin, destination)
	if err != nil {
		return models.Ticket{}, err
	}

	ticket := network.IssueTicket(it, s.now())
	if err := s.store.Save(ctx, ticket); err != nil {
		return models.Ticket{}, fmt.Errorf("failed to save ticket: %w", err)
	}

	ticketsSold.Inc()
	ticketRevenue.Add(ticket.Price)
	journeyLength.Observe(float64(ticket.Path.HopCount()))

	return ticket, nil
}

func (s *Service) Ticket(ctx context.Context, id string) (models.Ticket, error) {
	return s.store.Get(ctx, id)
}

// Filter narrows a ticket listing. Empty fields match everything.
type Filter struct {
	OriginID      string
	DestinationID string
}

func (f Filter) matches(t models.Ticket) bool {
	if f.OriginID != "" && t.OriginID != f.OriginID {
		return false
	}
	if f.DestinationID != "" && t.DestinationID != f.DestinationID {
		return false
	}
	return true
}

func (s *Service) Tickets(ctx context.Context, f Filter) ([]models.Ticket, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.Ticket{}
	for _, t := range all {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Statistics summarises every sold ticket. The most used route is the one with
// the highest count; ties go to the route bought first.
func (s *Service) Statistics(ctx context.Context) (models.TicketStats, error) {
	tickets, err := s.store.List(ctx)
	if err != nil {
		return models.TicketStats{}, err
	}

	stats := models.TicketStats{TotalTickets: len(tickets)}
	if len(tickets) == 0 {
		return stats, nil
	}

	counts := map[[2]string]int{}
	var order [][2]string
	for _, t := range tickets {
		stats.TotalSpent += t.Price
		stats.LongestJourney = max(stats.LongestJourney, t.Path.HopCount())

		key := [2]string{t.OriginID, t.DestinationID}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}
	stats.AveragePrice = stats.TotalSpent / float64(len(tickets))

	var best [2]string
	for _, key := range order {
		if counts[key] > counts[best] {
			best = key
		}
	}
	stats.MostUsedRoute = &models.Route{OriginID: best[0], DestinationID: best[1], Count: counts[best]}

	return stats, nil
}

func cloneItinerary(it models.Itinerary) models.Itinerary {
	it.Path.Stations = slices.Clone(it.Path.Stations)
	it.Path.Hops = slices.Clone(it.Path.Hops)
	it.Instructions = slices.Clone(it.Instructions)
	return it
}
