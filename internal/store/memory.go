// Package store persists purchased tickets. Tickets are immutable once saved,
// so stores only append and read.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

type MemoryStore struct {
	mu      sync.RWMutex
	tickets []models.Ticket
	index   map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: map[string]int{}}
}

func (s *MemoryStore) Save(_ context.Context, ticket models.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[ticket.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, ticket.ID)
	}
	s.index[ticket.ID] = len(s.tickets)
	s.tickets = append(s.tickets, cloneTicket(ticket))
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.Ticket{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneTicket(s.tickets[i]), nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, cloneTicket(t))
	}
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func cloneTicket(t models.Ticket) models.Ticket {
	t.Path.Stations = slices.Clone(t.Path.Stations)
	t.Path.Hops = slices.Clone(t.Path.Hops)
	t.Instructions = slices.Clone(t.Instructions)
	return t
}
