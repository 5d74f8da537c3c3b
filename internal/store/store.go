// Package store persists purchased tickets. Tickets are immutable once saved,
// so stores only append and read.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/config"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

var (
	ErrNotFound  = errors.New("ticket not found")
	ErrDuplicate = errors.New("duplicate ticket id")
)

// Store is the persistence collaborator handed every purchased ticket.
type Store interface {
	Save(ctx context.Context, ticket models.Ticket) error
	Get(ctx context.Context, id string) (models.Ticket, error)
	// List returns every ticket in purchase order.
	List(ctx context.Context) ([]models.Ticket, error)
	Close() error
}

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "csv":
		return OpenCSV(cfg.CSVPath)
	case "mysql":
		return OpenMySQL(ctx, cfg.MySQL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
