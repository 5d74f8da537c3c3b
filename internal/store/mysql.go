// Package store persists purchased tickets. Tickets are immutable once saved,
// so stores only append and read.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/config"
	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

const ticketsSchema = `
	CREATE TABLE IF NOT EXISTS tickets (
		id VARCHAR(36) PRIMARY KEY,
		origin_id VARCHAR(64) NOT NULL,
		destination_id VARCHAR(64) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		path JSON NOT NULL,
		instructions JSON NOT NULL,
		purchased_at DATETIME(6) NOT NULL,
		INDEX idx_tickets_route (origin_id, destination_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`

const selectTickets = `SELECT id, origin_id, destination_id, price, path, instructions, purchased_at FROM tickets`

type MySQLStore struct {
	db *sql.DB
}

// DSN builds the driver connection string for cfg.
func DSN(cfg config.MySQLConfig) string {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Database
	c.ParseTime = true
	c.Loc = time.UTC
	return c.FormatDSN()
}

// OpenMySQL connects, pings and ensures the tickets table exists.
func OpenMySQL(ctx context.Context, cfg config.MySQLConfig) (*MySQLStore, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach mysql at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	s := NewMySQLStore(db)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Connected to MySQL %s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
	return s, nil
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, ticketsSchema); err != nil {
		return fmt.Errorf("failed to create tickets table: %w", err)
	}
	return nil
}

func (s *MySQLStore) Save(ctx context.Context, ticket models.Ticket) error {
	path, err := json.Marshal(ticket.Path)
	if err != nil {
		return fmt.Errorf("failed to encode path: %w", err)
	}
	instructions, err := json.Marshal(ticket.Instructions)
	if err != nil {
		return fmt.Errorf("failed to encode instructions: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tickets (id, origin_id, destination_id, price, path, instructions, purchased_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ticket.ID, ticket.OriginID, ticket.DestinationID, ticket.Price, string(path), string(instructions), ticket.PurchasedAt.UTC(),
	)
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return fmt.Errorf("%w: %s", ErrDuplicate, ticket.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

func (s *MySQLStore) Get(ctx context.Context, id string) (models.Ticket, error) {
	row := s.db.QueryRowContext(ctx, selectTickets+` WHERE id = ?`, id)

	ticket, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ticket{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ticket, err
}

func (s *MySQLStore) List(ctx context.Context) ([]models.Ticket, error) {
	rows, err := s.db.QueryContext(ctx, selectTickets+` ORDER BY purchased_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tickets: %w", err)
	}
	return out, nil
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTicket(sc scanner) (models.Ticket, error) {
	var (
		t            models.Ticket
		path         []byte
		instructions []byte
	)
	if err := sc.Scan(&t.ID, &t.OriginID, &t.DestinationID, &t.Price, &path, &instructions, &t.PurchasedAt); err != nil {
		return models.Ticket{}, err
	}
	if err := json.Unmarshal(path, &t.Path); err != nil {
		return models.Ticket{}, fmt.Errorf("ticket %s: invalid path: %w", t.ID, err)
	}
	if err := json.Unmarshal(instructions, &t.Instructions); err != nil {
		return models.Ticket{}, fmt.Errorf("ticket %s: invalid instructions: %w", t.ID, err)
	}
	t.PurchasedAt = t.PurchasedAt.UTC()
	return t, nil
}
