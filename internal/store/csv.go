// Package store persists purchased tickets. Tickets are immutable once saved,
// so stores only append and read.
package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

var csvHeader = []string{
	"ticket_id", "origin_id", "destination_id", "price",
	"path", "lines", "instructions", "purchase_date",
}

// CSVStore appends one row per ticket to a CSV file and serves reads from
// memory. Existing rows are loaded when the file is opened.
type CSVStore struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
	mem    *MemoryStore
}

func OpenCSV(path string) (*CSVStore, error) {
	if path == "" {
		return nil, fmt.Errorf("csv store: empty path")
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open tickets file: %w", err)
	}

	s := &CSVStore{file: file, writer: csv.NewWriter(file), mem: NewMemoryStore()}

	empty, err := s.load()
	if err != nil {
		file.Close()
		return nil, err
	}
	if empty {
		if err := s.writeRow(csvHeader); err != nil {
			file.Close()
			return nil, err
		}
	}

	return s, nil
}

// load reads every existing row into memory and reports whether the file was empty.
func (s *CSVStore) load() (bool, error) {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("failed to rewind tickets file: %w", err)
	}

	reader := csv.NewReader(s.file)
	reader.FieldsPerRecord = len(csvHeader)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read tickets header: %w", err)
	}
	if !slices.Equal(header, csvHeader) {
		return false, fmt.Errorf("unexpected tickets header %v", header)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to read tickets file: %w", err)
		}

		ticket, err := decodeRecord(record)
		if err != nil {
			return false, err
		}
		if err := s.mem.Save(context.Background(), ticket); err != nil {
			return false, err
		}
	}
}

func (s *CSVStore) Save(ctx context.Context, ticket models.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.mem.Get(ctx, ticket.ID); err == nil {
		return fmt.Errorf("%w: %s", ErrDuplicate, ticket.ID)
	}
	record, err := encodeRecord(ticket)
	if err != nil {
		return err
	}
	if err := s.writeRow(record); err != nil {
		return err
	}
	return s.mem.Save(ctx, ticket)
}

func (s *CSVStore) Get(ctx context.Context, id string) (models.Ticket, error) {
	return s.mem.Get(ctx, id)
}

func (s *CSVStore) List(ctx context.Context) ([]models.Ticket, error) {
	return s.mem.List(ctx)
}

func (s *CSVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.file.Close()
}

func (s *CSVStore) writeRow(record []string) error {
	if err := s.writer.Write(record); err != nil {
		return fmt.Errorf("failed to write ticket row: %w", err)
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush ticket row: %w", err)
	}
	return nil
}

// encodeRecord writes path, lines and instructions as JSON arrays so names and
// ids containing separators survive a reload.
func encodeRecord(t models.Ticket) ([]string, error) {
	lines := make([]string, 0, len(t.Path.Hops))
	for _, hop := range t.Path.Hops {
		lines = append(lines, hop.Line)
	}

	columns := make([]string, 0, 3)
	for _, v := range [][]string{t.Path.Stations, lines, t.Instructions} {
		if v == nil {
			v = []string{}
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("ticket %s: failed to encode row: %w", t.ID, err)
		}
		columns = append(columns, string(encoded))
	}

	return []string{
		t.ID,
		t.OriginID,
		t.DestinationID,
		strconv.FormatFloat(t.Price, 'f', -1, 64),
		columns[0],
		columns[1],
		columns[2],
		t.PurchasedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func decodeRecord(record []string) (models.Ticket, error) {
	id := record[0]

	price, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return models.Ticket{}, fmt.Errorf("ticket %s: invalid price %q: %w", id, record[3], err)
	}

	purchasedAt, err := time.Parse(time.RFC3339Nano, record[7])
	if err != nil {
		return models.Ticket{}, fmt.Errorf("ticket %s: invalid purchase date %q: %w", id, record[7], err)
	}

	var stations, lines, instructions []string
	for i, dst := range []*[]string{&stations, &lines, &instructions} {
		column := 4 + i
		if err := json.Unmarshal([]byte(record[column]), dst); err != nil {
			return models.Ticket{}, fmt.Errorf("ticket %s: invalid %s column: %w", id, csvHeader[column], err)
		}
	}
	if len(stations) == 0 || len(lines) != len(stations)-1 {
		return models.Ticket{}, fmt.Errorf("ticket %s: %d lines for %d stations", id, len(lines), len(stations))
	}
	if instructions == nil {
		instructions = []string{}
	}

	hops := make([]models.Hop, 0, len(lines))
	for i, line := range lines {
		hops = append(hops, models.Hop{From: stations[i], To: stations[i+1], Line: line})
	}

	return models.Ticket{
		ID:            id,
		OriginID:      record[1],
		DestinationID: record[2],
		Price:         price,
		Path:          models.Path{Stations: stations, Hops: hops},
		Instructions:  instructions,
		PurchasedAt:   purchasedAt,
	}, nil
}
