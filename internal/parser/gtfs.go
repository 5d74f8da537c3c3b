// Package parser provides utilities for parsing and transforming input data.
// It turns network descriptions into the models the network is built from.
package parser

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

// gtfsTable is one GTFS text file with its header indexed by column name.
type gtfsTable struct {
	columns map[string]int
	rows    [][]string
}

func (t gtfsTable) get(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

type stopTime struct {
	sequence int
	stopID   string
}

// ParseGTFS builds network data from a GTFS static feed. Every route becomes a
// line whose station order is its longest trip; platforms are collapsed onto
// their parent station.
func ParseGTFS(r io.ReaderAt, size int64) (*models.NetworkData, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open gtfs feed: %w", err)
	}

	tables := map[string]gtfsTable{}
	for _, name := range []string{"routes.txt", "stops.txt", "trips.txt", "stop_times.txt"} {
		table, err := readGTFSTable(zr, name)
		if err != nil {
			return nil, err
		}
		tables[name] = table
	}

	stationOf, stations := gtfsStations(tables["stops.txt"])

	tripsByRoute := map[string][]string{}
	for _, row := range tables["trips.txt"].rows {
		routeID := tables["trips.txt"].get(row, "route_id")
		tripID := tables["trips.txt"].get(row, "trip_id")
		tripsByRoute[routeID] = append(tripsByRoute[routeID], tripID)
	}

	stopTimes := map[string][]stopTime{}
	st := tables["stop_times.txt"]
	for _, row := range st.rows {
		seq, err := strconv.Atoi(st.get(row, "stop_sequence"))
		if err != nil {
			return nil, fmt.Errorf("invalid stop_sequence %q: %w", st.get(row, "stop_sequence"), err)
		}
		tripID := st.get(row, "trip_id")
		stopTimes[tripID] = append(stopTimes[tripID], stopTime{sequence: seq, stopID: st.get(row, "stop_id")})
	}

	network := &models.NetworkData{}
	used := map[string]bool{}
	routes := tables["routes.txt"]
	for _, row := range routes.rows {
		routeID := routes.get(row, "route_id")
		sequence, err := routeSequence(tripsByRoute[routeID], stopTimes, stationOf)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", routeID, err)
		}
		if len(sequence) < 2 {
			continue
		}

		name := routes.get(row, "route_long_name")
		if name == "" {
			name = routes.get(row, "route_short_name")
		}
		color := routes.get(row, "route_color")
		if color != "" {
			color = "#" + color
		}

		network.Lines = append(network.Lines, models.Line{
			ID:       routeID,
			Name:     name,
			Color:    color,
			Stations: sequence,
		})
		for _, id := range sequence {
			used[id] = true
		}
	}

	for _, station := range stations {
		if used[station.ID] {
			network.Stations = append(network.Stations, station)
		}
	}

	if len(network.Lines) == 0 {
		return nil, fmt.Errorf("invalid gtfs feed: no route has a trip with two stations")
	}

	return network, nil
}

// LoadGTFSFile parses a GTFS static zip from disk.
func LoadGTFSFile(path string) (*models.NetworkData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gtfs file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat gtfs file: %w", err)
	}
	return ParseGTFS(f, info.Size())
}

func readGTFSTable(zr *zip.Reader, name string) (gtfsTable, error) {
	f, err := zr.Open(name)
	if err != nil {
		return gtfsTable{}, fmt.Errorf("gtfs feed is missing %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return gtfsTable{columns: map[string]int{}}, nil
	}
	if err != nil {
		return gtfsTable{}, fmt.Errorf("failed to read %s header: %w", name, err)
	}

	table := gtfsTable{columns: make(map[string]int, len(header))}
	for i, column := range header {
		column = strings.TrimPrefix(column, "\ufeff")
		table.columns[strings.ToLower(strings.TrimSpace(column))] = i
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return gtfsTable{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	table.rows = rows

	return table, nil
}

// gtfsStations maps every stop id to the station it belongs to and returns the
// stations themselves in file order.
func gtfsStations(stops gtfsTable) (map[string]string, []models.Station) {
	stationOf := map[string]string{}
	var stations []models.Station
	seen := map[string]bool{}

	for _, row := range stops.rows {
		id := stops.get(row, "stop_id")
		parent := stops.get(row, "parent_station")
		if parent != "" {
			stationOf[id] = parent
			continue
		}
		stationOf[id] = id
		if !seen[id] {
			seen[id] = true
			stations = append(stations, models.Station{ID: id, Name: stops.get(row, "stop_name")})
		}
	}

	return stationOf, stations
}

// routeSequence picks the trip with the most stops (lowest trip id on ties) and
// returns its station order with consecutive repeats removed. A loop is cut at
// the first station the trip revisits.
func routeSequence(tripIDs []string, stopTimes map[string][]stopTime, stationOf map[string]string) ([]string, error) {
	sorted := append([]string(nil), tripIDs...)
	sort.Strings(sorted)

	best := ""
	for _, id := range sorted {
		if len(stopTimes[id]) > len(stopTimes[best]) {
			best = id
		}
	}
	if best == "" {
		return nil, nil
	}

	times := append([]stopTime(nil), stopTimes[best]...)
	sort.SliceStable(times, func(i, j int) bool { return times[i].sequence < times[j].sequence })

	var sequence []string
	visited := map[string]bool{}
	for _, t := range times {
		station, ok := stationOf[t.stopID]
		if !ok {
			return nil, fmt.Errorf("trip %s stops at unknown stop %q", best, t.stopID)
		}
		if len(sequence) > 0 && sequence[len(sequence)-1] == station {
			continue
		}
		if visited[station] {
			break
		}
		visited[station] = true
		sequence = append(sequence, station)
	}

	return sequence, nil
}
