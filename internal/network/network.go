// Package network builds the immutable station graph and computes routes,
// fares and rider instructions over it.
package network

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

// link is one adjacency entry: a neighbour reachable in one hop on line.
type link struct {
	to   string
	line string
}

// Network is the station and line arena plus the adjacency index derived from
// line orderings. It is never mutated after Build and is safe for concurrent reads.
type Network struct {
	stations   map[string]models.Station
	lines      map[string]models.Line
	stationIDs []string
	lineIDs    []string
	adjacency  map[string][]link
	fare       FarePolicy
}

type Option func(*Network)

func WithFarePolicy(p FarePolicy) Option {
	return func(n *Network) {
		n.fare = p
	}
}

// Build validates data and derives the adjacency index. Every consecutive pair of
// stations on a line becomes a bidirectional edge tagged with the line id.
func Build(data *models.NetworkData, opts ...Option) (*Network, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: no network data", ErrMalformedNetwork)
	}

	n := &Network{
		stations:  make(map[string]models.Station, len(data.Stations)),
		lines:     make(map[string]models.Line, len(data.Lines)),
		adjacency: make(map[string][]link, len(data.Stations)),
		fare:      DefaultFarePolicy,
	}
	for _, opt := range opts {
		opt(n)
	}
	if err := n.fare.Validate(); err != nil {
		return nil, err
	}

	for _, line := range data.Lines {
		if _, exists := n.lines[line.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate line id %q", ErrMalformedNetwork, line.ID)
		}
		line.Stations = slices.Clone(line.Stations)
		n.lines[line.ID] = line
		n.lineIDs = append(n.lineIDs, line.ID)
	}

	membership := make(map[string]map[string]bool, len(data.Stations))
	for _, st := range data.Stations {
		if _, exists := n.stations[st.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate station id %q", ErrMalformedNetwork, st.ID)
		}
		membership[st.ID] = map[string]bool{}
		for _, lineID := range st.Lines {
			if _, ok := n.lines[lineID]; !ok {
				return nil, fmt.Errorf("%w: station %q declares unknown line %q", ErrMalformedNetwork, st.ID, lineID)
			}
			membership[st.ID][lineID] = true
		}
		n.stations[st.ID] = st
		n.stationIDs = append(n.stationIDs, st.ID)
		n.adjacency[st.ID] = nil
	}

	for _, lineID := range n.lineIDs {
		line := n.lines[lineID]
		if len(line.Stations) < 2 {
			return nil, fmt.Errorf("%w: line %q has %d station(s), at least 2 are required", ErrMalformedNetwork, line.ID, len(line.Stations))
		}
		seen := make(map[string]bool, len(line.Stations))
		for i, stationID := range line.Stations {
			if _, ok := n.stations[stationID]; !ok {
				return nil, fmt.Errorf("%w: line %q references unknown station %q", ErrMalformedNetwork, line.ID, stationID)
			}
			if seen[stationID] {
				return nil, fmt.Errorf("%w: station %q appears twice on line %q", ErrMalformedNetwork, stationID, line.ID)
			}
			seen[stationID] = true
			membership[stationID][line.ID] = true

			if i == 0 {
				continue
			}
			prev := line.Stations[i-1]
			n.adjacency[prev] = append(n.adjacency[prev], link{to: stationID, line: line.ID})
			n.adjacency[stationID] = append(n.adjacency[stationID], link{to: prev, line: line.ID})
		}
	}

	for id, links := range n.adjacency {
		sort.Slice(links, func(i, j int) bool {
			if links[i].to != links[j].to {
				return links[i].to < links[j].to
			}
			return links[i].line < links[j].line
		})
		n.adjacency[id] = links
	}

	for id, st := range n.stations {
		st.Lines = make([]string, 0, len(membership[id]))
		for lineID := range membership[id] {
			st.Lines = append(st.Lines, lineID)
		}
		sort.Strings(st.Lines)
		st.Interchange = len(st.Lines) >= 2
		n.stations[id] = st
	}

	sort.Strings(n.stationIDs)
	sort.Strings(n.lineIDs)

	return n, nil
}

func (n *Network) FarePolicy() FarePolicy {
	return n.fare
}

func (n *Network) Station(id string) (models.Station, bool) {
	st, ok := n.stations[id]
	if !ok {
		return models.Station{}, false
	}
	return cloneStation(st), true
}

func (n *Network) Line(id string) (models.Line, bool) {
	line, ok := n.lines[id]
	if !ok {
		return models.Line{}, false
	}
	line.Stations = slices.Clone(line.Stations)
	return line, true
}

// Stations returns every station ordered by id.
func (n *Network) Stations() []models.Station {
	out := make([]models.Station, 0, len(n.stationIDs))
	for _, id := range n.stationIDs {
		out = append(out, cloneStation(n.stations[id]))
	}
	return out
}

// Lines returns every line ordered by id.
func (n *Network) Lines() []models.Line {
	out := make([]models.Line, 0, len(n.lineIDs))
	for _, id := range n.lineIDs {
		line, _ := n.Line(id)
		out = append(out, line)
	}
	return out
}

func (n *Network) Interchanges() []models.Station {
	out := []models.Station{}
	for _, id := range n.stationIDs {
		if st := n.stations[id]; st.Interchange {
			out = append(out, cloneStation(st))
		}
	}
	return out
}

// StationByName matches a station name case-insensitively.
func (n *Network) StationByName(name string) (models.Station, bool) {
	name = strings.TrimSpace(name)
	for _, id := range n.stationIDs {
		if st := n.stations[id]; strings.EqualFold(st.Name, name) {
			return cloneStation(st), true
		}
	}
	return models.Station{}, false
}

// StationsOnLine returns the stations of a line in line order.
func (n *Network) StationsOnLine(lineID string) ([]models.Station, bool) {
	line, ok := n.lines[lineID]
	if !ok {
		return nil, false
	}
	out := make([]models.Station, 0, len(line.Stations))
	for _, id := range line.Stations {
		out = append(out, cloneStation(n.stations[id]))
	}
	return out, true
}

// Neighbours returns the edges leaving a station, ordered by neighbour then line.
func (n *Network) Neighbours(stationID string) ([]models.Edge, error) {
	links, ok := n.adjacency[stationID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStation, stationID)
	}
	out := make([]models.Edge, 0, len(links))
	for _, l := range links {
		out = append(out, models.Edge{Source: stationID, Target: l.to, Line: l.line})
	}
	return out, nil
}

// Edges lists every undirected edge once.
func (n *Network) Edges() []models.Edge {
	out := []models.Edge{}
	for _, id := range n.stationIDs {
		for _, l := range n.adjacency[id] {
			if id < l.to {
				out = append(out, models.Edge{Source: id, Target: l.to, Line: l.line})
			}
		}
	}
	return out
}

func (n *Network) Stats() models.Stats {
	return models.Stats{
		TotalStations:       len(n.stations),
		TotalLines:          len(n.lines),
		InterchangeStations: len(n.Interchanges()),
		TotalConnections:    len(n.Edges()),
	}
}

// ValidatePath reports whether every consecutive pair of stations is adjacent.
func (n *Network) ValidatePath(stations []string) bool {
	if len(stations) == 0 {
		return false
	}
	for _, id := range stations {
		if _, ok := n.stations[id]; !ok {
			return false
		}
	}
	for i := 1; i < len(stations); i++ {
		if _, ok := n.lineBetween(stations[i-1], stations[i], ""); !ok {
			return false
		}
	}
	return true
}

func (n *Network) stationName(id string) string {
	if st, ok := n.stations[id]; ok {
		return st.Name
	}
	return id
}

func (n *Network) lineName(id string) string {
	if line, ok := n.lines[id]; ok {
		return line.Name
	}
	return id
}

func cloneStation(st models.Station) models.Station {
	st.Lines = slices.Clone(st.Lines)
	return st
}
