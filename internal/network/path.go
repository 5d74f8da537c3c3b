// Package network builds the immutable station graph and computes routes,
// fares and rider instructions over it.
package network

import (
	"fmt"
	"slices"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

// ShortestPath returns a path with the fewest hops from origin to destination.
//
// Neighbours are expanded in ascending (station id, line id) order, so the same
// pair always yields the same path. When several lines serve a hop, the line the
// rider is already on is kept; otherwise the lowest line id is used.
func (n *Network) ShortestPath(origin, destination string) (models.Path, error) {
	if _, ok := n.stations[origin]; !ok {
		return models.Path{}, fmt.Errorf("%w: origin %q", ErrUnknownStation, origin)
	}
	if _, ok := n.stations[destination]; !ok {
		return models.Path{}, fmt.Errorf("%w: destination %q", ErrUnknownStation, destination)
	}
	if origin == destination {
		return models.Path{Stations: []string{origin}, Hops: []models.Hop{}}, nil
	}

	// arrivedOn[s] is the line of the hop that first reached s.
	parent := map[string]string{}
	arrivedOn := map[string]string{}
	visited := map[string]bool{origin: true}
	queue := []string{origin}

	for len(queue) > 0 && !visited[destination] {
		current := queue[0]
		queue = queue[1:]

		for _, l := range n.adjacency[current] {
			if visited[l.to] {
				continue
			}
			line, _ := n.lineBetween(current, l.to, arrivedOn[current])
			visited[l.to] = true
			parent[l.to] = current
			arrivedOn[l.to] = line
			if l.to == destination {
				break
			}
			queue = append(queue, l.to)
		}
	}

	if !visited[destination] {
		return models.Path{}, fmt.Errorf("%w: %q to %q", ErrNoRoute, origin, destination)
	}

	var hops []models.Hop
	for cur := destination; cur != origin; cur = parent[cur] {
		hops = append(hops, models.Hop{From: parent[cur], To: cur, Line: arrivedOn[cur]})
	}
	slices.Reverse(hops)

	stations := make([]string, 0, len(hops)+1)
	stations = append(stations, origin)
	for _, h := range hops {
		stations = append(stations, h.To)
	}

	return models.Path{Stations: stations, Hops: hops}, nil
}

// lineBetween picks the line for the hop from -> to. preferred wins when it serves
// the hop, otherwise the lowest line id does.
func (n *Network) lineBetween(from, to, preferred string) (string, bool) {
	chosen, found := "", false
	for _, l := range n.adjacency[from] {
		if l.to != to {
			continue
		}
		if preferred != "" && l.line == preferred {
			return l.line, true
		}
		if !found {
			chosen, found = l.line, true
		}
	}
	return chosen, found
}
