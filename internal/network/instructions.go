// Package network builds the immutable station graph and computes routes,
// fares and rider instructions over it.
package network

import (
	"fmt"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

// Instructions turns a path into rider directions. A change is announced at the
// station the first hop on the new line departs from.
func (n *Network) Instructions(path models.Path) ([]string, error) {
	if len(path.Stations) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if len(path.Hops) != len(path.Stations)-1 {
		return nil, fmt.Errorf("%w: %d hops for %d stations", ErrInvalidPath, len(path.Hops), len(path.Stations))
	}
	if err := n.checkHops(path); err != nil {
		return nil, err
	}

	if len(path.Hops) == 0 {
		return []string{
			fmt.Sprintf("You are already at %s; no travel is needed", n.stationName(path.Origin())),
		}, nil
	}

	first := path.Hops[0]
	steps := []string{fmt.Sprintf("Board %s at %s", n.lineName(first.Line), n.stationName(first.From))}
	current := first.Line
	for _, hop := range path.Hops[1:] {
		if hop.Line == current {
			continue
		}
		steps = append(steps, fmt.Sprintf("Change to %s at %s", n.lineName(hop.Line), n.stationName(hop.From)))
		current = hop.Line
	}
	steps = append(steps, fmt.Sprintf("Arrive at %s", n.stationName(path.Destination())))

	return steps, nil
}

// checkHops requires every station to exist and every hop to join consecutive
// stations on a line that actually serves them.
func (n *Network) checkHops(path models.Path) error {
	for _, id := range path.Stations {
		if _, ok := n.stations[id]; !ok {
			return fmt.Errorf("%w: unknown station %q", ErrInvalidPath, id)
		}
	}
	for i, hop := range path.Hops {
		if hop.From != path.Stations[i] || hop.To != path.Stations[i+1] {
			return fmt.Errorf("%w: hop %d runs %s -> %s, expected %s -> %s",
				ErrInvalidPath, i, hop.From, hop.To, path.Stations[i], path.Stations[i+1])
		}
		if line, ok := n.lineBetween(hop.From, hop.To, hop.Line); !ok || line != hop.Line {
			return fmt.Errorf("%w: line %q does not run %s -> %s", ErrInvalidPath, hop.Line, hop.From, hop.To)
		}
	}
	return nil
}

// LineChanges counts the line transitions along a path's hops.
func LineChanges(path models.Path) int {
	changes := 0
	for i := 1; i < len(path.Hops); i++ {
		if path.Hops[i].Line != path.Hops[i-1].Line {
			changes++
		}
	}
	return changes
}
