// Package network builds the immutable station graph and computes routes,
// fares and rider instructions over it.
package network

import (
	"fmt"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

// FarePolicy prices a journey as Base plus PerStation for every station crossed.
type FarePolicy struct {
	Base       float64 `json:"base"`
	PerStation float64 `json:"per_station"`
}

var DefaultFarePolicy = FarePolicy{Base: 2.00, PerStation: 1.00}

func (p FarePolicy) Validate() error {
	if p.Base < 0 || p.PerStation < 0 {
		return fmt.Errorf("%w: negative fare policy (base %.2f, per station %.2f)", ErrInvalidFare, p.Base, p.PerStation)
	}
	return nil
}

func (p FarePolicy) Price(path models.Path) (float64, error) {
	if len(path.Stations) == 0 {
		return 0, fmt.Errorf("%w: path has no stations", ErrInvalidFare)
	}
	return p.ForHops(path.HopCount()), nil
}

// ForHops is the price of a journey crossing hops stations.
func (p FarePolicy) ForHops(hops int) float64 {
	return p.Base + p.PerStation*float64(hops)
}

// Price prices path with the network's fare policy.
func (n *Network) Price(path models.Path) (float64, error) {
	return n.fare.Price(path)
}
