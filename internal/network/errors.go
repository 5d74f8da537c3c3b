// Package network builds the immutable station graph and computes routes,
// fares and rider instructions over it.
package network

import "errors"

var (
	ErrUnknownStation   = errors.New("unknown station")
	ErrMalformedNetwork = errors.New("malformed network")
	ErrNoRoute          = errors.New("no route")
	ErrInvalidFare      = errors.New("invalid fare")
	ErrInvalidPath      = errors.New("invalid path")
)
