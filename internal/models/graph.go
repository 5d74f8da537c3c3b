// Package models defines the core data structures shared by the network engine,
// the ticket stores and the HTTP API.
package models

// NetworkData is the already-parsed input the network is built from.
type NetworkData struct {
	Stations []Station `json:"stations" yaml:"stations" validate:"dive"`
	Lines    []Line    `json:"lines" yaml:"lines" validate:"dive"`
}

type Station struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Lines       []string `json:"lines" yaml:"lines"`
	Interchange bool     `json:"interchange" yaml:"-"`
}

type Line struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Name     string   `json:"name" yaml:"name" validate:"required"`
	Color    string   `json:"color,omitempty" yaml:"color"`
	Stations []string `json:"stations" yaml:"stations"`
}

// Edge joins two stations that are consecutive on Line.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Line   string `json:"line"`
}

type Stats struct {
	TotalStations       int `json:"total_stations"`
	TotalLines          int `json:"total_lines"`
	InterchangeStations int `json:"interchange_stations"`
	TotalConnections    int `json:"total_connections"`
}
