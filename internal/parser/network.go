// Package parser provides utilities for parsing and transforming input data.
// It turns network descriptions into the models the network is built from.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nikhargupta-18/Metro-station-ticket-purchasing-system/internal/models"
)

var validate = validator.New()

// ParseNetwork decodes a YAML or JSON network description.
func ParseNetwork(data []byte) (*models.NetworkData, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("empty network data")
	}

	var network models.NetworkData
	if err := yaml.Unmarshal(data, &network); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network: %w", err)
	}

	if len(network.Stations) == 0 {
		return nil, fmt.Errorf("invalid network: missing stations")
	}

	if len(network.Lines) == 0 {
		return nil, fmt.Errorf("invalid network: missing lines")
	}

	if err := validate.Struct(network); err != nil {
		return nil, fmt.Errorf("invalid network: %w", err)
	}

	return &network, nil
}

// LoadNetworkFile reads a network description, or a GTFS feed when path ends in .zip.
func LoadNetworkFile(path string) (*models.NetworkData, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return LoadGTFSFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network file: %w", err)
	}
	return ParseNetwork(data)
}
