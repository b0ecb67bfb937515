package catalog

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no graph is registered for a city.
	ErrNotFound = errors.New("catalog: city not found")
	// ErrAlreadyExists is returned when registering a city twice.
	ErrAlreadyExists = errors.New("catalog: city already registered")
	// ErrInvalidEntry is returned for entries with an empty field.
	ErrInvalidEntry = errors.New("catalog: country, city and graph id are required")
)

// Entry links a city to its graph key.
type Entry struct {
	Country string `json:"country"`
	City    string `json:"city"`
	GraphID string `json:"graph_id"`
}

func (e Entry) validate() error {
	if strings.TrimSpace(e.Country) == "" || strings.TrimSpace(e.City) == "" || strings.TrimSpace(e.GraphID) == "" {
		return ErrInvalidEntry
	}
	return nil
}

// Catalog resolves cities to graph keys.
type Catalog interface {
	// Lookup returns the graph key of city in country.
	Lookup(ctx context.Context, country, city string) (string, error)
	// Register adds e. It fails with ErrAlreadyExists if the city is known.
	Register(ctx context.Context, e Entry) error
	// List returns the entries of country ordered by city.
	List(ctx context.Context, country string) ([]Entry, error)
}
