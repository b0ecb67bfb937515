package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"
)

type cityKey struct {
	country string
	city    string
}

// MemoryCatalog is an in-process Catalog.
type MemoryCatalog struct {
	mu      sync.RWMutex
	entries map[cityKey]Entry
}

var _ Catalog = (*MemoryCatalog)(nil)

// NewMemoryCatalog creates a catalog holding entries.
func NewMemoryCatalog(entries ...Entry) *MemoryCatalog {
	m := &MemoryCatalog{entries: make(map[cityKey]Entry, len(entries))}
	for _, e := range entries {
		m.entries[cityKey{e.Country, e.City}] = e
	}
	return m
}

// Lookup returns the graph key of city in country.
func (m *MemoryCatalog) Lookup(_ context.Context, country, city string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[cityKey{country, city}]
	if !ok {
		return "", ErrNotFound
	}
	return e.GraphID, nil
}

// Register adds e.
func (m *MemoryCatalog) Register(_ context.Context, e Entry) error {
	if err := e.validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := cityKey{e.Country, e.City}
	if _, ok := m.entries[k]; ok {
		return ErrAlreadyExists
	}
	m.entries[k] = e
	return nil
}

// List returns the entries of country ordered by city.
func (m *MemoryCatalog) List(_ context.Context, country string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Entry
	for k, e := range m.entries {
		if k.country == country {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.City, b.City) })
	return out, nil
}
