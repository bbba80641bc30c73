// Package catalog provides the static section catalogs for each landing type.
// The catalogs are stored as a JSON file and embedded at compile time.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/landing-generator/internal/types"
)

//go:embed sections.json
var sectionsFile []byte

// Section describes one entry of a catalog
type Section struct {
	Key    string `json:"key"`
	Nombre string `json:"nombre"`
	Icono  string `json:"icono"`
}

// Catalog is the ordered list of sections for one landing type
type Catalog struct {
	Type     types.LandingType
	Sections []Section
	index    map[string]int
}

type catalogFile struct {
	Tipos        map[string][]Section `json:"tipos"`
	LoadingSteps []string             `json:"loading_steps"`
}

// cache stores the parsed catalog file to avoid repeated JSON parsing
var (
	cache   *catalogFile
	cacheMu sync.RWMutex
)

// Get returns the catalog for a landing type.
// Returns an error if the type has no catalog.
func Get(t types.LandingType) (*Catalog, error) {
	file, err := load()
	if err != nil {
		return nil, err
	}

	sections, exists := file.Tipos[string(t)]
	if !exists {
		return nil, fmt.Errorf("no section catalog for landing type %q", t)
	}

	c := &Catalog{
		Type:     t,
		Sections: sections,
		index:    make(map[string]int, len(sections)),
	}
	for i, s := range sections {
		c.index[s.Key] = i
	}
	return c, nil
}

// MustGet returns the catalog for a landing type, panicking if not found.
// Use this for the built-in types, which are always present in the embedded file.
func MustGet(t types.LandingType) *Catalog {
	c, err := Get(t)
	if err != nil {
		panic(fmt.Sprintf("failed to load catalog: %v", err))
	}
	return c
}

// LoadingSteps returns the progress messages shown while a generation is running.
func LoadingSteps() []string {
	file, err := load()
	if err != nil {
		return nil
	}
	return append([]string(nil), file.LoadingSteps...)
}

// Keys returns the section keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.Sections))
	for _, s := range c.Sections {
		keys = append(keys, s.Key)
	}
	return keys
}

// Lookup returns the catalog entry for a key.
func (c *Catalog) Lookup(key string) (Section, bool) {
	i, ok := c.index[key]
	if !ok {
		return Section{}, false
	}
	return c.Sections[i], true
}

// Has reports whether the key belongs to the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// load parses and caches the embedded catalog file.
func load() (*catalogFile, error) {
	cacheMu.RLock()
	if cache != nil {
		defer cacheMu.RUnlock()
		return cache, nil
	}
	cacheMu.RUnlock()

	var file catalogFile
	if err := json.Unmarshal(sectionsFile, &file); err != nil {
		return nil, fmt.Errorf("failed to parse section catalog: %w", err)
	}

	cacheMu.Lock()
	cache = &file
	cacheMu.Unlock()

	return &file, nil
}

// ClearCache clears the catalog cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = nil
	cacheMu.Unlock()
}
