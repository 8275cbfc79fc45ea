// Package registry provides a global registry for level packs.
// Packs register themselves in init() functions, allowing the platform
// to discover and load them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/decompose/internal/puzzle"
)

// DefaultPack is the pack used when none is requested.
const DefaultPack = "classic"

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
}

// Factory builds a pack's catalog. It is called at most once per pack.
type Factory func() (*puzzle.Catalog, error)

type entry struct {
	info    PackInfo
	factory Factory

	once    sync.Once
	catalog *puzzle.Catalog
	err     error
}

var (
	packs = make(map[string]*entry)
	mu    sync.RWMutex
)

// Register adds a pack factory to the registry.
// Typically called from an init() function.
// Panics if a pack with the same ID is already registered.
func Register(id, title string, f Factory) {
	if err := Add(id, title, f); err != nil {
		panic(err.Error())
	}
}

// Add is like Register but returns an error instead of panicking.
// Used for packs discovered at runtime, e.g. from a file on disk.
func Add(id, title string, f Factory) error {
	if id == "" {
		return fmt.Errorf("registry: pack id is empty")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := packs[id]; exists {
		return fmt.Errorf("registry: pack %q already registered", id)
	}

	if title == "" {
		title = id
	}
	packs[id] = &entry{
		info:    PackInfo{ID: id, Title: title},
		factory: f,
	}
	return nil
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(packs))
	for _, e := range packs {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Load returns the pack's catalog, building it on first use.
// The catalog is shared and read-only; a build error is returned on every call.
func Load(id string) (*puzzle.Catalog, error) {
	mu.RLock()
	e, ok := packs[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}

	e.once.Do(func() {
		e.catalog, e.err = e.factory()
		if e.err != nil {
			e.err = fmt.Errorf("registry: pack %q: %w", id, e.err)
		}
	})
	return e.catalog, e.err
}

// Info returns the metadata of a registered pack.
func Info(id string) (PackInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := packs[id]
	if !ok {
		return PackInfo{}, false
	}
	return e.info, true
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := packs[id]
	return ok
}
