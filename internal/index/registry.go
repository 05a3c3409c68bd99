package index

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Default is the process-wide registry.
var Default = NewRegistry()

// Registry maps host type names to their Index.
type Registry struct {
	mu      sync.Mutex
	indexes map[string]*Index
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{indexes: make(map[string]*Index)}
}

// Register returns the Index registered for typeName, calling build only
// when none exists yet. Concurrent callers for one type share one build.
func (r *Registry) Register(typeName string, build func() (*Index, error)) (*Index, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ix, ok := r.indexes[typeName]; ok {
		return ix, nil
	}
	ix, err := build()
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", typeName, err)
	}
	r.indexes[typeName] = ix
	return ix, nil
}

// Lookup returns the Index registered for typeName.
func (r *Registry) Lookup(typeName string) (*Index, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ix, ok := r.indexes[typeName]
	return ix, ok
}

// MustLookup is Lookup that panics on a missing type.
func (r *Registry) MustLookup(typeName string) *Index {
	ix, ok := r.Lookup(typeName)
	if !ok {
		panic(fmt.Sprintf("index: no index registered for %s", typeName))
	}
	return ix
}

// All returns the registered indexes ordered by index name.
func (r *Registry) All() []*Index {
	r.mu.Lock()
	out := make([]*Index, 0, len(r.indexes))
	for _, ix := range r.indexes {
		out = append(out, ix)
	}
	r.mu.Unlock()

	slices.SortFunc(out, func(a, b *Index) int { return strings.Compare(a.name, b.name) })
	return out
}
