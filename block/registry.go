package block

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownBlock is returned by New for an unregistered kind/element pair.
var ErrUnknownBlock = errors.New("unknown block")

// Factory creates a block with construction-time defaults.
type Factory func() Block

type registryKey struct {
	kind string
	elem string
}

var (
	registry   = make(map[registryKey]Factory)
	registryMu sync.RWMutex
)

// Register installs a factory for kind instantiated over element type elem.
// Sub-packages call it from init(); a later registration replaces an earlier one.
func Register(kind, elem string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[registryKey{kind: kind, elem: elem}] = f
}

// New creates a registered block, names it, applies settings and validates it.
func New(kind, elem, name string, settings map[string]any) (Block, error) {
	registryMu.RLock()
	f, ok := registry[registryKey{kind: kind, elem: elem}]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s<%s>", ErrUnknownBlock, kind, elem)
	}
	b := f()
	if name == "" {
		name = kind
	}
	b.SetName(name)
	if err := Apply(b, settings); err != nil {
		return nil, err
	}
	return b, nil
}

// Registered reports whether kind has a factory for elem.
func Registered(kind, elem string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[registryKey{kind: kind, elem: elem}]
	return ok
}

// Kinds returns all registered block kinds, sorted.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	seen := make(map[string]bool)
	for k := range registry {
		seen[k.kind] = true
	}
	kinds := make([]string, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// ElementTypes returns the element types registered for kind, sorted.
func ElementTypes(kind string) []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	var elems []string
	for k := range registry {
		if k.kind == kind {
			elems = append(elems, k.elem)
		}
	}
	sort.Strings(elems)
	return elems
}
