// Package registry maps section titles to game parsers.
//
// A Registry is written once at start-up and frozen before any test file is
// read. After Freeze it is read-only, so any number of parsers may call
// Lookup concurrently.
package registry

import (
	"fmt"
	"sort"
	"sync"

	cgterrors "github.com/lgbarn/cgtcase/internal/errors"
	"github.com/lgbarn/cgtcase/internal/game"
)

// Registry maps a family name to its game.ParseFunc.
type Registry struct {
	parsers map[string]game.ParseFunc
	frozen  bool
}

// New creates an empty, writable registry.
func New() *Registry {
	return &Registry{parsers: make(map[string]game.ParseFunc)}
}

// Register adds a parser for family. Register is not safe for concurrent use
// and fails once the registry is frozen.
func (r *Registry) Register(family string, fn game.ParseFunc) error {
	if r.frozen {
		return fmt.Errorf("register %q: %w", family, cgterrors.ErrRegistryFrozen)
	}
	if fn == nil {
		return fmt.Errorf("register %q: nil parser", family)
	}
	if _, ok := r.parsers[family]; ok {
		return fmt.Errorf("register %q: %w", family, cgterrors.ErrDuplicateParser)
	}
	r.parsers[family] = fn
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Lookup returns the parser registered for family.
func (r *Registry) Lookup(family string) (game.ParseFunc, bool) {
	fn, ok := r.parsers[family]
	return fn, ok
}

// Families returns the registered family names in sorted order.
func (r *Registry) Families() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Init builds the process-wide registry by calling register on a new
// registry, then freezes it. It must run before the first parser is created.
// A second call fails with ErrRegistryFrozen.
func Init(register func(game.Registrar) error) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry != nil {
		return fmt.Errorf("init: %w", cgterrors.ErrRegistryFrozen)
	}

	r := New()
	if err := register(r); err != nil {
		return err
	}
	r.Freeze()
	defaultRegistry = r
	return nil
}

// Default returns the registry built by Init, or nil before Init.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultRegistry
}
