package services

import (
	"slices"
	"sync"
)

// SetupFunc registers the cases of one suite.
type SetupFunc func(s *Suite) error

// Registry maps suite names to their setup functions.
type Registry struct {
	mu     sync.RWMutex
	setups map[string]SetupFunc
}

func NewRegistry() *Registry {
	return &Registry{setups: make(map[string]SetupFunc)}
}

// DefaultRegistry is filled by suite packages from init.
var DefaultRegistry = NewRegistry()

// Register makes a suite available by name. It panics if setup is nil or
// the name is already taken.
func (r *Registry) Register(name string, setup SetupFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if setup == nil {
		panic("snappy: Register setup is nil for suite " + name)
	}
	if _, dup := r.setups[name]; dup {
		panic("snappy: Register called twice for suite " + name)
	}
	r.setups[name] = setup
}

// Names returns the registered suite names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.setups))
	for name := range r.setups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) Setup(name string) (SetupFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	setup, ok := r.setups[name]
	return setup, ok
}

func Register(name string, setup SetupFunc) {
	DefaultRegistry.Register(name, setup)
}

// NewDefaultRegistry hands DefaultRegistry to the injector.
func NewDefaultRegistry() *Registry {
	return DefaultRegistry
}
