package query

import (
	"fmt"
	"sort"
)

// Registry holds the application's descriptors by name. Descriptors are
// registered once at startup and read-only afterwards.
type Registry struct {
	descriptors map[string]Descriptor
}

func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

// Register adds a descriptor. Duplicate names and incomplete descriptors
// are configuration bugs and rejected outright.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("descriptor has no name")
	}
	if d.Host == "" || d.Source == nil || d.Builder == nil || d.Sink == nil {
		return fmt.Errorf("descriptor %q is incomplete", d.Name)
	}
	if _, exists := r.descriptors[d.Name]; exists {
		return fmt.Errorf("descriptor %q already registered", d.Name)
	}
	r.descriptors[d.Name] = d
	return nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// Names returns all registered descriptor names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
