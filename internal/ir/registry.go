package ir

import "fmt"

// OpKind describes an operation kind: its dialect-qualified name and an
// optional verification hook. One descriptor is shared by every instance of
// the kind; identity of the pointer is the kind tag.
type OpKind struct {
	Name string
	// Verify checks kind-specific invariants. The core invokes it on demand
	// but defines no checking logic itself.
	Verify func(op *Operation) error
}

// Registry maps operation-kind names to their descriptors. It is built once
// at startup by collaborators registering the dialects they need and passed
// by reference; there is no ambient global registry and no unregistration.
type Registry struct {
	kinds map[string]*OpKind
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]*OpKind, 16)}
}

// Register adds a kind. Duplicate names are an error.
func (r *Registry) Register(k *OpKind) error {
	if k == nil || k.Name == "" {
		return fmt.Errorf("ir: cannot register unnamed kind")
	}
	if _, ok := r.kinds[k.Name]; ok {
		return fmt.Errorf("ir: duplicate kind %q", k.Name)
	}
	r.kinds[k.Name] = k
	return nil
}

// MustRegister is Register that panics on error, for init-once startup code.
func (r *Registry) MustRegister(kinds ...*OpKind) {
	for _, k := range kinds {
		if err := r.Register(k); err != nil {
			panic(err)
		}
	}
}

// Lookup resolves a kind by name.
func (r *Registry) Lookup(name string) (*OpKind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int { return len(r.kinds) }
