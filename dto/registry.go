package dto

import (
	"fmt"
	"reflect"
	"sync"

	"dto-inflator/internal/common"
)

// Registry maps type names to DTO types. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*typeMeta
	byType map[reflect.Type]*typeMeta
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: map[string]*typeMeta{},
		byType: map[reflect.Type]*typeMeta{},
	}
}

// Register adds the struct type T under name. An empty name registers T
// under its Go type name. Class-map references from other types resolve
// against these names, with or without a leading `\`.
func Register[T any, PT Ptr[T]](r *Registry, name string) error {
	rt := reflect.TypeFor[T]()

	if name == "" {
		name = rt.Name()
	}

	m, err := compileStruct(rt, CanonicalName(name))
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", rt, err)
	}

	return r.add(m)
}

// MustRegister is Register that panics on error.
func MustRegister[T any, PT Ptr[T]](r *Registry, name string) {
	if err := Register[T, PT](r, name); err != nil {
		panic(err)
	}
}

// Define adds a runtime-declared type. Its instances are *Dynamic.
func (r *Registry) Define(def Definition) error {
	m, err := compileDefinition(def)
	if err != nil {
		return fmt.Errorf("failed to define %q: %w", def.Name, err)
	}

	return r.add(m)
}

func (r *Registry) add(m *typeMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[m.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, m.name)
	}

	r.byName[m.name] = m
	if m.rtype != nil {
		r.byType[m.rtype] = m
	}

	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	return r.lookup(name) != nil
}

// Names returns the registered names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return common.SortedKeys(r.byName)
}

// Describe returns the metadata of a registered type.
func (r *Registry) Describe(name string) (Description, bool) {
	m := r.lookup(name)
	if m == nil {
		return Description{}, false
	}

	return m.describe(), true
}

// Instantiate returns a fresh, empty instance of a registered type.
func (r *Registry) Instantiate(name string) (DTO, error) {
	m := r.lookup(name)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}

	return m.newInstance(), nil
}

func (r *Registry) lookup(name string) *typeMeta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byName[CanonicalName(name)]
}

// metaForType returns the metadata of a struct type. Types that were never
// registered are compiled on first use and cached without a name binding.
func (r *Registry) metaForType(rt reflect.Type) (*typeMeta, error) {
	r.mu.RLock()
	m, ok := r.byType[rt]
	r.mu.RUnlock()

	if ok {
		return m, nil
	}

	m, err := compileStruct(rt, "")
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.byType[rt]; ok {
		return cached, nil
	}

	r.byType[rt] = m

	return m, nil
}
