package dto

import (
	"fmt"
	"reflect"

	"dto-inflator/record"
)

// Deflate turns d back into a plain record: declared attributes are
// deflated depth-first and the overflow bag is merged in according to
// the engine's MergeMode.
func (e *Engine) Deflate(d DTO) (record.Record, error) {
	if isNil(d) {
		return nil, fmt.Errorf("%w: nil dto", ErrMalformedInput)
	}

	return e.deflate(d)
}

// DeflateMany deflates each item, in order.
func DeflateMany[D DTO](e *Engine, items []D) ([]record.Record, error) {
	out := make([]record.Record, len(items))

	for i, item := range items {
		rec, err := e.Deflate(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		out[i] = rec
	}

	return out, nil
}

// Get returns a declared attribute of d or, failing that, an overflow
// entry.
func (e *Engine) Get(d DTO, name string) (any, bool) {
	if isNil(d) {
		return nil, false
	}

	m, err := e.metaOf(d)
	if err == nil {
		if a, ok := m.attribute(name); ok {
			v, _ := m.value(d, a)
			return v, true
		}
	}

	return d.dtoBase().Lookup(name)
}

func (e *Engine) deflate(d DTO) (record.Record, error) {
	m, err := e.metaOf(d)
	if err != nil {
		return nil, err
	}

	out := make(record.Record, len(m.attrs))

	for _, a := range m.attrs {
		v, empty := m.value(d, a)
		if a.omitEmpty && empty {
			continue
		}

		plain, err := record.NormalizeFunc(v, e.deflateHook)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", m.name, a.name, err)
		}

		out[a.name] = plain
	}

	bag := d.dtoBase().unmapped
	if len(bag) == 0 {
		return out, nil
	}

	extra, err := record.NormalizeRecordFunc(bag, e.deflateHook)
	if err != nil {
		return nil, fmt.Errorf("%s: overflow: %w", m.name, err)
	}

	if e.merge == MergeOverlay {
		return record.Overlay(out, extra), nil
	}

	return record.MergeRecursive(extra, out), nil
}

// deflateHook deflates DTO values met while normalizing, including DTO
// structs held by value.
func (e *Engine) deflateHook(rv reflect.Value) (any, bool, error) {
	if rv.Kind() == reflect.Interface {
		return nil, false, nil
	}

	rt := rv.Type()

	switch {
	case rt == baseType || rt == reflect.PointerTo(baseType):
		return nil, false, nil
	case rt.Implements(dtoType):
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, true, nil
		}

		rec, err := e.deflate(rv.Interface().(DTO))

		return rec, true, err
	case rv.Kind() == reflect.Struct && reflect.PointerTo(rt).Implements(dtoType):
		ptr := reflect.New(rt)
		ptr.Elem().Set(rv)

		rec, err := e.deflate(ptr.Interface().(DTO))

		return rec, true, err
	default:
		return nil, false, nil
	}
}

func (e *Engine) metaOf(d DTO) (*typeMeta, error) {
	if dyn, ok := d.(*Dynamic); ok {
		if dyn.meta == nil {
			return nil, fmt.Errorf("%w: dynamic value without a type", ErrInvalidDefinition)
		}

		return dyn.meta, nil
	}

	rt := reflect.TypeOf(d)
	if rt.Kind() != reflect.Pointer {
		return nil, fmt.Errorf("%w: %s is not a pointer", ErrInvalidDefinition, rt)
	}

	return e.registry.metaForType(rt.Elem())
}

func isNil(d DTO) bool {
	if d == nil {
		return true
	}

	rv := reflect.ValueOf(d)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
