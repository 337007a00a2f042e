package dto

import (
	"fmt"
	"reflect"

	"dto-inflator/options"
	"dto-inflator/primitive"
	"dto-inflator/record"
)

// assign stores v into dst, converting it to dst's type when needed.
// Containers are rebuilt element by element; scalars go through
// primitive.Convert with the engine's allowed conversions. Nested DTOs are
// inflated with the caller's options, path locates dst for errors.
func (e *Engine) assign(dst reflect.Value, v any, cc callConfig, path string) error {
	if v == nil {
		dst.SetZero()
		return nil
	}

	rv := reflect.ValueOf(v)
	dt := dst.Type()

	if rv.Type().AssignableTo(dt) {
		dst.Set(rv)
		return nil
	}

	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Type().AssignableTo(dt) {
		dst.Set(rv.Elem())
		return nil
	}

	switch dt.Kind() {
	case reflect.Pointer:
		elem := reflect.New(dt.Elem())
		if err := e.assign(elem.Elem(), v, cc, path); err != nil {
			return err
		}

		dst.Set(elem)

		return nil
	case reflect.Slice:
		if items, ok := asItems(rv); ok && !primitive.IsScalar(dt) {
			return e.assignSlice(dst, items, cc, path)
		}
	case reflect.Array:
		if items, ok := asItems(rv); ok {
			return e.assignArray(dst, items, cc, path)
		}
	case reflect.Map:
		if rec, ok := record.AsRecord(v); ok {
			return e.assignMap(dst, rec, cc, path)
		}
	case reflect.Struct:
		rec, ok := record.AsRecord(v)
		if !ok || primitive.IsScalar(dt) {
			break
		}

		if reflect.PointerTo(dt).Implements(dtoType) {
			return e.assignDTO(dst, rec, cc, path)
		}

		return e.assignStruct(dst, rec, cc, path)
	}

	out, err := primitive.Convert(v, dt, e.conversions)
	if err != nil {
		return err
	}

	dst.Set(out)

	return nil
}

// asItems returns the elements of a slice or array value. Byte slices are
// scalars and never qualify.
func asItems(rv reflect.Value) ([]any, bool) {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	if primitive.IsScalar(rv.Type()) {
		return nil, false
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}

	return items, true
}

func (e *Engine) assignSlice(dst reflect.Value, items []any, cc callConfig, path string) error {
	out := reflect.MakeSlice(dst.Type(), len(items), len(items))

	for i, item := range items {
		if err := e.assign(out.Index(i), item, cc, indexPath(path, i)); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}

	dst.Set(out)

	return nil
}

// assignArray fills a fixed-size array. A shorter list needs
// CategorySafeArray, a longer one CategoryUnsafeArray.
func (e *Engine) assignArray(dst reflect.Value, items []any, cc callConfig, path string) error {
	size := dst.Len()

	switch {
	case len(items) < size && !e.conversions.Has(options.CategorySafeArray):
		return fmt.Errorf("%w: %d items into %s requires %s",
			primitive.ErrNotConvertible, len(items), dst.Type(), options.CategorySafeArray)
	case len(items) > size && !e.conversions.Has(options.CategoryUnsafeArray):
		return fmt.Errorf("%w: %d items into %s requires %s",
			primitive.ErrNotConvertible, len(items), dst.Type(), options.CategoryUnsafeArray)
	}

	out := reflect.New(dst.Type()).Elem()

	for i := range min(size, len(items)) {
		if err := e.assign(out.Index(i), items[i], cc, indexPath(path, i)); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}

	dst.Set(out)

	return nil
}

func (e *Engine) assignMap(dst reflect.Value, rec record.Record, cc callConfig, path string) error {
	mt := dst.Type()
	if mt.Key().Kind() != reflect.String {
		return fmt.Errorf("%w: record into %s", primitive.ErrNotConvertible, mt)
	}

	out := reflect.MakeMapWithSize(mt, len(rec))

	for _, k := range rec.Keys() {
		item := reflect.New(mt.Elem()).Elem()
		if err := e.assign(item, rec[k], cc, joinPath(path, k)); err != nil {
			return fmt.Errorf("[%q]: %w", k, err)
		}

		out.SetMapIndex(reflect.ValueOf(k).Convert(mt.Key()), item)
	}

	dst.Set(out)

	return nil
}

// assignStruct fills a plain struct (one that does not embed Base) from a
// record. Keys without a matching field are dropped.
func (e *Engine) assignStruct(dst reflect.Value, rec record.Record, cc callConfig, path string) error {
	out := reflect.New(dst.Type()).Elem()

	for _, sf := range reflect.VisibleFields(dst.Type()) {
		if sf.Anonymous || !sf.IsExported() || behindPointer(dst.Type(), sf.Index) {
			continue
		}

		name, _, skip := attributeName(sf)
		if skip {
			continue
		}

		v, ok := rec[name]
		if !ok {
			continue
		}

		if err := e.assign(out.FieldByIndex(sf.Index), v, cc, joinPath(path, name)); err != nil {
			return fmt.Errorf(".%s: %w", name, err)
		}
	}

	dst.Set(out)

	return nil
}

// assignDTO inflates a record into a DTO-typed attribute that has no
// class-map entry, using the attribute's own type. Errors inside it come
// back as a *FieldError carrying the full path.
func (e *Engine) assignDTO(dst reflect.Value, rec record.Record, cc callConfig, path string) error {
	m, err := e.registry.metaForType(dst.Type())
	if err != nil {
		return err
	}

	inst, err := e.inflateRecord(m, rec, cc, path)
	if err != nil {
		return err
	}

	dst.Set(reflect.ValueOf(inst).Elem())

	return nil
}
