package dto

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dto-inflator/record"
)

// InflateOne builds a *T from rec.
func InflateOne[T any, PT Ptr[T]](e *Engine, rec record.Record, opts ...CallOption) (PT, error) {
	return InflateOneFromObject[T, PT](e, rec, opts...)
}

// InflateOneFromObject builds a *T from any map or struct value.
func InflateOneFromObject[T any, PT Ptr[T]](e *Engine, obj any, opts ...CallOption) (PT, error) {
	m, err := e.registry.metaForType(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	inst, err := e.inflateRoot(m, obj, newCallConfig(opts))
	if err != nil {
		return nil, err
	}

	return inst.(PT), nil
}

// InflateMany builds one *T per record, in input order.
func InflateMany[T any, PT Ptr[T]](e *Engine, recs []record.Record, opts ...CallOption) ([]PT, error) {
	items := make([]any, len(recs))
	for i, rec := range recs {
		items[i] = rec
	}

	return InflateManyFromObjects[T, PT](e, items, opts...)
}

// InflateManyFromObjects builds one *T per map or struct value, in input
// order.
func InflateManyFromObjects[T any, PT Ptr[T]](e *Engine, items []any, opts ...CallOption) ([]PT, error) {
	m, err := e.registry.metaForType(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	insts, err := e.inflateBatch(m, items, newCallConfig(opts))
	if err != nil {
		return nil, err
	}

	out := make([]PT, len(insts))
	for i, inst := range insts {
		out[i] = inst.(PT)
	}

	return out, nil
}

// Inflate builds an instance of the type registered as typeName.
func (e *Engine) Inflate(typeName string, rec record.Record, opts ...CallOption) (DTO, error) {
	return e.InflateObject(typeName, rec, opts...)
}

// InflateObject builds an instance of the type registered as typeName from
// any map or struct value.
func (e *Engine) InflateObject(typeName string, obj any, opts ...CallOption) (DTO, error) {
	m := e.registry.lookup(typeName)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}

	return e.inflateRoot(m, obj, newCallConfig(opts))
}

// InflateMany builds one instance of the type registered as typeName per
// item. An unknown type name yields an empty slice and ErrUnknownType.
func (e *Engine) InflateMany(typeName string, items []any, opts ...CallOption) ([]DTO, error) {
	m := e.registry.lookup(typeName)
	if m == nil {
		return []DTO{}, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}

	return e.inflateBatch(m, items, newCallConfig(opts))
}

func (e *Engine) inflateBatch(m *typeMeta, items []any, cc callConfig) ([]DTO, error) {
	out := make([]DTO, len(items))

	if e.parallelism < 2 || len(items) < 2 {
		for i, item := range items {
			inst, err := e.inflateRoot(m, item, cc)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}

			out[i] = inst
		}

		return out, nil
	}

	var g errgroup.Group

	g.SetLimit(e.parallelism)

	for i, item := range items {
		g.Go(func() error {
			inst, err := e.inflateRoot(m, item, cc)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}

			out[i] = inst

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// inflateRoot normalizes obj and inflates it. DTO values inside obj are
// deflated first so they are re-read through the target's metadata.
func (e *Engine) inflateRoot(m *typeMeta, obj any, cc callConfig) (DTO, error) {
	rec, err := record.NormalizeRecordFunc(obj, e.deflateHook)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	return e.inflateRecord(m, rec, cc, "")
}

func (e *Engine) inflateRecord(m *typeMeta, rec record.Record, cc callConfig, path string) (DTO, error) {
	inst := m.newInstance()

	if cc.shortKeys {
		rec = expandShortKeys(rec, m.longByShort)
	}

	for _, key := range rec.Keys() {
		if record.IsPositional(key) || IsReserved(key) {
			continue
		}

		value := rec[key]
		key = renameField(key, m.renames)
		fieldPath := joinPath(path, key)

		if nested, ok := m.classMap[key]; ok && record.IsContainer(value) {
			sub := e.registry.lookup(nested.Type)
			if sub == nil {
				e.logger.Debug("nested type is not registered, keeping raw value",
					zap.String("type", m.name),
					zap.String("field", fieldPath),
					zap.Stringer("nested", nested))

				inst.dtoBase().SetUnmapped(key, value)

				continue
			}

			typed, err := e.inflateNested(sub, nested, value, cc, fieldPath)
			if err != nil {
				return nil, err
			}

			value = typed
		}

		if err := e.setField(m, inst, key, value, cc, fieldPath); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

func (e *Engine) inflateNested(m *typeMeta, nested Nested, value any, cc callConfig, path string) (any, error) {
	if !nested.IsList() {
		// a list carries only positional keys, all of them skipped
		rec, _ := record.AsRecord(value)
		return e.inflateRecord(m, rec, cc, path)
	}

	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %s expects a list", ErrMalformedInput, path, nested)
	}

	out := make([]DTO, len(items))

	for i, item := range items {
		itemPath := indexPath(path, i)

		if !record.IsContainer(item) {
			return nil, fmt.Errorf("%w: %s: expected an object, got %T", ErrMalformedInput, itemPath, item)
		}

		rec, _ := record.AsRecord(item)

		inst, err := e.inflateRecord(m, rec, cc, itemPath)
		if err != nil {
			return nil, err
		}

		out[i] = inst
	}

	return out, nil
}

func (e *Engine) setField(m *typeMeta, inst DTO, key string, value any, cc callConfig, path string) error {
	a, ok := m.attribute(key)
	if !ok {
		e.logger.Debug("field is not declared, keeping it as overflow",
			zap.String("type", m.name),
			zap.String("field", path))

		inst.dtoBase().SetUnmapped(key, value)

		return nil
	}

	if m.isDynamic() {
		inst.(*Dynamic).attrs[key] = value
		return nil
	}

	dst := reflect.ValueOf(inst).Elem().FieldByIndex(a.index)
	if err := e.assign(dst, value, cc, path); err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			return fe
		}

		return &FieldError{Type: m.name, Path: path, Err: err}
	}

	return nil
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}
