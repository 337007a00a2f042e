package record

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"dto-inflator/primitive"
)

var (
	// ErrNotObject is returned when a record was expected but the value is
	// not a map or a struct.
	ErrNotObject = errors.New("value is not an object")
	// ErrUnsupported is returned for values with no record form, such as
	// functions and channels.
	ErrUnsupported = errors.New("unsupported value")
)

// Hook lets a caller take over normalization of particular values. It is
// called for every value before the default handling; when handled is
// false the value is normalized as usual.
type Hook func(rv reflect.Value) (out any, handled bool, err error)

// Normalize converts an arbitrary Go value into plain form: structs and
// maps become Records, slices and arrays become []any, scalars are copied.
// Maps whose keys are exactly 0..n-1 become lists.
func Normalize(v any) (any, error) {
	return NormalizeFunc(v, nil)
}

// NormalizeFunc is Normalize with a hook.
func NormalizeFunc(v any, hook Hook) (any, error) {
	return normalizeValue(reflect.ValueOf(v), hook, "")
}

// NormalizeRecord normalizes an object (map or struct) into a Record.
// Keys of a positional map are kept as decimal strings.
func NormalizeRecord(v any) (Record, error) {
	return NormalizeRecordFunc(v, nil)
}

// NormalizeRecordFunc is NormalizeRecord with a hook.
func NormalizeRecordFunc(v any, hook Hook) (Record, error) {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil", ErrNotObject)
	}

	if rv.Kind() != reflect.Map && rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotObject, rv.Type())
	}

	out, err := normalizeValue(rv, hook, "")
	if err != nil {
		return nil, err
	}

	switch o := out.(type) {
	case Record:
		return o, nil
	case []any:
		rec := make(Record, len(o))
		for i, item := range o {
			rec[strconv.Itoa(i)] = item
		}

		return rec, nil
	default:
		// handled by the hook as something other than an object
		return nil, fmt.Errorf("%w: %T", ErrNotObject, out)
	}
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}

		rv = rv.Elem()
	}

	return rv
}

func normalizeValue(rv reflect.Value, hook Hook, path string) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}

	if hook != nil {
		out, handled, err := hook(rv)
		if err != nil {
			return nil, err
		}

		if handled {
			return out, nil
		}
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}

		return normalizeValue(rv.Elem(), hook, path)
	}

	if primitive.IsScalar(rv.Type()) {
		if rv.Kind() == reflect.Slice {
			return slices.Clone(rv.Bytes()), nil
		}

		return rv.Interface(), nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())

		for i := range out {
			item, err := normalizeValue(rv.Index(i), hook, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}

			out[i] = item
		}

		return out, nil
	case reflect.Map:
		return normalizeMap(rv, hook, path)
	case reflect.Struct:
		out := Record{}
		if err := normalizeStruct(rv, hook, path, out); err != nil {
			return nil, err
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s at %q", ErrUnsupported, rv.Type(), path)
	}
}

func normalizeMap(rv reflect.Value, hook Hook, path string) (any, error) {
	out := make(Record, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		key, err := mapKey(iter.Key())
		if err != nil {
			return nil, fmt.Errorf("%w at %q", err, path)
		}

		item, err := normalizeValue(iter.Value(), hook, joinPath(path, key))
		if err != nil {
			return nil, err
		}

		out[key] = item
	}

	if list, ok := asList(out); ok {
		return list, nil
	}

	return out, nil
}

func mapKey(k reflect.Value) (string, error) {
	k = indirect(k)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: nil map key", ErrUnsupported)
	}

	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10), nil
	case reflect.Bool, reflect.Float32, reflect.Float64:
		return fmt.Sprint(k.Interface()), nil
	default:
		return "", fmt.Errorf("%w: map key of type %s", ErrUnsupported, k.Type())
	}
}

// asList returns the values of rec as a list when its keys are exactly the
// positions 0..n-1. Empty records stay records.
func asList(rec Record) ([]any, bool) {
	if len(rec) == 0 {
		return nil, false
	}

	list := make([]any, len(rec))

	for k, v := range rec {
		i, ok := positionalIndex(k)
		if !ok || i < 0 || i >= len(rec) {
			return nil, false
		}

		list[i] = v
	}

	return list, true
}

func normalizeStruct(rv reflect.Value, hook Hook, path string, out Record) error {
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)

		name, omitEmpty, skip := jsonName(sf)
		if skip {
			continue
		}

		if !sf.IsExported() {
			continue
		}

		fv := rv.Field(i)

		if sf.Anonymous && name == "" {
			inner := indirect(fv)
			if inner.IsValid() && inner.Kind() == reflect.Struct && !primitive.IsScalar(inner.Type()) {
				if err := normalizeStruct(inner, hook, path, out); err != nil {
					return err
				}

				continue
			}
		}

		if name == "" {
			name = sf.Name
		}

		if omitEmpty && fv.IsZero() {
			continue
		}

		item, err := normalizeValue(fv, hook, joinPath(path, name))
		if err != nil {
			return err
		}

		out[name] = item
	}

	return nil
}

// jsonName reads the json tag the way encoding/json does.
func jsonName(sf reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return "", false, false
	}

	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")

	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}

	return name, omitEmpty, false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}
