package record

import (
	"strconv"

	"dto-inflator/internal/common"
)

// Record is a plain, string-keyed record. Values are scalars, nested
// Records or []any lists.
type Record map[string]any

// KindEnum classifies a plain value.
type KindEnum int

const (
	KindScalar KindEnum = iota
	KindList
	KindRecord
)

// KindOf classifies v without normalizing it. map[string]any counts as a
// record, []any as a list; everything else is a scalar.
func KindOf(v any) KindEnum {
	switch v.(type) {
	case Record, map[string]any:
		return KindRecord
	case []any:
		return KindList
	default:
		return KindScalar
	}
}

// IsContainer reports whether v is a record or a list.
func IsContainer(v any) bool {
	return KindOf(v) != KindScalar
}

// AsRecord returns v as a Record when it is one.
func AsRecord(v any) (Record, bool) {
	switch r := v.(type) {
	case Record:
		return r, true
	case map[string]any:
		return Record(r), true
	default:
		return nil, false
	}
}

// Keys returns the record keys in ascending order.
func (r Record) Keys() []string {
	return common.SortedKeys(r)
}

// Clone returns a deep copy of the record's containers. Scalars are shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}

	return out
}

func cloneValue(v any) any {
	if rec, ok := AsRecord(v); ok {
		return rec.Clone()
	}

	if list, ok := v.([]any); ok {
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = cloneValue(item)
		}

		return out
	}

	return v
}

// IsPositional reports whether key is a canonical decimal integer such as
// "0", "42" or "-3". Such keys address list positions rather than fields.
func IsPositional(key string) bool {
	_, ok := positionalIndex(key)
	return ok
}

func positionalIndex(key string) (int, bool) {
	if key == "" || len(key) > 20 {
		return 0, false
	}

	digits := key
	if key[0] == '-' {
		digits = key[1:]
		if digits == "" || digits == "0" {
			return 0, false
		}
	}

	if len(digits) > 1 && digits[0] == '0' {
		return 0, false
	}

	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}

	return n, true
}
