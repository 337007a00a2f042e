package record

import (
	"slices"
	"strconv"
)

// MergeRecursive merges src into dst and returns the result; neither
// input is modified.
//
// For a key present on both sides the dst value is turned into a list
// (a scalar x becomes [x], nil becomes [nil]); a container src value is
// then merged into it recursively, a scalar src value is appended.
// Positional entries of src are always appended. A result whose keys are
// exactly 0..n-1 is a []any, anything else is a Record with decimal keys
// for the positional entries.
func MergeRecursive(dst, src Record) Record {
	merged := toArray(dst)
	merged.merge(toArray(src))

	return merged.record()
}

// Overlay returns base with every key of extra that base does not have.
// Values of base win on conflict.
func Overlay(base, extra Record) Record {
	out := make(Record, len(base)+len(extra))

	for k, v := range extra {
		out[k] = v
	}

	for k, v := range base {
		out[k] = v
	}

	return out
}

// entry is one slot of an ordered array. Positional entries carry their
// index, keyed entries their name.
type entry struct {
	key   string
	index int
	pos   bool
	value any
}

// array is an ordered key/value list. next is one past the highest
// position seen so far.
type array struct {
	entries []entry
	byKey   map[string]int
	next    int
}

func newArray() *array {
	return &array{byKey: map[string]int{}}
}

// toArray converts a plain value to an array. Records are walked in key
// order; scalars become a single positional entry.
func toArray(v any) *array {
	arr := newArray()

	switch c := v.(type) {
	case nil:
		return arr
	case []any:
		for _, item := range c {
			arr.push(item)
		}
	default:
		rec, ok := AsRecord(v)
		if !ok {
			arr.push(v)
			return arr
		}

		var named []string

		positions := map[int]string{}
		indexes := []int{}

		for _, k := range rec.Keys() {
			if i, ok := positionalIndex(k); ok {
				positions[i] = k
				indexes = append(indexes, i)

				continue
			}

			named = append(named, k)
		}

		slices.Sort(indexes)

		for _, i := range indexes {
			arr.put(entry{index: i, pos: true, value: rec[positions[i]]})
		}

		for _, k := range named {
			arr.put(entry{key: k, value: rec[k]})
		}
	}

	return arr
}

func (a *array) put(e entry) {
	if e.pos {
		e.key = strconv.Itoa(e.index)
		if e.index >= a.next {
			a.next = e.index + 1
		}
	}

	if i, ok := a.byKey[e.key]; ok {
		a.entries[i] = e
		return
	}

	a.byKey[e.key] = len(a.entries)
	a.entries = append(a.entries, e)
}

func (a *array) push(v any) {
	a.put(entry{index: a.next, pos: true, value: v})
}

func (a *array) merge(src *array) {
	for _, e := range src.entries {
		if e.pos {
			a.push(e.value)
			continue
		}

		i, ok := a.byKey[e.key]
		if !ok {
			a.put(e)
			continue
		}

		target := toArray(a.entries[i].value)
		if a.entries[i].value == nil {
			target.push(nil)
		}

		if IsContainer(e.value) {
			target.merge(toArray(e.value))
		} else {
			target.push(e.value)
		}

		a.entries[i].value = target.value()
	}
}

// value returns the plain form of the array: a list when its keys are
// exactly 0..n-1 in order, a Record otherwise.
func (a *array) value() any {
	list := make([]any, 0, len(a.entries))

	for i, e := range a.entries {
		if !e.pos || e.index != i {
			return a.record()
		}

		list = append(list, e.value)
	}

	return list
}

func (a *array) record() Record {
	out := make(Record, len(a.entries))
	for _, e := range a.entries {
		out[e.key] = e.value
	}

	return out
}
