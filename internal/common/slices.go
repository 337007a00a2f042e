package common

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Dedup returns the elements of s in order, keeping only the first
// occurrence of each value, and the values that were dropped.
func Dedup[S ~[]E, E comparable](s S) (kept S, dropped S) {
	seen := make(map[E]struct{}, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			dropped = append(dropped, v)
			continue
		}

		seen[v] = struct{}{}
		kept = append(kept, v)
	}

	return kept, dropped
}
