package dto

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

//go:generate go tool stringer -type=Cardinality -output=cardinality_string.go

// Cardinality tells whether a class-map entry holds one nested DTO or a
// list of them.
type Cardinality int

const (
	_ Cardinality = iota // skip zero value, use it as a default (invalid) value for Cardinality

	CardinalityOne
	CardinalityMany
)

// ListSuffix marks a class-map entry as a list of the named type.
const ListSuffix = "[]"

// Nested is a parsed class-map entry.
type Nested struct {
	Type        string
	Cardinality Cardinality
}

// One returns a single-instance reference to typeName.
func One(typeName string) Nested {
	return Nested{Type: typeName, Cardinality: CardinalityOne}
}

// Many returns a list reference to typeName.
func Many(typeName string) Nested {
	return Nested{Type: typeName, Cardinality: CardinalityMany}
}

// IsList reports whether the reference is a list.
func (n Nested) IsList() bool {
	return n.Cardinality == CardinalityMany
}

// String returns the reference in class-map notation, e.g. "Pet[]".
func (n Nested) String() string {
	if n.IsList() {
		return n.Type + ListSuffix
	}

	return n.Type
}

// ParseNested parses a class-map value such as "Pet" or "Pet[]".
func ParseNested(ref string) (Nested, error) {
	if ref == "" {
		return Nested{}, errors.New("empty type reference")
	}

	n := Nested{Type: ref, Cardinality: CardinalityOne}

	if strings.HasSuffix(ref, ListSuffix) {
		n.Type = strings.TrimSuffix(ref, ListSuffix)
		n.Cardinality = CardinalityMany

		if n.Type == "" {
			return Nested{}, fmt.Errorf("invalid type reference %q: list without type name", ref)
		}
	}

	if !IsValidTypeName(n.Type) {
		return Nested{}, fmt.Errorf("invalid type reference %q: invalid type name %q", ref, n.Type)
	}

	return n, nil
}

// IsValidTypeName reports whether s can name a DTO type: any non-blank
// name without brackets or spaces, so namespaced names like `App\Dto\Pet`
// pass.
func IsValidTypeName(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if unicode.IsSpace(r) || r == '[' || r == ']' {
			return false
		}
	}

	return true
}

// CanonicalName returns the registry key of a type name: surrounding
// blanks and a leading namespace separator are dropped.
func CanonicalName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), `\`)
}
