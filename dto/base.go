package dto

import (
	"reflect"
	"slices"

	"dto-inflator/record"
)

// Reserved attribute names. Input keys with these names are skipped and
// no DTO may declare an attribute named after them.
const (
	ReservedClassMap       = "classMap"
	ReservedFieldRenameMap = "fieldRenameMap"
	ReservedShortKeyMap    = "shortKeyMap"
	ReservedUnmappedFields = "unmappedFields"
)

var reservedNames = []string{
	ReservedClassMap,
	ReservedFieldRenameMap,
	ReservedShortKeyMap,
	ReservedUnmappedFields,
}

// IsReserved reports whether name is a reserved attribute name.
func IsReserved(name string) bool {
	return slices.Contains(reservedNames, name)
}

// ReservedNames returns the reserved attribute names.
func ReservedNames() []string {
	return slices.Clone(reservedNames)
}

// DTO is implemented by pointers to structs that embed Base, and by
// *Dynamic.
type DTO interface {
	dtoBase() *Base
}

// Ptr constrains a type parameter to *T where T embeds Base.
type Ptr[T any] interface {
	*T
	DTO
}

// ClassMapper declares which attributes hold nested DTOs.
type ClassMapper interface {
	ClassMap() map[string]string
}

// FieldRenamer maps alternate input names to attribute names.
type FieldRenamer interface {
	FieldRenameMap() map[string]string
}

// ShortKeyMapper maps attribute names to short aliases.
type ShortKeyMapper interface {
	ShortKeyMap() map[string]string
}

var (
	dtoType  = reflect.TypeFor[DTO]()
	baseType = reflect.TypeFor[Base]()
)

// Base holds the overflow bag: input fields that matched no declared
// attribute.
type Base struct {
	unmapped record.Record
}

func (b *Base) dtoBase() *Base { return b }

// Unmapped returns a copy of the overflow bag.
func (b *Base) Unmapped() record.Record {
	return b.unmapped.Clone()
}

// Lookup returns an overflow entry.
func (b *Base) Lookup(key string) (any, bool) {
	v, ok := b.unmapped[key]
	return v, ok
}

// SetUnmapped stores an overflow entry, replacing any previous value.
func (b *Base) SetUnmapped(key string, v any) {
	if b.unmapped == nil {
		b.unmapped = record.Record{}
	}

	b.unmapped[key] = v
}

// DeleteUnmapped removes an overflow entry.
func (b *Base) DeleteUnmapped(key string) {
	delete(b.unmapped, key)
}

// Unmapped returns a copy of the overflow bag of any DTO.
func Unmapped(d DTO) record.Record {
	if isNil(d) {
		return nil
	}

	return d.dtoBase().Unmapped()
}
