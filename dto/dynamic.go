package dto

import (
	"maps"
	"slices"
)

// Definition declares a DTO type at runtime.
type Definition struct {
	Name           string
	Attributes     []string
	ClassMap       map[string]string
	FieldRenameMap map[string]string
	ShortKeyMap    map[string]string
}

// Dynamic is an instance of a runtime-declared type.
type Dynamic struct {
	Base

	meta  *typeMeta
	attrs map[string]any
}

// TypeName returns the name the type was defined under.
func (d *Dynamic) TypeName() string {
	if d.meta == nil {
		return ""
	}

	return d.meta.name
}

// Attributes returns the declared attribute names in declaration order.
func (d *Dynamic) Attributes() []string {
	if d.meta == nil {
		return nil
	}

	names := make([]string, len(d.meta.attrs))
	for i, a := range d.meta.attrs {
		names[i] = a.name
	}

	return names
}

// Attr returns a declared attribute. ok is false when name is not declared.
func (d *Dynamic) Attr(name string) (any, bool) {
	if d.meta == nil {
		return nil, false
	}

	if _, declared := d.meta.attribute(name); !declared {
		return nil, false
	}

	return d.attrs[name], true
}

// Get returns a declared attribute or, failing that, an overflow entry.
func (d *Dynamic) Get(name string) (any, bool) {
	if v, ok := d.Attr(name); ok {
		return v, true
	}

	return d.Lookup(name)
}

// Set stores a declared attribute, or an overflow entry when name is not
// declared.
func (d *Dynamic) Set(name string, v any) {
	if d.meta != nil {
		if _, declared := d.meta.attribute(name); declared {
			d.attrs[name] = v
			return
		}
	}

	d.SetUnmapped(name, v)
}

// Values returns a shallow copy of the declared attribute values.
func (d *Dynamic) Values() map[string]any {
	return maps.Clone(d.attrs)
}

// HasAttribute reports whether name is a declared attribute.
func (d *Dynamic) HasAttribute(name string) bool {
	return slices.Contains(d.Attributes(), name)
}
