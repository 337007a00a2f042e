// Package schema reads, validates and applies YAML files that declare DTO
// types at runtime.
//
// # Schema Overview
//
//	version: "1"
//	types:
//	  - name: Person
//	    attributes: [firstName, age, pets, favouritePet]
//	    class_map:
//	      pets: Pet[]
//	      favouritePet: Pet
//	    field_rename_map:
//	      name: firstName
//	    short_key_map:
//	      firstName: fn
//	  - name: Pet
//	    attributes: [type, name]
//
// attributes accepts a single string or a list. Class-map values name
// types declared in the same file or already registered; a "[]" suffix
// means a list.
//
// # Usage
//
//	f, err := schema.LoadFile("types.yaml")
//	if diags := schema.Validate(f, reg); diags.HasErrors() {
//	    return diags.Error()
//	}
//	err = schema.Apply(f, reg)
//
// Validate reports structural errors (duplicates, reserved names,
// malformed references) and warns about entries that can never take
// effect, with "did you mean" suggestions.
package schema
