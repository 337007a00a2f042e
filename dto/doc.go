// Package dto inflates plain nested records into typed DTO values and
// deflates them back.
//
// # Declaring a DTO
//
// A DTO is a struct that embeds Base. Exported fields are its declared
// attributes; the attribute name is taken from the dto tag, then the json
// tag, then the Go field name:
//
//	type Person struct {
//	    dto.Base
//	    FirstName    string `dto:"firstName"`
//	    Age          int    `dto:"age"`
//	    Pets         []*Pet `dto:"pets"`
//	    FavouritePet *Pet   `dto:"favouritePet,omitempty"`
//	}
//
// Three optional methods supply the mapping metadata:
//
//	func (*Person) ClassMap() map[string]string {
//	    return map[string]string{"pets": "Pet[]", "favouritePet": "Pet"}
//	}
//
//	func (*Person) FieldRenameMap() map[string]string {
//	    return map[string]string{"name": "firstName"}
//	}
//
//	func (*Person) ShortKeyMap() map[string]string {
//	    return map[string]string{"firstName": "fn"}
//	}
//
// Class-map values name registered types; a "[]" suffix means a list of
// that type. Types can also be declared at runtime with a Definition, in
// which case instances are *Dynamic.
//
// # Inflating
//
//	reg := dto.NewRegistry()
//	_ = dto.Register[Person](reg, "Person")
//	_ = dto.Register[Pet](reg, "Pet")
//
//	e := dto.New(reg)
//	p, err := dto.InflateOne[Person](e, rec)
//	p, err = dto.InflateOne[Person](e, rec, dto.ShortKeys())
//
// For every key of the record, in sorted order:
//  1. positional keys ("0", "1", ...) and reserved names are skipped;
//  2. with ShortKeys, short aliases are first expanded to long names;
//  3. fieldRenameMap turns alternate names into attribute names;
//  4. containers under a class-map key are inflated into the nested type,
//     or kept raw in the overflow bag when that type is not registered;
//  5. the value lands in the declared attribute of that name, or in the
//     overflow bag when there is none.
//
// # Deflating
//
// Deflate walks declared attributes depth-first and merges the overflow
// bag back in. With MergeRecursive (the default) a key present on both
// sides collects both values; with MergeOverlay declared attributes win.
package dto
