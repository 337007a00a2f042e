package schema

import (
	"fmt"
	"slices"

	"dto-inflator/dto"
	"dto-inflator/internal/common"
	"dto-inflator/internal/diagnostic"
	"dto-inflator/internal/match"
)

// maxSuggestions caps the "did you mean" list of a diagnostic.
const maxSuggestions = 3

// Validate checks a schema file on its own and against the types already
// in reg, which may be nil. It never modifies reg.
func Validate(f *File, reg *dto.Registry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("schema_is_nil", "schema file is nil", "", "")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError("unsupported_version",
			fmt.Sprintf("unsupported schema version %q, expected %q", f.Version, CurrentVersion), "", "")
	}

	if len(f.Types) == 0 {
		res.AddInfo("no_types", "schema declares no types", "", "")
	}

	known := knownTypes(f, reg)
	seen := map[string]struct{}{}

	for i := range f.Types {
		t := &f.Types[i]

		name := canonical(t.Name)
		if name == "" {
			res.AddError("empty_type_name", fmt.Sprintf("type #%d has no name", i+1), "", "")
			continue
		}

		if !dto.IsValidTypeName(name) {
			res.AddError("invalid_type_name", fmt.Sprintf("invalid type name %q", t.Name), t.Name, "")
			continue
		}

		if _, ok := seen[name]; ok {
			res.AddError("duplicate_type", fmt.Sprintf("type %q declared twice", t.Name), t.Name, "")
			continue
		}

		seen[name] = struct{}{}

		if reg != nil && reg.Has(name) {
			res.AddError("type_already_registered", fmt.Sprintf("type %q is already registered", t.Name), t.Name, "")
		}

		validateType(t, known, res)
	}

	return res
}

// knownTypes lists the names a class map may reference.
func knownTypes(f *File, reg *dto.Registry) []string {
	names := make([]string, 0, len(f.Types))
	for _, t := range f.Types {
		if n := canonical(t.Name); n != "" {
			names = append(names, n)
		}
	}

	if reg != nil {
		names = append(names, reg.Names()...)
	}

	kept, _ := common.Dedup(names)

	return kept
}

func validateType(t *Type, known []string, res *diagnostic.Diagnostics) {
	attrs, dups := common.Dedup(t.Attributes)

	for _, a := range dups {
		res.AddError("duplicate_attribute", fmt.Sprintf("attribute %q declared twice", a), t.Name, a)
	}

	for _, a := range attrs {
		switch {
		case a == "":
			res.AddError("empty_attribute", "attribute name is empty", t.Name, "")
		case dto.IsReserved(a):
			res.AddError("reserved_attribute", fmt.Sprintf("attribute %q uses a reserved name", a), t.Name, a)
		}
	}

	if len(attrs) == 0 {
		res.AddInfo("no_attributes", "type declares no attributes, every field is kept as overflow", t.Name, "")
	}

	declared := func(name string) bool { return slices.Contains(attrs, name) }
	suggest := func(name string) []string { return match.Suggest(name, attrs, maxSuggestions) }

	for _, key := range common.SortedKeys(t.ClassMap) {
		if !declared(key) {
			res.AddWarning("class_map_key_not_declared",
				fmt.Sprintf("class map key %q is not a declared attribute, inflated values go to overflow", key),
				t.Name, key, suggest(key)...)
		}

		ref, err := dto.ParseNested(t.ClassMap[key])
		if err != nil {
			res.AddError("invalid_class_ref", err.Error(), t.Name, key)
			continue
		}

		if !slices.Contains(known, canonical(ref.Type)) {
			res.AddWarning("unknown_class_type",
				fmt.Sprintf("class map type %q is not declared or registered, values stay raw", ref.Type),
				t.Name, key, match.Suggest(canonical(ref.Type), known, maxSuggestions)...)
		}
	}

	for _, from := range common.SortedKeys(t.FieldRenameMap) {
		to := t.FieldRenameMap[from]

		if !declared(to) {
			res.AddWarning("rename_target_not_declared",
				fmt.Sprintf("rename target %q is not a declared attribute", to),
				t.Name, from, suggest(to)...)
		}

		if declared(from) {
			res.AddInfo("rename_shadows_attribute",
				fmt.Sprintf("input key %q is renamed to %q and never reaches its own attribute", from, to),
				t.Name, from)
		}
	}

	aliases := map[string]string{}

	for _, long := range common.SortedKeys(t.ShortKeyMap) {
		short := t.ShortKeyMap[long]

		if !declared(long) {
			res.AddWarning("short_key_not_declared",
				fmt.Sprintf("short key entry %q is not a declared attribute", long),
				t.Name, long, suggest(long)...)
		}

		if short == "" {
			res.AddError("empty_short_key", fmt.Sprintf("attribute %q has an empty short key", long), t.Name, long)
			continue
		}

		if prev, ok := aliases[short]; ok {
			res.AddError("duplicate_short_key",
				fmt.Sprintf("short key %q is used by both %q and %q", short, prev, long), t.Name, long)

			continue
		}

		aliases[short] = long

		if short != long && declared(short) {
			res.AddWarning("short_key_shadows_attribute",
				fmt.Sprintf("short key %q is also a declared attribute and is expanded to %q", short, long),
				t.Name, short)
		}
	}
}
