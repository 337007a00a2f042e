package schema

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"dto-inflator/dto"
)

// LoadFile loads and parses a YAML schema file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}

	return nil
}

// Definition converts the type to a runtime definition.
func (t Type) Definition() dto.Definition {
	return dto.Definition{
		Name:           t.Name,
		Attributes:     slices.Clone([]string(t.Attributes)),
		ClassMap:       maps.Clone(t.ClassMap),
		FieldRenameMap: maps.Clone(t.FieldRenameMap),
		ShortKeyMap:    maps.Clone(t.ShortKeyMap),
	}
}

// Definitions converts every declared type, in file order.
func (f *File) Definitions() []dto.Definition {
	defs := make([]dto.Definition, len(f.Types))
	for i, t := range f.Types {
		defs[i] = t.Definition()
	}

	return defs
}

// Apply defines every type of f in reg. It stops at the first type that
// fails; types defined before it stay registered.
func Apply(f *File, reg *dto.Registry) error {
	if f == nil {
		return errors.New("schema file is nil")
	}

	for _, def := range f.Definitions() {
		if err := reg.Define(def); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}

// Load reads path, validates it against reg and applies it. Validation
// errors are returned together; warnings are returned to the caller.
func Load(path string, reg *dto.Registry) (*File, []string, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	diags := Validate(f, reg)
	if err := diags.Error(); err != nil {
		return nil, nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}

	warnings := make([]string, 0, len(diags.Warnings))
	for _, w := range diags.Warnings {
		warnings = append(warnings, w.String())
	}

	if err := Apply(f, reg); err != nil {
		return nil, nil, err
	}

	return f, warnings, nil
}

// Export describes the named registered types as a schema file. Names that
// are not registered are skipped.
func Export(reg *dto.Registry, names ...string) *File {
	if len(names) == 0 {
		names = reg.Names()
	}

	f := &File{Version: CurrentVersion}

	for _, name := range names {
		desc, ok := reg.Describe(name)
		if !ok {
			continue
		}

		t := Type{
			Name:       desc.Name,
			Attributes: StringOrArray(desc.Attributes),
		}

		if len(desc.ClassMap) > 0 {
			t.ClassMap = make(map[string]string, len(desc.ClassMap))
			for k, n := range desc.ClassMap {
				t.ClassMap[k] = n.String()
			}
		}

		if len(desc.FieldRenameMap) > 0 {
			t.FieldRenameMap = desc.FieldRenameMap
		}

		if len(desc.ShortKeyMap) > 0 {
			t.ShortKeyMap = desc.ShortKeyMap
		}

		if desc.GoType != "" {
			t.Description = "Go type " + desc.GoType
		}

		f.Types = append(f.Types, t)
	}

	return f
}

func canonical(name string) string {
	return dto.CanonicalName(name)
}
