package schema

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"dto-inflator/internal/common"
)

// CurrentVersion is the only schema version understood.
const CurrentVersion = "1"

// File is a parsed schema file.
type File struct {
	Version string `yaml:"version"`
	Types   []Type `yaml:"types"`
}

// Type declares one DTO type.
type Type struct {
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description,omitempty"`
	Attributes     StringOrArray     `yaml:"attributes,omitempty"`
	ClassMap       map[string]string `yaml:"class_map,omitempty"`
	FieldRenameMap map[string]string `yaml:"field_rename_map,omitempty"`
	ShortKeyMap    map[string]string `yaml:"short_key_map,omitempty"`
}

// StringOrArray is a list of strings that may be written as a single
// scalar in YAML.
type StringOrArray []string

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// Lookup returns the type declared under name, matched the way the
// registry matches names.
func (f *File) Lookup(name string) (*Type, bool) {
	for i := range f.Types {
		if canonical(f.Types[i].Name) == canonical(name) {
			return &f.Types[i], true
		}
	}

	return nil, false
}

// Names returns the declared type names in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Types))
	for i, t := range f.Types {
		names[i] = t.Name
	}

	return names
}
