package schema

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dto-inflator/dto"
	"dto-inflator/internal/diagnostic"
)

func findDiag(diags []diagnostic.Diagnostic, code string) (diagnostic.Diagnostic, bool) {
	for _, d := range diags {
		if d.Code == code {
			return d, true
		}
	}

	return diagnostic.Diagnostic{}, false
}

func TestValidate_Valid(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "people.yaml"))
	require.NoError(t, err)

	diags := Validate(f, dto.NewRegistry())
	assert.True(t, diags.IsValid(), diags.Error())
	assert.Empty(t, diags.Warnings)

	// nil registry is allowed
	assert.True(t, Validate(f, nil).IsValid())
}

func TestValidate_Broken(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "broken.yaml"))
	require.NoError(t, err)

	diags := Validate(f, nil)
	require.True(t, diags.HasErrors())

	for _, code := range []string{
		"duplicate_attribute",
		"reserved_attribute",
		"invalid_class_ref",
		"duplicate_short_key",
		"duplicate_type",
		"empty_type_name",
	} {
		_, ok := findDiag(diags.Errors, code)
		assert.True(t, ok, "missing error %s in %v", code, diags.Codes())
	}

	for _, code := range []string{
		"class_map_key_not_declared",
		"unknown_class_type",
		"rename_target_not_declared",
		"short_key_not_declared",
	} {
		_, ok := findDiag(diags.Warnings, code)
		assert.True(t, ok, "missing warning %s in %v", code, diags.Codes())
	}

	rename, _ := findDiag(diags.Warnings, "rename_target_not_declared")
	assert.Equal(t, "Person", rename.Type)
	assert.Equal(t, "name", rename.Field)
	assert.Equal(t, []string{"firstName"}, rename.Suggestions)
}

func TestValidate_Suggestions(t *testing.T) {
	f := &File{
		Version: "1",
		Types: []Type{
			{
				Name:       "Person",
				Attributes: StringOrArray{"firstName", "favouritePet"},
				ClassMap:   map[string]string{"favoritePet": "Pett"},
			},
			{Name: "Pet", Attributes: StringOrArray{"name"}},
		},
	}

	diags := Validate(f, nil)
	require.True(t, diags.IsValid(), diags.Error())

	key, ok := findDiag(diags.Warnings, "class_map_key_not_declared")
	require.True(t, ok)
	assert.Equal(t, []string{"favouritePet"}, key.Suggestions)

	typ, ok := findDiag(diags.Warnings, "unknown_class_type")
	require.True(t, ok)
	assert.Equal(t, []string{"Pet"}, typ.Suggestions)
	assert.Contains(t, typ.String(), `did you mean "Pet"?`)
}

func TestValidate_AgainstRegistry(t *testing.T) {
	reg := dto.NewRegistry()
	require.NoError(t, reg.Define(dto.Definition{Name: "Pet", Attributes: []string{"name"}}))

	f := &File{
		Version: "1",
		Types: []Type{
			{Name: "Owner", Attributes: StringOrArray{"pet"}, ClassMap: map[string]string{"pet": `\Pet`}},
			{Name: "Pet", Attributes: StringOrArray{"name"}},
		},
	}

	diags := Validate(f, reg)

	assert.Equal(t, []string{"type_already_registered"}, diags.Codes())
}

func TestValidate_Misc(t *testing.T) {
	tests := []struct {
		name  string
		file  *File
		codes []string
	}{
		{
			name:  "nil file",
			file:  nil,
			codes: []string{"schema_is_nil"},
		},
		{
			name:  "version and empty",
			file:  &File{Version: "2"},
			codes: []string{"unsupported_version", "no_types"},
		},
		{
			name:  "invalid name",
			file:  &File{Version: "1", Types: []Type{{Name: "Pet[]", Attributes: StringOrArray{"a"}}}},
			codes: []string{"invalid_type_name"},
		},
		{
			name:  "no attributes",
			file:  &File{Version: "1", Types: []Type{{Name: "Bag"}}},
			codes: []string{"no_attributes"},
		},
		{
			name: "short key problems",
			file: &File{Version: "1", Types: []Type{{
				Name:        "User",
				Attributes:  StringOrArray{"firstName", "fn", "lastName"},
				ShortKeyMap: map[string]string{"firstName": "fn", "lastName": ""},
			}}},
			codes: []string{"empty_short_key", "short_key_shadows_attribute"},
		},
		{
			name: "rename shadows attribute",
			file: &File{Version: "1", Types: []Type{{
				Name:           "User",
				Attributes:     StringOrArray{"name", "firstName"},
				FieldRenameMap: map[string]string{"name": "firstName"},
			}}},
			codes: []string{"rename_shadows_attribute"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.codes, Validate(tt.file, nil).Codes())
		})
	}
}
