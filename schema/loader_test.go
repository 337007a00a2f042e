package schema

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dto-inflator/dto"
	"dto-inflator/record"
)

func TestParse(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "people.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, []string{"Person", "Pet", "Food", "User", "UserFood"}, f.Names())

	person, ok := f.Lookup(`\Person`)
	require.True(t, ok)
	assert.Equal(t, "A person and their pets", person.Description)
	assert.Equal(t, StringOrArray{"firstName", "age", "pets", "favouritePet"}, person.Attributes)
	assert.Equal(t, map[string]string{"pets": "Pet[]", "favouritePet": `\Pet`}, person.ClassMap)
	assert.Equal(t, map[string]string{"name": "firstName"}, person.FieldRenameMap)
	assert.Nil(t, person.ShortKeyMap)

	// single string attributes
	food, ok := f.Lookup("Food")
	require.True(t, ok)
	assert.Equal(t, StringOrArray{"ingredient"}, food.Attributes)
	assert.Equal(t, "ingredient", food.Attributes.First())

	_, ok = f.Lookup("Nope")
	assert.False(t, ok)
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte("types:\n  - name: A\n    attributes: []\n"))
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, f.Version)
	assert.True(t, f.Types[0].Attributes.IsEmpty())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("types: [name: {"))
	require.Error(t, err)

	_, err = Parse([]byte("types:\n  - name: A\n    attributes: {a: b}\n"))
	require.ErrorContains(t, err, "expected string or array")

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	require.ErrorContains(t, err, "failed to read schema file")
}

func TestMarshal_RoundTrip(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "people.yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(f, path))

	again, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, again)

	data, err := Marshal(&File{Version: "1", Types: []Type{{Name: "Food", Attributes: StringOrArray{"ingredient"}}}})
	require.NoError(t, err)
	assert.Contains(t, string(data), "attributes: ingredient\n")
	assert.NotContains(t, string(data), "class_map")
}

func TestApply(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "people.yaml"))
	require.NoError(t, err)

	reg := dto.NewRegistry()
	require.NoError(t, Apply(f, reg))
	assert.Equal(t, []string{"Food", "Person", "Pet", "User", "UserFood"}, reg.Names())

	e := dto.New(reg)

	d, err := e.Inflate("Person", record.Record{
		"name": "Joe",
		"pets": []any{record.Record{"name": "Rex", "foods": []any{record.Record{"ingredient": "Beef"}}}},
	})
	require.NoError(t, err)

	p := d.(*dto.Dynamic)
	name, _ := p.Attr("firstName")
	assert.Equal(t, "Joe", name)

	pets, _ := p.Attr("pets")
	require.Len(t, pets, 1)

	pet := pets.([]dto.DTO)[0].(*dto.Dynamic)
	assert.Equal(t, "Pet", pet.TypeName())

	d, err = e.Inflate("User", record.Record{"fn": "Jane", "food": record.Record{"c": "Red"}}, dto.ShortKeys())
	require.NoError(t, err)

	out, err := e.Deflate(d)
	require.NoError(t, err)
	assert.Equal(t, record.Record{
		"firstName":          "Jane",
		"lastName":           nil,
		"keyNotInShortArray": nil,
		"food":               record.Record{"ingredient": nil, "colour": "Red"},
	}, out)

	// applying twice collides with the types already defined
	require.ErrorIs(t, Apply(f, reg), dto.ErrDuplicateType)
	require.Error(t, Apply(nil, reg))
}

func TestLoad(t *testing.T) {
	reg := dto.NewRegistry()

	f, warnings, err := Load(filepath.Join("testdata", "people.yaml"), reg)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Empty(t, warnings)
	assert.True(t, reg.Has("UserFood"))

	_, _, err = Load(filepath.Join("testdata", "broken.yaml"), dto.NewRegistry())
	require.ErrorContains(t, err, "invalid schema")
}

type exported struct {
	dto.Base

	Title string `dto:"title"`
}

func (*exported) ClassMap() map[string]string {
	return map[string]string{"authors": "Author[]"}
}

func TestExport(t *testing.T) {
	reg := dto.NewRegistry()
	require.NoError(t, dto.Register[exported](reg, "Book"))
	require.NoError(t, reg.Define(dto.Definition{Name: "Author", Attributes: []string{"name"}}))

	f := Export(reg)
	require.Len(t, f.Types, 2)

	assert.Equal(t, Type{Name: "Author", Attributes: StringOrArray{"name"}}, f.Types[0])
	assert.Equal(t, Type{
		Name:        "Book",
		Description: "Go type schema.exported",
		Attributes:  StringOrArray{"title"},
		ClassMap:    map[string]string{"authors": "Author[]"},
	}, f.Types[1])

	assert.Empty(t, Export(reg, "Nope").Types)
}
