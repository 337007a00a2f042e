package record

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type food struct {
	Ingredient string `json:"ingredient"`
	Secret     string `json:"-"`
	Note       string `json:"note,omitempty"`
}

type Audit struct {
	CreatedBy string `json:"createdBy"`
}

type pet struct {
	Audit
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Foods  []food   `json:"foods"`
	Owner  *string  `json:"owner"`
	Tags   []string `json:"tags"`
	Born   time.Time
	hidden int
}

func TestNormalize_Struct(t *testing.T) {
	born := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	in := &pet{
		Audit: Audit{CreatedBy: "admin"},
		Name:  "Rex",
		Type:  "Dog",
		Foods: []food{{Ingredient: "Beef", Secret: "x"}, {Ingredient: "Rice", Note: "wet"}},
		Born:  born,
	}

	got, err := Normalize(in)
	require.NoError(t, err)

	want := Record{
		"createdBy": "admin",
		"name":      "Rex",
		"type":      "Dog",
		"foods": []any{
			Record{"ingredient": "Beef"},
			Record{"ingredient": "Rice", "note": "wet"},
		},
		"owner": nil,
		"tags":  []any{},
		"Born":  born,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Maps(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  any
	}{
		{
			name:  "contiguous int keys become a list",
			input: map[int]string{1: "b", 0: "a", 2: "c"},
			want:  []any{"a", "b", "c"},
		},
		{
			name:  "contiguous string positions become a list",
			input: map[string]any{"0": "a", "1": "b"},
			want:  []any{"a", "b"},
		},
		{
			name:  "gaps keep a record",
			input: map[int]string{1: "b", 3: "d"},
			want:  Record{"1": "b", "3": "d"},
		},
		{
			name:  "empty map is a record",
			input: map[string]int{},
			want:  Record{},
		},
		{
			name:  "nested generic values",
			input: map[string]any{"a": []map[string]int{{"x": 1}}, "b": nil},
			want:  Record{"a": []any{Record{"x": 1}}, "b": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Scalars(t *testing.T) {
	for _, v := range []any{"s", 1, int8(2), uint(3), 4.5, true, time.Second, []byte("raw")} {
		got, err := Normalize(v)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	got, err := Normalize(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNormalize_Unsupported(t *testing.T) {
	_, err := Normalize(map[string]any{"fn": func() {}})
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), `"fn"`)

	_, err = Normalize(map[[2]int]string{{1, 2}: "x"})
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestNormalizeRecord(t *testing.T) {
	rec, err := NormalizeRecord(food{Ingredient: "Grain"})
	require.NoError(t, err)
	assert.Equal(t, Record{"ingredient": "Grain"}, rec)

	rec, err = NormalizeRecord(map[int]string{0: "a", 1: "b"})
	require.NoError(t, err)
	assert.Equal(t, Record{"0": "a", "1": "b"}, rec)

	_, err = NormalizeRecord([]any{1, 2})
	require.ErrorIs(t, err, ErrNotObject)

	_, err = NormalizeRecord("text")
	require.ErrorIs(t, err, ErrNotObject)

	var nilPet *pet
	_, err = NormalizeRecord(nilPet)
	require.ErrorIs(t, err, ErrNotObject)
}

func TestNormalizeFunc_Hook(t *testing.T) {
	hook := func(rv reflect.Value) (any, bool, error) {
		if rv.Type() == reflect.TypeFor[food]() {
			return "food:" + rv.Interface().(food).Ingredient, true, nil
		}

		return nil, false, nil
	}

	got, err := NormalizeFunc(map[string]any{"meal": food{Ingredient: "Rice"}}, hook)
	require.NoError(t, err)
	assert.Equal(t, Record{"meal": "food:Rice"}, got)
}
