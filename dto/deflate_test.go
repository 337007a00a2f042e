package dto_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dto-inflator/dto"
	"dto-inflator/record"
)

func TestDeflate_RoundTrip(t *testing.T) {
	e := newEngine(t)

	pet := petRecord("Rex", "Beef", "Rice")
	in := record.Record{
		"firstName":    "Joe",
		"age":          30,
		"pets":         []any{pet, petRecord("Tom")},
		"favouritePet": pet,
		"nickname":     "JB",
		"address":      record.Record{"city": "Leeds", "lines": []any{"1 Road"}},
	}

	p, err := dto.InflateOne[Person](e, in)
	require.NoError(t, err)

	out, err := e.Deflate(p)
	require.NoError(t, err)

	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestDeflate_ZeroValues(t *testing.T) {
	out, err := newEngine(t).Deflate(&Person{FirstName: "Joe"})
	require.NoError(t, err)

	want := record.Record{
		"firstName":    "Joe",
		"age":          0,
		"pets":         []any{},
		"favouritePet": nil,
	}

	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDeflate_MergeModes(t *testing.T) {
	p := &Person{FirstName: "Joe", Age: 3}
	p.SetUnmapped("firstName", "Old")
	p.SetUnmapped("extra", record.Record{"a": 1})

	t.Run("recursive", func(t *testing.T) {
		out, err := newEngine(t).Deflate(p)
		require.NoError(t, err)

		assert.Equal(t, []any{"Old", "Joe"}, out["firstName"])
		assert.Equal(t, record.Record{"a": 1}, out["extra"])
		assert.Equal(t, 3, out["age"])
	})

	t.Run("overlay", func(t *testing.T) {
		out, err := newEngine(t, dto.WithMergeMode(dto.MergeOverlay)).Deflate(p)
		require.NoError(t, err)

		assert.Equal(t, "Joe", out["firstName"])
		assert.Equal(t, record.Record{"a": 1}, out["extra"])
	})
}

func TestDeflate_OverflowHoldsDTOs(t *testing.T) {
	reg := dto.NewRegistry()
	require.NoError(t, dto.Register[Pet](reg, "Pet"))

	e := dto.New(reg)

	// "pet" is class-mapped but not declared, so the typed value lands in
	// overflow
	require.NoError(t, reg.Define(dto.Definition{
		Name:     "Card",
		ClassMap: map[string]string{"pet": "Pet"},
	}))

	d, err := e.Inflate("Card", record.Record{"pet": record.Record{"name": "Rex"}})
	require.NoError(t, err)

	raw, ok := d.(*dto.Dynamic).Lookup("pet")
	require.True(t, ok)
	require.IsType(t, &Pet{}, raw)
	assert.Equal(t, "Rex", raw.(*Pet).Name)

	out, err := e.Deflate(d)
	require.NoError(t, err)

	want := record.Record{"pet": record.Record{"type": "", "name": "Rex", "foods": []any{}}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDeflate_OmitEmpty(t *testing.T) {
	type Tagged struct {
		dto.Base

		ID    string `json:"id"`
		Note  string `dto:"note,omitempty"`
		Token string `dto:"-"`
	}

	out, err := newEngine(t).Deflate(&Tagged{ID: "1", Token: "secret"})
	require.NoError(t, err)
	assert.Equal(t, record.Record{"id": "1"}, out)

	out, err = newEngine(t).Deflate(&Tagged{ID: "1", Note: "n"})
	require.NoError(t, err)
	assert.Equal(t, record.Record{"id": "1", "note": "n"}, out)
}

func TestDeflate_Nil(t *testing.T) {
	e := newEngine(t)

	_, err := e.Deflate(nil)
	require.ErrorIs(t, err, dto.ErrMalformedInput)

	var p *Person

	_, err = e.Deflate(p)
	require.ErrorIs(t, err, dto.ErrMalformedInput)
}

func TestDeflateMany(t *testing.T) {
	e := newEngine(t)

	out, err := dto.DeflateMany(e, []*Food{{Ingredient: "Beef"}, {Ingredient: "Rice"}})
	require.NoError(t, err)

	assert.Equal(t, []record.Record{{"ingredient": "Beef"}, {"ingredient": "Rice"}}, out)
}

func TestEngine_Get(t *testing.T) {
	e := newEngine(t)

	p, err := dto.InflateOne[Person](e, record.Record{"name": "Joe", "nickname": "JB"})
	require.NoError(t, err)

	v, ok := e.Get(p, "firstName")
	require.True(t, ok)
	assert.Equal(t, "Joe", v)

	v, ok = e.Get(p, "nickname")
	require.True(t, ok)
	assert.Equal(t, "JB", v)

	_, ok = e.Get(p, "missing")
	assert.False(t, ok)
}
