package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPositional(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"0", true},
		{"7", true},
		{"42", true},
		{"-3", true},
		{"", false},
		{"-", false},
		{"-0", false},
		{"007", false},
		{"1.5", false},
		{" 1", false},
		{"1e3", false},
		{"name", false},
		{"99999999999999999999", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPositional(tt.key))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindRecord, KindOf(Record{}))
	assert.Equal(t, KindRecord, KindOf(map[string]any{}))
	assert.Equal(t, KindList, KindOf([]any{}))
	assert.Equal(t, KindScalar, KindOf("x"))
	assert.Equal(t, KindScalar, KindOf(nil))
	assert.Equal(t, KindScalar, KindOf([]string{"a"}))
}

func TestClone(t *testing.T) {
	orig := Record{
		"name": "Rex",
		"foods": []any{
			map[string]any{"ingredient": "Beef"},
		},
	}

	cp := orig.Clone()
	cp["foods"].([]any)[0].(Record)["ingredient"] = "Fish"

	assert.Equal(t, "Beef", orig["foods"].([]any)[0].(map[string]any)["ingredient"])
	assert.Nil(t, Record(nil).Clone())
}
