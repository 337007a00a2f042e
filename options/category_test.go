package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "none", CategoryNone.String())
	assert.Equal(t, "safe-number|enum-string|safe-array", CategoryDefault.String())
	assert.Equal(t, "text-number|datetime", (CategoryTextNumber | CategoryDatetime).String())
}

func TestParseCategories(t *testing.T) {
	tests := []struct {
		input string
		want  CategoryEnum
		ok    bool
	}{
		{"", CategoryNone, true},
		{"none", CategoryNone, true},
		{"all", CategoryAll, true},
		{"default", CategoryDefault, true},
		{"safe-number|text-number", CategorySafeNumber | CategoryTextNumber, true},
		{"default, seconds", CategoryDefault | CategorySeconds, true},
		{"bogus", CategoryNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCategories(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryHas(t *testing.T) {
	assert.True(t, CategoryAll.Has(CategoryUnsafeArray))
	assert.True(t, CategoryDefault.Has(CategorySafeNumber|CategorySafeArray))
	assert.False(t, CategoryDefault.Has(CategoryUnsafeNumber))
	assert.False(t, CategoryAll.Has(CategoryNone))
}
