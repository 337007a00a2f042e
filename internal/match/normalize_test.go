package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"firstName", "firstname"},
		{"first_name", "firstname"},
		{"first-name", "firstname"},
		{"FirstName", "firstname"},
		{"FIRST_NAME", "firstname"},
		{"favourite.pet", "favouritepet"},
		{`\App\Dto\PetDto`, "appdtopetdto"},
		{"XMLParser", "xmlparser"},
		{"", ""},
		{"a", "a"},
		{"ID", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKey(tt.input))
		})
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"favouritePet", []string{"favourite", "pet"}},
		{"XMLParser", []string{"xml", "parser"}},
		{"getHTTPResponse", []string{"get", "http", "response"}},
		{"short_key-map", []string{"short", "key", "map"}},
		{"OrderID", []string{"order", "id"}},
		{`App\Pet`, []string{"app", "pet"}},
		{"__", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokens(tt.input))
		})
	}
}
