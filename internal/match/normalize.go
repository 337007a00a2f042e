package match

import (
	"strings"
	"unicode"
)

// NormalizeKey folds a record key or type name for fuzzy comparison:
// CamelCase is split, everything is lower-cased and separators
// (_ - . space and namespace backslashes) are dropped.
//
//	NormalizeKey("firstName")        == "firstname"
//	NormalizeKey("first_name")       == "firstname"
//	NormalizeKey(`\App\Dto\PetDto`)  == "appdtopetdto"
func NormalizeKey(s string) string {
	return strings.Join(Tokens(s), "")
}

// Tokens splits a key into lower-case words.
//
//	Tokens("favouritePet")  -> ["favourite", "pet"]
//	Tokens("XMLParser")     -> ["xml", "parser"]
//	Tokens("short_key-map") -> ["short", "key", "map"]
func Tokens(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '.', ' ', '\\', '/':
		return true
	default:
		return false
	}
}

// startsWord reports whether runes[i] begins a new CamelCase word: a lower
// to upper transition, or the last capital of an acronym followed by a
// lower-case letter ("XMLParser" splits before 'P').
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
