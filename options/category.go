package options

import "strings"

// CategoryEnum is a bit set of scalar coercions the engine may apply when a
// record value does not already have the type of the attribute it lands in.
type CategoryEnum int

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float when the value survives unchanged (30.0 -> 30)
	CategoryUnsafeNumber                          // int, uint, float with truncation or overflow (30.7 -> 30)
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration: numerical (integer) duration representation
	CategorySeconds                               // float(seconds) <-> time.Duration: numerical (floating-point) duration representation
	CategoryEnumString                            // string <-> named string type
	CategorySafeArray                             // list -> array: list fits into the array
	CategoryUnsafeArray                           // list -> array: list is cut to the array length

	CategoryAll  CategoryEnum = (1 << iota) - 1 //all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected

	// CategoryDefault covers what decoded JSON/YAML needs to fill ordinary
	// Go structs: float64 numbers into integer fields, strings into enums.
	CategoryDefault = CategorySafeNumber | CategoryEnumString | CategorySafeArray
)

var categoryNames = []struct {
	cat  CategoryEnum
	name string
}{
	{CategorySafeNumber, "safe-number"},
	{CategoryUnsafeNumber, "unsafe-number"},
	{CategoryTextNumber, "text-number"},
	{CategoryNumericBool, "numeric-bool"},
	{CategoryTextualBool, "textual-bool"},
	{CategoryDatetime, "datetime"},
	{CategoryTimestamp, "timestamp"},
	{CategoryDuration, "duration"},
	{CategoryNanoseconds, "nanoseconds"},
	{CategorySeconds, "seconds"},
	{CategoryEnumString, "enum-string"},
	{CategorySafeArray, "safe-array"},
	{CategoryUnsafeArray, "unsafe-array"},
}

// Has reports whether every bit of c is set in e.
func (e CategoryEnum) Has(c CategoryEnum) bool {
	return c != CategoryNone && e&c == c
}

// String lists the set categories joined with "|".
func (e CategoryEnum) String() string {
	if e == CategoryNone {
		return "none"
	}

	var parts []string

	for _, cn := range categoryNames {
		if e.Has(cn.cat) {
			parts = append(parts, cn.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseCategories parses names as produced by String, separated by "|" or
// ",". "all", "none" and "default" are accepted as well.
func ParseCategories(s string) (CategoryEnum, bool) {
	var out CategoryEnum

	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		switch part = strings.TrimSpace(part); part {
		case "all":
			out |= CategoryAll
			continue
		case "none":
			continue
		case "default":
			out |= CategoryDefault
			continue
		}

		found := false

		for _, cn := range categoryNames {
			if cn.name == part {
				out |= cn.cat
				found = true

				break
			}
		}

		if !found {
			return CategoryNone, false
		}
	}

	return out, true
}
