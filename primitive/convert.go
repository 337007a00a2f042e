package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"dto-inflator/options"
	"dto-inflator/utils"
)

// ErrNotConvertible is returned when a value cannot be turned into the
// requested type, or only through a category that is not allowed.
var ErrNotConvertible = errors.New("not convertible")

const (
	twoPow63 = float64(1 << 63)
	twoPow64 = twoPow63 * 2
)

// Convert returns v as a value of type to. Values already assignable to
// to are returned unchanged; scalar values are converted when the
// conversion belongs to one of the allowed categories.
func Convert(v any, to reflect.Type, allowed options.CategoryEnum) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(to), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(to) {
		return rv, nil
	}

	from, dst := Underlying(rv.Type()), Underlying(to)
	if from == 0 || dst == 0 {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotConvertible, rv.Type(), to)
	}

	out := reflect.New(to).Elem()

	cat, err := convertScalar(rv, from, out, dst)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s: %w", ErrNotConvertible, rv.Type(), to, err)
	}

	if cat != options.CategoryNone && !allowed.Has(cat) {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s requires %s", ErrNotConvertible, rv.Type(), to, cat)
	}

	return out, nil
}

func convertScalar(rv reflect.Value, from KindEnum, out reflect.Value, to KindEnum) (options.CategoryEnum, error) {
	switch {
	case from == KindTime || to == KindTime:
		return convertTime(rv, from, out, to)
	case from == KindDuration || to == KindDuration:
		return convertDuration(rv, from, out, to)
	case from.IsNumber() && to.IsNumber():
		return convertNumber(rv, from, out, to)
	case from == KindString && to == KindString:
		out.SetString(rv.String())
		return options.CategoryEnumString, nil
	case from == KindBool && to == KindBool:
		out.SetBool(rv.Bool())
		return options.CategoryNone, nil
	case from == KindString && to.IsNumber():
		return parseNumber(rv.String(), out, to)
	case from.IsNumber() && to == KindString:
		out.SetString(formatNumber(rv, from))
		return options.CategoryTextNumber, nil
	case from == KindBool && to.IsNumber():
		n := 0
		if rv.Bool() {
			n = 1
		}

		if _, err := convertNumber(reflect.ValueOf(n), KindInt, out, to); err != nil {
			return options.CategoryNone, err
		}

		return options.CategoryNumericBool, nil
	case from.IsNumber() && to == KindBool:
		f := numberAsFloat(rv, from)
		if f != 0 && f != 1 {
			return options.CategoryNone, fmt.Errorf("%v is neither 0 nor 1", rv.Interface())
		}

		out.SetBool(f == 1)

		return options.CategoryNumericBool, nil
	case from == KindString && to == KindBool:
		b, err := parseBool(rv.String())
		if err != nil {
			return options.CategoryNone, err
		}

		out.SetBool(b)

		return options.CategoryTextualBool, nil
	case from == KindBool && to == KindString:
		out.SetString(strconv.FormatBool(rv.Bool()))
		return options.CategoryTextualBool, nil
	default:
		return options.CategoryNone, fmt.Errorf("no conversion from %s to %s", from, to)
	}
}

// convertNumber converts between numeric kinds. The category is
// CategorySafeNumber when the value survives unchanged.
func convertNumber(rv reflect.Value, from KindEnum, out reflect.Value, to KindEnum) (options.CategoryEnum, error) {
	exact := true

	switch {
	case from.IsSigned():
		i := rv.Int()

		switch {
		case to.IsSigned():
			exact = !out.OverflowInt(i)
			out.SetInt(i)
		case to.IsUnsigned():
			exact = i >= 0 && !out.OverflowUint(uint64(i))
			out.SetUint(uint64(i))
		default:
			f := float64(i)
			exact = utils.IsInOpenRange(-twoPow63, f, twoPow63) && int64(f) == i && floatFits(out, f)
			out.SetFloat(f)
		}
	case from.IsUnsigned():
		u := rv.Uint()

		switch {
		case to.IsSigned():
			exact = u <= math.MaxInt64 && !out.OverflowInt(int64(u))
			out.SetInt(int64(u))
		case to.IsUnsigned():
			exact = !out.OverflowUint(u)
			out.SetUint(u)
		default:
			f := float64(u)
			exact = f < twoPow64 && uint64(f) == u && floatFits(out, f)
			out.SetFloat(f)
		}
	default:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			if !to.IsFloat() {
				return options.CategoryNone, fmt.Errorf("%v has no integer value", f)
			}
		}

		switch {
		case to.IsSigned():
			exact = utils.IsWhole(f) && utils.IsInOpenRange(-twoPow63, f, twoPow63) && !out.OverflowInt(int64(f))
			out.SetInt(int64(f))
		case to.IsUnsigned():
			exact = utils.IsWhole(f) && utils.IsInOpenRange(0, f, twoPow64) && !out.OverflowUint(uint64(f))
			out.SetUint(uint64(f))
		default:
			exact = floatFits(out, f)
			out.SetFloat(f)
		}
	}

	if exact {
		return options.CategorySafeNumber, nil
	}

	return options.CategoryUnsafeNumber, nil
}

func floatFits(out reflect.Value, f float64) bool {
	if out.Kind() == reflect.Float32 {
		return !out.OverflowFloat(f) && float64(float32(f)) == f
	}

	return true
}

func numberAsFloat(rv reflect.Value, k KindEnum) float64 {
	switch {
	case k.IsSigned():
		return float64(rv.Int())
	case k.IsUnsigned():
		return float64(rv.Uint())
	default:
		return rv.Float()
	}
}

func formatNumber(rv reflect.Value, k KindEnum) string {
	switch {
	case k.IsSigned():
		return strconv.FormatInt(rv.Int(), 10)
	case k.IsUnsigned():
		return strconv.FormatUint(rv.Uint(), 10)
	default:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	}
}

// parseNumber parses s into out. A value that only fits with truncation
// also needs CategoryUnsafeNumber.
func parseNumber(s string, out reflect.Value, to KindEnum) (options.CategoryEnum, error) {
	s = strings.TrimSpace(s)

	var (
		parsed any
		kind   KindEnum
	)

	switch {
	case to.IsSigned():
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return options.CategoryNone, err
		}

		parsed, kind = i, KindInt64
	case to.IsUnsigned():
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return options.CategoryNone, err
		}

		parsed, kind = u, KindUint64
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return options.CategoryNone, err
		}

		parsed, kind = f, KindFloat64
	}

	cat, err := convertNumber(reflect.ValueOf(parsed), kind, out, to)
	if err != nil {
		return options.CategoryNone, err
	}

	if cat == options.CategoryUnsafeNumber {
		return options.CategoryTextNumber | options.CategoryUnsafeNumber, nil
	}

	return options.CategoryTextNumber, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean", s)
	}
}

func convertTime(rv reflect.Value, from KindEnum, out reflect.Value, to KindEnum) (options.CategoryEnum, error) {
	switch {
	case from == KindString && to == KindTime:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(rv.String()))
		if err != nil {
			return options.CategoryNone, err
		}

		out.Set(reflect.ValueOf(t))

		return options.CategoryDatetime, nil
	case from == KindTime && to == KindString:
		out.SetString(rv.Interface().(time.Time).Format(time.RFC3339Nano))
		return options.CategoryDatetime, nil
	case from.IsNumber() && to == KindTime:
		f := numberAsFloat(rv, from)
		sec, frac := math.Modf(f)
		out.Set(reflect.ValueOf(time.Unix(int64(sec), int64(frac*1e9)).UTC()))

		return options.CategoryTimestamp, nil
	case from == KindTime && to.IsNumber():
		unix := rv.Interface().(time.Time).Unix()
		if _, err := convertNumber(reflect.ValueOf(unix), KindInt64, out, to); err != nil {
			return options.CategoryNone, err
		}

		return options.CategoryTimestamp, nil
	default:
		return options.CategoryNone, fmt.Errorf("no conversion from %s to %s", from, to)
	}
}

func convertDuration(rv reflect.Value, from KindEnum, out reflect.Value, to KindEnum) (options.CategoryEnum, error) {
	switch {
	case from == KindString && to == KindDuration:
		d, err := time.ParseDuration(strings.TrimSpace(rv.String()))
		if err != nil {
			return options.CategoryNone, err
		}

		out.SetInt(int64(d))

		return options.CategoryDuration, nil
	case from == KindDuration && to == KindString:
		out.SetString(time.Duration(rv.Int()).String())
		return options.CategoryDuration, nil
	case from.IsInteger() && to == KindDuration:
		if from.IsSigned() {
			out.SetInt(rv.Int())
		} else {
			out.SetInt(int64(rv.Uint()))
		}

		return options.CategoryNanoseconds, nil
	case from.IsFloat() && to == KindDuration:
		out.SetInt(int64(rv.Float() * float64(time.Second)))
		return options.CategorySeconds, nil
	case from == KindDuration && to.IsInteger():
		if _, err := convertNumber(reflect.ValueOf(rv.Int()), KindInt64, out, to); err != nil {
			return options.CategoryNone, err
		}

		return options.CategoryNanoseconds, nil
	case from == KindDuration && to.IsFloat():
		out.SetFloat(time.Duration(rv.Int()).Seconds())
		return options.CategorySeconds, nil
	default:
		return options.CategoryNone, fmt.Errorf("no conversion from %s to %s", from, to)
	}
}
