package primitive_test

import (
	"fmt"
	"reflect"
	"time"

	"dto-inflator/primitive"
)

func Example() {
	type IntEnum int
	type StringEnum string
	type Ratio float64
	type Empty struct{}

	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf("")))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(IntEnum(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(StringEnum(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(Empty{})))
	fmt.Println(primitive.Underlying(reflect.TypeOf(Ratio(0))))
	// Output:
	// KindInt
	// KindString
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindDuration
	// KindTime
	// KindEnum(0)
	// KindFloat64
}

func ExampleIsScalar() {
	fmt.Println(primitive.IsScalar(reflect.TypeOf(3.5)))
	fmt.Println(primitive.IsScalar(reflect.TypeOf([]byte("raw"))))
	fmt.Println(primitive.IsScalar(reflect.TypeOf([]string{})))
	fmt.Println(primitive.IsScalar(reflect.TypeOf(map[string]any{})))
	// Output:
	// true
	// true
	// false
	// false
}
