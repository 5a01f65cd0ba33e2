package value_test

import (
	"fmt"

	"github.com/katalvlaran/flowmine/value"
)

func ExampleValue_AsString() {
	fmt.Println(value.Int(42).AsString())
	fmt.Println(value.Real(3.5).AsString())
	fmt.Println(value.Bool(true).AsString())
	fmt.Println(value.Str("eu").AsString())
	fmt.Println(value.Missing().AsString())
	// Output:
	// 42
	// 3.5
	// true
	// eu
	//
}

func ExampleValue_Equal() {
	fmt.Println(value.Int(1).Equal(value.Int(1)))
	fmt.Println(value.Int(1).Equal(value.Real(1)))
	fmt.Println(value.Missing().Equal(value.Missing()))
	// Output:
	// true
	// false
	// true
}

func ExampleValue_Less() {
	_, ok := value.Str("a").Less(value.Str("b"))
	fmt.Println(ok)
	less, ok := value.Int(1).Less(value.Real(2.0))
	fmt.Println(less, ok)
	// Output:
	// false
	// true true
}
