package value_test

import (
	"testing"

	"github.com/katalvlaran/flowmine/value"
)

func BenchmarkValue_Equal(b *testing.B) {
	x := value.Real(42.0)
	y := value.Real(42.0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.Equal(y)
	}
}

func BenchmarkValue_AsString(b *testing.B) {
	v := value.Real(3.14159)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.AsString()
	}
}
