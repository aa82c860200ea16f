package codegen

import (
	"strconv"
	"testing"
)

func TestNumeric_Generate(t *testing.T) {
	gen := NewNumeric()

	for range 200 {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if len(code) != 6 {
			t.Fatalf("Generate() = %q, want exactly six digits", code)
		}

		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("Generate() = %q is not numeric: %v", code, err)
		}

		if n < 100000 || n > 999999 {
			t.Fatalf("Generate() = %d, want within [100000, 999999]", n)
		}
	}
}
