package coltype

import "testing"

func TestComparatorOrdering(t *testing.T) {
	cases := []struct {
		name string
		typ  Type
		a, b Value
		want int
	}{
		{"int less", Int, Int64(1), Int64(2), -1},
		{"int equal", BigInt, Int64(5), Int64(5), 0},
		{"float greater", Double, Float64(3.5), Float64(1.2), 1},
		{"bytes lexical", Binary, Bytes([]byte("abc")), Bytes([]byte("abd")), -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cmp, err := Comparator(c.typ)
			if err != nil {
				t.Fatalf("Comparator: %v", err)
			}
			got := cmp(c.a, c.b)
			if (got < 0) != (c.want < 0) || (got > 0) != (c.want > 0) || (got == 0) != (c.want == 0) {
				t.Fatalf("cmp(%v,%v) = %d, want sign of %d", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestMinMaxSentinels(t *testing.T) {
	for _, typ := range []Type{Bool, TinyInt, SmallInt, Int, BigInt, Float, Double, Timestamp} {
		min, err := MinValue(typ)
		if err != nil {
			t.Fatalf("MinValue(%d): %v", typ, err)
		}
		max, err := MaxValue(typ)
		if err != nil {
			t.Fatalf("MaxValue(%d): %v", typ, err)
		}
		cmp, _ := Comparator(typ)
		if cmp(min, max) >= 0 {
			t.Fatalf("type %d: min %v not less than max %v", typ, min, max)
		}
	}
}

func TestSupportsRange(t *testing.T) {
	if SupportsRange(Binary) || SupportsRange(NChar) {
		t.Fatal("variable types must not support range folding")
	}
	if !SupportsRange(Int) || !SupportsRange(Timestamp) {
		t.Fatal("scalar types must support range folding")
	}
}

func TestCategoryPredicates(t *testing.T) {
	if !IsNumeric(Timestamp) || IsNumeric(Bool) {
		t.Fatal("timestamp is numeric, bool is not")
	}
	if !IsBoolean(Bool) || IsBoolean(Int) {
		t.Fatal("IsBoolean mismatched")
	}
	if !IsString(NChar) || IsString(Int) {
		t.Fatal("IsString mismatched")
	}
}
