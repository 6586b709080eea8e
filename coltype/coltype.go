// Package coltype is the TypeOps collaborator: per-type comparator lookup,
// min/max sentinels, and the type-category predicates the rest of the
// engine dispatches on. Grounded on the reference engine's tcompare.h /
// tDataTypes table (getComparFunc, getDataMin, getDataMax, IS_VAR_DATA_TYPE).
package coltype

import (
	"bytes"
	"fmt"
)

// Type is a column's scalar data type.
type Type int

const (
	Bool Type = iota
	TinyInt
	SmallInt
	Int
	BigInt
	Float
	Double
	Timestamp
	Binary // variable-length byte string, LIKE/exact-match only
	NChar  // variable-length wide string, LIKE/exact-match only
)

// Value is the decoded, type-width payload of a column cell or literal.
// Numeric and boolean and timestamp types store an int64 or float64;
// variable types store the raw (post-transcode, for NChar) bytes.
type Value struct {
	I   int64
	F   float64
	S   []byte
	Nil bool
}

func Int64(v int64) Value     { return Value{I: v} }
func Float64(v float64) Value { return Value{F: v} }
func Bytes(v []byte) Value    { return Value{S: v} }
func Null() Value             { return Value{Nil: true} }

// IsVariable reports whether t is a variable-length, no-merge type (§4.5).
func IsVariable(t Type) bool {
	return t == Binary || t == NChar
}

// IsNumeric reports whether t participates in numeric (non-boolean,
// non-variable) ordering.
func IsNumeric(t Type) bool {
	switch t {
	case TinyInt, SmallInt, Int, BigInt, Float, Double, Timestamp:
		return true
	default:
		return false
	}
}

func IsBoolean(t Type) bool   { return t == Bool }
func IsTimestamp(t Type) bool { return t == Timestamp }
func IsString(t Type) bool    { return IsVariable(t) }

func isFloat(t Type) bool { return t == Float || t == Double }

// ByteWidth returns the fixed on-wire width of t, or 0 for variable types
// (callers lay those out with a length prefix instead, §3).
func ByteWidth(t Type) int {
	switch t {
	case Bool, TinyInt:
		return 1
	case SmallInt:
		return 2
	case Int, Float:
		return 4
	case BigInt, Double, Timestamp:
		return 8
	default:
		return 0
	}
}

// CompareFunc defines a strict total order over two Values of the same
// Type: negative if a < b, zero if equal, positive if a > b.
type CompareFunc func(a, b Value) int

func compareInt(a, b Value) int {
	switch {
	case a.I < b.I:
		return -1
	case a.I > b.I:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b Value) int {
	switch {
	case a.F < b.F:
		return -1
	case a.F > b.F:
		return 1
	default:
		return 0
	}
}

func compareBytes(a, b Value) int {
	return bytes.Compare(a.S, b.S)
}

// Comparator returns the strict-order comparator for t. Variable types get
// a byte-lexical comparator (used only for exact-match bookkeeping, never
// for range ordering, since variable columns never merge into a RangeCtx).
func Comparator(t Type) (CompareFunc, error) {
	switch {
	case IsVariable(t):
		return compareBytes, nil
	case isFloat(t):
		return compareFloat, nil
	default:
		return compareInt, nil
	}
}

// MinValue returns the type's minimum representable sentinel, used by
// RangeCtx.AddRange to substitute for an unbounded-below (NULL-flagged)
// endpoint (§4.1).
func MinValue(t Type) (Value, error) {
	switch t {
	case Bool:
		return Int64(0), nil
	case TinyInt:
		return Int64(-128), nil
	case SmallInt:
		return Int64(-32768), nil
	case Int:
		return Int64(-2147483648), nil
	case BigInt, Timestamp:
		return Int64(-9223372036854775808), nil
	case Float, Double:
		return Float64(-1.7976931348623157e+308), nil
	default:
		return Value{}, fmt.Errorf("coltype: no range type %d", t)
	}
}

// MaxValue returns the type's maximum representable sentinel.
func MaxValue(t Type) (Value, error) {
	switch t {
	case Bool:
		return Int64(1), nil
	case TinyInt:
		return Int64(127), nil
	case SmallInt:
		return Int64(32767), nil
	case Int:
		return Int64(2147483647), nil
	case BigInt, Timestamp:
		return Int64(9223372036854775807), nil
	case Float, Double:
		return Float64(1.7976931348623157e+308), nil
	default:
		return Value{}, fmt.Errorf("coltype: no range type %d", t)
	}
}

// SupportsRange reports whether t can back a RangeCtx at all (§4.1's
// filterInitRangeCtx type-bound check: booleans through doubles and
// timestamps, never the variable string types).
func SupportsRange(t Type) bool {
	return !IsVariable(t)
}
