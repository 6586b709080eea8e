package filter

import (
	"encoding/binary"
	"math"

	"github.com/freeeve/tscolfilter/coltype"
)

// FieldKind tags which Field variant a payload belongs to.
type FieldKind byte

const (
	FieldColumn FieldKind = iota
	FieldValue
	FieldValueSet
)

// Field is the sum type replacing the reference engine's void-pointer
// desc/data field payloads (Design Notes §9). Every concrete field type
// implements hashPayload so the interner can key on (kind, payload bytes)
// per spec.md §3.
type Field interface {
	Kind() FieldKind
	hashPayload() []byte
}

// ColumnField addresses a schema column, grounded on predicate.ColumnRef.
type ColumnField struct {
	ID   int32
	Type coltype.Type
}

func (f *ColumnField) Kind() FieldKind { return FieldColumn }

func (f *ColumnField) hashPayload() []byte {
	var b [8]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(f.ID))
	binary.LittleEndian.PutUint32(b[4:8], uint32(f.Type))
	return b[:]
}

// ValueField is a single decoded literal materialized to the comparand's
// type and byte width (§4.3 "value-field materialization").
type ValueField struct {
	Type coltype.Type
	Raw  coltype.Value
}

func (f *ValueField) Kind() FieldKind { return FieldValue }

func (f *ValueField) hashPayload() []byte {
	return valuePayload(f.Type, f.Raw)
}

// ValueSetField is the sorted set of literals an IN predicate carries,
// grounded on spec.md §3 "a sorted set of values (for IN)". buildIn
// materializes and interns one of these per IN clause as the canonical
// record of the clause before distributing it into one EQ unit per value;
// no Unit ever references it as an operand (IN itself never reaches the
// Executor as a single comparison), but Dump walks Info.Fields and prints
// it alongside the per-value units it produced.
type ValueSetField struct {
	Type   coltype.Type
	Values []coltype.Value
}

func (f *ValueSetField) Kind() FieldKind { return FieldValueSet }

func (f *ValueSetField) hashPayload() []byte {
	var out []byte
	for _, v := range f.Values {
		out = append(out, valuePayload(f.Type, v)...)
	}
	return out
}

func valuePayload(t coltype.Type, v coltype.Value) []byte {
	if v.Nil {
		return []byte{0xff}
	}
	if coltype.IsVariable(t) {
		return append([]byte{0x01}, v.S...)
	}
	if t == coltype.Float || t == coltype.Double {
		var b [9]byte
		b[0] = 0x02
		binary.LittleEndian.PutUint64(b[1:], math.Float64bits(v.F))
		return b[:]
	}
	var b [9]byte
	b[0] = 0x03
	binary.LittleEndian.PutUint64(b[1:], uint64(v.I))
	return b[:]
}
