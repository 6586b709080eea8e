package filter

import (
	"fmt"
	"reflect"

	"github.com/freeeve/tscolfilter/predicate"
)

// Unit is one leaf comparison: Left is always a column field id, Right is a
// value field id (or -1 for IS NULL/IS NOT NULL). Grounded on SFilterUnit.
type Unit struct {
	Op    predicate.Operator
	Left  int32
	Right int32
}

// Group is an AND of unit indices, grounded on SFilterGroup.
type Group struct {
	Units []int32
}

// Info is FilterInfo: interned fields, interned units, the groups vector
// (OR'd together), and the status bitmap.
type Info struct {
	Fields []Field
	Units  []Unit
	Groups []Group

	Options Options
	Status  Status

	interner *interner
}

func newInfo(opts Options) *Info {
	return &Info{Options: opts, interner: newInterner()}
}

func (info *Info) IsEmpty() bool       { return info.Status&StatusEmpty != 0 }
func (info *Info) IsAll() bool         { return info.Status&StatusAll != 0 }
func (info *Info) NeedsRewrite() bool  { return info.Status&StatusRewriteNeeded != 0 }

// addField interns f and returns its field id. Column fields are always
// interned; value fields only when NeedUnique is set.
func (info *Info) addField(f Field) int32 {
	if !info.Options.has(NeedUnique) && f.Kind() != FieldColumn {
		info.Fields = append(info.Fields, f)
		return int32(len(info.Fields) - 1)
	}
	h := fieldHash(f)
	for _, idx := range info.interner.fieldBuckets[h] {
		if reflect.DeepEqual(info.Fields[idx], f) {
			return idx
		}
	}
	info.Fields = append(info.Fields, f)
	idx := int32(len(info.Fields) - 1)
	info.interner.fieldBuckets[h] = append(info.interner.fieldBuckets[h], idx)
	return idx
}

// addUnit interns (op, left, right) and returns its unit id.
func (info *Info) addUnit(op predicate.Operator, left, right int32) int32 {
	if info.Options.has(NeedUnique) {
		h := unitHash(byte(op), left, right)
		for _, idx := range info.interner.unitBuckets[h] {
			u := info.Units[idx]
			if u.Op == op && u.Left == left && u.Right == right {
				return idx
			}
		}
		info.Units = append(info.Units, Unit{Op: op, Left: left, Right: right})
		idx := int32(len(info.Units) - 1)
		info.interner.unitBuckets[h] = append(info.interner.unitBuckets[h], idx)
		return idx
	}
	info.Units = append(info.Units, Unit{Op: op, Left: left, Right: right})
	return int32(len(info.Units) - 1)
}

func (info *Info) column(u Unit) *ColumnField {
	return info.Fields[u.Left].(*ColumnField)
}

func (info *Info) value(u Unit) *ValueField {
	if u.Right < 0 {
		return nil
	}
	return info.Fields[u.Right].(*ValueField)
}

// Dump renders a human-readable field/group/unit listing, grounded on
// filterDumpInfoToString — useful for tests and debugging, never called
// from the hot execution path.
func (info *Info) Dump() string {
	out := ""
	for fi, f := range info.Fields {
		if vs, ok := f.(*ValueSetField); ok {
			out += fmt.Sprintf("field%d: IN-set(%d values)\n", fi, len(vs.Values))
		}
	}
	for gi, g := range info.Groups {
		if gi > 0 {
			out += " OR "
		}
		out += "("
		for ui, idx := range g.Units {
			if ui > 0 {
				out += " AND "
			}
			u := info.Units[idx]
			col := info.column(u)
			out += fmt.Sprintf("col%d %s", col.ID, u.Op.String())
		}
		out += ")"
	}
	return out
}
