package filter

import (
	"sync"

	"github.com/freeeve/tscolfilter/coltype"
	"github.com/freeeve/tscolfilter/predicate"
)

// ColumnData binds one column's batch of row values for the Executor (§6
// "bind_column_data"). The caller owns the backing storage; this module
// only reads through the interface.
type ColumnData interface {
	IsNull(row int) bool
	Value(row int) coltype.Value
}

// ExecScratch is the per-unit memoization scratch a single execution pass
// needs: which units have already been evaluated this row, and what they
// evaluated to. Grounded on spec.md §5 "each thread passes its own per-unit
// computed/result scratch arrays", pooled the same way as the teacher pools
// parser instances (ast/pool.go), see SPEC_FULL.md §4.
type ExecScratch struct {
	computedRow []int32
	result      []bool
	row         int32
}

var scratchPool = sync.Pool{New: func() any { return &ExecScratch{} }}

// GetScratch returns a pooled scratch sized for numUnits. Callers own it
// exclusively until PutScratch; never share one across goroutines.
func GetScratch(numUnits int) *ExecScratch {
	s := scratchPool.Get().(*ExecScratch)
	if cap(s.computedRow) < numUnits {
		s.computedRow = make([]int32, numUnits)
		s.result = make([]bool, numUnits)
	} else {
		s.computedRow = s.computedRow[:numUnits]
		s.result = s.result[:numUnits]
	}
	for i := range s.computedRow {
		s.computedRow[i] = -1
	}
	s.row = -1
	return s
}

// PutScratch returns s to the pool.
func PutScratch(s *ExecScratch) {
	if s == nil {
		return
	}
	scratchPool.Put(s)
}

// Execute evaluates every row of numRows against info's (rewritten) groups,
// returning a per-row boolean mask. Grounded on filterExecute/
// filterSetColFieldData/filterDoCompare: groups are OR'd with short-circuit
// to true, units within a group are AND'd with short-circuit to false, and
// repeated references to the same interned unit across groups reuse the
// row's memoized result instead of recomputing.
func Execute(info *Info, cols map[int32]ColumnData, numRows int, scratch *ExecScratch) ([]bool, error) {
	if info.IsEmpty() {
		return make([]bool, numRows), nil
	}
	mask := make([]bool, numRows)
	if info.IsAll() {
		for i := range mask {
			mask[i] = true
		}
		return mask, nil
	}

	for row := 0; row < numRows; row++ {
		scratch.row = int32(row)
		rowTrue := false
		for _, g := range info.Groups {
			groupTrue := true
			for _, uidx := range g.Units {
				v, err := evalUnit(info, cols, scratch, row, uidx)
				if err != nil {
					return nil, err
				}
				if !v {
					groupTrue = false
					break
				}
			}
			if groupTrue {
				rowTrue = true
				break
			}
		}
		mask[row] = rowTrue
	}
	return mask, nil
}

func evalUnit(info *Info, cols map[int32]ColumnData, scratch *ExecScratch, row int, uidx int32) (bool, error) {
	if scratch.computedRow[uidx] == int32(row) {
		return scratch.result[uidx], nil
	}

	u := info.Units[uidx]
	col := info.column(u)
	data, ok := cols[col.ID]
	if !ok {
		return false, errf(AppError, "no column data bound for column %d", col.ID)
	}

	isNull := data.IsNull(row)
	var v bool
	switch u.Op {
	case predicate.ISNULL:
		v = isNull
	case predicate.NOTNULL:
		v = !isNull
	default:
		if isNull {
			v = false
		} else {
			val := info.value(u)
			cmp, err := coltype.Comparator(col.Type)
			if err != nil {
				return false, err
			}
			v = compareOp(u.Op, cmp(data.Value(row), val.Raw))
			if u.Op == predicate.LIKE {
				v = likeMatch(data.Value(row), val.Raw)
			}
		}
	}

	scratch.computedRow[uidx] = int32(row)
	scratch.result[uidx] = v
	return v, nil
}

func compareOp(op predicate.Operator, cr int) bool {
	switch op {
	case predicate.LT:
		return cr < 0
	case predicate.LE:
		return cr <= 0
	case predicate.EQ:
		return cr == 0
	case predicate.NE:
		return cr != 0
	case predicate.GE:
		return cr >= 0
	case predicate.GT:
		return cr > 0
	default:
		return false
	}
}

// likeMatch implements the subset of SQL LIKE spec.md §3 requires: `%` as a
// multi-character wildcard, `_` as a single-character wildcard, no escape
// character support (out of scope: SQL escape-clause parsing belongs to the
// external parser collaborator).
func likeMatch(value, pattern coltype.Value) bool {
	return likeMatchBytes(value.S, pattern.S)
}

func likeMatchBytes(s, p []byte) bool {
	if len(p) == 0 {
		return len(s) == 0
	}
	switch p[0] {
	case '%':
		for i := 0; i <= len(s); i++ {
			if likeMatchBytes(s[i:], p[1:]) {
				return true
			}
		}
		return false
	case '_':
		if len(s) == 0 {
			return false
		}
		return likeMatchBytes(s[1:], p[1:])
	default:
		if len(s) == 0 || s[0] != p[0] {
			return false
		}
		return likeMatchBytes(s[1:], p[1:])
	}
}
