package tscolfilter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freeeve/tscolfilter"
	"github.com/freeeve/tscolfilter/coltype"
	"github.com/freeeve/tscolfilter/filter"
)

type intColumn struct {
	vals  []int64
	nulls []bool
}

func (c *intColumn) IsNull(row int) bool          { return c.nulls != nil && c.nulls[row] }
func (c *intColumn) Value(row int) coltype.Value  { return coltype.Int64(c.vals[row]) }

func colRef(id int32) *tscolfilter.ColumnRef {
	return &tscolfilter.ColumnRef{ID: id, Type: tscolfilter.Int}
}

func lit(v int64) *tscolfilter.Literal {
	return &tscolfilter.Literal{Raw: coltype.Int64(v)}
}

func cmp(op tscolfilter.Operator, col *tscolfilter.ColumnRef, v int64) *tscolfilter.BinaryExpr {
	return &tscolfilter.BinaryExpr{Op: op, Left: col, Right: lit(v)}
}

func and(l, r tscolfilter.Node) *tscolfilter.BinaryExpr {
	return &tscolfilter.BinaryExpr{Op: tscolfilter.AND, Left: l, Right: r}
}

func or(l, r tscolfilter.Node) *tscolfilter.BinaryExpr {
	return &tscolfilter.BinaryExpr{Op: tscolfilter.OR, Left: l, Right: r}
}

func runMask(t *testing.T, info *tscolfilter.Info, colID int32, vals []int64, nulls []bool) []bool {
	t.Helper()
	cols := map[int32]tscolfilter.ColumnData{colID: &intColumn{vals: vals, nulls: nulls}}
	mask, err := tscolfilter.Execute(info, cols, len(vals))
	require.NoError(t, err)
	return mask
}

func TestSimpleAndOnOneColumn(t *testing.T) {
	a := colRef(1)
	tree := and(cmp(tscolfilter.GT, a, 10), cmp(tscolfilter.LT, a, 20))

	info, err := tscolfilter.Build(tree, tscolfilter.NeedUnique)
	require.NoError(t, err)

	mask := runMask(t, info, 1, []int64{5, 10, 15, 20, 25}, nil)
	require.Equal(t, []bool{false, false, true, false, false}, mask)
}

func TestRangeFusionOnOr(t *testing.T) {
	a := colRef(1)
	left := and(cmp(tscolfilter.GE, a, 1), cmp(tscolfilter.LE, a, 5))
	right := and(cmp(tscolfilter.GE, a, 3), cmp(tscolfilter.LE, a, 8))
	tree := or(left, right)

	info, err := tscolfilter.Build(tree, tscolfilter.NeedUnique)
	require.NoError(t, err)
	require.Len(t, info.Groups, 1, "fused OR ranges collapse to one group")

	mask := runMask(t, info, 1, []int64{0, 3, 8, 9}, nil)
	require.Equal(t, []bool{false, true, true, false}, mask)
}

func TestInDistribution(t *testing.T) {
	a, b := colRef(1), colRef(2)
	inExpr := &tscolfilter.InExpr{
		Column: a,
		Values: []*tscolfilter.Literal{lit(1), lit(2), lit(3)},
	}
	tree := &tscolfilter.BinaryExpr{Op: tscolfilter.AND, Left: inExpr, Right: cmp(tscolfilter.GT, b, 0)}

	info, err := tscolfilter.Build(tree, tscolfilter.NeedUnique)
	require.NoError(t, err)
	require.Len(t, info.Groups, 3, "IN(1,2,3) distributes into three OR groups")

	cols := map[int32]tscolfilter.ColumnData{
		1: &intColumn{vals: []int64{2, 4}},
		2: &intColumn{vals: []int64{1, 1}},
	}
	mask, err := tscolfilter.Execute(info, cols, 2)
	require.NoError(t, err)
	require.Equal(t, []bool{true, false}, mask)
}

func TestNullSemantics(t *testing.T) {
	a := colRef(1)
	tree := or(&tscolfilter.IsExpr{Column: a}, cmp(tscolfilter.GT, a, 5))

	info, err := tscolfilter.Build(tree, tscolfilter.NeedUnique)
	require.NoError(t, err)

	mask := runMask(t, info, 1, []int64{0, 3, 7}, []bool{true, false, false})
	require.Equal(t, []bool{true, false, true}, mask)
}

func TestTimestampAdjacency(t *testing.T) {
	ts := &tscolfilter.ColumnRef{ID: 9, Type: tscolfilter.Timestamp}
	left := and(cmp(tscolfilter.GE, ts, 100), cmp(tscolfilter.LE, ts, 200))
	right := and(cmp(tscolfilter.GE, ts, 201), cmp(tscolfilter.LE, ts, 300))
	tree := or(left, right)

	info, groups, err := tscolfilter.BuildForTimeRange(tree)
	require.NoError(t, err)

	r, ok, err := filter.GetTimeRange(info, groups, 9)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(100), r.S.I)
	require.Equal(t, int64(300), r.E.I)
}

func TestGroupFusionAbsorbsRedundantGroup(t *testing.T) {
	a, b, c := colRef(1), colRef(2), colRef(3)
	left := and(cmp(tscolfilter.GT, a, 0), cmp(tscolfilter.EQ, b, 1))
	right := and(and(cmp(tscolfilter.GT, a, 0), cmp(tscolfilter.EQ, b, 1)), cmp(tscolfilter.LT, c, 9))
	tree := or(left, right)

	info, err := tscolfilter.Build(tree, tscolfilter.NeedUnique)
	require.NoError(t, err)
	require.Len(t, info.Groups, 1, "the more specific group is absorbed by the looser one")
}
