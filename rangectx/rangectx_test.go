package rangectx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freeeve/tscolfilter/coltype"
)

func mkRange(s, e int64) Range {
	return Range{S: coltype.Int64(s), E: coltype.Int64(e)}
}

func TestOrMergeOverlappingRangesFuse(t *testing.T) {
	ctx, err := New(coltype.Int, 0)
	require.NoError(t, err)

	require.NoError(t, ctx.AddRange(mkRange(1, 5), OR))
	require.NoError(t, ctx.AddRange(mkRange(4, 10), OR))

	got := ctx.Ranges()
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].S.I)
	require.Equal(t, int64(10), got[0].E.I)
}

func TestOrMergeDisjointRangesStayDisjoint(t *testing.T) {
	ctx, err := New(coltype.Int, 0)
	require.NoError(t, err)

	require.NoError(t, ctx.AddRange(mkRange(1, 2), OR))
	require.NoError(t, ctx.AddRange(mkRange(10, 20), OR))

	got := ctx.Ranges()
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].S.I)
	require.Equal(t, int64(10), got[1].S.I)
}

func TestAndMergeIntersectsAndDropsOutside(t *testing.T) {
	ctx, err := New(coltype.Int, 0)
	require.NoError(t, err)

	require.NoError(t, ctx.AddRange(mkRange(1, 20), OR))
	require.NoError(t, ctx.AddRange(mkRange(5, 10), AND))

	got := ctx.Ranges()
	require.Len(t, got, 1)
	require.Equal(t, int64(5), got[0].S.I)
	require.Equal(t, int64(10), got[0].E.I)
}

func TestAndMergeEmptyWhenNoOverlap(t *testing.T) {
	ctx, err := New(coltype.Int, 0)
	require.NoError(t, err)

	require.NoError(t, ctx.AddRange(mkRange(1, 2), OR))
	require.NoError(t, ctx.AddRange(mkRange(10, 20), AND))

	require.True(t, ctx.IsEmpty())
	require.Empty(t, ctx.Ranges())
}

func TestTimestampAdjacencyFusesInFinish(t *testing.T) {
	ctx, err := New(coltype.Timestamp, OptionTimestamp)
	require.NoError(t, err)

	require.NoError(t, ctx.AddRange(mkRange(0, 9), OR))
	require.NoError(t, ctx.AddRange(mkRange(10, 19), OR))

	got := ctx.Ranges()
	require.Len(t, got, 1)
	require.Equal(t, int64(0), got[0].S.I)
	require.Equal(t, int64(19), got[0].E.I)
}

func TestAddOptrAndSemantics(t *testing.T) {
	ctx, err := New(coltype.Int, 0)
	require.NoError(t, err)

	empty, _ := ctx.AddOptr(KindIsNull, AND)
	require.False(t, empty)
	empty, _ = ctx.AddOptr(KindNotNull, AND)
	require.True(t, empty, "IS NULL AND IS NOT NULL must be empty")
}

func TestAddOptrOrSemantics(t *testing.T) {
	ctx, err := New(coltype.Int, 0)
	require.NoError(t, err)

	_, all := ctx.AddOptr(KindIsNull, OR)
	require.False(t, all)
	_, all = ctx.AddOptr(KindNotNull, OR)
	require.True(t, all, "IS NULL OR IS NOT NULL must be universal")
}

func TestCompareEquivalentRangeSets(t *testing.T) {
	a, err := New(coltype.Int, 0)
	require.NoError(t, err)
	b, err := New(coltype.Int, 0)
	require.NoError(t, err)

	require.NoError(t, a.AddRange(mkRange(1, 5), OR))
	require.NoError(t, b.AddRange(mkRange(1, 5), OR))

	require.True(t, a.Compare(b))

	require.NoError(t, b.AddRange(mkRange(10, 12), OR))
	require.False(t, a.Compare(b))
}

func TestAndMergeTiedEndUnionsExcludeFlag(t *testing.T) {
	// a <= 5 AND a < 5 must exclude 5, not include it.
	ctx, err := New(coltype.Int, 0)
	require.NoError(t, err)

	le5 := Range{SFlag: Null, E: coltype.Int64(5)}
	lt5 := Range{SFlag: Null, E: coltype.Int64(5), EFlag: Exclude}

	require.NoError(t, ctx.AddRange(le5, AND))
	require.NoError(t, ctx.AddRange(lt5, AND))

	got := ctx.Ranges()
	require.Len(t, got, 1)
	require.NotZero(t, got[0].EFlag&Exclude, "a<=5 AND a<5 must exclude the boundary")
}

func TestOrMergeTiedEndIntersectsExcludeFlag(t *testing.T) {
	// a < 5 OR a <= 5 must include 5, not exclude it.
	ctx, err := New(coltype.Int, 0)
	require.NoError(t, err)

	lt5 := Range{SFlag: Null, E: coltype.Int64(5), EFlag: Exclude}
	le5 := Range{SFlag: Null, E: coltype.Int64(5)}

	require.NoError(t, ctx.AddRange(lt5, OR))
	require.NoError(t, ctx.AddRange(le5, OR))

	got := ctx.Ranges()
	require.Len(t, got, 1)
	require.Zero(t, got[0].EFlag&Exclude, "a<5 OR a<=5 must include the boundary")
}
