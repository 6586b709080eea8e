package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freeeve/tscolfilter/coltype"
	"github.com/freeeve/tscolfilter/predicate"
)

type rawNcharColumn struct {
	vals  [][]byte
	nulls []bool
}

func (c *rawNcharColumn) IsNull(row int) bool         { return c.nulls != nil && c.nulls[row] }
func (c *rawNcharColumn) Value(row int) coltype.Value { return coltype.Bytes(c.vals[row]) }

func upper(b []byte) ([]byte, error) {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return out, nil
}

func TestConvertNcharTranscodesBoundColumnBatch(t *testing.T) {
	name := &predicate.ColumnRef{ID: 7, Type: coltype.NChar}
	tree := &predicate.BinaryExpr{Op: predicate.EQ, Left: name, Right: &predicate.Literal{Raw: coltype.Bytes([]byte("EAST"))}}

	info, err := Build(tree, NeedUnique)
	require.NoError(t, err)

	cols := map[int32]ColumnData{
		7: &rawNcharColumn{vals: [][]byte{[]byte("east"), []byte("west")}},
	}

	got, err := ConvertNchar(info, cols, 2, upper)
	require.NoError(t, err)
	require.True(t, got, "an NCHAR column was bound, so conversion must report happening")

	require.Equal(t, "EAST", string(cols[7].Value(0).S))
	require.Equal(t, "WEST", string(cols[7].Value(1).S))

	// Literal comparands are untouched: they were already decoded at build time.
	unit := info.Units[info.Groups[0].Units[0]]
	require.Equal(t, "EAST", string(info.value(unit).Raw.S))
}

func TestConvertNcharNoNcharColumnsReportsFalse(t *testing.T) {
	col := &predicate.ColumnRef{ID: 1, Type: coltype.Int}
	tree := &predicate.BinaryExpr{Op: predicate.EQ, Left: col, Right: &predicate.Literal{Raw: coltype.Int64(1)}}

	info, err := Build(tree, NeedUnique)
	require.NoError(t, err)

	got, err := ConvertNchar(info, map[int32]ColumnData{}, 0, upper)
	require.NoError(t, err)
	require.False(t, got)
}
