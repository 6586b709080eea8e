package filter

import "github.com/freeeve/tscolfilter/coltype"

// Transcode converts a raw NCHAR column cell's multi-byte encoding to the
// wide representation comparisons in this package expect. Grounded on
// filterConverNcharColumns/filterFreeNcharColumns: the reference engine
// delegates the actual multi-byte-to-wide conversion to taosMbsToUcs4 and
// only owns the resulting buffer's lifetime. Spec.md §4.7 draws the same
// line, so this module takes the conversion as an external collaborator
// hook rather than wiring a transcoding library itself (see DESIGN.md).
type Transcode func(raw []byte) ([]byte, error)

// transcodedColumn is the converted row batch ConvertNchar installs in
// place of a caller's raw NCHAR ColumnData, holding the post-transcode
// bytes for every row of the batch.
type transcodedColumn struct {
	vals  [][]byte
	nulls []bool
}

func (c *transcodedColumn) IsNull(row int) bool         { return c.nulls[row] }
func (c *transcodedColumn) Value(row int) coltype.Value { return coltype.Bytes(c.vals[row]) }

// ConvertNchar is convert_nchar (§4.7, §6 "convert_nchar(info, rows) ->
// got_nchar"): for every column in info bound to an NCHAR field, transcode
// its numRows-row batch with fn and install the transcoded batch into cols
// in place of the caller's original bytes, mirroring
// filterConverNcharColumns' "replace the column field's data pointer for
// the batch". Literal comparands never need this: §4.3 already decodes
// them to their native comparison representation at build time, so only
// the bound row batch lags behind. Go's GC reclaims the replaced buffers,
// so there is no analogue of filterFreeNcharColumns; the only surviving
// half of the original pairing is the allocate-and-replace step. Returns
// got_nchar: whether any column in cols actually needed conversion.
func ConvertNchar(info *Info, cols map[int32]ColumnData, numRows int, fn Transcode) (bool, error) {
	got := false
	for _, f := range info.Fields {
		cf, ok := f.(*ColumnField)
		if !ok || cf.Type != coltype.NChar {
			continue
		}
		data, ok := cols[cf.ID]
		if !ok {
			continue
		}
		if _, already := data.(*transcodedColumn); already {
			continue
		}

		vals := make([][]byte, numRows)
		nulls := make([]bool, numRows)
		for row := 0; row < numRows; row++ {
			if nulls[row] = data.IsNull(row); nulls[row] {
				continue
			}
			out, err := fn(data.Value(row).S)
			if err != nil {
				return false, errf(AppError, "nchar transcode: %v", err)
			}
			vals[row] = out
		}
		cols[cf.ID] = &transcodedColumn{vals: vals, nulls: nulls}
		got = true
	}
	return got, nil
}
