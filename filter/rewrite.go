package filter

import (
	"github.com/freeeve/tscolfilter/coltype"
	"github.com/freeeve/tscolfilter/predicate"
	"github.com/freeeve/tscolfilter/rangectx"
	"github.com/freeeve/tscolfilter/varctx"
)

// Rewrite reconstructs minimal AND/OR groups from the merged per-column
// contexts, grounded on filterRewrite/filterAddGroupUnitFromCtx/
// filterConvertGroupFromArray. Each column context yields a list of
// branches (IS NULL, IS NOT NULL, one per disjoint range, one per var-ctx
// entry, or its pass-through unit list). A group with exactly one column
// becomes one group per branch; a group with N>1 columns becomes one AND
// group per combination of one branch from each constrained column (§4.5).
func Rewrite(info *Info, merged []*mergedGroup) error {
	var groups []Group

	for _, mg := range merged {
		branchesByCol := make(map[int32][][]int32, len(mg.cols))
		for _, cid := range mg.cols {
			b, err := columnBranches(info, cid, mg.byCol[cid])
			if err != nil {
				return err
			}
			if len(b) == 0 {
				// column context is universal/unconstrained: contributes no
				// units to the AND group.
				continue
			}
			branchesByCol[cid] = b
		}

		if len(mg.cols) == 1 {
			for _, branch := range branchesByCol[mg.cols[0]] {
				groups = append(groups, Group{Units: internBranch(info, branch)})
			}
			continue
		}

		combos := [][]int32{{}}
		for _, cid := range mg.cols {
			branches, ok := branchesByCol[cid]
			if !ok {
				continue
			}
			var next [][]int32
			for _, combo := range combos {
				for _, branch := range branches {
					merged := append(append([]int32{}, combo...), branch...)
					next = append(next, merged)
				}
			}
			combos = next
		}
		for _, combo := range combos {
			groups = append(groups, Group{Units: internBranch(info, combo)})
		}
	}

	info.Groups = groups
	return nil
}

// internBranch re-interns a branch's unit list through info.addUnit so
// rewritten units participate in the same dedup pass as the original ones.
func internBranch(info *Info, units []int32) []int32 {
	out := make([]int32, len(units))
	for i, uidx := range units {
		u := info.Units[uidx]
		out[i] = info.addUnit(u.Op, u.Left, u.Right)
	}
	return out
}

func columnBranches(info *Info, cid int32, cm *colMerge) ([][]int32, error) {
	switch cm.kind {
	case mergeUnits:
		return [][]int32{cm.units}, nil
	case mergeRange:
		return rangeBranches(info, cid, cm.rng)
	default:
		return varBranches(info, cid, cm.vc)
	}
}

func rangeBranches(info *Info, cid int32, ctx *rangectx.Ctx) ([][]int32, error) {
	if ctx.IsAll() {
		return nil, nil
	}
	col := findColumnField(info, cid)
	var out [][]int32
	if ctx.IsNull {
		out = append(out, []int32{info.addUnit(predicate.ISNULL, info.addField(col), -1)})
	}
	if ctx.NotNull {
		out = append(out, []int32{info.addUnit(predicate.NOTNULL, info.addField(col), -1)})
	}
	cmp, err := coltype.Comparator(col.Type)
	if err != nil {
		return nil, err
	}
	for _, r := range ctx.Ranges() {
		out = append(out, rangeToUnits(info, col, cmp, r))
	}
	return out, nil
}

func rangeToUnits(info *Info, col *ColumnField, cmp coltype.CompareFunc, r rangectx.Range) []int32 {
	colID := info.addField(col)
	if r.SFlag&rangectx.Null == 0 && r.EFlag&rangectx.Null == 0 &&
		cmp(r.S, r.E) == 0 && r.SFlag&rangectx.Exclude == 0 && r.EFlag&rangectx.Exclude == 0 {
		val := info.addField(&ValueField{Type: col.Type, Raw: r.S})
		return []int32{info.addUnit(predicate.EQ, colID, val)}
	}

	var units []int32
	if r.SFlag&rangectx.Null == 0 {
		op := predicate.GE
		if r.SFlag&rangectx.Exclude != 0 {
			op = predicate.GT
		}
		val := info.addField(&ValueField{Type: col.Type, Raw: r.S})
		units = append(units, info.addUnit(op, colID, val))
	}
	if r.EFlag&rangectx.Null == 0 {
		op := predicate.LE
		if r.EFlag&rangectx.Exclude != 0 {
			op = predicate.LT
		}
		val := info.addField(&ValueField{Type: col.Type, Raw: r.E})
		units = append(units, info.addUnit(op, colID, val))
	}
	return units
}

func varBranches(info *Info, cid int32, vc *varctx.Ctx) ([][]int32, error) {
	if vc.IsAll() {
		return nil, nil
	}
	col := findColumnField(info, cid)
	colID := info.addField(col)
	var out [][]int32

	if vc.IsNull {
		out = append(out, []int32{info.addUnit(predicate.ISNULL, colID, -1)})
	}
	if vc.NotNull {
		out = append(out, []int32{info.addUnit(predicate.NOTNULL, colID, -1)})
	}
	for key, bit := range vc.Values() {
		val := info.addField(&ValueField{Type: col.Type, Raw: coltype.Bytes([]byte(key))})
		switch bit {
		case varctx.Include:
			out = append(out, []int32{info.addUnit(predicate.EQ, colID, val)})
		case varctx.Exclude:
			out = append(out, []int32{info.addUnit(predicate.NE, colID, val)})
		}
	}
	for key, bit := range vc.Wilds() {
		if bit != varctx.Include {
			continue
		}
		val := info.addField(&ValueField{Type: col.Type, Raw: coltype.Bytes([]byte(key))})
		out = append(out, []int32{info.addUnit(predicate.LIKE, colID, val)})
	}
	return out, nil
}

// findColumnField looks up the ColumnField by its field id (the index into
// info.Fields the Group Merger bucketed units under — not the schema
// column id carried in ColumnField.ID).
func findColumnField(info *Info, fieldID int32) *ColumnField {
	return info.Fields[fieldID].(*ColumnField)
}
