package filter

import (
	"sort"

	"github.com/freeeve/tscolfilter/coltype"
	"github.com/freeeve/tscolfilter/predicate"
	"github.com/freeeve/tscolfilter/rangectx"
	"github.com/freeeve/tscolfilter/varctx"
)

type mergeKind int

const (
	mergeRange mergeKind = iota
	mergeVar
	mergeUnits
)

// colMerge is the Go interface-free sum type standing in for the reference
// engine's tagged RANGE_TYPE_UNIT|MR_CTX|COL_RANGE union (Design Notes §9):
// a column folds into a RangeCtx, a VarCtx, or (when one of its operators
// can't reduce to either algebra, e.g. `!=` on a non-boolean column) a
// verbatim AND'd unit list.
type colMerge struct {
	kind  mergeKind
	rng   *rangectx.Ctx
	vc    *varctx.Ctx
	units []int32
}

func (cm *colMerge) isAll() bool {
	switch cm.kind {
	case mergeRange:
		return cm.rng.IsAll()
	case mergeVar:
		return cm.vc.IsAll()
	default:
		return false
	}
}

// mergedGroup is one group after per-column folding: a sorted list of
// column field ids (indices into Info.Fields, as in Unit.Left) plus each
// column's canonical representation.
type mergedGroup struct {
	cols  []int32
	byCol map[int32]*colMerge
}

// Merge runs the Group Merger (§4.4): per-group per-column folding, then
// cross-group fusion of OR-related groups whose non-overlapping columns
// match. Mutates info.Status (EMPTY/ALL/REWRITE-NEEDED) as it goes.
func Merge(info *Info) ([]*mergedGroup, error) {
	var merged []*mergedGroup

	for _, g := range info.Groups {
		mg, dropped, err := mergeGroup(info, g)
		if err != nil {
			return nil, err
		}
		if dropped {
			continue
		}
		merged = append(merged, mg)
	}

	if len(merged) == 0 {
		info.Status |= StatusEmpty
		return merged, nil
	}

	merged = fuseGroups(merged)

	for _, mg := range merged {
		allCols := true
		for _, cid := range mg.cols {
			if !mg.byCol[cid].isAll() {
				allCols = false
				break
			}
		}
		if allCols {
			info.Status |= StatusAll
		}
	}

	return merged, nil
}

func mergeGroup(info *Info, g Group) (*mergedGroup, bool, error) {
	byColUnits := make(map[int32][]int32)
	var order []int32
	for _, uidx := range g.Units {
		u := info.Units[uidx]
		col := u.Left
		if _, ok := byColUnits[col]; !ok {
			order = append(order, col)
		}
		byColUnits[col] = append(byColUnits[col], uidx)
	}

	mg := &mergedGroup{byCol: make(map[int32]*colMerge)}
	for _, cid := range order {
		units := byColUnits[cid]
		if len(units) > 1 {
			info.Status |= StatusRewriteNeeded
		}
		cm, empty, err := foldColumn(info, cid, units)
		if err != nil {
			return nil, false, err
		}
		if empty {
			return nil, true, nil
		}
		mg.byCol[cid] = cm
		mg.cols = append(mg.cols, cid)
	}
	sort.Slice(mg.cols, func(i, j int) bool { return mg.cols[i] < mg.cols[j] })
	return mg, false, nil
}

func columnKind(info *Info, units []int32) (coltype.Type, mergeKind) {
	col := info.column(info.Units[units[0]])
	if coltype.IsVariable(col.Type) {
		return col.Type, mergeVar
	}
	for _, uidx := range units {
		u := info.Units[uidx]
		if u.Op == predicate.NE && col.Type != coltype.Bool {
			return col.Type, mergeUnits
		}
	}
	return col.Type, mergeRange
}

func foldColumn(info *Info, cid int32, units []int32) (*colMerge, bool, error) {
	typ, kind := columnKind(info, units)

	switch kind {
	case mergeUnits:
		return &colMerge{kind: mergeUnits, units: units}, false, nil

	case mergeVar:
		vc := varctx.New()
		for _, uidx := range units {
			u := info.Units[uidx]
			empty, err := foldVarUnit(info, vc, u)
			if err != nil {
				return nil, false, err
			}
			if empty {
				return nil, true, nil
			}
		}
		return &colMerge{kind: mergeVar, vc: vc}, false, nil

	default:
		ctx, err := rangectx.New(typ, rangeOptions(info))
		if err != nil {
			return nil, false, err
		}
		for _, uidx := range units {
			u := info.Units[uidx]
			empty, err := foldRangeUnit(info, ctx, u)
			if err != nil {
				return nil, false, err
			}
			if empty {
				return nil, true, nil
			}
		}
		return &colMerge{kind: mergeRange, rng: ctx}, false, nil
	}
}

func rangeOptions(info *Info) uint32 {
	if info.Options.has(Timestamp) {
		return rangectx.OptionTimestamp
	}
	return 0
}

func foldRangeUnit(info *Info, ctx *rangectx.Ctx, u Unit) (empty bool, err error) {
	switch u.Op {
	case predicate.ISNULL:
		e, _ := ctx.AddOptr(rangectx.KindIsNull, rangectx.AND)
		return e, nil
	case predicate.NOTNULL:
		e, _ := ctx.AddOptr(rangectx.KindNotNull, rangectx.AND)
		return e, nil
	}

	val := info.value(u)
	e, _ := ctx.AddOptr(rangectx.KindRange, rangectx.AND)
	if e {
		return true, nil
	}

	var r rangectx.Range
	switch u.Op {
	case predicate.EQ:
		r = rangectx.Range{S: val.Raw, E: val.Raw}
	case predicate.LT:
		r = rangectx.Range{SFlag: rangectx.Null, E: val.Raw, EFlag: rangectx.Exclude}
	case predicate.LE:
		r = rangectx.Range{SFlag: rangectx.Null, E: val.Raw}
	case predicate.GT:
		r = rangectx.Range{S: val.Raw, SFlag: rangectx.Exclude, EFlag: rangectx.Null}
	case predicate.GE:
		r = rangectx.Range{S: val.Raw, EFlag: rangectx.Null}
	case predicate.NE:
		// Boolean != decomposes to the singleton range of the other value
		// (SPEC_FULL §7), the only case reaching here since non-bool NE is
		// routed to mergeUnits by columnKind.
		other := coltype.Int64(0)
		if val.Raw.I == 0 {
			other = coltype.Int64(1)
		}
		r = rangectx.Range{S: other, E: other}
	default:
		return false, errf(UnsupportedType, "operator %s cannot fold into a range", u.Op)
	}

	if err := ctx.AddRange(r, rangectx.AND); err != nil {
		return false, err
	}
	return ctx.IsEmpty(), nil
}

func foldVarUnit(info *Info, vc *varctx.Ctx, u Unit) (bool, error) {
	switch u.Op {
	case predicate.ISNULL:
		e, _ := vc.AddOptr(rangectx.KindIsNull, varctx.AND)
		return e, nil
	case predicate.NOTNULL:
		e, _ := vc.AddOptr(rangectx.KindNotNull, varctx.AND)
		return e, nil
	}

	val := info.value(u)
	e, _ := vc.AddOptr(rangectx.KindRange, varctx.AND)
	if e {
		return true, nil
	}

	key := string(val.Raw.S)
	switch u.Op {
	case predicate.EQ:
		vc.AddValue(key, false, varctx.Include, varctx.AND)
	case predicate.NE:
		vc.AddValue(key, false, varctx.Exclude, varctx.AND)
	case predicate.LIKE:
		vc.AddValue(key, true, varctx.Include, varctx.AND)
	default:
		return false, errf(UnsupportedType, "operator %s unsupported on variable column", u.Op)
	}
	return vc.IsEmpty(), nil
}

// fuseGroups merges pairs of groups sharing the same column set where all
// but (at most) one column's context compare equal, OR-merging the
// differing column (§4.4 "fuses OR-related groups whose non-overlapping
// columns match").
func fuseGroups(groups []*mergedGroup) []*mergedGroup {
	sort.Slice(groups, func(i, j int) bool { return len(groups[i].cols) < len(groups[j].cols) })

	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			if sameCols(groups[i].cols, groups[j].cols) {
				diffCol, diffCount, ok := diffSingle(groups[i], groups[j])
				if !ok {
					continue
				}
				if diffCount == 0 {
					groups = append(groups[:j], groups[j+1:]...)
					j--
					continue
				}
				if err := orMergeColumn(groups[i], groups[j], diffCol); err == nil {
					groups = append(groups[:j], groups[j+1:]...)
					j--
				}
				continue
			}

			// Subset absorption: X OR (X AND more) == X, when the smaller
			// group's columns are a subset of the larger's and every shared
			// column's context is identical (spec.md §8 scenario 6).
			if isSubset(groups[i].cols, groups[j].cols) && sharedColsEqual(groups[i], groups[j]) {
				groups = append(groups[:j], groups[j+1:]...)
				j--
			}
		}
	}
	return groups
}

// isSubset reports whether every id in small also appears in big. Both are
// sorted ascending.
func isSubset(small, big []int32) bool {
	bi := 0
	for _, s := range small {
		for bi < len(big) && big[bi] < s {
			bi++
		}
		if bi >= len(big) || big[bi] != s {
			return false
		}
	}
	return true
}

func sharedColsEqual(smaller, bigger *mergedGroup) bool {
	for _, cid := range smaller.cols {
		if !compareColMerge(smaller.byCol[cid], bigger.byCol[cid]) {
			return false
		}
	}
	return true
}

func sameCols(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func diffSingle(a, b *mergedGroup) (diffCol int32, count int, ok bool) {
	for _, cid := range a.cols {
		ca, cb := a.byCol[cid], b.byCol[cid]
		if !compareColMerge(ca, cb) {
			count++
			diffCol = cid
		}
	}
	return diffCol, count, count <= 1
}

func compareColMerge(a, b *colMerge) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case mergeRange:
		return a.rng.Compare(b.rng)
	case mergeVar:
		return a.vc.Compare(b.vc)
	default:
		return sameUnits(a.units, b.units)
	}
}

func sameUnits(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func orMergeColumn(a, b *mergedGroup, cid int32) error {
	ca, cb := a.byCol[cid], b.byCol[cid]
	switch ca.kind {
	case mergeRange:
		return ca.rng.SourceFrom(cb.rng, rangectx.OR)
	case mergeVar:
		if cb.vc.IsNull {
			ca.vc.AddOptr(rangectx.KindIsNull, varctx.OR)
		}
		if cb.vc.NotNull {
			ca.vc.AddOptr(rangectx.KindNotNull, varctx.OR)
		}
		for k, v := range cb.vc.Values() {
			ca.vc.AddValue(k, false, v, varctx.OR)
		}
		for k, v := range cb.vc.Wilds() {
			ca.vc.AddValue(k, true, v, varctx.OR)
		}
		return nil
	default:
		return errf(AppError, "cannot OR-merge a pass-through unit column")
	}
}
