// Package rangectx implements RangeCtx (§4.1): a canonical, disjoint,
// non-adjacent interval set over one scalar column, with AND/OR merge and a
// tri-state isnull/notnull/isrange summary. Grounded on the reference
// engine's filterInitRangeCtx/filterAddRange*/filterPostProcessRange/
// filterFinishRange family in qFilter.c. The doubly-linked SFilterRangeNode
// chain there becomes a plain ordered []Range slice here (Design Notes §9).
package rangectx

import (
	"fmt"

	"github.com/freeeve/tscolfilter/coltype"
)

// Flag marks an endpoint as unbounded (Null) or open (Exclude).
type Flag uint8

const (
	Null Flag = 1 << iota
	Exclude
)

// Range is a single interval [S, E] with independent flags per endpoint.
type Range struct {
	S, E  coltype.Value
	SFlag Flag
	EFlag Flag
}

// OptrKind identifies what's being folded into the tri-state summary by
// AddOptr: an IS NULL unit, an IS NOT NULL unit, or an ordinary range unit.
type OptrKind int

const (
	KindIsNull OptrKind = iota
	KindNotNull
	KindRange
)

// Combiner is either AND or OR. It reuses predicate.Operator's two names
// but is its own type, so rangectx does not import predicate; callers pass
// rangectx.AND/rangectx.OR.
type Combiner int

const (
	AND Combiner = iota
	OR
)

// Status bits mirror the reference's MR_ST_* bitmap.
type Status uint8

const (
	StatusStarted Status = 1 << iota
	StatusEmpty
	StatusAll
	StatusFinished
)

// Ctx is a RangeCtx over one column of type Type.
type Ctx struct {
	Type    coltype.Type
	Options uint32

	cmp coltype.CompareFunc

	ranges []Range

	IsNull  bool
	NotNull bool
	IsRange bool

	status Status
}

// Timestamp-adjacency option, mirrors FI_OPTION_TIMESTAMP.
const OptionTimestamp uint32 = 1

// New returns an empty, NOT-STARTED context over typ.
func New(typ coltype.Type, options uint32) (*Ctx, error) {
	if !coltype.SupportsRange(typ) {
		return nil, fmt.Errorf("rangectx: type %d does not support ranges", typ)
	}
	cmp, err := coltype.Comparator(typ)
	if err != nil {
		return nil, err
	}
	return &Ctx{Type: typ, Options: options, cmp: cmp}, nil
}

// Reset clears ctx back to a NOT-STARTED state so it (and its backing
// array) can be pooled and reused, mirroring filterResetRangeCtx/
// filterReuseRangeCtx.
func (c *Ctx) Reset(typ coltype.Type, options uint32) error {
	cmp, err := coltype.Comparator(typ)
	if err != nil {
		return err
	}
	c.Type = typ
	c.Options = options
	c.cmp = cmp
	c.ranges = c.ranges[:0]
	c.IsNull, c.NotNull, c.IsRange = false, false, false
	c.status = 0
	return nil
}

func (c *Ctx) Status() Status { return c.status }
func (c *Ctx) IsEmpty() bool  { return c.status&StatusEmpty != 0 }
func (c *Ctx) IsAll() bool    { return c.status&StatusAll != 0 }

// greater is FILTER_GREATER: strictly greater on value, or tied with either
// side EXCLUDE (the tied endpoints don't actually share the boundary point,
// so the two sides never overlap there). Used only to decide whether two
// bounds overlap at all; picking which bound value/flag survives a merge is
// a separate three-way compare done at the call sites, since an EXCLUDE tie
// there must union or intersect the flags, not just pick a side (§4.1).
func (c *Ctx) greater(cr int, leftFlag, rightFlag Flag) bool {
	if cr != 0 {
		return cr > 0
	}
	return leftFlag&Exclude != 0 || rightFlag&Exclude != 0
}

func rangeEmpty(cmp coltype.CompareFunc, r Range) bool {
	cr := cmp(r.S, r.E)
	if cr > 0 {
		return true
	}
	if cr == 0 && (r.SFlag&Exclude != 0 || r.EFlag&Exclude != 0) {
		return true
	}
	return false
}

// AddOptr folds the appearance of an IS NULL / IS NOT NULL / ordinary-range
// unit into the tri-state summary, per §4.1's combiner table.
func (c *Ctx) AddOptr(kind OptrKind, combiner Combiner) (empty, all bool) {
	switch combiner {
	case AND:
		switch kind {
		case KindIsNull:
			if c.NotNull || c.IsRange {
				empty = true
			}
			c.IsNull = true
		case KindNotNull:
			if c.IsNull {
				empty = true
			}
			c.NotNull = true
		case KindRange:
			if c.IsNull {
				empty = true
			}
			c.IsRange = true
		}
		if empty {
			c.status |= StatusEmpty
		}
	case OR:
		switch kind {
		case KindIsNull:
			if c.NotNull {
				all = true
			}
			c.IsNull = true
		case KindNotNull:
			if c.IsNull {
				all = true
			}
			c.NotNull = true
		case KindRange:
			c.IsRange = true
		}
		if all {
			c.status |= StatusAll
		}
	}
	return empty, all
}

// substitute replaces a NULL-flagged endpoint's value with the type's
// min/max sentinel before comparison, keeping the NULL flag set so
// PostProcess can still detect a collapsed full-domain range (§4.1,
// filterAddRange's SIMPLE_COPY_VALUES-before-merge step).
func (c *Ctx) substitute(r Range) (Range, error) {
	if r.SFlag&Null != 0 {
		v, err := coltype.MinValue(c.Type)
		if err != nil {
			return r, err
		}
		r.S = v
	}
	if r.EFlag&Null != 0 {
		v, err := coltype.MaxValue(c.Type)
		if err != nil {
			return r, err
		}
		r.E = v
	}
	return r, nil
}

// AddRange merges r into the disjoint range list under combiner, per §4.1's
// add_range contract.
func (c *Ctx) AddRange(r Range, combiner Combiner) error {
	r, err := c.substitute(r)
	if err != nil {
		return err
	}

	if len(c.ranges) == 0 {
		started := c.status&StatusStarted != 0
		all := c.status&StatusAll != 0
		if !started || (all && combiner == AND) || (!all && combiner == OR) {
			c.ranges = append(c.ranges, r)
			c.status |= StatusStarted
		}
		return nil
	}

	if combiner == AND {
		c.mergeAnd(r)
		return nil
	}

	c.mergeOr(r)
	c.collapseSingleton(combiner)
	return nil
}

// mergeAnd intersects every existing disjoint range with r, dropping any
// that fall entirely outside it. A tied boundary (same value on both sides)
// unions the EXCLUDE flags per §4.1: AND is only as permissive as its most
// restrictive operand, so either side excluding the point makes the
// intersection exclude it too.
func (c *Ctx) mergeAnd(r Range) {
	out := c.ranges[:0]
	for _, cur := range c.ranges {
		if c.greater(c.cmp(cur.S, r.E), cur.SFlag, r.EFlag) {
			continue // cur entirely above r
		}
		if c.greater(c.cmp(r.S, cur.E), r.SFlag, cur.EFlag) {
			continue // cur entirely below r
		}

		switch cr := c.cmp(r.S, cur.S); {
		case cr > 0:
			cur.S, cur.SFlag = r.S, r.SFlag
		case cr == 0:
			cur.SFlag |= r.SFlag
		}
		switch cr := c.cmp(cur.E, r.E); {
		case cr > 0:
			cur.E, cur.EFlag = r.E, r.EFlag
		case cr == 0:
			cur.EFlag |= r.EFlag
		}

		if !rangeEmpty(c.cmp, cur) {
			out = append(out, cur)
		}
	}
	c.ranges = out
	if len(c.ranges) == 0 {
		c.status |= StatusEmpty
	}
}

// mergeOr inserts r into the sorted disjoint list, merging with any
// neighbors that overlap it or share an included endpoint with it (classic
// interval-insert); ranges that are only value-adjacent, such as [1,2] and
// [3,4], stay separate here and are fused only by Finish for timestamp
// contexts. A tied
// boundary intersects the EXCLUDE flags per §4.1: OR is as permissive as its
// loosest operand, so the merged bound only excludes the point when both
// sides do.
func (c *Ctx) mergeOr(r Range) {
	var out []Range
	inserted := false
	for i := 0; i < len(c.ranges); i++ {
		cur := c.ranges[i]
		switch {
		case c.greater(c.cmp(cur.S, r.E), cur.SFlag, r.EFlag):
			// cur starts strictly after r ends: insert r before cur.
			if !inserted {
				out = append(out, r)
				inserted = true
			}
			out = append(out, cur)
		case c.greater(c.cmp(r.S, cur.E), r.SFlag, cur.EFlag):
			// r starts strictly after cur ends: keep cur, r not yet placed.
			out = append(out, cur)
		default:
			// overlap or touch: merge into r and keep scanning for more
			// ranges that r now also covers.
			switch cr := c.cmp(cur.S, r.S); {
			case cr < 0:
				r.S, r.SFlag = cur.S, cur.SFlag
			case cr == 0:
				r.SFlag &= cur.SFlag
			}
			switch cr := c.cmp(cur.E, r.E); {
			case cr > 0:
				r.E, r.EFlag = cur.E, cur.EFlag
			case cr == 0:
				r.EFlag &= cur.EFlag
			}
		}
	}
	if !inserted {
		out = append(out, r)
	}
	c.ranges = out
}

// collapseSingleton is the post_process step (SPEC_FULL §7): when exactly
// one range remains and both its endpoints equal the type's sentinel
// values, fold it into NotNull instead of keeping a redundant full-domain
// range, mirroring filterAddRangeImpl's OR-branch call into
// filterPostProcessRange.
func (c *Ctx) collapseSingleton(combiner Combiner) {
	if len(c.ranges) != 1 {
		return
	}
	notNull, err := c.postProcess(&c.ranges[0])
	if err != nil || !notNull {
		return
	}
	c.ranges = c.ranges[:0]
	_, all := c.AddOptr(KindNotNull, combiner)
	if all {
		c.status |= StatusAll
	}
}

func (c *Ctx) postProcess(r *Range) (bool, error) {
	if r.SFlag&Null == 0 {
		min, err := coltype.MinValue(c.Type)
		if err != nil {
			return false, err
		}
		if c.cmp(r.S, min) == 0 {
			r.SFlag |= Null
		}
	}
	if r.EFlag&Null == 0 {
		max, err := coltype.MaxValue(c.Type)
		if err != nil {
			return false, err
		}
		if c.cmp(r.E, max) == 0 {
			r.EFlag |= Null
		}
	}
	return r.SFlag&Null != 0 && r.EFlag&Null != 0, nil
}

// Finish is idempotent; for TIMESTAMP-option contexts it fuses ranges where
// prev.E+1 == next.S (both inclusive), matching filterFinishRange.
func (c *Ctx) Finish() {
	if c.status&StatusFinished != 0 {
		return
	}
	if c.Options&OptionTimestamp != 0 && coltype.IsTimestamp(c.Type) {
		out := c.ranges[:0]
		i := 0
		for i < len(c.ranges) {
			cur := c.ranges[i]
			for i+1 < len(c.ranges) {
				next := c.ranges[i+1]
				if cur.EFlag&(Null|Exclude) == 0 && next.SFlag&(Null|Exclude) == 0 &&
					c.cmp(coltype.Int64(cur.E.I+1), next.S) == 0 {
					cur.E, cur.EFlag = next.E, next.EFlag
					i++
					continue
				}
				break
			}
			out = append(out, cur)
			i++
		}
		c.ranges = out
	}
	c.status |= StatusFinished
}

// Ranges returns the finished, disjoint, ordered range list.
func (c *Ctx) Ranges() []Range {
	c.Finish()
	return c.ranges
}

// CopyFrom replaces c's range list, tri-state flags and status with a copy
// of src's.
func (c *Ctx) CopyFrom(src *Ctx) {
	c.status = src.status
	c.IsNull, c.NotNull, c.IsRange = src.IsNull, src.NotNull, src.IsRange
	c.ranges = append(c.ranges[:0], src.ranges...)
}

// SourceFrom folds src's isnull/notnull/isrange and range list into c under
// combiner, mirroring filterSourceRangeFromCtx.
func (c *Ctx) SourceFrom(src *Ctx, combiner Combiner) error {
	if src.IsNull {
		c.AddOptr(KindIsNull, combiner)
	}
	if src.NotNull {
		c.AddOptr(KindNotNull, combiner)
	}
	if src.IsRange {
		c.AddOptr(KindRange, combiner)
		if !(combiner == OR && c.NotNull) {
			for _, r := range src.ranges {
				if err := c.AddRange(r, combiner); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Compare reports whether c and other hold identical tri-state flags and
// range lists, used by the Group Merger's cross-group fuse check (§4.4).
func (c *Ctx) Compare(other *Ctx) bool {
	if c.IsNull != other.IsNull || c.NotNull != other.NotNull || c.IsRange != other.IsRange {
		return false
	}
	a, b := c.Ranges(), other.Ranges()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].SFlag != b[i].SFlag || a[i].EFlag != b[i].EFlag {
			return false
		}
		if c.cmp(a[i].S, b[i].S) != 0 || c.cmp(a[i].E, b[i].E) != 0 {
			return false
		}
	}
	return true
}
