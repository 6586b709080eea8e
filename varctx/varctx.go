// Package varctx implements VarCtx (§4.2): the set-based analogue of
// rangectx.Ctx for variable-length string columns. Two maps (exact values,
// LIKE patterns) each hold entries tagged Include/Exclude; AND/OR merge
// follows the same tri-state isnull/notnull/isrange bookkeeping as
// rangectx.Ctx. Grounded on filterInitVarCtx/filterAddVarValue/
// filterAddVarOptr/filterCopyVarCtx in qFilter.c; TDengine's SHashObj hash
// tables become plain Go maps, since a byte-slice key already gets O(1)
// builtin-map lookup without a third-party hash-table library.
package varctx

import "github.com/freeeve/tscolfilter/rangectx"

// Bit is the per-entry tag: whether a value/pattern is asserted present
// (Include, from `= x` / `LIKE p`) or absent (Exclude, from `!= x`).
type Bit byte

const (
	Include Bit = 1 << iota
	Exclude
)

const both = Include | Exclude

// Combiner is an alias of rangectx.Combiner, so the same AND/OR constants
// drive both context kinds.
type Combiner = rangectx.Combiner

const (
	AND = rangectx.AND
	OR  = rangectx.OR
)

// Ctx is a VarCtx over one variable-length column.
type Ctx struct {
	values map[string]Bit
	wilds  map[string]Bit

	IsNull  bool
	NotNull bool
	IsRange bool

	empty bool
	all   bool
}

// New returns an empty VarCtx.
func New() *Ctx {
	return &Ctx{}
}

// Reset clears ctx for reuse.
func (c *Ctx) Reset() {
	for k := range c.values {
		delete(c.values, k)
	}
	for k := range c.wilds {
		delete(c.wilds, k)
	}
	c.IsNull, c.NotNull, c.IsRange = false, false, false
	c.empty, c.all = false, false
}

func (c *Ctx) hash(wild bool) map[string]Bit {
	if wild {
		if c.wilds == nil {
			c.wilds = make(map[string]Bit)
		}
		return c.wilds
	}
	if c.values == nil {
		c.values = make(map[string]Bit)
	}
	return c.values
}

// IsEmpty/IsAll report whether an AddValue call has driven ctx to the
// EMPTY/ALL status (§4.2's "both bits set" collapse).
func (c *Ctx) IsEmpty() bool { return c.empty }
func (c *Ctx) IsAll() bool   { return c.all }

// AddValue folds one `col = lit` / `col LIKE pat` / `col != lit` occurrence
// (bit selects which) into the key's entry under combiner, per §4.2:
// "Under AND, entries OR their bits... Under OR, an entry reaching both
// bits means universal."
func (c *Ctx) AddValue(key string, wild bool, bit Bit, combiner Combiner) {
	h := c.hash(wild)
	cur, ok := h[key]
	if !ok {
		h[key] = bit
		return
	}
	merged := cur | bit
	h[key] = merged
	if combiner == AND && merged == both {
		c.empty = true
	}
	if combiner == OR && merged == both {
		c.all = true
	}
}

// AddOptr folds the appearance of an IS NULL / IS NOT NULL / ordinary
// value-or-pattern unit into the tri-state summary, identical in meaning to
// rangectx.Ctx.AddOptr.
func (c *Ctx) AddOptr(kind rangectx.OptrKind, combiner Combiner) (empty, all bool) {
	switch combiner {
	case AND:
		switch kind {
		case rangectx.KindIsNull:
			if c.NotNull || c.IsRange {
				empty = true
			}
			c.IsNull = true
		case rangectx.KindNotNull:
			if c.IsNull {
				empty = true
			}
			c.NotNull = true
		case rangectx.KindRange:
			if c.IsNull {
				empty = true
			}
			c.IsRange = true
		}
		if empty {
			c.empty = true
		}
	case OR:
		switch kind {
		case rangectx.KindIsNull:
			if c.NotNull {
				all = true
			}
			c.IsNull = true
		case rangectx.KindNotNull:
			if c.IsNull {
				all = true
			}
			c.NotNull = true
		case rangectx.KindRange:
			c.IsRange = true
		}
		if all {
			c.all = true
		}
	}
	return empty, all
}

// Values returns the exact-value entries with their Include/Exclude bits
// (the map itself, unsorted; nil when no value was added).
func (c *Ctx) Values() map[string]Bit { return c.values }

// Wilds returns the LIKE-pattern entries the same way.
func (c *Ctx) Wilds() map[string]Bit { return c.wilds }

// CopyFrom replaces c's contents with a shallow duplicate of src's entries.
func (c *Ctx) CopyFrom(src *Ctx) {
	c.Reset()
	for k, v := range src.values {
		c.hash(false)[k] = v
	}
	for k, v := range src.wilds {
		c.hash(true)[k] = v
	}
	c.IsNull, c.NotNull, c.IsRange = src.IsNull, src.NotNull, src.IsRange
	c.empty, c.all = src.empty, src.all
}

// Compare reports whether c and other hold identical entries and tri-state
// flags, used by the Group Merger's cross-group fuse check (§4.4).
func (c *Ctx) Compare(other *Ctx) bool {
	if c.IsNull != other.IsNull || c.NotNull != other.NotNull || c.IsRange != other.IsRange {
		return false
	}
	if len(c.values) != len(other.values) || len(c.wilds) != len(other.wilds) {
		return false
	}
	for k, v := range c.values {
		if other.values[k] != v {
			return false
		}
	}
	for k, v := range c.wilds {
		if other.wilds[k] != v {
			return false
		}
	}
	return true
}
