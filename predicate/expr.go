package predicate

import "github.com/freeeve/tscolfilter/coltype"

// ColumnRef addresses a single schema column. The schema lookup itself
// (name/id resolution, type assignment) is the parser/planner's job; by the
// time a tree reaches filter.Build every ColumnRef is already resolved.
// Grounded on ast.ColName, trimmed of multi-part qualification (Parts
// []string) since there is no catalog/table layer at this level.
type ColumnRef struct {
	ID       int32
	Name     string
	Type     coltype.Type
	Bytes    int32
	Variable bool
}

// Literal is a constant value appearing on the right of a comparison, or as
// one element of an InExpr's value set. Raw holds the value pre-decoded into
// the column's native representation (§4.3 "value-field materialization").
// Grounded on ast.Literal, trimmed of LiteralType (string/number/etc. kind
// tagging is redundant once Raw is already a coltype.Value).
type Literal struct {
	Raw coltype.Value
}

// BinaryExpr is both the boolean connective (Op == AND or OR, Left/Right are
// themselves predicate trees) and the six scalar comparisons LT/LE/EQ/NE/
// GE/GT plus LIKE (Op is the comparison, Left is a *ColumnRef, Right is a
// *Literal). Grounded on ast.BinaryExpr, with token.Token replaced by the
// local Operator enum.
type BinaryExpr struct {
	Op    Operator
	Left  Node
	Right Node
}

// InExpr tests a column against a set of literal values, given in any
// order; the Builder sorts them and distributes them into one OR-branch per
// value (§4.3). Grounded on
// ast.InExpr, trimmed to a single-column left side (no sub-select, no
// tuple-IN: both are out of scope per spec.md §1).
type InExpr struct {
	Column *ColumnRef
	Values []*Literal
}

// IsExpr implements `col IS NULL` / `col IS NOT NULL`. Grounded on
// ast.IsExpr, narrowed from the teacher's full IsType enum (which also
// covers IS TRUE/FALSE/UNKNOWN) to the two forms spec.md §3 names.
type IsExpr struct {
	Column *ColumnRef
	Not    bool
}
