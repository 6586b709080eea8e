// Package tscolfilter re-exports the commonly used types and functions
// from its subpackages so a caller only needs one import, mirroring the
// teacher's own sqlparser.go facade.
package tscolfilter

import (
	"github.com/freeeve/tscolfilter/coltype"
	"github.com/freeeve/tscolfilter/filter"
	"github.com/freeeve/tscolfilter/predicate"
)

type (
	Node       = predicate.Node
	ColumnRef  = predicate.ColumnRef
	Literal    = predicate.Literal
	BinaryExpr = predicate.BinaryExpr
	InExpr     = predicate.InExpr
	IsExpr     = predicate.IsExpr
	Operator   = predicate.Operator

	Type = coltype.Type

	Info       = filter.Info
	Options    = filter.Options
	ColumnData = filter.ColumnData
	Error      = filter.Error
)

const (
	LT      = predicate.LT
	LE      = predicate.LE
	EQ      = predicate.EQ
	NE      = predicate.NE
	GE      = predicate.GE
	GT      = predicate.GT
	LIKE    = predicate.LIKE
	IN      = predicate.IN
	ISNULL  = predicate.ISNULL
	NOTNULL = predicate.NOTNULL
	AND     = predicate.AND
	OR      = predicate.OR
)

const (
	Bool      = coltype.Bool
	TinyInt   = coltype.TinyInt
	SmallInt  = coltype.SmallInt
	Int       = coltype.Int
	BigInt    = coltype.BigInt
	Float     = coltype.Float
	Double    = coltype.Double
	Timestamp = coltype.Timestamp
	Binary    = coltype.Binary
	NChar     = coltype.NChar
)

const (
	NoRewrite       = filter.NoRewrite
	NeedUnique      = filter.NeedUnique
	TimestampOption = filter.Timestamp
)

// Build parses an expression tree into a ready-to-execute Info: DNF
// construction (Build), Group Merger, and Rewriter in one call, unless
// NoRewrite is set.
func Build(root Node, opts Options) (*Info, error) {
	info, err := filter.Build(root, opts)
	if err != nil {
		return nil, err
	}
	if opts&NoRewrite != 0 {
		return info, nil
	}
	merged, err := filter.Merge(info)
	if err != nil {
		return nil, err
	}
	if info.IsEmpty() || info.IsAll() {
		return info, nil
	}
	if err := filter.Rewrite(info, merged); err != nil {
		return nil, err
	}
	return info, nil
}

// BuildForTimeRange is Build's §4.6 specialization entry point: it returns
// the pre-merge, pre-rewrite groups alongside Info so the caller can run
// filter.GetTimeRange before (or instead of) the full Merge/Rewrite pass.
func BuildForTimeRange(root Node) (*Info, []filter.Group, error) {
	info, err := filter.Build(root, NeedUnique)
	if err != nil {
		return nil, nil, err
	}
	return info, append([]filter.Group(nil), info.Groups...), nil
}

// Execute evaluates info against numRows of bound column data.
func Execute(info *Info, cols map[int32]ColumnData, numRows int) ([]bool, error) {
	scratch := filter.GetScratch(len(info.Units))
	defer filter.PutScratch(scratch)
	return filter.Execute(info, cols, numRows, scratch)
}
