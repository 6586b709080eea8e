package filter

import (
	"sort"

	"github.com/freeeve/tscolfilter/coltype"
	"github.com/freeeve/tscolfilter/predicate"
)

// Build converts a predicate tree into disjunctive normal form: AND
// distributes as a Cartesian product of groups, OR concatenates, and IN
// distributes across OR as one single-unit group per value. Grounded on
// filterTreeToGroup/filterAddGroupUnitFromNode/filterInitValFieldData.
func Build(root predicate.Node, opts Options) (*Info, error) {
	info := newInfo(opts)
	groups, err := buildGroups(info, root)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, errf(InvalidParam, "empty predicate tree")
	}
	info.Groups = groups
	return info, nil
}

func buildGroups(info *Info, node predicate.Node) ([]Group, error) {
	switch n := node.(type) {
	case *predicate.BinaryExpr:
		if n.Op == predicate.AND {
			return buildAnd(info, n)
		}
		if n.Op == predicate.OR {
			return buildOr(info, n)
		}
		return buildComparison(info, n)
	case *predicate.InExpr:
		return buildIn(info, n)
	case *predicate.IsExpr:
		return buildIs(info, n)
	default:
		return nil, errf(InvalidParam, "unsupported node type %T", node)
	}
}

func buildAnd(info *Info, n *predicate.BinaryExpr) ([]Group, error) {
	left, err := buildGroups(info, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := buildGroups(info, n.Right)
	if err != nil {
		return nil, err
	}
	out := make([]Group, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			units := make([]int32, 0, len(l.Units)+len(r.Units))
			units = append(units, l.Units...)
			units = append(units, r.Units...)
			out = append(out, Group{Units: units})
		}
	}
	return out, nil
}

func buildOr(info *Info, n *predicate.BinaryExpr) ([]Group, error) {
	left, err := buildGroups(info, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := buildGroups(info, n.Right)
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

func buildComparison(info *Info, n *predicate.BinaryExpr) ([]Group, error) {
	col, ok := n.Left.(*predicate.ColumnRef)
	if !ok {
		return nil, errf(InvalidParam, "comparison left side must be a column")
	}
	lit, ok := n.Right.(*predicate.Literal)
	if !ok {
		return nil, errf(InvalidParam, "comparison right side must be a literal")
	}
	unitIdx := addComparisonUnit(info, col, n.Op, lit)
	return []Group{{Units: []int32{unitIdx}}}, nil
}

func addComparisonUnit(info *Info, col *predicate.ColumnRef, op predicate.Operator, lit *predicate.Literal) int32 {
	colField := info.addField(&ColumnField{ID: col.ID, Type: col.Type})
	valField := info.addField(&ValueField{Type: col.Type, Raw: lit.Raw})
	return info.addUnit(op, colField, valField)
}

func buildIn(info *Info, n *predicate.InExpr) ([]Group, error) {
	if len(n.Values) == 0 {
		return nil, errf(InvalidParam, "IN with no values")
	}

	cmp, err := coltype.Comparator(n.Column.Type)
	if err != nil {
		return nil, err
	}
	sorted := append([]*predicate.Literal(nil), n.Values...)
	sort.Slice(sorted, func(i, j int) bool { return cmp(sorted[i].Raw, sorted[j].Raw) < 0 })

	raws := make([]coltype.Value, len(sorted))
	for i, v := range sorted {
		raws[i] = v.Raw
	}
	info.addField(&ValueSetField{Type: n.Column.Type, Values: raws})

	out := make([]Group, 0, len(sorted))
	for _, v := range sorted {
		unitIdx := addComparisonUnit(info, n.Column, predicate.EQ, v)
		out = append(out, Group{Units: []int32{unitIdx}})
	}
	return out, nil
}

func buildIs(info *Info, n *predicate.IsExpr) ([]Group, error) {
	colField := info.addField(&ColumnField{ID: n.Column.ID, Type: n.Column.Type})
	op := predicate.ISNULL
	if n.Not {
		op = predicate.NOTNULL
	}
	unitIdx := info.addUnit(op, colField, -1)
	return []Group{{Units: []int32{unitIdx}}}, nil
}
