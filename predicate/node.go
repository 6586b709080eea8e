// Package predicate defines the expression-tree contract this module
// consumes from its SQL-parser collaborator: a tree of AND/OR connectives
// over column comparisons, already resolved against the schema.
//
// Building this tree from SQL text, and resolving ColumnRef against a
// schema, are both the job of an external parser/planner; this package only
// describes the shape a tree must have to be handed to filter.Build.
package predicate

// Node is implemented by every node of an expression tree accepted by
// filter.Build: boolean connectives (BinaryExpr with Op AND/OR) and leaf
// comparisons (BinaryExpr with a comparison Op, InExpr, IsExpr).
type Node interface {
	exprNode()
}

func (*ColumnRef) exprNode() {}
func (*Literal) exprNode()   {}
func (*BinaryExpr) exprNode() {}
func (*InExpr) exprNode()    {}
func (*IsExpr) exprNode()    {}
