package ast

import (
	"exactprint/internal/annot"
	"exactprint/internal/source"
)

// Stmt is a statement of a do block.
type Stmt interface {
	annot.Node
	stmtNode()
}

// BindStmt is pat <- expr.
type BindStmt struct {
	Loc  source.Span
	Pat  Expr
	Expr Expr
}

// LetStmt is a let without in.
type LetStmt struct {
	Loc   source.Span
	Binds *Binds
}

type BodyStmt struct {
	Loc  source.Span
	Expr Expr
}

func (*BindStmt) stmtNode() {}
func (*LetStmt) stmtNode()  {}
func (*BodyStmt) stmtNode() {}

func (n *BindStmt) Shape() annot.Shape { return ShapeBindStmt }
func (n *LetStmt) Shape() annot.Shape  { return ShapeLetStmt }
func (n *BodyStmt) Shape() annot.Shape { return ShapeBodyStmt }

func (n *BindStmt) Span() source.Span { return n.Loc }
func (n *LetStmt) Span() source.Span  { return n.Loc }
func (n *BodyStmt) Span() source.Span { return n.Loc }
