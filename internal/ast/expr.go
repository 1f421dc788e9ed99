package ast

import (
	"exactprint/internal/annot"
	"exactprint/internal/source"
)

// Expr is an expression, a pattern or a type. The three sub-languages share
// most of their shapes (variables, constructors, tuples, lists, parens), so
// one interface covers them.
type Expr interface {
	annot.Node
	exprNode()
}

// Var is a variable or type variable. Parens is set for an operator used
// as a name: (<+>).
type Var struct {
	Loc    source.Span
	Name   string
	Parens bool
}

// Con is a constructor or type constructor. Special marks the unit and
// tuple constructors () and (,,); Commas is then the number of commas.
type Con struct {
	Loc     source.Span
	Name    string
	Special bool
	Commas  int
}

// Lit is a numeric, string or character literal, spelled as written.
type Lit struct {
	Loc  source.Span
	Text string
}

type Wild struct {
	Loc source.Span
}

type App struct {
	Loc source.Span
	Fun Expr
	Arg Expr
}

// OpApp is a binary operator application. Operators associate to the left;
// fixity is not resolved.
type OpApp struct {
	Loc   source.Span
	Left  Expr
	Op    string
	Right Expr
}

type Par struct {
	Loc   source.Span
	Inner Expr
}

type Tuple struct {
	Loc   source.Span
	Elems []Expr
}

type List struct {
	Loc   source.Span
	Elems []Expr
}

type Lambda struct {
	Loc  source.Span
	Pats []Expr
	Body Expr
}

type Let struct {
	Loc   source.Span
	Binds *Binds
	Body  Expr
}

type If struct {
	Loc  source.Span
	Cond Expr
	Then Expr
	Else Expr
}

type Do struct {
	Loc   source.Span
	Stmts []Stmt
}

type Case struct {
	Loc   source.Span
	Scrut Expr
	Alts  []*Alt
}

// Alt is one case alternative: pat -> rhs.
type Alt struct {
	Loc source.Span
	Pat Expr
	Rhs Expr
}

// ConPat is a constructor pattern with arguments: Just x.
type ConPat struct {
	Loc  source.Span
	Con  *Con
	Args []Expr
}

// FunTy is a function type: Arg -> Res.
type FunTy struct {
	Loc source.Span
	Arg Expr
	Res Expr
}

// Wrap is a renamer artefact: a name together with its resolution. It has
// no surface syntax.
type Wrap struct {
	Loc   source.Span
	Inner Expr
}

func (*Var) exprNode()    {}
func (*Con) exprNode()    {}
func (*Lit) exprNode()    {}
func (*Wild) exprNode()   {}
func (*App) exprNode()    {}
func (*OpApp) exprNode()  {}
func (*Par) exprNode()    {}
func (*Tuple) exprNode()  {}
func (*List) exprNode()   {}
func (*Lambda) exprNode() {}
func (*Let) exprNode()    {}
func (*If) exprNode()     {}
func (*Do) exprNode()     {}
func (*Case) exprNode()   {}
func (*ConPat) exprNode() {}
func (*FunTy) exprNode()  {}
func (*Wrap) exprNode()   {}

func (n *Var) Shape() annot.Shape    { return ShapeVar }
func (n *Con) Shape() annot.Shape    { return ShapeCon }
func (n *Lit) Shape() annot.Shape    { return ShapeLit }
func (n *Wild) Shape() annot.Shape   { return ShapeWild }
func (n *App) Shape() annot.Shape    { return ShapeApp }
func (n *OpApp) Shape() annot.Shape  { return ShapeOpApp }
func (n *Par) Shape() annot.Shape    { return ShapePar }
func (n *Tuple) Shape() annot.Shape  { return ShapeTuple }
func (n *List) Shape() annot.Shape   { return ShapeList }
func (n *Lambda) Shape() annot.Shape { return ShapeLambda }
func (n *Let) Shape() annot.Shape    { return ShapeLet }
func (n *If) Shape() annot.Shape     { return ShapeIf }
func (n *Do) Shape() annot.Shape     { return ShapeDo }
func (n *Case) Shape() annot.Shape   { return ShapeCase }
func (n *Alt) Shape() annot.Shape    { return ShapeAlt }
func (n *ConPat) Shape() annot.Shape { return ShapeConPat }
func (n *FunTy) Shape() annot.Shape  { return ShapeFunTy }
func (n *Wrap) Shape() annot.Shape   { return ShapeWrap }

func (n *Var) Span() source.Span    { return n.Loc }
func (n *Con) Span() source.Span    { return n.Loc }
func (n *Lit) Span() source.Span    { return n.Loc }
func (n *Wild) Span() source.Span   { return n.Loc }
func (n *App) Span() source.Span    { return n.Loc }
func (n *OpApp) Span() source.Span  { return n.Loc }
func (n *Par) Span() source.Span    { return n.Loc }
func (n *Tuple) Span() source.Span  { return n.Loc }
func (n *List) Span() source.Span   { return n.Loc }
func (n *Lambda) Span() source.Span { return n.Loc }
func (n *Let) Span() source.Span    { return n.Loc }
func (n *If) Span() source.Span     { return n.Loc }
func (n *Do) Span() source.Span     { return n.Loc }
func (n *Case) Span() source.Span   { return n.Loc }
func (n *Alt) Span() source.Span    { return n.Loc }
func (n *ConPat) Span() source.Span { return n.Loc }
func (n *FunTy) Span() source.Span  { return n.Loc }
func (n *Wrap) Span() source.Span   { return n.Loc }
