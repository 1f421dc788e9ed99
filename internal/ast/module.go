package ast

import (
	"exactprint/internal/annot"
	"exactprint/internal/source"
)

// Module is the root. Name is nil for a file without a header; Body is nil
// for a file without declarations. EOF is the end of input.
type Module struct {
	Loc     source.Span
	Name    *ModName
	Imports []*Import
	Body    *Binds
	EOF     source.Pos
}

// ModName is a dotted module name such as Data.Map.
type ModName struct {
	Loc  source.Span
	Name string
}

type Import struct {
	Loc       source.Span
	Qualified bool
	Name      *ModName
	As        *ModName
}

// Binds is a declaration group. Signatures and bindings are kept apart,
// so the source order of the group is not the order of either slice.
type Binds struct {
	Loc   source.Span
	Sigs  []*Sig
	Binds []*FunBind
}

// Decls returns signatures and bindings as one node list, signatures first.
func (b *Binds) Decls() []annot.Node {
	out := make([]annot.Node, 0, len(b.Sigs)+len(b.Binds))
	for _, s := range b.Sigs {
		out = append(out, s)
	}
	for _, f := range b.Binds {
		out = append(out, f)
	}
	return out
}

// Sig is a type signature for one or more names: f, g :: Int.
type Sig struct {
	Loc   source.Span
	Names []*Var
	Type  Expr
}

// FunBind is one equation: name, argument patterns, body and an optional
// where group.
type FunBind struct {
	Loc   source.Span
	Name  *Var
	Pats  []Expr
	Rhs   Expr
	Where *Binds
}

func (n *Module) Shape() annot.Shape  { return ShapeModule }
func (n *ModName) Shape() annot.Shape { return ShapeModName }
func (n *Import) Shape() annot.Shape  { return ShapeImport }
func (n *Binds) Shape() annot.Shape   { return ShapeBinds }
func (n *Sig) Shape() annot.Shape     { return ShapeSig }
func (n *FunBind) Shape() annot.Shape { return ShapeFunBind }

func (n *Module) Span() source.Span  { return n.Loc }
func (n *ModName) Span() source.Span { return n.Loc }
func (n *Import) Span() source.Span  { return n.Loc }
func (n *Binds) Span() source.Span   { return n.Loc }
func (n *Sig) Span() source.Span     { return n.Loc }
func (n *FunBind) Span() source.Span { return n.Loc }
