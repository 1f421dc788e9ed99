// Package grammar holds the annotation schedules of the reference
// front-end: one handler per ast shape, in the order the tokens and
// sub-nodes appear in source.
package grammar

import (
	"sync"

	"exactprint/internal/annot"
	"exactprint/internal/ast"
	"exactprint/internal/schedule"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

var (
	once sync.Once
	reg  *schedule.Registry
)

// Registry returns the shared registry. It is built once and only read
// afterwards, so concurrent passes may share it.
func Registry() *schedule.Registry {
	once.Do(func() { reg = build() })
	return reg
}

// block is the body of a layout block: optional braces around a list of
// items separated by semicolons.
func block(items schedule.Instr) schedule.Instr {
	return schedule.Layout(
		schedule.Optional(token.KwOpenC),
		items.Separated(token.KwSemi).WithTrailing().AsBlock(),
		schedule.Optional(token.KwCloseC),
	)
}

func kw(k token.Keyword) schedule.Instr { return schedule.Keyword(k) }

func build() *schedule.Registry {
	r := schedule.NewRegistry()

	r.Register(ast.ShapeModule, schedule.HandlerFunc(func(n annot.Node) []schedule.Instr {
		m := n.(*ast.Module)
		var out []schedule.Instr
		if m.Name != nil {
			out = append(out,
				kw(token.KwModule),
				schedule.Child(func(m *ast.Module) annot.Node { return m.Name }),
				kw(token.KwWhere),
			)
		}
		return append(out,
			schedule.Layout(
				schedule.Optional(token.KwOpenC),
				schedule.List(func(m *ast.Module) []annot.Node { return schedule.Nodes(m.Imports) }).
					Separated(token.KwSemi).WithTrailing().AsBlock(),
				schedule.Child(func(m *ast.Module) annot.Node { return m.Body }),
				schedule.Optional(token.KwCloseC),
			),
			schedule.EOF(func(m *ast.Module) source.Pos { return m.EOF }),
		)
	}))

	r.Register(ast.ShapeModName, schedule.Fixed(
		schedule.Val(func(n *ast.ModName) string { return n.Name }),
	))

	r.Register(ast.ShapeImport, schedule.Fixed(
		kw(token.KwImport),
		schedule.Optional(token.KwQualified),
		schedule.Child(func(n *ast.Import) annot.Node { return n.Name }),
		schedule.Optional(token.KwAs),
		schedule.Child(func(n *ast.Import) annot.Node { return n.As }),
	))

	r.Register(ast.ShapeBinds, schedule.Fixed(
		block(schedule.SortedList(func(n *ast.Binds) []annot.Node { return n.Decls() })),
	))

	r.Register(ast.ShapeSig, schedule.Fixed(
		schedule.List(func(n *ast.Sig) []annot.Node { return schedule.Nodes(n.Names) }).Separated(token.KwComma),
		kw(token.KwDColon),
		schedule.Child(func(n *ast.Sig) annot.Node { return n.Type }),
	))

	r.Register(ast.ShapeFunBind, schedule.Fixed(
		schedule.Child(func(n *ast.FunBind) annot.Node { return n.Name }),
		schedule.List(func(n *ast.FunBind) []annot.Node { return schedule.Nodes(n.Pats) }),
		kw(token.KwEqual),
		schedule.Child(func(n *ast.FunBind) annot.Node { return n.Rhs }),
		schedule.Optional(token.KwWhere),
		schedule.Child(func(n *ast.FunBind) annot.Node { return n.Where }),
	))

	varText := schedule.Val(func(n *ast.Var) string { return n.Name })
	r.Register(ast.ShapeVar, schedule.HandlerFunc(func(n annot.Node) []schedule.Instr {
		if n.(*ast.Var).Parens {
			return []schedule.Instr{kw(token.KwOpenP), varText, kw(token.KwCloseP)}
		}
		return []schedule.Instr{varText}
	}))

	conText := schedule.Val(func(n *ast.Con) string { return n.Name })
	r.Register(ast.ShapeCon, schedule.HandlerFunc(func(n annot.Node) []schedule.Instr {
		if n.(*ast.Con).Special {
			return []schedule.Instr{
				kw(token.KwOpenP),
				schedule.Counted(token.KwComma, func(n *ast.Con) int { return n.Commas }),
				kw(token.KwCloseP),
			}
		}
		return []schedule.Instr{conText}
	}))

	r.Register(ast.ShapeLit, schedule.Fixed(schedule.Val(func(n *ast.Lit) string { return n.Text })))
	r.Register(ast.ShapeWild, schedule.Fixed(kw(token.KwWild)))

	r.Register(ast.ShapeApp, schedule.Fixed(
		schedule.Child(func(n *ast.App) annot.Node { return n.Fun }),
		schedule.Child(func(n *ast.App) annot.Node { return n.Arg }),
	))

	r.Register(ast.ShapeOpApp, schedule.Fixed(
		schedule.Child(func(n *ast.OpApp) annot.Node { return n.Left }),
		schedule.Val(func(n *ast.OpApp) string { return n.Op }),
		schedule.Child(func(n *ast.OpApp) annot.Node { return n.Right }),
	))

	r.Register(ast.ShapePar, schedule.Fixed(
		kw(token.KwOpenP),
		schedule.Child(func(n *ast.Par) annot.Node { return n.Inner }),
		kw(token.KwCloseP),
	))

	r.Register(ast.ShapeTuple, schedule.Fixed(
		kw(token.KwOpenP),
		schedule.List(func(n *ast.Tuple) []annot.Node { return schedule.Nodes(n.Elems) }).Separated(token.KwComma),
		kw(token.KwCloseP),
	))

	r.Register(ast.ShapeList, schedule.Fixed(
		kw(token.KwOpenS),
		schedule.List(func(n *ast.List) []annot.Node { return schedule.Nodes(n.Elems) }).Separated(token.KwComma),
		kw(token.KwCloseS),
	))

	r.Register(ast.ShapeLambda, schedule.Fixed(
		kw(token.KwLam),
		schedule.List(func(n *ast.Lambda) []annot.Node { return schedule.Nodes(n.Pats) }),
		kw(token.KwRArrow),
		schedule.Child(func(n *ast.Lambda) annot.Node { return n.Body }),
	))

	r.Register(ast.ShapeLet, schedule.Fixed(
		kw(token.KwLet),
		schedule.Child(func(n *ast.Let) annot.Node { return n.Binds }),
		kw(token.KwIn),
		schedule.Child(func(n *ast.Let) annot.Node { return n.Body }),
	))

	// The semicolons are the optional ones of DoAndIfThenElse; the parser
	// always records two, zero-width when absent.
	r.Register(ast.ShapeIf, schedule.Fixed(
		kw(token.KwIf),
		schedule.Child(func(n *ast.If) annot.Node { return n.Cond }),
		schedule.At(token.KwSemi, 0),
		kw(token.KwThen),
		schedule.Child(func(n *ast.If) annot.Node { return n.Then }),
		schedule.At(token.KwSemi, 1),
		kw(token.KwElse),
		schedule.Child(func(n *ast.If) annot.Node { return n.Else }),
	))

	r.Register(ast.ShapeDo, schedule.Fixed(
		kw(token.KwDo),
		block(schedule.List(func(n *ast.Do) []annot.Node { return schedule.Nodes(n.Stmts) })),
	))

	r.Register(ast.ShapeCase, schedule.Fixed(
		kw(token.KwCase),
		schedule.Child(func(n *ast.Case) annot.Node { return n.Scrut }),
		kw(token.KwOf),
		block(schedule.List(func(n *ast.Case) []annot.Node { return schedule.Nodes(n.Alts) })),
	))

	r.Register(ast.ShapeAlt, schedule.Fixed(
		schedule.Child(func(n *ast.Alt) annot.Node { return n.Pat }),
		kw(token.KwRArrow),
		schedule.Child(func(n *ast.Alt) annot.Node { return n.Rhs }),
	))

	r.Register(ast.ShapeBindStmt, schedule.Fixed(
		schedule.Child(func(n *ast.BindStmt) annot.Node { return n.Pat }),
		kw(token.KwLArrow),
		schedule.Child(func(n *ast.BindStmt) annot.Node { return n.Expr }),
	))

	r.Register(ast.ShapeLetStmt, schedule.Fixed(
		kw(token.KwLet),
		schedule.Child(func(n *ast.LetStmt) annot.Node { return n.Binds }),
	))

	r.Register(ast.ShapeBodyStmt, schedule.Fixed(
		schedule.Child(func(n *ast.BodyStmt) annot.Node { return n.Expr }),
	))

	r.Register(ast.ShapeConPat, schedule.Fixed(
		schedule.Child(func(n *ast.ConPat) annot.Node { return n.Con }),
		schedule.List(func(n *ast.ConPat) []annot.Node { return schedule.Nodes(n.Args) }),
	))

	r.Register(ast.ShapeFunTy, schedule.Fixed(
		schedule.Child(func(n *ast.FunTy) annot.Node { return n.Arg }),
		kw(token.KwRArrow),
		schedule.Child(func(n *ast.FunTy) annot.Node { return n.Res }),
	))

	r.Register(ast.ShapeWrap, schedule.Unsupported("renamer output has no surface syntax"))

	return r
}
