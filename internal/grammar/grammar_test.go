package grammar

import (
	"errors"
	"testing"

	"exactprint/internal/annot"
	"exactprint/internal/ast"
	"exactprint/internal/schedule"
	"exactprint/internal/token"
)

func TestEveryShapeIsScheduled(t *testing.T) {
	nodes := []annot.Node{
		&ast.Module{}, &ast.Module{Name: &ast.ModName{Name: "M"}}, &ast.ModName{},
		&ast.Import{}, &ast.Binds{}, &ast.Sig{}, &ast.FunBind{},
		&ast.Var{}, &ast.Var{Parens: true}, &ast.Con{}, &ast.Con{Special: true, Commas: 2},
		&ast.Lit{}, &ast.Wild{}, &ast.App{}, &ast.OpApp{}, &ast.Par{}, &ast.Tuple{},
		&ast.List{}, &ast.Lambda{}, &ast.Let{}, &ast.If{}, &ast.Do{}, &ast.Case{},
		&ast.Alt{}, &ast.BindStmt{}, &ast.LetStmt{}, &ast.BodyStmt{}, &ast.ConPat{},
		&ast.FunTy{},
	}
	for _, n := range nodes {
		instrs, err := Registry().Instructions(n)
		if err != nil {
			t.Fatalf("%s: %v", n.Shape(), err)
		}
		if len(instrs) == 0 {
			t.Fatalf("%s: empty schedule", n.Shape())
		}
	}
}

func TestWrapIsUnsupported(t *testing.T) {
	_, err := Registry().Instructions(&ast.Wrap{})
	if !errors.Is(err, schedule.ErrUnsupportedShape) {
		t.Fatalf("got %v", err)
	}
}

func TestScheduleShapes(t *testing.T) {
	tests := []struct {
		name   string
		node   annot.Node
		single map[token.Keyword]int
		multi  []token.Keyword
	}{
		{"if", &ast.If{}, map[token.Keyword]int{token.KwIf: 1, token.KwThen: 1, token.KwElse: 1}, []token.Keyword{token.KwSemi}},
		{"do", &ast.Do{}, map[token.Keyword]int{token.KwDo: 1, token.KwOpenC: 1, token.KwCloseC: 1}, []token.Keyword{token.KwSemi}},
		{"special con", &ast.Con{Special: true}, map[token.Keyword]int{token.KwOpenP: 1, token.KwCloseP: 1}, []token.Keyword{token.KwComma}},
		{"operator var", &ast.Var{Parens: true}, map[token.Keyword]int{token.KwOpenP: 1, token.KwVal: 1, token.KwCloseP: 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instrs, err := Registry().Instructions(tt.node)
			if err != nil {
				t.Fatalf("instructions: %v", err)
			}
			single, multi := schedule.Expectations(instrs)
			for kw, n := range tt.single {
				if single[kw] != n {
					t.Fatalf("%q: want %d slot(s), got %d", kw, n, single[kw])
				}
			}
			for _, kw := range tt.multi {
				if !multi[kw] {
					t.Fatalf("%q should recur", kw)
				}
			}
		})
	}
}

func TestRegistryIsShared(t *testing.T) {
	if Registry() != Registry() {
		t.Fatalf("registry rebuilt")
	}
}
