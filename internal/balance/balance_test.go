package balance_test

import (
	"context"
	"testing"

	"exactprint/internal/annot"
	"exactprint/internal/ast"
	"exactprint/internal/balance"
	"exactprint/internal/delta"
	"exactprint/internal/diag"
	"exactprint/internal/grammar"
	"exactprint/internal/parser"
	"exactprint/internal/source"
	"exactprint/internal/testkit"
	"exactprint/internal/token"
)

func relativize(t *testing.T, src string) (*ast.Module, *annot.Store) {
	t.Helper()
	bag := diag.NewBag(50)
	parsed, _ := parser.ParseSource("test.hs", []byte(src), parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse: %v", bag.Items())
	}
	res, err := delta.Relativize(context.Background(), delta.Input{
		Root:     parsed.Module,
		Facts:    parsed.Facts,
		Comments: parsed.Comments,
	}, delta.Options{Registry: grammar.Registry()})
	if err != nil {
		t.Fatalf("relativize: %v", err)
	}
	return parsed.Module, res.Store
}

func TestTrailingCommentMovesToPrecedingDecl(t *testing.T) {
	m, store := relativize(t, "foo = 1 -- c1\nbar = 2\n")
	foo, bar := m.Body.Binds[0], m.Body.Binds[1]
	if ann, _ := store.Lookup(bar); len(ann.Prior) != 1 {
		t.Fatalf("before balance bar has %d prior comments", len(ann.Prior))
	}

	res, err := balance.Run(context.Background(), m, store, balance.Options{Registry: grammar.Registry()})
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if res.Candidates != 1 || res.Moved != 1 {
		t.Fatalf("result %+v", res)
	}
	ann, _ := store.Lookup(foo)
	if len(ann.Following) != 1 || ann.Following[0].Comment.Text != "-- c1" {
		t.Fatalf("foo following %+v", ann.Following)
	}
	if ann.Following[0].Delta != (source.DeltaPos{Col: 1}) {
		t.Fatalf("delta %v", ann.Following[0].Delta)
	}
	if ann, _ := store.Lookup(bar); len(ann.Prior) != 0 {
		t.Fatalf("bar still has prior %+v", ann.Prior)
	}
}

func TestTrailingCommentInDoBlock(t *testing.T) {
	m, store := relativize(t, "main = do\n  foo -- c1\n  bar\n")
	if _, err := balance.Run(context.Background(), m, store, balance.Options{Registry: grammar.Registry()}); err != nil {
		t.Fatalf("balance: %v", err)
	}
	do := m.Body.Binds[0].Rhs.(*ast.Do)
	ann, _ := store.Lookup(do.Stmts[0])
	if len(ann.Following) != 1 {
		t.Fatalf("first statement following %+v", ann.Following)
	}
	// the variable ends at the same place but the comment is outside its parent
	v := do.Stmts[0].(*ast.BodyStmt).Expr
	if va, _ := store.Lookup(v); len(va.Following) != 0 {
		t.Fatalf("comment attached to the variable")
	}
}

func TestOwnLineCommentStays(t *testing.T) {
	m, store := relativize(t, "f = 1\n-- about g\ng = 2\n")
	res, err := balance.Run(context.Background(), m, store, balance.Options{Registry: grammar.Registry()})
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if res.Candidates != 0 || res.Moved != 0 {
		t.Fatalf("result %+v", res)
	}
	if ann, _ := store.Lookup(m.Body.Binds[1]); len(ann.Prior) != 1 {
		t.Fatalf("g prior %+v", ann.Prior)
	}
}

func TestStructuralEndRefusesComment(t *testing.T) {
	m, store := relativize(t, "f = 1 -- c\ng = 2\n")
	ann, _ := store.Lookup(m.Body.Binds[0])
	ann.Tokens = append(ann.Tokens, annot.TokenDelta{Kw: token.KwSemi})

	bag := diag.NewBag(10)
	res, err := balance.Run(context.Background(), m, store, balance.Options{
		Registry: grammar.Registry(),
		Reporter: &diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if res.Candidates != 1 || res.Moved != 0 {
		t.Fatalf("result %+v", res)
	}
	if bag.Count(diag.BalStructuralEnd) != 1 {
		t.Fatalf("diagnostics %v", bag.Items())
	}
	if g, _ := store.Lookup(m.Body.Binds[1]); len(g.Prior) != 1 {
		t.Fatalf("comment left g: %+v", g.Prior)
	}
}

func TestBalancedOutputIsUnchanged(t *testing.T) {
	ctx := context.Background()
	for _, src := range []string{
		"foo = 1 -- c1\nbar = 2\n",
		"main = do\n  foo -- c1\n  bar -- c2\n",
		"f x = case x of\n  0 -> a -- zero\n  _ -> b\n",
	} {
		out, _, err := testkit.RoundTrip(ctx, src)
		if err != nil {
			t.Fatalf("round trip %q: %v", src, err)
		}
		if out != src {
			t.Fatalf("want %q, got %q", src, out)
		}
	}
}

func TestRequiresRegistryAndStore(t *testing.T) {
	if _, err := balance.Run(context.Background(), &ast.Module{}, nil, balance.Options{}); err == nil {
		t.Fatalf("expected an error")
	}
}
