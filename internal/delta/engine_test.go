package delta_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"exactprint/internal/annot"
	"exactprint/internal/ast"
	"exactprint/internal/delta"
	"exactprint/internal/diag"
	"exactprint/internal/format"
	"exactprint/internal/grammar"
	"exactprint/internal/parser"
	"exactprint/internal/schedule"
	"exactprint/internal/source"
	"exactprint/internal/testkit"
	"exactprint/internal/token"
)

func parse(t *testing.T, src string) parser.Result {
	t.Helper()
	bag := diag.NewBag(50)
	res, _ := parser.ParseSource("test.hs", []byte(src), parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse %q: %v", src, bag.Items())
	}
	return res
}

func relativize(t *testing.T, parsed parser.Result, bag *diag.Bag) *delta.Result {
	t.Helper()
	res, err := delta.Relativize(context.Background(), delta.Input{
		Root:     parsed.Module,
		Facts:    parsed.Facts,
		Comments: parsed.Comments,
	}, delta.Options{Registry: grammar.Registry(), Reporter: &diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("relativize: %v", err)
	}
	return res
}

func TestConservation(t *testing.T) {
	ctx := context.Background()
	for _, tc := range testkit.Corpus {
		t.Run(tc.Name, func(t *testing.T) {
			p, err := testkit.Annotate(ctx, tc.Src)
			if err != nil {
				t.Fatalf("annotate: %v", err)
			}
			if err := testkit.CheckFactConservation(p.Parsed.Facts, p.Delta); err != nil {
				t.Fatalf("facts: %v", err)
			}
			if err := testkit.CheckCommentConservation(p.Parsed.Comments, p.Delta); err != nil {
				t.Fatalf("comments: %v", err)
			}
			if err := testkit.CheckSpanNesting(p.Module()); err != nil {
				t.Fatalf("spans: %v", err)
			}
			if len(p.Delta.Synthesized) != 0 || len(p.Delta.Unallocated) != 0 {
				t.Fatalf("synthesized %v, unallocated %v", p.Delta.Synthesized, p.Delta.Unallocated)
			}
			if n := p.Bag.Count(diag.AnnAmbiguousFact) + p.Bag.Count(diag.AnnResidueFact); n != 0 {
				t.Fatalf("unexpected diagnostics: %v", p.Bag.Items())
			}
		})
	}
}

func TestEveryNodeHasARecord(t *testing.T) {
	p, err := testkit.Annotate(context.Background(), "main = do\n  x <- get\n  let y = x\n  put (y, [x])\n")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	nodes := 0
	err = grammar.Registry().Walk(p.Module(), func(n, _ annot.Node) error {
		nodes++
		if _, ok := p.Store().Lookup(n); !ok {
			t.Errorf("no record for %s", annot.KeyOf(n))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if p.Store().Len() != nodes {
		t.Fatalf("store has %d records for %d nodes", p.Store().Len(), nodes)
	}
}

func TestImplicitLayoutIsDropped(t *testing.T) {
	parsed := parse(t, "f = do\n  a\n  b\n")
	res := relativize(t, parsed, diag.NewBag(10))
	// module braces, do braces and the separator before b
	if res.Dropped != 5 {
		t.Fatalf("dropped %d facts, want 5", res.Dropped)
	}
	do := parsed.Module.Body.Binds[0].Rhs.(*ast.Do)
	ann, ok := res.Store.Lookup(do)
	if !ok {
		t.Fatalf("no record for do")
	}
	if len(ann.Tokens) != 1 || ann.Tokens[0].Kw != token.KwDo {
		t.Fatalf("do tokens %+v", ann.Tokens)
	}
	second, _ := res.Store.Lookup(do.Stmts[1])
	if second.Entry != (source.DeltaPos{Line: 1}) {
		t.Fatalf("second statement entry %v, want it on the baseline", second.Entry)
	}
}

func TestUnicodeSpellingIsRecorded(t *testing.T) {
	parsed := parse(t, "f ∷ Int → Int\nf x = x\n")
	res := relativize(t, parsed, diag.NewBag(10))
	sig := parsed.Module.Body.Sigs[0]
	ann, _ := res.Store.Lookup(sig)
	if len(ann.Tokens) != 1 || ann.Tokens[0].Kw != token.KwDColon || !ann.Tokens[0].Unicode {
		t.Fatalf("sig tokens %+v", ann.Tokens)
	}
	arrow, _ := res.Store.Lookup(sig.Type)
	if len(arrow.Tokens) != 1 || !arrow.Tokens[0].Unicode {
		t.Fatalf("arrow tokens %+v", arrow.Tokens)
	}
}

func TestSurplusFactBecomesTrailingComment(t *testing.T) {
	parsed := parse(t, "f = 1\n")
	fb := parsed.Module.Body.Binds[0]
	extra := source.Span{Start: source.Pos{Line: 1, Col: 8}, End: source.Pos{Line: 1, Col: 9}}
	parsed.Facts.Add(annot.KeyOf(fb), annot.Fact{Kw: token.KwEqual, Span: extra, Text: "="})

	bag := diag.NewBag(10)
	res := relativize(t, parsed, bag)
	if bag.Count(diag.AnnAmbiguousFact) != 1 {
		t.Fatalf("want one ambiguity warning, got %v", bag.Items())
	}
	if bag.Count(diag.AnnResidueFact) != 1 {
		t.Fatalf("want one residue warning, got %v", bag.Items())
	}
	if len(res.Synthesized) != 1 {
		t.Fatalf("synthesized %v", res.Synthesized)
	}
	c := res.Synthesized[0]
	if c.Text != "=" || c.Span != extra || c.Origin != token.KwEqual.String() {
		t.Fatalf("synthesized comment %+v", c)
	}
	if err := testkit.CheckFactConservation(parsed.Facts, res); err != nil {
		t.Fatalf("facts: %v", err)
	}

	// the earliest fact is the one printed in place
	ann, _ := res.Store.Lookup(fb)
	if len(ann.Tokens) != 1 || ann.Tokens[0].Delta != (source.DeltaPos{Col: 1}) {
		t.Fatalf("funbind tokens %+v", ann.Tokens)
	}
	out, err := format.Print(context.Background(), parsed.Module, res.Store, grammar.Registry(), format.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if want := "f = 1   =\n"; out != want {
		t.Fatalf("want %q, got %q", want, out)
	}
}

func TestUnsupportedShapeFails(t *testing.T) {
	parsed := parse(t, "f = 1\n")
	fb := parsed.Module.Body.Binds[0]
	fb.Rhs = &ast.Wrap{Inner: fb.Rhs}
	_, err := delta.Relativize(context.Background(), delta.Input{
		Root:  parsed.Module,
		Facts: parsed.Facts,
	}, delta.Options{Registry: grammar.Registry()})
	if !errors.Is(err, schedule.ErrUnsupportedShape) {
		t.Fatalf("want ErrUnsupportedShape, got %v", err)
	}
	var se *schedule.ShapeError
	if !errors.As(err, &se) || se.Key.Shape != ast.ShapeWrap {
		t.Fatalf("error does not name the wrap node: %v", err)
	}
}

func TestNoRegistry(t *testing.T) {
	_, err := delta.Relativize(context.Background(), delta.Input{}, delta.Options{})
	if !errors.Is(err, delta.ErrNoRegistry) {
		t.Fatalf("got %v", err)
	}
}

func TestTreeWithoutEOFLeavesCommentsUnallocated(t *testing.T) {
	parsed := parse(t, "f = 1\n-- late\n")
	fb := parsed.Module.Body.Binds[0]
	res, err := delta.Relativize(context.Background(), delta.Input{
		Root:     fb,
		Facts:    parsed.Facts,
		Comments: parsed.Comments,
	}, delta.Options{Registry: grammar.Registry()})
	if err != nil {
		t.Fatalf("relativize: %v", err)
	}
	if len(res.Unallocated) != 1 || !strings.HasPrefix(res.Unallocated[0].Text, "-- late") {
		t.Fatalf("unallocated %v", res.Unallocated)
	}
}

func TestIrregularWhitespaceIsRecordedVerbatim(t *testing.T) {
	p, err := testkit.Annotate(context.Background(), "f x = x\t+ 1  \n")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	op, _ := p.Store().Lookup(p.Module().Body.Binds[0].Rhs)
	if len(op.Tokens) != 1 || op.Tokens[0].Delta.Raw != "\t" {
		t.Fatalf("operator tokens %+v", op.Tokens)
	}
	mod, _ := p.Store().Lookup(p.Module())
	last := mod.Tokens[len(mod.Tokens)-1]
	if last.Kw != token.KwEOF || last.Delta.Raw != "  \n" {
		t.Fatalf("end of input %+v", last)
	}

	// plain spacing needs no copy
	arg, _ := p.Store().Lookup(p.Module().Body.Binds[0].Pats[0])
	if arg.Entry.Raw != "" {
		t.Fatalf("argument entry %v", arg.Entry)
	}
}

func TestWithoutSourceNoRawIsRecorded(t *testing.T) {
	parsed := parse(t, "f x = x\t+ 1\n")
	res := relativize(t, parsed, diag.NewBag(10))
	for _, k := range res.Store.Keys() {
		ann, _ := res.Store.Get(k)
		if ann.Entry.Raw != "" {
			t.Fatalf("%s entry %v", k, ann.Entry)
		}
		for _, td := range ann.Tokens {
			if td.Delta.Raw != "" {
				t.Fatalf("%s token %+v", k, td)
			}
		}
	}
}
