// Package testkit runs sources through the exact-print passes and checks
// the invariants every run must keep. It is shared by the package tests.
package testkit

import (
	"context"
	"fmt"
	"slices"

	"exactprint/internal/annot"
	"exactprint/internal/ast"
	"exactprint/internal/balance"
	"exactprint/internal/delta"
	"exactprint/internal/diag"
	"exactprint/internal/format"
	"exactprint/internal/grammar"
	"exactprint/internal/parser"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

// Pass is one source taken through parsing, relativization and balance.
type Pass struct {
	File    *source.File
	Parsed  parser.Result
	Delta   *delta.Result
	Balance balance.Result
	Bag     *diag.Bag
}

// Module returns the parsed tree.
func (p *Pass) Module() *ast.Module { return p.Parsed.Module }

// Store returns the annotation store built for the tree.
func (p *Pass) Store() *annot.Store { return p.Delta.Store }

// Annotate parses src and builds its balanced annotation store. Syntax
// errors fail the run; other diagnostics are left in Bag.
func Annotate(ctx context.Context, src string) (*Pass, error) {
	bag := diag.NewBag(200)
	rep := &diag.BagReporter{Bag: bag}
	parsed, file := parser.ParseSource("test.hs", []byte(src), parser.Options{Reporter: rep})
	if bag.HasErrors() {
		return nil, fmt.Errorf("parse %q: %v", src, bag.Items())
	}
	reg := grammar.Registry()
	res, err := delta.Relativize(ctx, delta.Input{
		Root:     parsed.Module,
		Facts:    parsed.Facts,
		Comments: parsed.Comments,
		Source:   file,
	}, delta.Options{Registry: reg, Reporter: rep})
	if err != nil {
		return nil, err
	}
	bal, err := balance.Run(ctx, parsed.Module, res.Store, balance.Options{Registry: reg, Reporter: rep})
	if err != nil {
		return nil, err
	}
	return &Pass{File: file, Parsed: parsed, Delta: res, Balance: bal, Bag: bag}, nil
}

// Print renders the pass's tree with its store.
func (p *Pass) Print(ctx context.Context, opt format.Options) (string, error) {
	if opt.Reporter == nil {
		opt.Reporter = &diag.BagReporter{Bag: p.Bag}
	}
	return format.Print(ctx, p.Parsed.Module, p.Delta.Store, grammar.Registry(), opt)
}

// RoundTrip annotates src and prints it back unchanged.
func RoundTrip(ctx context.Context, src string) (string, *Pass, error) {
	p, err := Annotate(ctx, src)
	if err != nil {
		return "", nil, err
	}
	out, err := p.Print(ctx, format.Options{})
	return out, p, err
}

// CheckFactConservation verifies that every fact of the table was either
// turned into a token delta, skipped as a virtual separator, synthesized
// into a comment, or dropped as zero-width scaffolding.
func CheckFactConservation(facts *annot.FactTable, res *delta.Result) error {
	if got, want := res.Consumed+res.Dropped, facts.Len(); got != want {
		return fmt.Errorf("consumed %d + dropped %d = %d, table has %d facts", res.Consumed, res.Dropped, got, want)
	}
	tokens := 0
	for _, k := range res.Store.Keys() {
		ann, _ := res.Store.Get(k)
		for _, td := range ann.Tokens {
			if td.Comment == nil && td.Kw != token.KwEOF && !td.IsBoundary() {
				tokens++
			}
		}
	}
	if got := tokens + res.Skipped + len(res.Synthesized); got != res.Consumed {
		return fmt.Errorf("tokens %d + skipped %d + synthesized %d = %d, consumed %d",
			tokens, res.Skipped, len(res.Synthesized), got, res.Consumed)
	}
	return nil
}

type commentID struct {
	span source.Span
	text string
}

// CheckCommentConservation verifies that every input comment, and every
// comment synthesized from residue, is attached exactly once.
func CheckCommentConservation(input []annot.Comment, res *delta.Result) error {
	want := make(map[commentID]int)
	for _, c := range input {
		want[commentID{c.Span, c.Text}]++
	}
	for _, c := range res.Synthesized {
		want[commentID{c.Span, c.Text}]++
	}
	got := make(map[commentID]int)
	for _, c := range res.Store.Comments() {
		got[commentID{c.Span, c.Text}]++
	}
	for _, c := range res.Unallocated {
		got[commentID{c.Span, c.Text}]++
	}
	var missing, extra []string
	for id, n := range want {
		if got[id] < n {
			missing = append(missing, fmt.Sprintf("%q@%s", id.text, id.span))
		}
	}
	for id, n := range got {
		if want[id] < n {
			extra = append(extra, fmt.Sprintf("%q@%s", id.text, id.span))
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		slices.Sort(missing)
		slices.Sort(extra)
		return fmt.Errorf("comments missing %v, duplicated %v", missing, extra)
	}
	return nil
}

// CheckSpanNesting verifies that every node with a real span lies inside
// its parent's span.
func CheckSpanNesting(root annot.Node) error {
	return grammar.Registry().Walk(root, func(n, parent annot.Node) error {
		if parent == nil || !n.Span().IsValid() || !parent.Span().IsValid() {
			return nil
		}
		if !parent.Span().Contains(n.Span()) {
			return fmt.Errorf("%s is outside its parent %s", annot.KeyOf(n), annot.KeyOf(parent))
		}
		return nil
	})
}
