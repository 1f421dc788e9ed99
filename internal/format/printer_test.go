package format_test

import (
	"bytes"
	"context"
	"html"
	"regexp"
	"strings"
	"testing"

	"exactprint/internal/annot"
	"exactprint/internal/ast"
	"exactprint/internal/format"
	"exactprint/internal/grammar"
	"exactprint/internal/source"
	"exactprint/internal/testkit"
)

func TestRoundTripIdentity(t *testing.T) {
	ctx := context.Background()
	for _, tc := range testkit.Corpus {
		t.Run(tc.Name, func(t *testing.T) {
			out, _, err := testkit.RoundTrip(ctx, tc.Src)
			if err != nil {
				t.Fatalf("round trip: %v", err)
			}
			if out != tc.Src {
				t.Fatalf("output differs\nwant %q\ngot  %q", tc.Src, out)
			}
		})
	}
}

// Printing the reparsed output must give the same text again.
func TestReprintIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for _, tc := range testkit.Corpus {
		t.Run(tc.Name, func(t *testing.T) {
			once, _, err := testkit.RoundTrip(ctx, tc.Src)
			if err != nil {
				t.Fatalf("first round: %v", err)
			}
			twice, _, err := testkit.RoundTrip(ctx, once)
			if err != nil {
				t.Fatalf("second round of %q: %v", once, err)
			}
			if twice != tc.Src {
				t.Fatalf("reprint drifted\nwant %q\nonce %q\ntwice %q", tc.Src, once, twice)
			}
		})
	}
}

func TestListSeparatorsStayInTheirGaps(t *testing.T) {
	ctx := context.Background()
	p, err := testkit.Annotate(ctx, "f = [1,  2 ,3]\n")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	list := p.Module().Body.Binds[0].Rhs
	ann, ok := p.Store().Lookup(list)
	if !ok {
		t.Fatalf("no record for the list")
	}
	var kinds []string
	for _, td := range ann.Tokens {
		if td.IsBoundary() {
			kinds = append(kinds, "|")
			continue
		}
		kinds = append(kinds, td.Kw.Text())
	}
	if got, want := strings.Join(kinds, " "), "[ , | , | ]"; got != want {
		t.Fatalf("tokens %q, want %q", got, want)
	}
	out, err := p.Print(ctx, format.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if want := "f = [1,  2 ,3]\n"; out != want {
		t.Fatalf("want %q, got %q", want, out)
	}
}

func TestRemovedListItemDropsItsSeparator(t *testing.T) {
	ctx := context.Background()
	p, err := testkit.Annotate(ctx, "f = [a, b, c]\n")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	list := p.Module().Body.Binds[0].Rhs.(*ast.List)
	list.Elems = list.Elems[:2]
	out, err := p.Print(ctx, format.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if want := "f = [a, b]\n"; out != want {
		t.Fatalf("want %q, got %q", want, out)
	}
}

func TestPrintWithoutStoreUsesDefaults(t *testing.T) {
	ctx := context.Background()
	p, err := testkit.Annotate(ctx, "f x = x + 1\n")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	out, err := format.Print(ctx, p.Module(), annot.NewStore(), grammar.Registry(), format.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if out != "f x = x + 1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestInsertedDeclarationGetsDefaults(t *testing.T) {
	ctx := context.Background()
	p, err := testkit.Annotate(ctx, "f = 1\n")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	body := p.Module().Body
	body.Binds = append(body.Binds, &ast.FunBind{
		Name: &ast.Var{Name: "g"},
		Rhs:  &ast.Lit{Text: "2"},
	})
	out, err := p.Print(ctx, format.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	const want = "f = 1\ng = 2\n"
	if out != want {
		t.Fatalf("want %q, got %q", want, out)
	}

	// the edited output is itself a fixed point
	again, _, err := testkit.RoundTrip(ctx, out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if again != out {
		t.Fatalf("second round differs: %q", again)
	}
}

func TestRemovedStatementKeepsItsNeighbours(t *testing.T) {
	ctx := context.Background()
	p, err := testkit.Annotate(ctx, "f = do { a; b }\n")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	do := p.Module().Body.Binds[0].Rhs.(*ast.Do)
	do.Stmts = do.Stmts[:1]
	out, err := p.Print(ctx, format.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if want := "f = do { a; }\n"; out != want {
		t.Fatalf("want %q, got %q", want, out)
	}
}

func TestSortKeyRestoresSourceOrder(t *testing.T) {
	ctx := context.Background()
	const src = "f = g\n  where\n    g = 1\n    g :: Int\n"
	p, err := testkit.Annotate(ctx, src)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	where := p.Module().Body.Binds[0].Where
	ann, ok := p.Store().Lookup(where)
	if !ok {
		t.Fatalf("no record for where block")
	}
	if len(ann.SortKey) != 2 || ann.SortKey[0].Shape != ast.ShapeFunBind || ann.SortKey[1].Shape != ast.ShapeSig {
		t.Fatalf("unexpected sort key %v", ann.SortKey)
	}
	out, err := p.Print(ctx, format.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if out != src {
		t.Fatalf("want %q, got %q", src, out)
	}
}

func TestLayoutShiftMovesSiblings(t *testing.T) {
	ctx := context.Background()
	p, err := testkit.Annotate(ctx, "f = do\n  a\n  b\n")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	do := p.Module().Body.Binds[0].Rhs.(*ast.Do)
	ann, ok := p.Store().Lookup(do.Stmts[0])
	if !ok {
		t.Fatalf("no record for first statement")
	}
	if ann.Entry != (source.DeltaPos{Line: 1, Col: 2}) {
		t.Fatalf("entry %v", ann.Entry)
	}
	ann.Entry.Col += 2
	out, err := p.Print(ctx, format.Options{})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if want := "f = do\n    a\n    b\n"; out != want {
		t.Fatalf("want %q, got %q", want, out)
	}
}

var tag = regexp.MustCompile(`<[^>]*>`)

func TestWrapAndTransform(t *testing.T) {
	ctx := context.Background()
	const src = "-- a < b\nf x = x < 1 {- & -}\n"
	p, err := testkit.Annotate(ctx, src)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	wrapped := 0
	out, err := p.Print(ctx, format.Options{
		Wrap: func(n annot.Node, chunk string) string {
			wrapped++
			return `<span class="` + string(n.Shape()) + `">` + chunk + "</span>"
		},
		Transform: html.EscapeString,
	})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if wrapped == 0 {
		t.Fatalf("wrap never called")
	}
	if !bytes.Contains([]byte(out), []byte(`<span class="FunBind">`)) {
		t.Fatalf("no FunBind span in %q", out)
	}
	if got := html.UnescapeString(tag.ReplaceAllString(out, "")); got != src {
		t.Fatalf("markup does not strip back to the source\nwant %q\ngot  %q", src, got)
	}
}

func TestPrintFromDecodedStore(t *testing.T) {
	ctx := context.Background()
	for _, tc := range testkit.Corpus {
		t.Run(tc.Name, func(t *testing.T) {
			p, err := testkit.Annotate(ctx, tc.Src)
			if err != nil {
				t.Fatalf("annotate: %v", err)
			}
			var buf bytes.Buffer
			if err := p.Store().EncodeMsgpack(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}
			store, err := annot.DecodeMsgpack(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			out, err := format.Print(ctx, p.Module(), store, grammar.Registry(), format.Options{})
			if err != nil {
				t.Fatalf("print: %v", err)
			}
			if out != tc.Src {
				t.Fatalf("want %q, got %q", tc.Src, out)
			}
		})
	}
}

func TestWriterMove(t *testing.T) {
	w := format.NewWriter(source.StartPos, nil)
	w.Text("ab")
	w.Move(source.DeltaPos{Col: 2}, 0)
	w.Text("c")
	w.Move(source.DeltaPos{Line: 2, Col: 1}, 4)
	w.Text("d")
	if got, want := w.String(), "ab  c\n\n     d"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if w.Pos() != (source.Pos{Line: 3, Col: 6}) {
		t.Fatalf("cursor %v", w.Pos())
	}
}

func TestWriterMoveKeepsRawGap(t *testing.T) {
	w := format.NewWriter(source.StartPos, nil)
	w.Text("x")
	w.Move(source.DeltaPos{Col: 1, Raw: "\t"}, 0)
	w.Text("+")
	w.Move(source.DeltaPos{Line: 1, Col: 1, Raw: "  \n\t"}, 4)
	w.Text("y")
	if got, want := w.String(), "x\t+  \n\ty"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if w.Pos() != (source.Pos{Line: 2, Col: 2}) {
		t.Fatalf("cursor %v", w.Pos())
	}
	if w.Last() != 'y' {
		t.Fatalf("last rune %q", w.Last())
	}
}
