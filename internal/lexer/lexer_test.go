package lexer_test

import (
	"testing"

	"exactprint/internal/diag"
	"exactprint/internal/lexer"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

func lex(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.hs", []byte(src))
	bag := diag.NewBag(100)
	return lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenKinds(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"ident", "foo", []token.Kind{token.VarID, token.EOF}},
		{"con", "Just", []token.Kind{token.ConID, token.EOF}},
		{"qualified con", "Data.Map", []token.Kind{token.ConID, token.EOF}},
		{"qualified var", "Data.Map.lookup", []token.Kind{token.VarID, token.EOF}},
		{"primes", "x' x''", []token.Kind{token.VarID, token.VarID, token.EOF}},
		{"number", "42 0xff 1.5e3", []token.Kind{token.IntLit, token.IntLit, token.IntLit, token.EOF}},
		{"string", `"a\"b"`, []token.Kind{token.StringLit, token.EOF}},
		{"char", `'a' '\n'`, []token.Kind{token.CharLit, token.CharLit, token.EOF}},
		{"operator", "x + y", []token.Kind{token.VarID, token.VarSym, token.VarID, token.EOF}},
		{"arrow", "a -> b", []token.Kind{token.VarID, token.Reserved, token.VarID, token.EOF}},
		{"long arrow is operator", "a --> b", []token.Kind{token.VarID, token.VarSym, token.VarID, token.EOF}},
		{"wild", "_ _x", []token.Kind{token.Reserved, token.VarID, token.EOF}},
		{"specials", "(,)", []token.Kind{token.Reserved, token.Reserved, token.Reserved, token.EOF}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toks, bag := lex(t, tc.src)
			got := kinds(toks)
			if len(got) != len(tc.want) {
				t.Fatalf("kinds = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("kinds = %v, want %v", got, tc.want)
				}
			}
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestReservedKeywords(t *testing.T) {
	toks, _ := lex(t, "module where let in :: ∷ \\ <- ← = ;")
	want := []token.Keyword{
		token.KwModule, token.KwWhere, token.KwLet, token.KwIn,
		token.KwDColon, token.KwDColon, token.KwLam, token.KwLArrow,
		token.KwLArrow, token.KwEqual, token.KwSemi,
	}
	for i, kw := range want {
		if !toks[i].Is(kw) {
			t.Fatalf("token %d = %v %q, want %v", i, toks[i].Kind, toks[i].Text, kw)
		}
	}
}

func TestPositionsCountRunes(t *testing.T) {
	toks, _ := lex(t, "f ∷ Int\n  → x")
	cases := []struct {
		idx   int
		start source.Pos
		end   source.Pos
	}{
		{0, source.Pos{Line: 1, Col: 0}, source.Pos{Line: 1, Col: 1}},
		{1, source.Pos{Line: 1, Col: 2}, source.Pos{Line: 1, Col: 3}},
		{2, source.Pos{Line: 1, Col: 4}, source.Pos{Line: 1, Col: 7}},
		{3, source.Pos{Line: 2, Col: 2}, source.Pos{Line: 2, Col: 3}},
	}
	for _, tc := range cases {
		sp := toks[tc.idx].Span
		if sp.Start != tc.start || sp.End != tc.end {
			t.Fatalf("token %d span = %v, want %v-%v", tc.idx, sp, tc.start, tc.end)
		}
	}
}

func TestCommentsAreTrivia(t *testing.T) {
	toks, bag := lex(t, "x -- note\n{- a {- nested -} b -}\n{-# LANGUAGE X #-}\ny")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	var comments []token.Trivia
	for _, tr := range toks[1].Leading {
		if tr.Kind.IsComment() {
			comments = append(comments, tr)
		}
	}
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	if comments[0].Text != "-- note" || comments[0].Kind != token.TriviaLineComment {
		t.Fatalf("line comment = %+v", comments[0])
	}
	if comments[1].Text != "{- a {- nested -} b -}" || comments[1].Kind != token.TriviaBlockComment {
		t.Fatalf("block comment = %+v", comments[1])
	}
	if comments[2].Kind != token.TriviaPragma {
		t.Fatalf("pragma kind = %v", comments[2].Kind)
	}
	for _, c := range comments {
		if c.Span.End != c.Span.Start.Advance(c.Text) {
			t.Fatalf("comment %q span %v does not match its text", c.Text, c.Span)
		}
	}
}

func TestTrailingCommentsStickToEOF(t *testing.T) {
	toks, _ := lex(t, "x\n-- tail\n")
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("last token = %v", eof.Kind)
	}
	found := false
	for _, tr := range eof.Leading {
		if tr.Kind == token.TriviaLineComment && tr.Text == "-- tail" {
			found = true
		}
	}
	if !found {
		t.Fatalf("EOF leading trivia lost the comment: %+v", eof.Leading)
	}
	if eof.Span.Start != (source.Pos{Line: 3, Col: 0}) {
		t.Fatalf("EOF at %v", eof.Span.Start)
	}
}

func TestDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unterminated string", `"abc`, diag.LexUnterminatedString},
		{"unterminated comment", "{- abc", diag.LexUnterminatedBlockComment},
		{"bad char", "'ab'", diag.LexBadChar},
		{"tab", "x\ty", diag.LexTabColumn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag := lex(t, tc.src)
			if bag.Count(tc.code) == 0 {
				t.Fatalf("expected %v, got %v", tc.code, bag.Items())
			}
		})
	}
}

func TestTabReportedOnce(t *testing.T) {
	_, bag := lex(t, "a\tb\tc")
	if n := bag.Count(diag.LexTabColumn); n != 1 {
		t.Fatalf("tab diagnostics = %d, want 1", n)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("peek.hs", []byte("a b"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	p := lx.Peek()
	n := lx.Next()
	if p.Text != "a" || n.Text != "a" {
		t.Fatalf("peek %q next %q", p.Text, n.Text)
	}
	if lx.Next().Text != "b" {
		t.Fatal("second token lost")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("EOF must repeat")
	}
}
