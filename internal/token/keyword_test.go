package token_test

import (
	"testing"

	"exactprint/internal/token"
)

func TestLookupReserved(t *testing.T) {
	for word, want := range map[string]token.Keyword{
		"module": token.KwModule,
		"where":  token.KwWhere,
		"let":    token.KwLet,
		"of":     token.KwOf,
	} {
		got, ok := token.LookupReserved(word)
		if !ok || got != want {
			t.Fatalf("LookupReserved(%q) = %v, %v; want %v", word, got, ok, want)
		}
	}
	if _, ok := token.LookupReserved("Where"); ok {
		t.Fatalf("reserved words are case-sensitive")
	}
	if _, ok := token.LookupReserved("->"); ok {
		t.Fatalf("symbols are not reserved words")
	}
}

func TestLookupGlyphAcceptsUnicodeSpelling(t *testing.T) {
	pairs := []struct {
		ascii, uni string
		kw         token.Keyword
	}{
		{"::", "∷", token.KwDColon},
		{"->", "→", token.KwRArrow},
		{"<-", "←", token.KwLArrow},
	}
	for _, p := range pairs {
		for _, s := range []string{p.ascii, p.uni} {
			got, ok := token.LookupGlyph(s)
			if !ok || got != p.kw {
				t.Fatalf("LookupGlyph(%q) = %v, %v; want %v", s, got, ok, p.kw)
			}
		}
	}
	if _, ok := token.LookupGlyph("+"); ok {
		t.Fatalf("'+' is an ordinary operator")
	}
}

func TestUsesUnicode(t *testing.T) {
	if !token.KwRArrow.UsesUnicode(1) {
		t.Errorf("a one-column arrow is the Unicode spelling")
	}
	if token.KwRArrow.UsesUnicode(2) {
		t.Errorf("a two-column arrow is the ASCII spelling")
	}
	if token.KwEqual.UsesUnicode(1) {
		t.Errorf("'=' has no Unicode spelling")
	}
	if token.KwDColon.UsesUnicode(-1) {
		t.Errorf("multi-line width never selects a glyph")
	}
}

func TestKeywordTextRoundTrip(t *testing.T) {
	for _, kw := range []token.Keyword{token.KwVal, token.KwComment, token.KwEOF, token.KwWhere, token.KwCloseC} {
		b, err := kw.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", kw, err)
		}
		var back token.Keyword
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if back != kw {
			t.Fatalf("round trip %v -> %q -> %v", kw, b, back)
		}
	}
	var k token.Keyword
	if err := k.UnmarshalText([]byte("nope")); err == nil {
		t.Fatalf("unknown names must fail")
	}
}

func TestKeywordClasses(t *testing.T) {
	if !token.KwComma.Tight() || !token.KwComma.Structural() {
		t.Errorf("comma is a tight structural separator")
	}
	if token.KwRArrow.Structural() {
		t.Errorf("arrow is not structural")
	}
	if !token.KwVal.Synthetic() || token.KwModule.Synthetic() {
		t.Errorf("synthetic classification is wrong")
	}
}
