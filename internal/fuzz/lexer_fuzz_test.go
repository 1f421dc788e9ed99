package fuzztests

import (
	"testing"

	"exactprint/internal/diag"
	"exactprint/internal/lexer"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.hs", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		prev := source.StartPos
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Span.Start.Before(prev) {
				t.Fatalf("token %d at %s goes back before %s", i, tok.Span.Start, prev)
			}
			prev = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
			if i > len(input)+1 {
				t.Fatalf("lexer does not advance on %q", input)
			}
		}
	})
}
