package token_test

import (
	"testing"

	"exactprint/internal/token"
)

func TestTriviaCommentKinds(t *testing.T) {
	for _, k := range []token.TriviaKind{token.TriviaLineComment, token.TriviaBlockComment, token.TriviaPragma} {
		if !k.IsComment() {
			t.Fatalf("%d must be a comment kind", k)
		}
	}
	for _, k := range []token.TriviaKind{token.TriviaSpace, token.TriviaNewline} {
		if k.IsComment() {
			t.Fatalf("%d must NOT be a comment kind", k)
		}
	}
}
