package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"exactprint/internal/source"
	"exactprint/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Keyword string      `json:"keyword,omitempty"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

var triviaNames = [...]string{
	token.TriviaSpace:        "space",
	token.TriviaNewline:      "newline",
	token.TriviaLineComment:  "line-comment",
	token.TriviaBlockComment: "block-comment",
	token.TriviaPragma:       "pragma",
}

func triviaName(k token.TriviaKind) string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "unknown"
}

func leadingNames(tok token.Token) []string {
	var out []string
	for _, tr := range tok.Leading {
		out = append(out, triviaName(tr.Kind))
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// Позиции печатаются 1-based по строкам и колонкам.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		kind := tok.Kind.String()
		if tok.Kind == token.Reserved {
			kind = tok.Kw.String()
		}
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, kind); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			tok.Span.Start.Line, tok.Span.Start.Col+1,
			tok.Span.End.Line, tok.Span.End.Col+1)
		if leading := leadingNames(tok); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: leadingNames(tok),
		}
		if tok.Kind == token.Reserved {
			out.Keyword = tok.Kw.String()
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
