package lexer

import (
	"fmt"

	"exactprint/internal/diag"
	"exactprint/internal/token"
)

// scanOperator читает максимальную серию символов оператора и проверяет,
// не зарезервирована ли она (::, ->, ∷, → ...).
func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isSymbol(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)
	if kw, ok := token.LookupGlyph(text); ok {
		return token.Token{Kind: token.Reserved, Kw: kw, Span: sp, Text: text}
	}
	return token.Token{Kind: token.VarSym, Span: sp, Text: text}
}

// scanSpecial: одиночные ()[],;{}` и '_'.
func (lx *Lexer) scanSpecial() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)
	if kw, ok := token.LookupGlyph(text); ok {
		return token.Token{Kind: token.Reserved, Kw: kw, Span: sp, Text: text}
	}
	// backtick: в грамматике нет инфиксных имён, оставляем как символ
	return token.Token{Kind: token.VarSym, Span: sp, Text: text}
}

func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
}
