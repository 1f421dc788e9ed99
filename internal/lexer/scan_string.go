package lexer

import (
	"exactprint/internal/diag"
	"exactprint/internal/token"
)

// scanString: "..." с escape-последовательностями. Незакрытая строка
// обрывается на конце строки, токен остаётся StringLit.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // "
	closed := false
	for !lx.cursor.EOF() {
		r := lx.cursor.Peek()
		if r == '\n' {
			break
		}
		lx.cursor.Bump()
		if r == '\\' {
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			continue
		}
		if r == '"' {
			closed = true
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	}
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.cursor.TextFrom(start)}
}

// scanChar: 'c' или '\n'. Всё остальное — ошибка, апостроф уходит в Invalid.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '
	r := lx.cursor.Peek()
	switch {
	case r == '\\':
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
	case r != '\n' && r != '\'' && !lx.cursor.EOF():
		lx.cursor.Bump()
	}
	if !lx.cursor.Eat('\'') {
		lx.cursor.Reset(start)
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadChar, sp, "malformed character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.cursor.TextFrom(start)}
	}
	return token.Token{Kind: token.CharLit, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}
