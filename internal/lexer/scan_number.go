package lexer

import (
	"exactprint/internal/token"
)

// scanNumber: десятичные, 0x/0o/0b, дробная часть и экспонента.
// Числа не нормализуются: Text хранит исходное написание.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if r0, r1, ok := lx.cursor.Peek2(); ok && r0 == '0' && (r1 == 'x' || r1 == 'X' || r1 == 'o' || r1 == 'O' || r1 == 'b' || r1 == 'B') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.number(start)
	}

	lx.digits()
	if r0, r1, ok := lx.cursor.Peek2(); ok && r0 == '.' && isDec(r1) {
		lx.cursor.Bump()
		lx.digits()
	}
	if r := lx.cursor.Peek(); r == 'e' || r == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if r := lx.cursor.Peek(); r == '+' || r == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// "1e" это число и идентификатор
			lx.cursor.Reset(m)
		} else {
			lx.digits()
		}
	}
	return lx.number(start)
}

func (lx *Lexer) digits() {
	for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) number(start Mark) token.Token {
	return token.Token{Kind: token.IntLit, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}
