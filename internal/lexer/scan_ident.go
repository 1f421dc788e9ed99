package lexer

import (
	"exactprint/internal/token"
)

// scanIdentOrKeyword сканирует varid / conid, включая квалифицированные
// имена (Data.Map, Data.Map.lookup). Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	first := lx.cursor.Peek()
	lx.bumpIdent()

	kind := token.VarID
	if isUpper(first) {
		kind = token.ConID
		// квалификатор: Con.Con... и, возможно, .var в конце
		for kind == token.ConID {
			dot, next, ok := lx.cursor.Peek2()
			if !ok || dot != '.' || !isIdentStart(next) || next == '_' {
				break
			}
			lx.cursor.Bump()
			if !isUpper(next) {
				kind = token.VarID
			}
			lx.bumpIdent()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)

	if kind == token.VarID {
		if kw, ok := token.LookupReserved(text); ok {
			return token.Token{Kind: token.Reserved, Kw: kw, Span: sp, Text: text}
		}
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (lx *Lexer) bumpIdent() {
	lx.cursor.Bump()
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
