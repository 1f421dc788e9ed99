package lexer

import (
	"exactprint/internal/diag"
	"exactprint/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ' и '\t' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - --... до \n -> TriviaLineComment
// - {- ... -} -> TriviaBlockComment (с вложенностью)
// - {-# ... #-} -> TriviaPragma
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		r := lx.cursor.Peek()

		switch {
		case r == ' ' || r == '\t':
			for {
				r2 := lx.cursor.Peek()
				if r2 != ' ' && r2 != '\t' {
					break
				}
				if r2 == '\t' {
					lx.noteTab()
				}
				lx.cursor.Bump()
			}
			lx.push(token.TriviaSpace, start)
			continue

		case r == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.push(token.TriviaNewline, start)
			continue

		case r == '-' && lx.isLineComment():
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				if lx.cursor.Peek() == '\t' {
					lx.noteTab()
				}
				lx.cursor.Bump()
			}
			lx.push(token.TriviaLineComment, start)
			continue

		case r == '{':
			if r0, r1, ok := lx.cursor.Peek2(); ok && r0 == '{' && r1 == '-' {
				lx.scanBlockComment(start)
				continue
			}
		}

		// нет больше trivia
		break
	}
}

func (lx *Lexer) push(kind token.TriviaKind, start Mark) {
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	})
}

// isLineComment: два и более '-', за которыми не идёт символ оператора.
// "-->" это оператор, "---" и "-- x" комментарии.
func (lx *Lexer) isLineComment() bool {
	m := lx.cursor.Mark()
	defer lx.cursor.Reset(m)
	dashes := 0
	for lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
		dashes++
	}
	if dashes < 2 {
		return false
	}
	return lx.cursor.EOF() || !isSymbol(lx.cursor.Peek())
}

func (lx *Lexer) scanBlockComment(start Mark) {
	lx.cursor.Bump() // {
	lx.cursor.Bump() // -
	kind := token.TriviaBlockComment
	if lx.cursor.Peek() == '#' {
		kind = token.TriviaPragma
	}
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if r0, r1, ok := lx.cursor.Peek2(); ok {
			if r0 == '{' && r1 == '-' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if r0 == '-' && r1 == '}' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		if lx.cursor.Peek() == '\t' {
			lx.noteTab()
		}
		lx.cursor.Bump()
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	lx.push(kind, start)
}

// noteTab сообщает о табуляции один раз на файл: колонка считает её за одну руну.
func (lx *Lexer) noteTab() {
	if lx.sawTab {
		return
	}
	lx.sawTab = true
	at := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(at)
	lx.cursor.Reset(at)
	lx.report(diag.LexTabColumn, diag.SevInfo, sp, "tab counted as one column; layout may differ from your editor")
}
