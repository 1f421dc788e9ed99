package lexer

import (
	"fmt"
	"unicode/utf8"

	"exactprint/internal/source"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в файле: байтовое смещение плюс
// строка и колонка в рунах.
type Cursor struct {
	File *source.File
	Off  uint32
	Pos  source.Pos
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		Pos:   source.StartPos,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущую руну, если есть, иначе возвращает 0
func (c *Cursor) Peek() rune {
	r, _ := c.peekAt(c.Off)
	return r
}

// Peek2 читает текущую и следующую руну; ok=false, если второй нет
func (c *Cursor) Peek2() (r0, r1 rune, ok bool) {
	r0, sz := c.peekAt(c.Off)
	if sz == 0 {
		return 0, 0, false
	}
	r1, sz1 := c.peekAt(c.Off + uint32(sz)) // #nosec G115 -- rune size is at most 4
	return r0, r1, sz1 > 0
}

func (c *Cursor) peekAt(off uint32) (rune, int) {
	if off >= c.Limit {
		return 0, 0
	}
	b := c.File.Content[off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[off:c.Limit])
}

// Bump перемещает курсор на одну руну вперед и возвращает её
func (c *Cursor) Bump() rune {
	r, sz := c.peekAt(c.Off)
	if sz == 0 {
		return 0
	}
	c.Off += uint32(sz) // #nosec G115 -- rune size is at most 4
	if r == '\n' {
		c.Pos.Line++
		c.Pos.Col = 0
	} else {
		c.Pos.Col++
	}
	return r
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark struct {
	off uint32
	pos source.Pos
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, pos: c.Pos}
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: m.pos, End: c.Pos}
}

// TextFrom returns the source text read since the mark.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[m.off:c.Off])
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = m.off
	c.Pos = m.pos
}

// Eat consumes the next rune if it matches.
func (c *Cursor) Eat(r rune) bool {
	if got, sz := c.peekAt(c.Off); sz > 0 && got == r {
		c.Bump()
		return true
	}
	return false
}
