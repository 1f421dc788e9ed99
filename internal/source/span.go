package source

import (
	"fmt"
	"unicode/utf8"
)

// Pos is an absolute position: 1-based line, 0-based column counted in runes.
// The zero Pos is invalid and sorts before every real position.
type Pos struct {
	Line int
	Col  int
}

// StartPos is the first position of every file.
var StartPos = Pos{Line: 1, Col: 0}

func (p Pos) IsValid() bool {
	return p.Line > 0 && p.Col >= 0
}

// Compare orders positions in document order.
func (p Pos) Compare(q Pos) int {
	switch {
	case p.Line < q.Line:
		return -1
	case p.Line > q.Line:
		return 1
	case p.Col < q.Col:
		return -1
	case p.Col > q.Col:
		return 1
	}
	return 0
}

func (p Pos) Before(q Pos) bool { return p.Compare(q) < 0 }

// String renders the position with a 1-based column, as editors show it.
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col+1)
}

// Advance returns the position reached after writing text starting at p.
func (p Pos) Advance(text string) Pos {
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		if r == '\n' {
			p.Line++
			p.Col = 0
			continue
		}
		p.Col++
	}
	return p
}

// MaxPos returns the later of two positions.
func MaxPos(a, b Pos) Pos {
	if a.Before(b) {
		return b
	}
	return a
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Pos
	End   Pos
}

// NewSpan builds a span from its endpoints.
func NewSpan(start, end Pos) Span {
	return Span{Start: start, End: end}
}

// Empty reports whether the span covers no text at all.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// ZeroWidth reports whether the span is scaffolding injected by tooling
// (a virtual brace or semicolon) rather than a real token: it is valid
// but has no extent.
func (s Span) ZeroWidth() bool {
	return s.Start.IsValid() && s.Start == s.End
}

func (s Span) IsValid() bool {
	return s.Start.IsValid() && !s.End.Before(s.Start)
}

// Width returns the number of columns covered by a single-line span,
// or -1 when the span crosses lines.
func (s Span) Width() int {
	if s.Start.Line != s.End.Line {
		return -1
	}
	return s.End.Col - s.Start.Col
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return !other.Start.Before(s.Start) && !s.End.Before(other.End)
}

// Cover returns the smallest span containing both spans. Invalid spans are ignored.
func (s Span) Cover(other Span) Span {
	if !other.IsValid() {
		return s
	}
	if !s.IsValid() {
		return other
	}
	if other.Start.Before(s.Start) {
		s.Start = other.Start
	}
	if s.End.Before(other.End) {
		s.End = other.End
	}
	return s
}

// Compare orders spans in document order: by start, then by end.
func (s Span) Compare(other Span) int {
	if c := s.Start.Compare(other.Start); c != 0 {
		return c
	}
	return s.End.Compare(other.End)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// CompareSpans is Span.Compare in a form usable with slices.SortFunc.
func CompareSpans(a, b Span) int {
	return a.Compare(b)
}
