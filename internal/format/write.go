package format

import (
	"strings"
	"unicode/utf8"

	"exactprint/internal/source"
)

// Writer accumulates output and tracks the print cursor on the raw text.
// Builders nest so a node's chunk can be wrapped before it reaches its parent.
type Writer struct {
	stack     []*strings.Builder
	pos       source.Pos
	last      rune
	wrote     bool
	transform func(string) string
}

// NewWriter creates a writer whose cursor starts at start.
func NewWriter(start source.Pos, transform func(string) string) *Writer {
	if !start.IsValid() {
		start = source.StartPos
	}
	return &Writer{
		stack:     []*strings.Builder{{}},
		pos:       start,
		transform: transform,
	}
}

func (w *Writer) top() *strings.Builder {
	return w.stack[len(w.stack)-1]
}

// Pos returns the cursor.
func (w *Writer) Pos() source.Pos { return w.pos }

// Last returns the last rune written, 0 before any output.
func (w *Writer) Last() rune { return w.last }

// Wrote reports whether anything has been emitted yet.
func (w *Writer) Wrote() bool { return w.wrote }

// Move emits the whitespace that realises d. Recorded raw whitespace is
// written as is; otherwise blanks are derived from the target position.
func (w *Writer) Move(d source.DeltaPos, baseline int) {
	gap := d.Raw
	if gap == "" {
		gap = source.Fill(w.pos, d.Apply(w.pos, baseline))
	}
	if gap == "" {
		return
	}
	w.top().WriteString(gap)
	w.pos = w.pos.Advance(gap)
	w.last, _ = utf8.DecodeLastRuneInString(gap)
	w.wrote = true
}

// Text emits literal text. The transform applies to what is written; the
// cursor follows the untransformed text.
func (w *Writer) Text(s string) {
	if s == "" {
		return
	}
	out := s
	if w.transform != nil {
		out = w.transform(s)
	}
	w.top().WriteString(out)
	w.pos = w.pos.Advance(s)
	w.last, _ = utf8.DecodeLastRuneInString(s)
	w.wrote = true
}

// Push starts a nested chunk.
func (w *Writer) Push() {
	w.stack = append(w.stack, &strings.Builder{})
}

// Pop ends the innermost chunk and returns its content.
func (w *Writer) Pop() string {
	if len(w.stack) == 1 {
		return ""
	}
	b := w.top()
	w.stack = w.stack[:len(w.stack)-1]
	return b.String()
}

// Raw writes s without moving the cursor.
func (w *Writer) Raw(s string) {
	w.top().WriteString(s)
}

// String returns the output so far; nested chunks are not included.
func (w *Writer) String() string {
	return w.stack[0].String()
}
