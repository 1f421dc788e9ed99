package schedule

import (
	"reflect"

	"exactprint/internal/annot"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

type Op uint8

const (
	OpKeyword Op = iota
	OpKeywordAt
	OpCounted
	OpChild
	OpList
	OpSortedList
	OpLayout
	OpEOF
)

var opNames = [...]string{
	OpKeyword:    "keyword",
	OpKeywordAt:  "keyword-at",
	OpCounted:    "counted",
	OpChild:      "child",
	OpList:       "list",
	OpSortedList: "sorted-list",
	OpLayout:     "layout",
	OpEOF:        "eof",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Instr is one step of a schedule. Only the fields relevant to Op are set.
type Instr struct {
	Op Op
	Kw token.Keyword

	// Optional keywords print nothing for nodes without a record.
	Optional bool
	// Index selects a fact by position in the node's original fact list.
	Index int
	// Count is the number of occurrences for OpCounted.
	Count func(annot.Node) int
	// Text yields the current spelling of a value token (KwVal).
	Text func(annot.Node) string

	Child func(annot.Node) annot.Node
	Items func(annot.Node) []annot.Node
	// Sep separates list items; Trailing allows it after the last item.
	Sep      token.Keyword
	Trailing bool
	// Block marks list items as layout items: one per line by default.
	Block bool

	Body []Instr

	End func(annot.Node) source.Pos
}

// Keyword expects one required token.
func Keyword(kw token.Keyword) Instr {
	return Instr{Op: OpKeyword, Kw: kw}
}

// Optional expects one token that may be missing from the source.
func Optional(kw token.Keyword) Instr {
	return Instr{Op: OpKeyword, Kw: kw, Optional: true}
}

// At expects the idx-th fact of kw. A zero-width fact at that index means
// the token is absent.
func At(kw token.Keyword, idx int) Instr {
	return Instr{Op: OpKeywordAt, Kw: kw, Index: idx, Optional: true}
}

// Counted expects kw repeated count(n) times.
func Counted[T annot.Node](kw token.Keyword, count func(T) int) Instr {
	return Instr{Op: OpCounted, Kw: kw, Count: func(n annot.Node) int { return count(n.(T)) }}
}

// Val expects a value token whose text is read from the node.
func Val[T annot.Node](text func(T) string) Instr {
	return Instr{Op: OpKeyword, Kw: token.KwVal, Text: func(n annot.Node) string { return text(n.(T)) }}
}

// Child expects an optional sub-node.
func Child[T annot.Node](get func(T) annot.Node) Instr {
	return Instr{Op: OpChild, Child: func(n annot.Node) annot.Node { return get(n.(T)) }}
}

// List expects sub-nodes stored in source order.
func List[T annot.Node](items func(T) []annot.Node) Instr {
	return Instr{Op: OpList, Items: func(n annot.Node) []annot.Node { return items(n.(T)) }}
}

// SortedList expects sub-nodes the tree stores regrouped; the source order is
// recovered from their spans and kept as the record's sort key.
func SortedList[T annot.Node](items func(T) []annot.Node) Instr {
	return Instr{Op: OpSortedList, Items: func(n annot.Node) []annot.Node { return items(n.(T)) }}
}

// Layout wraps a layout-sensitive region.
func Layout(body ...Instr) Instr {
	return Instr{Op: OpLayout, Body: body}
}

// EOF expects the end of input at end(n).
func EOF[T annot.Node](end func(T) source.Pos) Instr {
	return Instr{Op: OpEOF, Kw: token.KwEOF, End: func(n annot.Node) source.Pos { return end(n.(T)) }}
}

// Separated sets the list separator.
func (i Instr) Separated(sep token.Keyword) Instr {
	i.Sep = sep
	return i
}

// WithTrailing allows separators after the last item.
func (i Instr) WithTrailing() Instr {
	i.Trailing = true
	return i
}

// AsBlock marks the items as layout items.
func (i Instr) AsBlock() Instr {
	i.Block = true
	return i
}

// Present reports whether n is a real node: neither a nil interface nor an
// interface holding a nil pointer.
func Present(n annot.Node) bool {
	if n == nil {
		return false
	}
	v := reflect.ValueOf(n)
	return v.Kind() != reflect.Pointer || !v.IsNil()
}

// Nodes converts a typed slice to a node slice, dropping absent entries.
func Nodes[T annot.Node](xs []T) []annot.Node {
	out := make([]annot.Node, 0, len(xs))
	for _, x := range xs {
		if Present(x) {
			out = append(out, x)
		}
	}
	return out
}
