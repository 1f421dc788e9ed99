package annot

import (
	"slices"

	"exactprint/internal/source"
	"exactprint/internal/token"
)

// OriginPragma tags comments rebuilt from pragmas the tree does not keep.
const OriginPragma = "pragma"

// Comment is a comment with its delimiters. Origin is non-empty when the
// comment was synthesized from syntax that cannot otherwise round-trip.
type Comment struct {
	Text   string
	Span   source.Span
	Origin string
}

// Synthetic reports whether the comment stands in for other syntax.
func (c Comment) Synthetic() bool { return c.Origin != "" }

// SortComments orders comments by position.
func SortComments(cs []Comment) {
	slices.SortStableFunc(cs, func(a, b Comment) int { return a.Span.Compare(b.Span) })
}

// CommentDelta is a comment together with the delta that places it.
type CommentDelta struct {
	Comment Comment
	Delta   source.DeltaPos
}

// TokenDelta places one of a node's own tokens. Kw is token.KwComment for a
// comment met between tokens; the comment is then in Comment. Kw is
// token.KwNone for a list gap boundary: the separators recorded before it
// belong to one gap between two items.
type TokenDelta struct {
	Kw      token.Keyword
	Delta   source.DeltaPos
	Unicode bool
	Comment *Comment
}

// Boundary closes the separators of one list gap.
func Boundary() TokenDelta { return TokenDelta{Kw: token.KwNone} }

// IsBoundary reports whether td is a list gap boundary.
func (td TokenDelta) IsBoundary() bool { return td.Kw == token.KwNone && td.Comment == nil }
