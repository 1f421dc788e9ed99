package annot

import (
	"cmp"
	"fmt"

	"exactprint/internal/source"
)

// Shape tags the syntactic form of a node, e.g. "FunBind".
type Shape string

// Node is a syntax node the passes can visit.
type Node interface {
	Shape() Shape
	Span() source.Span
}

// AnnKey identifies a node across passes.
type AnnKey struct {
	Span  source.Span
	Shape Shape
}

func KeyOf(n Node) AnnKey {
	return AnnKey{Span: n.Span(), Shape: n.Shape()}
}

func (k AnnKey) String() string {
	return fmt.Sprintf("%s@%s", k.Shape, k.Span)
}

// Compare orders keys by span, outer nodes first when spans share a start,
// then by shape.
func (k AnnKey) Compare(o AnnKey) int {
	if c := k.Span.Start.Compare(o.Span.Start); c != 0 {
		return c
	}
	if c := o.Span.End.Compare(k.Span.End); c != 0 {
		return c
	}
	return cmp.Compare(k.Shape, o.Shape)
}
