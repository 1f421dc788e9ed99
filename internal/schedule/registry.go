package schedule

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"exactprint/internal/annot"
	"exactprint/internal/token"
)

var (
	// ErrUnsupportedShape marks shapes that exist only in later compiler
	// phases and have no printable form.
	ErrUnsupportedShape = errors.New("unsupported node shape")
	// ErrUnknownShape marks shapes with no registered handler.
	ErrUnknownShape = errors.New("unknown node shape")
)

// ShapeError carries the node that could not be scheduled.
type ShapeError struct {
	Key    annot.AnnKey
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %v: %s", e.Key, e.Err, e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }

// Handler produces the schedule of one node.
type Handler interface {
	Schedule(n annot.Node) ([]Instr, error)
}

// HandlerFunc adapts a plain function.
type HandlerFunc func(n annot.Node) []Instr

func (f HandlerFunc) Schedule(n annot.Node) ([]Instr, error) {
	return f(n), nil
}

// Fixed returns a handler whose schedule does not depend on the node.
func Fixed(instrs ...Instr) Handler {
	return HandlerFunc(func(annot.Node) []Instr { return instrs })
}

type unsupported struct{ reason string }

func (u unsupported) Schedule(n annot.Node) ([]Instr, error) {
	return nil, &ShapeError{Key: annot.KeyOf(n), Reason: u.reason, Err: ErrUnsupportedShape}
}

// Unsupported returns a handler that always fails with ErrUnsupportedShape.
func Unsupported(reason string) Handler {
	return unsupported{reason: reason}
}

// Registry maps shapes to handlers. It is safe for concurrent lookups.
type Registry struct {
	mu       sync.RWMutex
	handlers map[annot.Shape]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[annot.Shape]Handler)}
}

// Register installs the handler for shape; the last registration wins.
func (r *Registry) Register(shape annot.Shape, h Handler) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[shape] = h
	return r
}

func (r *Registry) Lookup(shape annot.Shape) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[shape]
	return h, ok
}

// Shapes returns the registered shapes, sorted.
func (r *Registry) Shapes() []annot.Shape {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]annot.Shape, 0, len(r.handlers))
	for s := range r.handlers {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Instructions returns the schedule of n.
func (r *Registry) Instructions(n annot.Node) ([]Instr, error) {
	h, ok := r.Lookup(n.Shape())
	if !ok {
		return nil, &ShapeError{Key: annot.KeyOf(n), Err: ErrUnknownShape}
	}
	return h.Schedule(n)
}

// Children returns the sub-nodes a schedule visits, in the tree's natural order.
func Children(instrs []Instr, n annot.Node) []annot.Node {
	var out []annot.Node
	for _, in := range instrs {
		switch in.Op {
		case OpChild:
			if c := in.Child(n); Present(c) {
				out = append(out, c)
			}
		case OpList, OpSortedList:
			for _, c := range in.Items(n) {
				if Present(c) {
					out = append(out, c)
				}
			}
		case OpLayout:
			out = append(out, Children(in.Body, n)...)
		}
	}
	return out
}

// Walk visits n and every descendant, parents before children. visit gets
// the node and its parent (nil for the root).
func (r *Registry) Walk(n annot.Node, visit func(n, parent annot.Node) error) error {
	return r.walk(n, nil, visit)
}

func (r *Registry) walk(n, parent annot.Node, visit func(n, parent annot.Node) error) error {
	if err := visit(n, parent); err != nil {
		return err
	}
	instrs, err := r.Instructions(n)
	if err != nil {
		return err
	}
	for _, c := range Children(instrs, n) {
		if err := r.walk(c, n, visit); err != nil {
			return err
		}
	}
	return nil
}

// Expectations counts, per keyword, the single-occurrence Keyword
// instructions of a schedule. Keywords that may legitimately recur (list
// separators, counted or indexed keywords) are reported in multi instead.
func Expectations(instrs []Instr) (single map[token.Keyword]int, multi map[token.Keyword]bool) {
	single = make(map[token.Keyword]int)
	multi = make(map[token.Keyword]bool)
	var walk func([]Instr)
	walk = func(list []Instr) {
		for _, in := range list {
			switch in.Op {
			case OpKeyword:
				single[in.Kw]++
			case OpKeywordAt, OpCounted:
				multi[in.Kw] = true
			case OpList, OpSortedList:
				if in.Sep != token.KwNone {
					multi[in.Sep] = true
				}
			case OpLayout:
				walk(in.Body)
			}
		}
	}
	walk(instrs)
	return single, multi
}
