package annot

import (
	"slices"

	"exactprint/internal/source"
	"exactprint/internal/token"
)

// Fact records that a keyword occurred at an absolute span. Text is the
// source spelling; facts of injected layout tokens are zero-width and
// carry no text.
type Fact struct {
	Kw   token.Keyword
	Span source.Span
	Text string
}

// FactKey scopes facts to the node that owns them.
type FactKey struct {
	Node AnnKey
	Kw   token.Keyword
}

// FactTable is the raw multimap handed over by the front-end. Each list is
// kept in source order.
type FactTable struct {
	m map[FactKey][]Fact
	n int
}

func NewFactTable() *FactTable {
	return &FactTable{m: make(map[FactKey][]Fact)}
}

// Add records a fact for the given owner.
func (t *FactTable) Add(owner AnnKey, f Fact) {
	k := FactKey{Node: owner, Kw: f.Kw}
	list := t.m[k]
	i, _ := slices.BinarySearchFunc(list, f, func(a, b Fact) int {
		return a.Span.Compare(b.Span)
	})
	// равные позиции сохраняют порядок добавления
	for i < len(list) && list[i].Span.Compare(f.Span) == 0 {
		i++
	}
	t.m[k] = slices.Insert(list, i, f)
	t.n++
}

// Lookup returns the facts of kw owned by the node, in source order.
func (t *FactTable) Lookup(owner AnnKey, kw token.Keyword) []Fact {
	return slices.Clone(t.m[FactKey{Node: owner, Kw: kw}])
}

func (t *FactTable) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

// Keys returns every key in deterministic order.
func (t *FactTable) Keys() []FactKey {
	keys := make([]FactKey, 0, len(t.m))
	for k := range t.m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b FactKey) int {
		if c := a.Node.Compare(b.Node); c != 0 {
			return c
		}
		return int(a.Kw) - int(b.Kw)
	})
	return keys
}

// Relocate moves the facts owned by from to to, e.g. after the front-end
// recomputed a node's span.
func (t *FactTable) Relocate(from, to AnnKey) {
	for k, list := range t.m {
		if k.Node != from {
			continue
		}
		delete(t.m, k)
		nk := FactKey{Node: to, Kw: k.Kw}
		t.m[nk] = append(t.m[nk], list...)
		slices.SortStableFunc(t.m[nk], func(a, b Fact) int { return a.Span.Compare(b.Span) })
	}
}

// All returns every fact in document order.
func (t *FactTable) All() []Fact {
	out := make([]Fact, 0, t.n)
	for _, k := range t.Keys() {
		out = append(out, t.m[k]...)
	}
	slices.SortStableFunc(out, func(a, b Fact) int { return a.Span.Compare(b.Span) })
	return out
}
