package delta

import (
	"slices"

	"exactprint/internal/annot"
	"exactprint/internal/source"
)

type pooledFact struct {
	fact annot.Fact
	used bool
}

// factPool is the unconsumed part of a FactTable. Zero-width facts stay in
// their list so indexed lookups see the original positions, but they are
// born consumed.
type factPool struct {
	lists    map[annot.FactKey][]pooledFact
	keys     []annot.FactKey
	consumed int
	dropped  int
}

func newFactPool(t *annot.FactTable) *factPool {
	p := &factPool{lists: make(map[annot.FactKey][]pooledFact)}
	if t == nil {
		return p
	}
	p.keys = t.Keys()
	for _, k := range p.keys {
		for _, f := range t.Lookup(k.Node, k.Kw) {
			virtual := f.Span.ZeroWidth() || !f.Span.IsValid()
			if virtual {
				p.dropped++
			}
			p.lists[k] = append(p.lists[k], pooledFact{fact: f, used: virtual})
		}
	}
	return p
}

func (p *factPool) next(k annot.FactKey) (int, bool) {
	for i, pf := range p.lists[k] {
		if !pf.used {
			return i, true
		}
	}
	return 0, false
}

// peek returns the earliest unconsumed fact for k.
func (p *factPool) peek(k annot.FactKey) (annot.Fact, bool) {
	i, ok := p.next(k)
	if !ok {
		return annot.Fact{}, false
	}
	return p.lists[k][i].fact, true
}

// take consumes the earliest unconsumed fact for k.
func (p *factPool) take(k annot.FactKey) (annot.Fact, bool) {
	i, ok := p.next(k)
	if !ok {
		return annot.Fact{}, false
	}
	p.lists[k][i].used = true
	p.consumed++
	return p.lists[k][i].fact, true
}

// at consumes the idx-th fact for k, counting virtual ones.
func (p *factPool) at(k annot.FactKey, idx int) (annot.Fact, bool) {
	list := p.lists[k]
	if idx < 0 || idx >= len(list) || list[idx].used {
		return annot.Fact{}, false
	}
	list[idx].used = true
	p.consumed++
	return list[idx].fact, true
}

func (p *factPool) remaining(k annot.FactKey) []annot.Fact {
	var out []annot.Fact
	for _, pf := range p.lists[k] {
		if !pf.used {
			out = append(out, pf.fact)
		}
	}
	return out
}

// residue consumes and returns every fact still in the pool, in document order.
func (p *factPool) residue() []annot.Fact {
	var out []annot.Fact
	for _, k := range p.keys {
		list := p.lists[k]
		for i := range list {
			if !list[i].used {
				list[i].used = true
				p.consumed++
				out = append(out, list[i].fact)
			}
		}
	}
	slices.SortStableFunc(out, func(a, b annot.Fact) int { return a.Span.Compare(b.Span) })
	return out
}

// commentPool hands out comments strictly in position order.
type commentPool struct {
	items []annot.Comment
	head  int
}

func newCommentPool(cs []annot.Comment) *commentPool {
	items := slices.Clone(cs)
	annot.SortComments(items)
	return &commentPool{items: items}
}

// drainBefore removes every comment starting before p.
func (c *commentPool) drainBefore(p source.Pos) []annot.Comment {
	start := c.head
	for c.head < len(c.items) && c.items[c.head].Span.Start.Before(p) {
		c.head++
	}
	return c.items[start:c.head]
}

// rest removes every remaining comment.
func (c *commentPool) rest() []annot.Comment {
	out := c.items[c.head:]
	c.head = len(c.items)
	return out
}
