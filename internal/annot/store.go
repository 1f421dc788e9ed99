package annot

import (
	"slices"

	"exactprint/internal/source"
)

// Annotation is everything needed to print one node the way it was written.
type Annotation struct {
	// Entry places the node's first content, after its prior comments.
	Entry source.DeltaPos
	// Prior comments are emitted before the node's own content.
	Prior []CommentDelta
	// Following comments trail the node; filled by balance or by edits.
	Following []CommentDelta
	// Tokens are the node's own tokens in emission order, with interleaved
	// comment markers.
	Tokens []TokenDelta
	// SortKey lists the child keys of a regrouped list in source order.
	SortKey []AnnKey
	// Captured covers the children of a regrouped list.
	Captured source.Span
}

// Clone returns a deep copy.
func (a *Annotation) Clone() *Annotation {
	if a == nil {
		return nil
	}
	c := *a
	c.Prior = slices.Clone(a.Prior)
	c.Following = slices.Clone(a.Following)
	c.SortKey = slices.Clone(a.SortKey)
	c.Tokens = make([]TokenDelta, len(a.Tokens))
	for i, td := range a.Tokens {
		if td.Comment != nil {
			cm := *td.Comment
			td.Comment = &cm
		}
		c.Tokens[i] = td
	}
	return &c
}

// Comments returns every comment attached to the record, in print order.
func (a *Annotation) Comments() []Comment {
	var out []Comment
	for _, cd := range a.Prior {
		out = append(out, cd.Comment)
	}
	for _, td := range a.Tokens {
		if td.Comment != nil {
			out = append(out, *td.Comment)
		}
	}
	for _, cd := range a.Following {
		out = append(out, cd.Comment)
	}
	return out
}

// LastToken returns the last real token of the record, skipping comments
// and list boundaries.
func (a *Annotation) LastToken() (TokenDelta, bool) {
	for i := len(a.Tokens) - 1; i >= 0; i-- {
		if a.Tokens[i].Comment == nil && !a.Tokens[i].IsBoundary() {
			return a.Tokens[i], true
		}
	}
	return TokenDelta{}, false
}

// Store maps node keys to their annotation. Not safe for concurrent mutation.
type Store struct {
	m map[AnnKey]*Annotation
}

func NewStore() *Store {
	return &Store{m: make(map[AnnKey]*Annotation)}
}

func (s *Store) Get(k AnnKey) (*Annotation, bool) {
	if s == nil {
		return nil, false
	}
	a, ok := s.m[k]
	return a, ok
}

// Lookup is Get keyed by the node itself.
func (s *Store) Lookup(n Node) (*Annotation, bool) {
	return s.Get(KeyOf(n))
}

func (s *Store) Put(k AnnKey, a *Annotation) {
	s.m[k] = a
}

func (s *Store) Delete(k AnnKey) {
	delete(s.m, k)
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// Relocate copies the record at from to the key to, for transformations that
// change a node's span but keep its shape. It reports whether from existed.
func (s *Store) Relocate(from, to AnnKey) bool {
	a, ok := s.m[from]
	if !ok {
		return false
	}
	s.m[to] = a.Clone()
	return true
}

// AddFollowing appends a trailing comment to the record at k, creating an
// empty record if none exists.
func (s *Store) AddFollowing(k AnnKey, cd CommentDelta) {
	a, ok := s.m[k]
	if !ok {
		a = &Annotation{}
		s.m[k] = a
	}
	a.Following = append(a.Following, cd)
}

// Keys returns all keys in document order.
func (s *Store) Keys() []AnnKey {
	keys := make([]AnnKey, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, AnnKey.Compare)
	return keys
}

// Comments returns all attached comments, by key order.
func (s *Store) Comments() []Comment {
	var out []Comment
	for _, k := range s.Keys() {
		out = append(out, s.m[k].Comments()...)
	}
	return out
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := NewStore()
	for k, a := range s.m {
		c.m[k] = a.Clone()
	}
	return c
}
