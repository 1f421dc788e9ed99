package format

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"exactprint/internal/annot"
	"exactprint/internal/diag"
	"exactprint/internal/schedule"
	"exactprint/internal/source"
	"exactprint/internal/token"
	"exactprint/internal/trace"
)

type Options struct {
	// Wrap receives each node's emitted chunk and returns the text to write
	// in its place. Positions are always computed on the unwrapped text.
	Wrap func(n annot.Node, chunk string) string
	// Transform rewrites literal token and comment text on output.
	Transform func(text string) string
	// Start is the cursor at which output begins; zero means source.StartPos.
	Start    source.Pos
	Reporter diag.Reporter
}

var errNoRegistry = errors.New("format: no schedule registry")

type printer struct {
	reg   *schedule.Registry
	store *annot.Store
	w     *Writer
	opt   Options
	rep   diag.Reporter

	baselines []int
	pending   bool
}

// frame is the node being printed together with its unconsumed tokens.
type frame struct {
	node  annot.Node
	ann   *annot.Annotation
	queue []annot.TokenDelta
	// fresh is true until an unannotated node has emitted its first content.
	fresh bool
}

// placement describes where a child sits in its parent.
type placement struct {
	block      bool
	first      bool
	afterFresh bool
}

// Print renders root using store. Missing records never fail; only shapes
// the registry cannot schedule do.
func Print(ctx context.Context, root annot.Node, store *annot.Store, reg *schedule.Registry, opt Options) (string, error) {
	if reg == nil {
		return "", errNoRegistry
	}
	if store == nil {
		store = annot.NewStore()
	}
	rep := opt.Reporter
	if rep == nil {
		rep = diag.NopReporter{}
	}
	t := trace.FromContext(ctx)
	span := trace.Begin(t, trace.ScopePass, "print", trace.CurrentSpan(ctx).SpanID)

	p := &printer{
		reg:   reg,
		store: store,
		w:     NewWriter(opt.Start, opt.Transform),
		opt:   opt,
		rep:   rep,
	}
	if err := p.node(root, placement{first: true}); err != nil {
		span.End(err.Error())
		return "", err
	}
	out := p.w.String()
	span.WithExtra("bytes", strconv.Itoa(len(out))).End("")
	return out, nil
}

func (p *printer) baseline() int {
	if len(p.baselines) == 0 {
		return 0
	}
	return p.baselines[len(p.baselines)-1]
}

func (p *printer) move(d source.DeltaPos) {
	p.w.Move(d, p.baseline())
}

func (p *printer) establish() {
	if p.pending {
		p.baselines = append(p.baselines, p.w.Pos().Col)
		p.pending = false
	}
}

func (p *printer) comment(cd annot.CommentDelta) {
	p.move(cd.Delta)
	p.w.Text(cd.Comment.Text)
}

func (p *printer) node(n annot.Node, at placement) error {
	instrs, err := p.reg.Instructions(n)
	if err != nil {
		return err
	}
	ann, annotated := p.store.Lookup(n)
	f := &frame{node: n, ann: ann, fresh: !annotated}
	if annotated {
		for _, cd := range ann.Prior {
			p.comment(cd)
		}
		p.move(ann.Entry)
		f.queue = ann.Tokens
	} else {
		p.move(p.defaultEntry(at))
	}
	p.establish()

	if p.opt.Wrap != nil {
		p.w.Push()
	}
	if err := p.run(f, instrs); err != nil {
		return err
	}
	p.flush(f)
	if p.opt.Wrap != nil {
		p.w.Raw(p.opt.Wrap(n, p.w.Pop()))
	}
	if annotated {
		for _, cd := range ann.Following {
			p.comment(cd)
		}
	}
	return nil
}

func (p *printer) run(f *frame, instrs []schedule.Instr) error {
	for _, in := range instrs {
		switch in.Op {
		case schedule.OpKeyword, schedule.OpKeywordAt:
			p.keyword(f, in)
		case schedule.OpCounted:
			for range in.Count(f.node) {
				p.keyword(f, in)
			}
		case schedule.OpChild:
			if c := in.Child(f.node); schedule.Present(c) {
				if err := p.child(f, c, placement{}); err != nil {
					return err
				}
			}
		case schedule.OpList:
			if err := p.list(f, in, schedule.Nodes(in.Items(f.node))); err != nil {
				return err
			}
		case schedule.OpSortedList:
			items := schedule.Nodes(in.Items(f.node))
			if f.ann != nil {
				items = sourceOrder(items, f.ann.SortKey)
			}
			if err := p.list(f, in, items); err != nil {
				return err
			}
		case schedule.OpLayout:
			depth := len(p.baselines)
			p.pending = true
			err := p.run(f, in.Body)
			p.baselines = p.baselines[:depth]
			p.pending = false
			if err != nil {
				return err
			}
		case schedule.OpEOF:
			p.eof(f)
		}
	}
	return nil
}

func (p *printer) child(f *frame, c annot.Node, at placement) error {
	at.afterFresh = f.fresh
	f.fresh = false
	return p.node(c, at)
}

func (p *printer) list(f *frame, in schedule.Instr, items []annot.Node) error {
	for i, c := range items {
		if err := p.child(f, c, placement{block: in.Block, first: i == 0}); err != nil {
			return err
		}
		if in.Sep == token.KwNone {
			continue
		}
		last := i+1 == len(items)
		if last && !in.Trailing {
			p.dropQueued(f, in.Sep)
			continue
		}
		n := p.queued(f, in.Sep)
		p.pop(f, token.KwNone)
		if n == 0 && !last && !in.Block {
			p.move(p.defaultKeyword(f, in.Sep))
			p.w.Text(in.Sep.Text())
		}
	}
	return nil
}

// head returns the index of the first non-comment entry of the queue.
func (f *frame) head() (int, bool) {
	for i, td := range f.queue {
		if td.Comment == nil {
			return i, true
		}
	}
	return 0, false
}

// pop emits the comment markers in front of the next token and removes that
// token from the queue, provided it is kw.
func (p *printer) pop(f *frame, kw token.Keyword) (annot.TokenDelta, bool) {
	i, ok := f.head()
	if !ok || f.queue[i].Kw != kw {
		return annot.TokenDelta{}, false
	}
	for _, td := range f.queue[:i] {
		p.comment(annot.CommentDelta{Comment: *td.Comment, Delta: td.Delta})
	}
	td := f.queue[i]
	f.queue = f.queue[i+1:]
	return td, true
}

func (p *printer) queued(f *frame, sep token.Keyword) int {
	n := 0
	for {
		td, ok := p.pop(f, sep)
		if !ok {
			return n
		}
		p.move(td.Delta)
		p.establish()
		p.w.Text(glyph(sep, td.Unicode))
		n++
	}
}

// dropQueued discards separators and gap boundaries left behind by removed
// list items.
func (p *printer) dropQueued(f *frame, sep token.Keyword) {
	for {
		if _, ok := p.pop(f, sep); ok {
			continue
		}
		if _, ok := p.pop(f, token.KwNone); !ok {
			return
		}
	}
}

func glyph(kw token.Keyword, unicode bool) string {
	if unicode {
		if u, ok := kw.UnicodeText(); ok {
			return u
		}
	}
	return kw.Text()
}

func (p *printer) keyword(f *frame, in schedule.Instr) {
	text := func(unicode bool) string {
		if in.Text != nil {
			return in.Text(f.node)
		}
		return glyph(in.Kw, unicode)
	}
	if td, ok := p.pop(f, in.Kw); ok {
		p.move(td.Delta)
		p.establish()
		p.w.Text(text(td.Unicode))
		f.fresh = false
		return
	}
	if in.Optional {
		return
	}
	p.move(p.defaultKeyword(f, in.Kw))
	p.establish()
	p.w.Text(text(false))
	f.fresh = false
}

func (p *printer) eof(f *frame) {
	if td, ok := p.pop(f, token.KwEOF); ok {
		p.move(td.Delta)
		return
	}
	p.flush(f)
	if p.w.Wrote() && p.w.Last() != '\n' {
		p.w.Move(source.DeltaPos{Line: 1}, 0)
	}
}

// flush emits the comment markers still queued. Tokens still queued belong
// to parts of the tree that were edited away.
func (p *printer) flush(f *frame) {
	dropped := 0
	for _, td := range f.queue {
		if td.Comment != nil {
			p.comment(annot.CommentDelta{Comment: *td.Comment, Delta: td.Delta})
			continue
		}
		if td.IsBoundary() {
			continue
		}
		dropped++
	}
	f.queue = nil
	if dropped > 0 {
		diag.ReportInfo(p.rep, diag.PrnDroppedTokens, f.node.Span(),
			fmt.Sprintf("%s: %d recorded token(s) unused", f.node.Shape(), dropped)).Emit()
	}
}

func (p *printer) defaultEntry(at placement) source.DeltaPos {
	switch {
	case !p.w.Wrote() || at.afterFresh:
		return source.DeltaPos{}
	case at.block && !at.first:
		return source.DeltaPos{Line: 1}
	case hugsNext(p.w.Last()):
		return source.DeltaPos{}
	}
	return source.DeltaPos{Col: 1}
}

func (p *printer) defaultKeyword(f *frame, kw token.Keyword) source.DeltaPos {
	switch {
	case !p.w.Wrote() || f.fresh || kw.Tight() || hugsNext(p.w.Last()):
		return source.DeltaPos{}
	}
	return source.DeltaPos{Col: 1}
}

func hugsNext(r rune) bool {
	return r == '(' || r == '[' || r == '\n' || r == ' '
}

// sourceOrder arranges items by the recorded sort key. Items without a key
// entry (inserted after parsing) stay right after their natural predecessor.
func sourceOrder(items []annot.Node, key []annot.AnnKey) []annot.Node {
	if len(key) == 0 {
		return items
	}
	rank := make(map[annot.AnnKey]int, len(key))
	for i, k := range key {
		rank[k] = i
	}
	type ranked struct {
		node    annot.Node
		rank    int
		unknown bool
		idx     int
	}
	rs := make([]ranked, len(items))
	last := -1
	for i, n := range items {
		r, ok := rank[annot.KeyOf(n)]
		if ok {
			last = r
		} else {
			r = last
		}
		rs[i] = ranked{node: n, rank: r, unknown: !ok, idx: i}
	}
	slices.SortStableFunc(rs, func(a, b ranked) int {
		if a.rank != b.rank {
			return a.rank - b.rank
		}
		if a.unknown != b.unknown {
			if a.unknown {
				return 1
			}
			return -1
		}
		return a.idx - b.idx
	})
	out := make([]annot.Node, len(rs))
	for i, r := range rs {
		out[i] = r.node
	}
	return out
}
