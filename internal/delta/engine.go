package delta

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

// ErrNoRegistry is returned when Options carry no schedule registry.
var ErrNoRegistry = errors.New("delta: no schedule registry")

// Input is everything the front-end hands over.
type Input struct {
	Root     annot.Node
	Facts    *annot.FactTable
	Comments []annot.Comment
	// Start is where output begins; the zero value means source.StartPos.
	Start source.Pos
	// Source, when set, lets gaps the printer cannot rebuild from line and
	// column counts (tabs, trailing blanks) be recorded verbatim.
	Source *source.File
}

type Options struct {
	Registry *schedule.Registry
	Reporter diag.Reporter
}

// Result of a relativization run.
type Result struct {
	Store *annot.Store
	// Synthesized are comments made from facts nobody consumed.
	Synthesized []annot.Comment
	// Unallocated are comments left when the tree has no end-of-input marker.
	Unallocated []annot.Comment
	// Consumed counts facts taken from the pool, Skipped those among them
	// that were virtual separators behind the cursor, Dropped the zero-width
	// facts that never entered it.
	Consumed int
	Skipped  int
	Dropped  int
}

type engine struct {
	reg    *schedule.Registry
	rep    diag.Reporter
	src    *source.File
	tracer trace.Tracer
	spanID uint64

	store    *annot.Store
	facts    *factPool
	comments *commentPool

	cursor    source.Pos
	baselines []int
	pending   bool

	res *Result
}

// nodeState is the record under construction for the node being visited.
type nodeState struct {
	node annot.Node
	key  annot.AnnKey
	ann  *annot.Annotation
}

func (st *nodeState) factKey(kw token.Keyword) annot.FactKey {
	return annot.FactKey{Node: st.key, Kw: kw}
}

// Relativize builds the annotation store for in.Root.
// It fails only for shapes the registry cannot schedule.
func Relativize(ctx context.Context, in Input, opts Options) (*Result, error) {
	if opts.Registry == nil {
		return nil, ErrNoRegistry
	}
	rep := opts.Reporter
	if rep == nil {
		rep = diag.NopReporter{}
	}
	t := trace.FromContext(ctx)
	span := trace.Begin(t, trace.ScopePass, "relativize", trace.CurrentSpan(ctx).SpanID)

	e := &engine{
		reg:      opts.Registry,
		rep:      rep,
		src:      in.Source,
		tracer:   t,
		spanID:   span.ID(),
		store:    annot.NewStore(),
		facts:    newFactPool(in.Facts),
		comments: newCommentPool(in.Comments),
		cursor:   in.Start,
		res:      &Result{},
	}
	if !e.cursor.IsValid() {
		e.cursor = source.StartPos
	}
	if err := e.visit(in.Root); err != nil {
		span.End(err.Error())
		return nil, err
	}

	e.res.Store = e.store
	e.res.Unallocated = e.comments.rest()
	e.res.Consumed = e.facts.consumed
	e.res.Dropped = e.facts.dropped
	span.WithExtra("records", strconv.Itoa(e.store.Len())).
		WithExtra("facts", strconv.Itoa(e.res.Consumed)).
		End("")
	return e.res, nil
}

func (e *engine) baseline() int {
	if len(e.baselines) == 0 {
		return 0
	}
	return e.baselines[len(e.baselines)-1]
}

func (e *engine) deltaTo(p source.Pos) source.DeltaPos {
	d := source.Delta(e.cursor, p).Rebase(e.baseline())
	if e.src == nil || p.Before(e.cursor) {
		return d
	}
	// пробелы, которые не восстановить по (Line, Col), сохраняем как есть
	if gap := e.src.Text(e.cursor, p); gap != source.Fill(e.cursor, p) && source.IsBlank(gap) {
		d.Raw = gap
	}
	return d
}

// establish turns a pending layout region's baseline into the current column.
func (e *engine) establish() {
	if e.pending {
		e.baselines = append(e.baselines, e.cursor.Col)
		e.pending = false
	}
}

func (e *engine) placeComment(c annot.Comment) annot.CommentDelta {
	d := e.deltaTo(c.Span.Start)
	e.cursor = source.MaxPos(e.cursor, c.Span.End)
	return annot.CommentDelta{Comment: c, Delta: d}
}

func (e *engine) commentMarkers(st *nodeState, before source.Pos) {
	for _, c := range e.comments.drainBefore(before) {
		cd := e.placeComment(c)
		st.ann.Tokens = append(st.ann.Tokens, annot.TokenDelta{Kw: token.KwComment, Delta: cd.Delta, Comment: &cd.Comment})
	}
}

func (e *engine) visit(n annot.Node) error {
	instrs, err := e.reg.Instructions(n)
	if err != nil {
		return err
	}
	span := n.Span()
	st := &nodeState{node: n, key: annot.KeyOf(n), ann: &annot.Annotation{}}
	trace.Point(e.tracer, trace.ScopeNode, string(st.key.Shape), e.spanID, span.String())

	for _, c := range e.comments.drainBefore(span.Start) {
		st.ann.Prior = append(st.ann.Prior, e.placeComment(c))
	}
	if span.Start.Before(e.cursor) {
		diag.ReportInfo(e.rep, diag.AnnCursorRewind, span,
			fmt.Sprintf("%s starts before %s", st.key.Shape, e.cursor)).Emit()
	}
	st.ann.Entry = e.deltaTo(span.Start)
	e.cursor = source.MaxPos(e.cursor, span.Start)
	e.establish()
	e.checkAmbiguous(st, instrs)

	if err := e.run(st, instrs); err != nil {
		return err
	}
	e.commentMarkers(st, span.End)
	e.cursor = source.MaxPos(e.cursor, span.End)
	e.store.Put(st.key, st.ann)
	return nil
}

func (e *engine) run(st *nodeState, instrs []schedule.Instr) error {
	for _, in := range instrs {
		switch in.Op {
		case schedule.OpKeyword:
			if f, ok := e.facts.take(st.factKey(in.Kw)); ok {
				e.token(st, in.Kw, f)
			}
		case schedule.OpKeywordAt:
			if f, ok := e.facts.at(st.factKey(in.Kw), in.Index); ok {
				e.token(st, in.Kw, f)
			}
		case schedule.OpCounted:
			for range in.Count(st.node) {
				f, ok := e.facts.take(st.factKey(in.Kw))
				if !ok {
					break
				}
				e.token(st, in.Kw, f)
			}
		case schedule.OpChild:
			if c := in.Child(st.node); schedule.Present(c) {
				if err := e.visit(c); err != nil {
					return err
				}
			}
		case schedule.OpList:
			if err := e.list(st, in, schedule.Nodes(in.Items(st.node))); err != nil {
				return err
			}
		case schedule.OpSortedList:
			items := schedule.Nodes(in.Items(st.node))
			slices.SortStableFunc(items, func(a, b annot.Node) int {
				return a.Span().Start.Compare(b.Span().Start)
			})
			st.ann.SortKey = make([]annot.AnnKey, len(items))
			var cover source.Span
			for i, c := range items {
				st.ann.SortKey[i] = annot.KeyOf(c)
				cover = cover.Cover(c.Span())
			}
			st.ann.Captured = cover
			if err := e.list(st, in, items); err != nil {
				return err
			}
		case schedule.OpLayout:
			depth := len(e.baselines)
			e.pending = true
			err := e.run(st, in.Body)
			e.baselines = e.baselines[:depth]
			e.pending = false
			if err != nil {
				return err
			}
		case schedule.OpEOF:
			e.eof(st, in.End(st.node))
		}
	}
	return nil
}

// token records one consumed fact.
func (e *engine) token(st *nodeState, kw token.Keyword, f annot.Fact) {
	e.commentMarkers(st, f.Span.Start)
	d := e.deltaTo(f.Span.Start)
	e.cursor = source.MaxPos(e.cursor, f.Span.Start)
	e.establish()
	e.cursor = source.MaxPos(e.cursor, f.Span.End)
	st.ann.Tokens = append(st.ann.Tokens, annot.TokenDelta{
		Kw:      kw,
		Delta:   d,
		Unicode: kw.UsesUnicode(f.Span.Width()),
	})
}

// list visits items and records the separators of every gap between them,
// each gap closed by a boundary. Boundaries of empty gaps are written only
// once a later gap records something, so lists without recorded separators
// carry none.
func (e *engine) list(st *nodeState, in schedule.Instr, items []annot.Node) error {
	empty := 0
	for i, c := range items {
		if err := e.visit(c); err != nil {
			return err
		}
		if in.Sep == token.KwNone {
			continue
		}
		before := len(st.ann.Tokens)
		switch {
		case i+1 < len(items):
			e.separators(st, in.Sep, items[i+1].Span().Start, true)
		case in.Trailing:
			e.separators(st, in.Sep, source.Pos{}, false)
		default:
			continue
		}
		if len(st.ann.Tokens) == before {
			empty++
			continue
		}
		if empty > 0 {
			st.ann.Tokens = slices.Insert(st.ann.Tokens, before, slices.Repeat([]annot.TokenDelta{annot.Boundary()}, empty)...)
			empty = 0
		}
		st.ann.Tokens = append(st.ann.Tokens, annot.Boundary())
	}
	return nil
}

// separators consumes the separator facts lying before limit. A separator
// behind the cursor has no measurable delta and is treated as virtual.
func (e *engine) separators(st *nodeState, sep token.Keyword, limit source.Pos, bounded bool) {
	k := st.factKey(sep)
	for {
		f, ok := e.facts.peek(k)
		if !ok || (bounded && !f.Span.Start.Before(limit)) {
			return
		}
		e.facts.take(k)
		if f.Span.Start.Before(e.cursor) {
			e.res.Skipped++
			continue
		}
		e.token(st, sep, f)
	}
}

// eof flushes everything still unclaimed before recording the end of input.
func (e *engine) eof(st *nodeState, end source.Pos) {
	var trailing []annot.Comment
	for _, f := range e.facts.residue() {
		text := f.Text
		if text == "" {
			text = f.Kw.Text()
		}
		c := annot.Comment{Text: text, Span: f.Span, Origin: f.Kw.String()}
		diag.ReportWarning(e.rep, diag.AnnResidueFact, f.Span,
			fmt.Sprintf("unconsumed %q fact kept as a trailing comment", text)).Emit()
		e.res.Synthesized = append(e.res.Synthesized, c)
		trailing = append(trailing, c)
	}
	trailing = append(trailing, e.comments.rest()...)
	annot.SortComments(trailing)
	for _, c := range trailing {
		cd := e.placeComment(c)
		st.ann.Tokens = append(st.ann.Tokens, annot.TokenDelta{Kw: token.KwComment, Delta: cd.Delta, Comment: &cd.Comment})
	}
	d := e.deltaTo(end)
	e.cursor = source.MaxPos(e.cursor, end)
	st.ann.Tokens = append(st.ann.Tokens, annot.TokenDelta{Kw: token.KwEOF, Delta: d})
}

// checkAmbiguous reports keywords with more unconsumed facts than the
// schedule has single-occurrence slots for. Resolution is by position: the
// earliest fact is taken first and the surplus reaches end-of-input residue.
func (e *engine) checkAmbiguous(st *nodeState, instrs []schedule.Instr) {
	single, multi := schedule.Expectations(instrs)
	kws := make([]token.Keyword, 0, len(single))
	for kw := range single {
		if !multi[kw] {
			kws = append(kws, kw)
		}
	}
	slices.Sort(kws)
	for _, kw := range kws {
		facts := e.facts.remaining(st.factKey(kw))
		if len(facts) <= single[kw] {
			continue
		}
		b := diag.ReportWarning(e.rep, diag.AnnAmbiguousFact, st.key.Span,
			fmt.Sprintf("%s has %d %q facts for %d slot(s); taking the earliest", st.key.Shape, len(facts), kw, single[kw]))
		for _, f := range facts[single[kw]:] {
			b.WithNote(f.Span, "surplus fact")
		}
		b.Emit()
	}
}
