// Package balance moves trailing comments to the node they actually trail.
//
// The relativization engine hands every comment to the next node it meets,
// so "foo -- c1\nbar" leaves "-- c1" as a prior comment of bar. Only with the
// whole tree available can the preceding node on the same line be found;
// this pass runs after relativization and rewrites the store in place.
package balance

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"exactprint/internal/annot"
	"exactprint/internal/diag"
	"exactprint/internal/schedule"
	"exactprint/internal/source"
	"exactprint/internal/trace"
)

type Options struct {
	Registry *schedule.Registry
	Reporter diag.Reporter
}

// Result counts what the pass did.
type Result struct {
	Candidates int
	Moved      int
}

type entry struct {
	key    annot.AnnKey
	parent *entry
	depth  int
}

// Run reallocates same-line prior comments of the tree rooted at root.
func Run(ctx context.Context, root annot.Node, store *annot.Store, opts Options) (Result, error) {
	var res Result
	if opts.Registry == nil || store == nil {
		return res, fmt.Errorf("balance: registry and store are required")
	}
	rep := opts.Reporter
	if rep == nil {
		rep = diag.NopReporter{}
	}
	t := trace.FromContext(ctx)
	span := trace.Begin(t, trace.ScopePass, "balance", trace.CurrentSpan(ctx).SpanID)

	entries, err := collect(opts.Registry, root)
	if err != nil {
		span.End(err.Error())
		return res, err
	}
	for _, origin := range entries {
		ann, ok := store.Get(origin.key)
		if !ok {
			continue
		}
		for i := 0; i < len(ann.Prior); {
			cd := ann.Prior[i]
			if cd.Delta.Line != 0 || cd.Comment.Synthetic() {
				i++
				continue
			}
			res.Candidates++
			target := findTarget(entries, store, cd, rep)
			if target == nil {
				i++
				continue
			}
			ann.Prior = append(ann.Prior[:i:i], ann.Prior[i+1:]...)
			store.AddFollowing(target.key, cd)
			res.Moved++
			trace.Point(t, trace.ScopeNode, "moved", span.ID(),
				fmt.Sprintf("%s -> %s", origin.key, target.key))
		}
	}
	span.WithExtra("moved", strconv.Itoa(res.Moved)).End("")
	return res, nil
}

func collect(reg *schedule.Registry, root annot.Node) ([]*entry, error) {
	var out []*entry
	byNode := make(map[annot.AnnKey]*entry)
	err := reg.Walk(root, func(n, parent annot.Node) error {
		e := &entry{key: annot.KeyOf(n)}
		if parent != nil {
			e.parent = byNode[annot.KeyOf(parent)]
			if e.parent != nil {
				e.depth = e.parent.depth + 1
			}
		}
		byNode[e.key] = e
		out = append(out, e)
		return nil
	})
	return out, err
}

// findTarget returns the node cd trails, or nil when the comment must stay.
func findTarget(entries []*entry, store *annot.Store, cd annot.CommentDelta, rep diag.Reporter) *entry {
	at := cd.Comment.Span.Start
	// where the cursor stood when the comment was placed
	cursor := source.Pos{Line: at.Line, Col: at.Col - cd.Delta.Col}

	var latest source.Pos
	var ties []*entry
	for _, e := range entries {
		end := e.key.Span.End
		if end.Line != at.Line || at.Before(end) {
			continue
		}
		switch c := end.Compare(latest); {
		case c > 0:
			latest = end
			ties = append(ties[:0], e)
		case c == 0:
			ties = append(ties, e)
		}
	}
	if len(ties) == 0 || latest != cursor {
		return nil
	}

	var target *entry
	for _, e := range innermostFirst(ties) {
		if e.parent != nil && e.parent.key.Span.Contains(cd.Comment.Span) {
			target = e
			break
		}
	}
	if target == nil {
		return nil
	}
	if ann, ok := store.Get(target.key); ok {
		if last, ok := ann.LastToken(); ok && last.Kw.Structural() {
			diag.ReportInfo(rep, diag.BalStructuralEnd, cd.Comment.Span,
				fmt.Sprintf("%s ends with %q", target.key.Shape, last.Kw.Text())).Emit()
			return nil
		}
	}
	return target
}

func innermostFirst(es []*entry) []*entry {
	out := slices.Clone(es)
	slices.SortStableFunc(out, func(a, b *entry) int { return b.depth - a.depth })
	return out
}
