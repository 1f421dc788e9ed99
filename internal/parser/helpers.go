package parser

import (
	"fmt"
	"slices"

	"exactprint/internal/annot"
	"exactprint/internal/diag"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

// tok returns token i, or the final EOF past the end.
func (p *Parser) tok(i int) token.Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

// cur returns the next token as the grammar sees it: a token that ends the
// current layout item reads as EOF.
func (p *Parser) cur() token.Token {
	t := p.toks[p.pos]
	if p.stopped(p.pos) {
		return token.Token{Kind: token.EOF, Span: source.Span{Start: t.Span.Start, End: t.Span.Start}}
	}
	return t
}

func (p *Parser) at(kw token.Keyword) bool { return p.cur().Is(kw) }

func (p *Parser) atKind(k token.Kind) bool { return p.cur().Kind == k }

// advance — съедает текущий токен и обновляет lastEnd
func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if t.Kind != token.EOF {
		p.pos++
		p.lastEnd = t.Span.End
	}
	return t
}

// fact records t as a fact of owner. Non-reserved tokens are value facts.
func (p *Parser) fact(owner annot.Node, t token.Token) {
	kw := t.Kw
	if t.Kind != token.Reserved {
		kw = token.KwVal
	}
	p.facts = append(p.facts, pendingFact{owner: owner, fact: annot.Fact{Kw: kw, Span: t.Span, Text: t.Text}})
}

// virtual records a zero-width fact for punctuation the layout rule implies.
func (p *Parser) virtual(owner annot.Node, kw token.Keyword, at source.Pos) {
	p.facts = append(p.facts, pendingFact{owner: owner, fact: annot.Fact{Kw: kw, Span: source.Span{Start: at, End: at}}})
}

// take consumes kw as a fact of owner if it is next.
func (p *Parser) take(owner annot.Node, kw token.Keyword) bool {
	if !p.at(kw) {
		return false
	}
	p.fact(owner, p.advance())
	return true
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем false.
func (p *Parser) expect(owner annot.Node, kw token.Keyword, code diag.Code) bool {
	if p.take(owner, kw) {
		return true
	}
	p.err(code, fmt.Sprintf("expected %q, got %s", kw.Text(), describe(p.cur())))
	return false
}

func (p *Parser) spanFrom(start source.Pos) source.Span {
	end := p.lastEnd
	if end.Before(start) {
		end = start
	}
	return source.Span{Start: start, End: end}
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of block"
	}
	return fmt.Sprintf("%q", t.Text)
}

// репортует ошибку на текущем токене
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.cur().Span, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.quiet > 0 {
		if sev == diag.SevError {
			p.failed = true
		}
		return
	}
	if sev == diag.SevError {
		if p.opts.Enough() {
			return
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

type state struct {
	pos      int
	lastEnd  source.Pos
	ctx      []int
	released int
	facts    int
}

func (p *Parser) save() state {
	return state{
		pos:      p.pos,
		lastEnd:  p.lastEnd,
		ctx:      slices.Clone(p.ctx),
		released: p.released,
		facts:    len(p.facts),
	}
}

func (p *Parser) restore(s state) {
	p.pos = s.pos
	p.lastEnd = s.lastEnd
	p.ctx = s.ctx
	p.released = s.released
	p.facts = p.facts[:s.facts]
}

// try runs f speculatively. On failure, or if f reported an error, the
// parser is put back where it was and nothing is reported.
func (p *Parser) try(f func() bool) bool {
	s := p.save()
	outer := p.failed
	p.failed = false
	p.quiet++
	ok := f() && !p.failed
	p.quiet--
	p.failed = outer
	if !ok {
		p.restore(s)
	}
	return ok
}
