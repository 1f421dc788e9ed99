package parser

import (
	"exactprint/internal/annot"
	"exactprint/internal/diag"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

// Layout follows the offside rule. An implicit block remembers the column
// of its first token; a token that starts a line at that column begins a
// new item, one further left closes the block. Any other token that cannot
// continue the current item also closes it. Implied braces and semicolons
// are recorded as zero-width facts.

// owner picks the node that owns a brace or separator of a block.
type owner func(kw token.Keyword) annot.Node

func ownedBy(n annot.Node) owner {
	return func(token.Keyword) annot.Node { return n }
}

func (p *Parser) lineStart(i int) bool {
	if i == 0 {
		return true
	}
	return p.toks[i].Span.Start.Line > p.toks[i-1].Span.End.Line
}

// stopped reports whether token i ends the current implicit layout item.
func (p *Parser) stopped(i int) bool {
	if len(p.ctx) == 0 || i == p.released {
		return false
	}
	top := p.ctx[len(p.ctx)-1]
	t := p.toks[i]
	return top >= 0 && t.Kind != token.EOF && p.lineStart(i) && t.Span.Start.Col <= top
}

func (p *Parser) layoutTop() int {
	if len(p.ctx) == 0 {
		return -1
	}
	return p.ctx[len(p.ctx)-1]
}

// block parses a layout block and returns its extent: the braces when
// explicit, the items otherwise.
func (p *Parser) block(own owner, item func()) source.Span {
	if p.at(token.KwOpenC) {
		return p.explicitBlock(own, item)
	}
	return p.implicitBlock(own, item)
}

func (p *Parser) explicitBlock(own owner, item func()) source.Span {
	open := p.advance()
	p.fact(own(token.KwOpenC), open)
	p.ctx = append(p.ctx, -1)
	defer func() { p.ctx = p.ctx[:len(p.ctx)-1] }()

	expect := true
	for {
		t := p.cur()
		switch {
		case t.Is(token.KwCloseC):
			p.fact(own(token.KwCloseC), p.advance())
			return p.spanFrom(open.Span.Start)
		case t.Kind == token.EOF:
			p.report(diag.SynUnclosedBrace, diag.SevError, open.Span, "unclosed '{'")
			return p.spanFrom(open.Span.Start)
		case t.Is(token.KwSemi):
			p.fact(own(token.KwSemi), p.advance())
			expect = true
		case expect:
			p.item(item)
			expect = false
		default:
			p.err(diag.SynUnexpectedToken, "expected ';' or '}', got "+describe(t))
			p.advance()
		}
	}
}

func (p *Parser) implicitBlock(own owner, item func()) source.Span {
	t := p.cur()
	at := t.Span.Start
	if t.Kind == token.EOF || at.Col <= p.layoutTop() {
		// пустой блок
		p.virtual(own(token.KwOpenC), token.KwOpenC, at)
		p.virtual(own(token.KwCloseC), token.KwCloseC, at)
		return source.Span{Start: at, End: at}
	}
	col := at.Col
	p.virtual(own(token.KwOpenC), token.KwOpenC, at)
	p.ctx = append(p.ctx, col)
	p.released = p.pos

	expect := true
	for {
		i := p.pos
		r := p.toks[i]
		if r.Kind == token.EOF {
			break
		}
		if p.lineStart(i) && i != p.released {
			c := r.Span.Start.Col
			if c < col {
				break
			}
			if c == col {
				if !expect {
					p.virtual(own(token.KwSemi), token.KwSemi, r.Span.Start)
				}
				expect = true
				p.released = i
			}
		}
		if r.Is(token.KwSemi) {
			p.fact(own(token.KwSemi), p.advance())
			expect = true
			continue
		}
		if !expect {
			// parse-error(t): the token cannot continue the item
			break
		}
		p.item(item)
		expect = false
	}
	p.ctx = p.ctx[:len(p.ctx)-1]
	p.virtual(own(token.KwCloseC), token.KwCloseC, p.toks[p.pos].Span.Start)
	return p.spanFrom(at)
}

// item parses one block entry and guarantees progress.
func (p *Parser) item(parse func()) {
	start := p.pos
	parse()
	if p.pos == start && p.toks[p.pos].Kind != token.EOF {
		p.report(diag.SynUnexpectedToken, diag.SevError, p.toks[p.pos].Span, "unexpected "+describe(p.toks[p.pos]))
		p.advance()
	}
}

// optSemi records the optional ';' in front of then/else. Inside a do block
// a then or else aligned with the statements does not start a statement.
// Exactly one fact is recorded, zero-width when the ';' is absent.
func (p *Parser) optSemi(n annot.Node, next token.Keyword) {
	r := p.toks[p.pos]
	if r.Is(token.KwSemi) && !p.stopped(p.pos) && p.tok(p.pos+1).Is(next) {
		p.fact(n, p.advance())
	} else {
		p.virtual(n, token.KwSemi, r.Span.Start)
	}
	if p.toks[p.pos].Is(next) && p.stopped(p.pos) && p.toks[p.pos].Span.Start.Col == p.layoutTop() {
		p.released = p.pos
	}
}
