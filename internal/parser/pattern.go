package parser

import (
	"exactprint/internal/ast"
	"exactprint/internal/diag"
	"exactprint/internal/token"
)

func (p *Parser) startsAPat() bool {
	t := p.cur()
	switch t.Kind {
	case token.VarID, token.ConID, token.IntLit, token.StringLit, token.CharLit:
		return true
	}
	return t.Is(token.KwWild) || t.Is(token.KwOpenP) || t.Is(token.KwOpenS)
}

// pat: Con apat {apat} | apat
func (p *Parser) parsePat() ast.Expr {
	if p.atKind(token.ConID) {
		start := p.cur().Span.Start
		con := p.parseCon()
		if !p.startsAPat() {
			return con
		}
		cp := &ast.ConPat{Con: con}
		for p.startsAPat() {
			cp.Args = append(cp.Args, p.parseAPat())
		}
		cp.Loc = p.spanFrom(start)
		return cp
	}
	return p.parseAPat()
}

func (p *Parser) parseAPat() ast.Expr {
	t := p.cur()
	switch {
	case t.Kind == token.VarID:
		return p.parseVarName()
	case t.Kind == token.ConID:
		return p.parseCon()
	case t.IsLiteral():
		return p.parseLit()
	case t.Is(token.KwWild):
		w := &ast.Wild{Loc: t.Span}
		p.fact(w, p.advance())
		return w
	case t.Is(token.KwOpenP):
		return p.parseParens(p.parsePat)
	case t.Is(token.KwOpenS):
		return p.parseBrackets(p.parsePat)
	}
	p.err(diag.SynExpectPattern, "expected pattern, got "+describe(t))
	return nil
}
