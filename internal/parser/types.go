package parser

import (
	"exactprint/internal/ast"
	"exactprint/internal/diag"
	"exactprint/internal/token"
)

// type: btype [-> type]
func (p *Parser) parseType() ast.Expr {
	arg := p.parseBType()
	if arg == nil {
		return nil
	}
	if !p.at(token.KwRArrow) {
		return arg
	}
	ft := &ast.FunTy{Arg: arg}
	p.fact(ft, p.advance())
	ft.Res = p.parseType()
	ft.Loc = p.spanFrom(arg.Span().Start)
	return ft
}

// btype: atype {atype}
func (p *Parser) parseBType() ast.Expr {
	if !p.startsAType() {
		p.err(diag.SynExpectType, "expected type, got "+describe(p.cur()))
		return nil
	}
	fn := p.parseAType()
	for p.startsAType() {
		app := &ast.App{Fun: fn}
		app.Arg = p.parseAType()
		app.Loc = p.spanFrom(fn.Span().Start)
		fn = app
	}
	return fn
}

func (p *Parser) startsAType() bool {
	t := p.cur()
	return t.Kind == token.VarID || t.Kind == token.ConID || t.Is(token.KwOpenP) || t.Is(token.KwOpenS)
}

func (p *Parser) parseAType() ast.Expr {
	t := p.cur()
	switch {
	case t.Kind == token.VarID:
		return p.parseVarName()
	case t.Kind == token.ConID:
		return p.parseCon()
	case t.Is(token.KwOpenP):
		return p.parseParens(p.parseType)
	case t.Is(token.KwOpenS):
		return p.parseBrackets(p.parseType)
	}
	p.err(diag.SynExpectType, "expected type, got "+describe(t))
	return nil
}
