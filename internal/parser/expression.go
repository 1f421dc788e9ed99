package parser

import (
	"strings"

	"exactprint/internal/annot"
	"exactprint/internal/ast"
	"exactprint/internal/diag"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

// parseExpr — infixexp: lexp {varsym lexp}. Операторы левоассоциативны,
// приоритеты не разбираются.
func (p *Parser) parseExpr() ast.Expr {
	left := p.parseLExpr()
	if left == nil {
		return nil
	}
	for p.atKind(token.VarSym) {
		op := p.advance()
		oa := &ast.OpApp{Left: left, Op: op.Text}
		p.fact(oa, op)
		oa.Right = p.parseLExpr()
		oa.Loc = p.spanFrom(left.Span().Start)
		left = oa
	}
	return left
}

func (p *Parser) parseLExpr() ast.Expr {
	switch {
	case p.at(token.KwLam):
		return p.parseLambda()
	case p.at(token.KwLet):
		return p.parseLet()
	case p.at(token.KwIf):
		return p.parseIf()
	case p.at(token.KwCase):
		return p.parseCase()
	case p.at(token.KwDo):
		return p.parseDo()
	}
	return p.parseFExpr()
}

// fexp: aexp {aexp}
func (p *Parser) parseFExpr() ast.Expr {
	if !p.startsAExpr() {
		p.err(diag.SynExpectExpr, "expected expression, got "+describe(p.cur()))
		return nil
	}
	fn := p.parseAExpr()
	for p.startsAExpr() {
		app := &ast.App{Fun: fn}
		app.Arg = p.parseAExpr()
		app.Loc = p.spanFrom(fn.Span().Start)
		fn = app
	}
	return fn
}

func (p *Parser) startsAExpr() bool {
	t := p.cur()
	switch t.Kind {
	case token.VarID, token.ConID, token.IntLit, token.StringLit, token.CharLit:
		return true
	}
	return t.Is(token.KwOpenP) || t.Is(token.KwOpenS)
}

func (p *Parser) parseAExpr() ast.Expr {
	t := p.cur()
	switch {
	case t.Kind == token.VarID:
		return p.parseVarName()
	case t.Kind == token.ConID:
		return p.parseCon()
	case t.IsLiteral():
		return p.parseLit()
	case t.Is(token.KwOpenP):
		if v := p.parseVarName(); v != nil {
			return v
		}
		return p.parseParens(p.parseExpr)
	case t.Is(token.KwOpenS):
		return p.parseBrackets(p.parseExpr)
	}
	p.err(diag.SynExpectExpr, "expected expression, got "+describe(t))
	return nil
}

func (p *Parser) parseCon() *ast.Con {
	t := p.advance()
	c := &ast.Con{Loc: t.Span, Name: t.Text}
	p.fact(c, t)
	return c
}

func (p *Parser) parseLit() *ast.Lit {
	t := p.advance()
	l := &ast.Lit{Loc: t.Span, Text: t.Text}
	p.fact(l, t)
	return l
}

// parseParens разбирает (), (,,), (e) и (e, e...) поверх elem.
func (p *Parser) parseParens(elem func() ast.Expr) ast.Expr {
	if next := p.tok(p.pos + 1); next.Is(token.KwCloseP) || next.Is(token.KwComma) {
		return p.parseSpecialCon()
	}
	open := p.advance()
	first := elem()
	if !p.at(token.KwComma) {
		par := &ast.Par{Inner: first}
		p.fact(par, open)
		p.closeParen(par, open)
		par.Loc = p.spanFrom(open.Span.Start)
		return par
	}
	tup := &ast.Tuple{Elems: []ast.Expr{first}}
	p.fact(tup, open)
	for p.take(tup, token.KwComma) {
		tup.Elems = append(tup.Elems, elem())
	}
	p.closeParen(tup, open)
	tup.Loc = p.spanFrom(open.Span.Start)
	return tup
}

func (p *Parser) parseSpecialCon() *ast.Con {
	c := &ast.Con{Special: true}
	open := p.advance()
	p.fact(c, open)
	for p.take(c, token.KwComma) {
		c.Commas++
	}
	p.closeParen(c, open)
	c.Name = "(" + strings.Repeat(",", c.Commas) + ")"
	c.Loc = p.spanFrom(open.Span.Start)
	return c
}

func (p *Parser) closeParen(n annot.Node, open token.Token) {
	if !p.take(n, token.KwCloseP) {
		p.report(diag.SynUnclosedParen, diag.SevError, open.Span, "unclosed '(', got "+describe(p.cur()))
	}
}

func (p *Parser) parseBrackets(elem func() ast.Expr) ast.Expr {
	l := &ast.List{}
	open := p.advance()
	p.fact(l, open)
	if !p.at(token.KwCloseS) {
		for {
			l.Elems = append(l.Elems, elem())
			if !p.take(l, token.KwComma) {
				break
			}
		}
	}
	if !p.take(l, token.KwCloseS) {
		p.report(diag.SynUnclosedBracket, diag.SevError, open.Span, "unclosed '[', got "+describe(p.cur()))
	}
	l.Loc = p.spanFrom(open.Span.Start)
	return l
}

// \ apat {apat} -> expr
func (p *Parser) parseLambda() ast.Expr {
	l := &ast.Lambda{}
	start := p.cur().Span.Start
	p.fact(l, p.advance())
	for p.startsAPat() {
		l.Pats = append(l.Pats, p.parseAPat())
	}
	if len(l.Pats) == 0 {
		p.err(diag.SynExpectPattern, "expected lambda argument, got "+describe(p.cur()))
	}
	if p.expect(l, token.KwRArrow, diag.SynExpectArrow) {
		l.Body = p.parseExpr()
	}
	l.Loc = p.spanFrom(start)
	return l
}

// let binds in expr
func (p *Parser) parseLet() ast.Expr {
	l := &ast.Let{}
	start := p.cur().Span.Start
	p.fact(l, p.advance())
	l.Binds = p.parseBinds()
	return p.finishLet(l, start)
}

func (p *Parser) finishLet(l *ast.Let, start source.Pos) ast.Expr {
	if p.expect(l, token.KwIn, diag.SynExpectKeyword) {
		l.Body = p.parseExpr()
	}
	l.Loc = p.spanFrom(start)
	return l
}

// if e [;] then e [;] else e
func (p *Parser) parseIf() ast.Expr {
	n := &ast.If{}
	start := p.cur().Span.Start
	p.fact(n, p.advance())
	n.Cond = p.parseExpr()
	p.optSemi(n, token.KwThen)
	if p.expect(n, token.KwThen, diag.SynExpectKeyword) {
		n.Then = p.parseExpr()
	}
	p.optSemi(n, token.KwElse)
	if p.expect(n, token.KwElse, diag.SynExpectKeyword) {
		n.Else = p.parseExpr()
	}
	n.Loc = p.spanFrom(start)
	return n
}

// case e of { alt; ... }
func (p *Parser) parseCase() ast.Expr {
	c := &ast.Case{}
	start := p.cur().Span.Start
	p.fact(c, p.advance())
	c.Scrut = p.parseExpr()
	if p.expect(c, token.KwOf, diag.SynExpectKeyword) {
		p.block(ownedBy(c), func() {
			if a := p.parseAlt(); a != nil {
				c.Alts = append(c.Alts, a)
			}
		})
	}
	c.Loc = p.spanFrom(start)
	return c
}

func (p *Parser) parseAlt() *ast.Alt {
	a := &ast.Alt{}
	start := p.cur().Span.Start
	a.Pat = p.parsePat()
	if a.Pat == nil {
		return nil
	}
	if p.expect(a, token.KwRArrow, diag.SynExpectArrow) {
		a.Rhs = p.parseExpr()
	}
	a.Loc = p.spanFrom(start)
	return a
}

// do { stmt; ... }
func (p *Parser) parseDo() ast.Expr {
	d := &ast.Do{}
	start := p.cur().Span.Start
	p.fact(d, p.advance())
	p.block(ownedBy(d), func() {
		if s := p.parseStmt(); s != nil {
			d.Stmts = append(d.Stmts, s)
		}
	})
	d.Loc = p.spanFrom(start)
	return d
}

// stmt: let binds | pat <- expr | expr. A let followed by in is an
// expression statement.
func (p *Parser) parseStmt() ast.Stmt {
	start := p.cur().Span.Start
	if p.at(token.KwLet) {
		letTok := p.advance()
		binds := p.parseBinds()
		if p.at(token.KwIn) {
			l := &ast.Let{Binds: binds}
			p.fact(l, letTok)
			e := p.finishLet(l, start)
			return &ast.BodyStmt{Expr: e, Loc: p.spanFrom(start)}
		}
		ls := &ast.LetStmt{Binds: binds}
		p.fact(ls, letTok)
		ls.Loc = p.spanFrom(start)
		return ls
	}

	var bs *ast.BindStmt
	if p.try(func() bool {
		pat := p.parsePat()
		if pat == nil || !p.at(token.KwLArrow) {
			return false
		}
		bs = &ast.BindStmt{Pat: pat}
		p.fact(bs, p.advance())
		return true
	}) {
		bs.Expr = p.parseExpr()
		bs.Loc = p.spanFrom(start)
		return bs
	}

	e := p.parseExpr()
	if e == nil {
		return nil
	}
	return &ast.BodyStmt{Expr: e, Loc: p.spanFrom(start)}
}
