package parser

import (
	"exactprint/internal/annot"
	"exactprint/internal/ast"
	"exactprint/internal/diag"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

// parseModule — вход: [module Name where] body EOF.
func (p *Parser) parseModule() *ast.Module {
	m := &ast.Module{}
	start := p.cur().Span.Start
	if p.at(token.KwModule) {
		p.fact(m, p.advance())
		m.Name = p.parseModName(diag.SynExpectModuleName)
		p.expect(m, token.KwWhere, diag.SynExpectKeyword)
	}

	body := &ast.Binds{}
	inDecls := false
	var bodyStart, bodyEnd source.Pos
	own := func(kw token.Keyword) annot.Node {
		if kw == token.KwSemi && inDecls {
			return body
		}
		return m
	}
	p.block(own, func() {
		if p.at(token.KwImport) {
			if inDecls {
				p.err(diag.SynUnexpectedTopLevel, "import after declarations")
			}
			m.Imports = append(m.Imports, p.parseImport())
			return
		}
		before := p.pos
		if !inDecls {
			bodyStart = p.cur().Span.Start
		}
		p.parseDecl(body)
		if p.pos != before {
			inDecls = true
			bodyEnd = p.lastEnd
		}
	})
	if inDecls {
		body.Loc = source.Span{Start: bodyStart, End: bodyEnd}
		m.Body = body
	}

	if p.toks[p.pos].Kind != token.EOF {
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.toks[p.pos].Span,
			"unexpected "+describe(p.toks[p.pos])+" at top level")
		for p.toks[p.pos].Kind != token.EOF {
			p.advance()
		}
	}
	m.EOF = p.toks[p.pos].Span.Start
	m.Loc = source.Span{Start: start, End: m.EOF}
	return m
}

func (p *Parser) parseModName(code diag.Code) *ast.ModName {
	t := p.cur()
	if t.Kind != token.ConID {
		p.err(code, "expected module name, got "+describe(t))
		return nil
	}
	n := &ast.ModName{Loc: t.Span, Name: t.Text}
	p.fact(n, p.advance())
	return n
}

// import [qualified] M [as N]
func (p *Parser) parseImport() *ast.Import {
	imp := &ast.Import{}
	start := p.cur().Span.Start
	p.fact(imp, p.advance())
	if p.take(imp, token.KwQualified) {
		imp.Qualified = true
	}
	imp.Name = p.parseModName(diag.SynExpectModuleName)
	if p.take(imp, token.KwAs) {
		imp.As = p.parseModName(diag.SynExpectModuleName)
	}
	imp.Loc = p.spanFrom(start)
	return imp
}

// parseBinds parses the declaration block after let or where.
func (p *Parser) parseBinds() *ast.Binds {
	b := &ast.Binds{}
	b.Loc = p.block(ownedBy(b), func() { p.parseDecl(b) })
	return b
}

func (p *Parser) parseDecl(b *ast.Binds) {
	if p.isSig() {
		b.Sigs = append(b.Sigs, p.parseSig())
		return
	}
	if fb := p.parseFunBind(); fb != nil {
		b.Binds = append(b.Binds, fb)
	}
}

// isSig looks ahead for `name {, name} ::`.
func (p *Parser) isSig() bool {
	if p.stopped(p.pos) {
		return false
	}
	i := p.pos
	for {
		switch {
		case p.tok(i).Kind == token.VarID:
			i++
		case p.tok(i).Is(token.KwOpenP) && p.tok(i+1).Kind == token.VarSym && p.tok(i+2).Is(token.KwCloseP):
			i += 3
		default:
			return false
		}
		if p.tok(i).Is(token.KwDColon) {
			return true
		}
		if !p.tok(i).Is(token.KwComma) {
			return false
		}
		i++
	}
}

func (p *Parser) parseSig() *ast.Sig {
	sig := &ast.Sig{}
	start := p.cur().Span.Start
	for {
		v := p.parseVarName()
		if v == nil {
			break
		}
		sig.Names = append(sig.Names, v)
		if !p.take(sig, token.KwComma) {
			break
		}
	}
	p.expect(sig, token.KwDColon, diag.SynExpectKeyword)
	sig.Type = p.parseType()
	sig.Loc = p.spanFrom(start)
	return sig
}

// name apat* = expr [where binds]
func (p *Parser) parseFunBind() *ast.FunBind {
	fb := &ast.FunBind{}
	start := p.cur().Span.Start
	fb.Name = p.parseVarName()
	if fb.Name == nil {
		p.err(diag.SynUnexpectedTopLevel, "expected a declaration, got "+describe(p.cur()))
		return nil
	}
	for !p.at(token.KwEqual) && p.startsAPat() {
		fb.Pats = append(fb.Pats, p.parseAPat())
	}
	if p.expect(fb, token.KwEqual, diag.SynExpectEquals) {
		fb.Rhs = p.parseExpr()
		if p.take(fb, token.KwWhere) {
			if w := p.parseBinds(); len(w.Sigs)+len(w.Binds) > 0 || !w.Loc.Empty() {
				fb.Where = w
			}
		}
	}
	fb.Loc = p.spanFrom(start)
	return fb
}

// parseVarName: varid или (varsym).
func (p *Parser) parseVarName() *ast.Var {
	t := p.cur()
	if t.Kind == token.VarID {
		v := &ast.Var{Loc: t.Span, Name: t.Text}
		p.fact(v, p.advance())
		return v
	}
	if t.Is(token.KwOpenP) && p.tok(p.pos+1).Kind == token.VarSym && p.tok(p.pos+2).Is(token.KwCloseP) {
		v := &ast.Var{Parens: true}
		p.fact(v, p.advance())
		op := p.advance()
		p.fact(v, op)
		v.Name = op.Text
		p.fact(v, p.advance())
		v.Loc = p.spanFrom(t.Span.Start)
		return v
	}
	return nil
}
