package parser

import (
	"exactprint/internal/annot"
	"exactprint/internal/ast"
	"exactprint/internal/diag"
	"exactprint/internal/lexer"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result is everything the exact-print passes need from one file.
type Result struct {
	Module   *ast.Module
	Facts    *annot.FactTable
	Comments []annot.Comment
	Tokens   []token.Token
	// Errors counts syntax errors; lexical errors go to the reporter only.
	Errors uint
}

// pendingFact waits for its owner's span to be final.
type pendingFact struct {
	owner annot.Node
	fact  annot.Fact
}

// Parser — состояние парсера на один файл
type Parser struct {
	toks    []token.Token
	pos     int
	opts    Options
	lastEnd source.Pos // конец последнего съеденного токена

	// layout contexts: column of an implicit block, -1 for explicit braces
	ctx []int
	// released is the token that opens the current layout item; it never
	// reads as a block terminator
	released int

	facts []pendingFact

	// quiet > 0 while a speculative parse runs; errors only mark failed
	quiet  int
	failed bool
}

// ParseFile lexes and parses one file.
func ParseFile(file *source.File, opts Options) Result {
	toks := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	return ParseTokens(toks, opts)
}

// ParseSource parses src as a virtual file called name.
func ParseSource(name string, src []byte, opts Options) (Result, *source.File) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual(name, src))
	return ParseFile(f, opts), f
}

// ParseTokens parses a token stream ending with EOF.
func ParseTokens(toks []token.Token, opts Options) Result {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		end := source.StartPos
		if len(toks) > 0 {
			end = toks[len(toks)-1].Span.End
		}
		toks = append(toks, token.Token{Kind: token.EOF, Kw: token.KwEOF, Span: source.Span{Start: end, End: end}})
	}
	p := &Parser{
		toks:     toks,
		opts:     opts,
		lastEnd:  toks[0].Span.Start,
		released: -1,
	}
	m := p.parseModule()

	table := annot.NewFactTable()
	for _, pf := range p.facts {
		table.Add(annot.KeyOf(pf.owner), pf.fact)
	}
	return Result{
		Module:   m,
		Facts:    table,
		Comments: Comments(toks),
		Tokens:   toks,
		Errors:   p.opts.CurrentErrors,
	}
}

// Comments extracts the comments of a token stream in source order.
// Pragmas come out as comments tagged annot.OriginPragma.
func Comments(toks []token.Token) []annot.Comment {
	var out []annot.Comment
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if !tr.Kind.IsComment() {
				continue
			}
			c := annot.Comment{Text: tr.Text, Span: tr.Span}
			if tr.Kind == token.TriviaPragma {
				c.Origin = annot.OriginPragma
			}
			out = append(out, c)
		}
	}
	return out
}
