package driver

import (
	"fmt"
	"os"

	"exactprint/internal/diag"
	"exactprint/internal/lexer"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

// TokenizeResult holds the token stream of one file.
type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize lexes path without parsing it.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	bag := newBag(Options{MaxDiagnostics: maxDiagnostics})
	fs := source.NewFileSet()
	file := fs.Get(fs.AddRaw(path, content))
	toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{File: file, Tokens: toks, Bag: bag}, nil
}
