package token

import (
	"exactprint/internal/source"
)

// Kind is the lexical category of a token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// VarID is a lowercase identifier.
	VarID
	// ConID is a capitalised, possibly dotted, identifier.
	ConID
	// IntLit is an integer literal.
	IntLit
	// StringLit is a string literal including quotes.
	StringLit
	// CharLit is a character literal including quotes.
	CharLit
	// VarSym is an operator symbol that is not reserved.
	VarSym
	// Reserved is a reserved word or symbol; Token.Kw says which.
	Reserved
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	VarID:     "VarID",
	ConID:     "ConID",
	IntLit:    "IntLit",
	StringLit: "StringLit",
	CharLit:   "CharLit",
	VarSym:    "VarSym",
	Reserved:  "Reserved",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Kw      Keyword
	Span    source.Span
	Text    string
	Leading []Trivia
}

// Is reports whether the token is the given reserved keyword.
func (t Token) Is(kw Keyword) bool {
	return t.Kind == Reserved && t.Kw == kw
}

// IsLiteral reports whether the token is a numeric, string or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}
