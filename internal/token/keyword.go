package token

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Keyword identifies a token a schedule can ask for and an annotation can
// record a delta for.
type Keyword uint8

const (
	// KwNone is the absent keyword.
	KwNone Keyword = iota
	// KwVal is an identifier or literal; its text comes from the node.
	KwVal
	// KwComment marks a comment interleaved with a node's own tokens.
	KwComment
	// KwEOF marks the end of input.
	KwEOF

	KwModule
	KwWhere
	KwImport
	KwQualified
	KwAs
	KwLet
	KwIn
	KwDo
	KwCase
	KwOf
	KwIf
	KwThen
	KwElse

	KwDColon // ::
	KwEqual  // =
	KwLam    // \
	KwRArrow // ->
	KwLArrow // <-
	KwComma  // ,
	KwSemi   // ;
	KwOpenP  // (
	KwCloseP // )
	KwOpenS  // [
	KwCloseS // ]
	KwOpenC  // {
	KwCloseC // }
	KwWild   // _

	keywordCount
)

type glyph struct {
	name       string
	ascii      string
	unicode    string
	tight      bool // no space before it by default
	structural bool // its meaning depends on what directly follows it
}

var glyphs = [keywordCount]glyph{
	KwNone:      {name: "none"},
	KwVal:       {name: "val"},
	KwComment:   {name: "comment"},
	KwEOF:       {name: "eof"},
	KwModule:    {name: "module", ascii: "module"},
	KwWhere:     {name: "where", ascii: "where"},
	KwImport:    {name: "import", ascii: "import"},
	KwQualified: {name: "qualified", ascii: "qualified"},
	KwAs:        {name: "as", ascii: "as"},
	KwLet:       {name: "let", ascii: "let"},
	KwIn:        {name: "in", ascii: "in"},
	KwDo:        {name: "do", ascii: "do"},
	KwCase:      {name: "case", ascii: "case"},
	KwOf:        {name: "of", ascii: "of"},
	KwIf:        {name: "if", ascii: "if"},
	KwThen:      {name: "then", ascii: "then"},
	KwElse:      {name: "else", ascii: "else"},
	KwDColon:    {name: "dcolon", ascii: "::", unicode: "∷"},
	KwEqual:     {name: "equal", ascii: "="},
	KwLam:       {name: "lambda", ascii: `\`},
	KwRArrow:    {name: "rarrow", ascii: "->", unicode: "→"},
	KwLArrow:    {name: "larrow", ascii: "<-", unicode: "←"},
	KwComma:     {name: "comma", ascii: ",", tight: true, structural: true},
	KwSemi:      {name: "semi", ascii: ";", tight: true, structural: true},
	KwOpenP:     {name: "openp", ascii: "("},
	KwCloseP:    {name: "closep", ascii: ")", tight: true},
	KwOpenS:     {name: "opens", ascii: "["},
	KwCloseS:    {name: "closes", ascii: "]", tight: true},
	KwOpenC:     {name: "openc", ascii: "{", structural: true},
	KwCloseC:    {name: "closec", ascii: "}", structural: true},
	KwWild:      {name: "wild", ascii: "_"},
}

var (
	reservedWords = map[string]Keyword{}
	reservedOps   = map[string]Keyword{}
	keywordNames  = map[string]Keyword{}
)

func init() {
	for kw := KwNone; kw < keywordCount; kw++ {
		g := glyphs[kw]
		keywordNames[g.name] = kw
		if g.ascii == "" {
			continue
		}
		if isWordGlyph(g.ascii) {
			reservedWords[g.ascii] = kw
			continue
		}
		reservedOps[g.ascii] = kw
		if g.unicode != "" {
			reservedOps[g.unicode] = kw
		}
	}
}

func isWordGlyph(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r >= 'a' && r <= 'z'
}

func (k Keyword) valid() bool { return k < keywordCount }

// String returns the stable name used in dumps.
func (k Keyword) String() string {
	if !k.valid() {
		return "invalid"
	}
	return glyphs[k].name
}

// Text returns the ASCII spelling of the keyword, empty for synthetic ones.
func (k Keyword) Text() string {
	if !k.valid() {
		return ""
	}
	return glyphs[k].ascii
}

// UnicodeText returns the Unicode spelling, if the keyword has one.
func (k Keyword) UnicodeText() (string, bool) {
	if !k.valid() || glyphs[k].unicode == "" {
		return "", false
	}
	return glyphs[k].unicode, true
}

// Tight reports whether the keyword hugs the preceding text by default.
func (k Keyword) Tight() bool { return k.valid() && glyphs[k].tight }

// Structural reports whether the keyword is a bare separator or block
// delimiter whose meaning depends on being directly last.
func (k Keyword) Structural() bool { return k.valid() && glyphs[k].structural }

// Synthetic reports whether the keyword never corresponds to fixed source text.
func (k Keyword) Synthetic() bool { return k <= KwEOF }

// UsesUnicode reports whether a source token of the given column width is
// the Unicode spelling of k rather than the ASCII one.
func (k Keyword) UsesUnicode(width int) bool {
	u, ok := k.UnicodeText()
	if !ok || width < 0 {
		return false
	}
	return width != utf8.RuneCountInString(k.Text()) && width == utf8.RuneCountInString(u)
}

// MarshalText encodes the keyword by name.
func (k Keyword) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a keyword name produced by MarshalText.
func (k *Keyword) UnmarshalText(b []byte) error {
	kw, ok := keywordNames[string(b)]
	if !ok {
		return &UnknownKeywordError{Name: string(b)}
	}
	*k = kw
	return nil
}

// UnknownKeywordError reports a keyword name that is not in the table.
type UnknownKeywordError struct{ Name string }

func (e *UnknownKeywordError) Error() string {
	return "token: unknown keyword " + e.Name
}

// LookupReserved возвращает keyword для зарезервированного слова.
func LookupReserved(word string) (Keyword, bool) {
	k, ok := reservedWords[word]
	return k, ok
}

// LookupGlyph returns the keyword spelled by a reserved symbol. The symbol
// is NFC-normalized first, so decomposed Unicode input still matches.
func LookupGlyph(sym string) (Keyword, bool) {
	k, ok := reservedOps[norm.NFC.String(sym)]
	return k, ok
}
