package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadChar                  Code = 1004
	LexTabColumn                Code = 1005

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectExpr         Code = 2002
	SynExpectPattern      Code = 2003
	SynExpectType         Code = 2004
	SynUnclosedParen      Code = 2005
	SynUnclosedBracket    Code = 2006
	SynUnclosedBrace      Code = 2007
	SynExpectEquals       Code = 2008
	SynExpectModuleName   Code = 2009
	SynLayoutMismatch     Code = 2010
	SynExpectArrow        Code = 2011
	SynExpectKeyword      Code = 2012
	SynUnexpectedTopLevel Code = 2013

	// Relativization
	AnnInfo           Code = 3000
	AnnAmbiguousFact  Code = 3001
	AnnResidueFact    Code = 3002
	AnnResidueComment Code = 3003
	AnnCursorRewind   Code = 3004

	// Balance
	BalInfo          Code = 4000
	BalMoved         Code = 4001
	BalStructuralEnd Code = 4002

	// Printing
	PrnInfo          Code = 5000
	PrnMismatch      Code = 5001
	PrnDroppedTokens Code = 5002

	IOLoadFileError  Code = 6001
	IOWriteFileError Code = 6002
	IOCacheError     Code = 6003

	CfgInfo       Code = 7000
	CfgUnknownKey Code = 7001
	CfgBadValue   Code = 7002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadChar:                  "Malformed character literal",
		LexTabColumn:                "Tab counted as a single column",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectExpr:               "Expected expression",
		SynExpectPattern:            "Expected pattern",
		SynExpectType:               "Expected type",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBracket:          "Unclosed bracket",
		SynUnclosedBrace:            "Unclosed brace",
		SynExpectEquals:             "Expected '='",
		SynExpectModuleName:         "Expected module name",
		SynLayoutMismatch:           "Layout block closed unexpectedly",
		SynExpectArrow:              "Expected '->'",
		SynExpectKeyword:            "Expected keyword",
		SynUnexpectedTopLevel:       "Unexpected top-level item",
		AnnInfo:                     "Annotation information",
		AnnAmbiguousFact:            "Ambiguous token fact",
		AnnResidueFact:              "Unconsumed token fact kept as comment",
		AnnResidueComment:           "Unallocated comment kept at end of input",
		AnnCursorRewind:             "Node starts before the print cursor",
		BalInfo:                     "Balance information",
		BalMoved:                    "Comment moved to preceding node",
		BalStructuralEnd:            "Comment kept: preceding node ends with a structural token",
		PrnInfo:                     "Print information",
		PrnMismatch:                 "Reprint differs from source",
		PrnDroppedTokens:            "Annotated tokens not used by the edited tree",
		IOLoadFileError:             "I/O load file error",
		IOWriteFileError:            "I/O write file error",
		IOCacheError:                "Annotation cache error",
		CfgInfo:                     "Configuration information",
		CfgUnknownKey:               "Unknown configuration key",
		CfgBadValue:                 "Invalid configuration value",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("ANN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("BAL%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
