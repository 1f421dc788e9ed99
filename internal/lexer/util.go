package lexer

import (
	"strings"
	"unicode"
)

// ===== Классы символов =====

func isDec(r rune) bool { return r >= '0' && r <= '9' }

func isHex(r rune) bool {
	return isDec(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isUpper(r rune) bool { return unicode.IsUpper(r) }

// special символы никогда не склеиваются с соседями
func isSpecial(r rune) bool {
	return strings.ContainsRune("()[],;{}`", r)
}

func isSymbol(r rune) bool {
	if r < 0x80 {
		return strings.ContainsRune("!#$%&*+./<=>?@\\^|-~:", r)
	}
	return unicode.IsSymbol(r) || unicode.IsPunct(r)
}
