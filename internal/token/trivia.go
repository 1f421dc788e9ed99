package token

import "exactprint/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaPragma // {-# ... #-}
)

func (k TriviaKind) IsComment() bool {
	return k == TriviaLineComment || k == TriviaBlockComment || k == TriviaPragma
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
