// Package token defines the keyword identifiers shared by facts, schedules
// and annotations, plus the lexical tokens of the reference front-end.
// Invariants:
//   - Keyword values are stable: they are persisted in annotation stores.
//   - Token.Text is the exact source text of Token.Span.
//   - Comments and whitespace are Trivia attached to the following token;
//     they never appear in the main token stream.
//   - A reserved symbol may be spelled with its Unicode glyph (∷ → ←);
//     both spellings lex to the same Keyword.
package token
