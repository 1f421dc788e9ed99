// Package fuzztests houses Go fuzz harnesses for the reference front-end
// and the annotation passes. Arbitrary bytes go through the lexer and
// parser; inputs that parse cleanly are annotated, balanced and printed.
//
// Назначение: ловить паники, зависания и нарушения инвариантов сохранения
// на произвольном вводе.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
