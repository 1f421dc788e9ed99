// Package ast is the syntax tree of the reference front-end: a small,
// layout-sensitive Haskell subset. Nodes are plain pointers; every node
// knows its Shape and its source Span, which is all the exact-print passes
// need to address it.
//
// Spans are absolute positions in the parsed file. Nodes built by hand
// (for example by a refactoring) may leave Loc zero; such nodes have no
// annotation record and print with default spacing.
package ast
