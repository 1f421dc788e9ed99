// Package annot holds the data model shared by the relativization, balance
// and printing passes: node keys, raw token facts, comments and the
// annotation store.
//
// Invariants:
//   - A node key is (span, shape); two distinct nodes of one tree never share it.
//   - A Store has at most one Annotation per key. A missing record means the
//     node prints with default spacing.
//   - Store iteration (Keys, codecs) is in key order, so encoded stores are
//     byte-identical for identical input.
package annot
