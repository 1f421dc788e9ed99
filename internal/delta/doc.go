// Package delta turns absolute token facts and comments into an annotation
// store of relative deltas.
//
// One top-down traversal visits every node in schedule order and threads a
// single state object: the print cursor (the absolute position output has
// reached), the unallocated comment pool, the unconsumed fact pool and the
// layout baseline stack.
//
// Invariants:
//   - A fact is consumed at most once; a consumed fact lands in exactly one
//     TokenDelta unless it was a virtual separator behind the cursor.
//   - Every input comment ends up in exactly one record.
//   - Replaying the deltas of an unedited tree, in visit order, reproduces
//     the source.
//   - Nothing is dropped: facts left over at end of input become comments.
package delta
