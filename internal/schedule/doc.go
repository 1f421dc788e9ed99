// Package schedule describes, per node shape, which tokens and children a
// node is made of and in what order. A schedule is a flat list of Instr
// values; the relativization engine and the printer both interpret the same
// list, which is what keeps them in step.
//
// Instruction kinds:
//
//   - Keyword: one token, optionally absent.
//   - KeywordAt: the n-th fact of a keyword, for keywords that recur at
//     fixed known offsets under one node.
//   - Counted: a keyword repeated a node-dependent number of times.
//   - Child / List / SortedList: sub-nodes; lists may carry a separator.
//   - Layout: a region whose new lines are measured from a baseline set by
//     its first token or node.
//   - EOF: end of input, which also collects residue.
package schedule
