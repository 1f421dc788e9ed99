// Package format replays an annotation store against a syntax tree and emits
// text.
//
// The printer walks the same schedules the relativization engine walked, in
// the same order, and keeps a per-node queue of recorded tokens. A recorded
// token is emitted only when the schedule asks for that keyword next, so an
// edited tree never receives tokens out of place. Nodes without a record
// (inserted after parsing) get default spacing.
//
// Назначение: точная печать дерева по аннотациям.
// Не делает: разбора текста, IO.
package format
