package source

import (
	"fmt"
	"strconv"
	"strings"
)

// DeltaPos is a relative position: how far to move from wherever output has
// reached to the next emitted thing.
//
// With Line == 0, Col is a count of columns after the current one. With
// Line > 0, Col is the column on the new line measured from the active
// layout baseline; it may be negative when content sits left of the baseline.
//
// Raw, when set, is the whitespace the source actually had in the gap
// (tabs, trailing blanks). It is written instead of the blanks that Line and
// Col describe; Line and Col still measure the same gap.
type DeltaPos struct {
	Line int
	Col  int
	Raw  string `msgpack:",omitempty" json:",omitempty"`
}

func (d DeltaPos) IsZero() bool {
	return d.Line == 0 && d.Col == 0 && d.Raw == ""
}

func (d DeltaPos) String() string {
	if d.Raw != "" {
		return fmt.Sprintf("(%d,%d)%s", d.Line, d.Col, strconv.Quote(d.Raw))
	}
	return fmt.Sprintf("(%d,%d)", d.Line, d.Col)
}

// Delta computes the offset from cursor to target. It saturates at (0,0)
// when target does not lie after cursor.
func Delta(cursor, target Pos) DeltaPos {
	if target.Before(cursor) {
		return DeltaPos{}
	}
	if target.Line == cursor.Line {
		return DeltaPos{Col: target.Col - cursor.Col}
	}
	return DeltaPos{Line: target.Line - cursor.Line, Col: target.Col}
}

// Rebase expresses a new-line delta relative to a layout baseline.
// Same-line deltas are left untouched.
func (d DeltaPos) Rebase(baseline int) DeltaPos {
	if d.Line > 0 {
		d.Col -= baseline
	}
	return d
}

// Apply returns the cursor reached after moving by d from cursor while
// baseline is the active layout column.
func (d DeltaPos) Apply(cursor Pos, baseline int) Pos {
	if d.Line == 0 {
		return Pos{Line: cursor.Line, Col: cursor.Col + max(d.Col, 0)}
	}
	return Pos{Line: cursor.Line + d.Line, Col: max(baseline+d.Col, 0)}
}

// Fill is the whitespace a writer emits to get from cursor to target:
// newlines then indentation, or spaces on the same line.
func Fill(cursor, target Pos) string {
	if target.Line > cursor.Line {
		return strings.Repeat("\n", target.Line-cursor.Line) + strings.Repeat(" ", max(target.Col, 0))
	}
	return strings.Repeat(" ", max(target.Col-cursor.Col, 0))
}

// IsBlank reports whether s holds only whitespace.
func IsBlank(s string) bool {
	return strings.TrimLeft(s, " \t\n\r\f\v") == ""
}
