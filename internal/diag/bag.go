package diag

import (
	"cmp"
	"slices"
)

// Bag collects up to a fixed number of diagnostics for one file.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

func NewBag(max int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, min(max, 64)), max: max}
}

// Add stores d unless the bag is full; refused diagnostics are counted.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Dropped is the number of diagnostics refused by Add.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

// HasWarnings is true for warnings and errors alike.
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// Count returns how many diagnostics carry code.
func (b *Bag) Count(code Code) int {
	n := 0
	for i := range b.items {
		if b.items[i].Code == code {
			n++
		}
	}
	return n
}

// Sort orders by primary span, then severity (errors first), then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		if c := x.Primary.Compare(y.Primary); c != 0 {
			return c
		}
		if c := cmp.Compare(y.Severity, x.Severity); c != 0 {
			return c
		}
		return cmp.Compare(x.Code, y.Code)
	})
}
