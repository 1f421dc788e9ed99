package diag

import "exactprint/internal/source"

// Reporter receives diagnostics from a pass.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter stores into Bag; a nil Bag drops everything.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}

// DedupReporter forwards each (code, severity, span, message) once.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

type dedupKey struct {
	code    Code
	sev     Severity
	primary source.Span
	msg     string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	if next == nil {
		next = NopReporter{}
	}
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	key := dedupKey{code, sev, primary, msg}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}

// ReportBuilder assembles a diagnostic with notes; Emit sends it once.
type ReportBuilder struct {
	r    Reporter
	d    Diagnostic
	sent bool
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{r: r, d: New(SevError, code, primary, msg)}
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{r: r, d: New(SevWarning, code, primary, msg)}
}

func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{r: r, d: New(SevInfo, code, primary, msg)}
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	b.d = b.d.WithNote(sp, msg)
	return b
}

func (b *ReportBuilder) Emit() {
	if b.sent || b.r == nil {
		return
	}
	b.sent = true
	b.r.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message, b.d.Notes)
}

// Recorder forwards to Next and keeps a copy of everything it saw.
type Recorder struct {
	Next  Reporter
	Items []Diagnostic
}

func (r *Recorder) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	r.Items = append(r.Items, Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	if r.Next != nil {
		r.Next.Report(code, sev, primary, msg, notes)
	}
}

// Replay sends recorded diagnostics to r again, in order.
func Replay(r Reporter, ds []Diagnostic) {
	for _, d := range ds {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}
