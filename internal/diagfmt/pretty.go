package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"exactprint/internal/diag"
	"exactprint/internal/source"
)

type palette struct {
	err, warn, info, code, path, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan),
		code:  color.New(color.Bold),
		path:  color.New(color.FgWhite, color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
		note:  color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики одного файла в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строка исходника с подчёркиванием ^~~~ по Span и заметки.
// Колонки выводятся 1-based. file может быть nil (ошибки загрузки).
func Pretty(w io.Writer, bag *diag.Bag, file *source.File, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	path := "<input>"
	if file != nil {
		path = formatPath(file.Path, opts.PathMode, opts.BaseDir)
	}
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprint(location(path, d.Primary)),
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message)
		if file != nil && d.Primary.IsValid() {
			excerpt(w, file, d.Primary, opts.Context, pal)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(path, n.Span), n.Msg)
		}
	}
}

func location(path string, sp source.Span) string {
	if !sp.IsValid() {
		return path
	}
	return fmt.Sprintf("%s:%d:%d", path, sp.Start.Line, sp.Start.Col+1)
}

func excerpt(w io.Writer, file *source.File, sp source.Span, context int, pal palette) {
	first := max(sp.Start.Line-context, 1)
	last := min(sp.Start.Line+context, len(file.LineIdx)+1)
	gutter := len(fmt.Sprint(last))
	for line := first; line <= last; line++ {
		n, err := safecast.Conv[uint32](line)
		if err != nil {
			return
		}
		text := file.GetLine(n)
		fmt.Fprintf(w, " %*d | %s\n", gutter, line, text)
		if line != sp.Start.Line {
			continue
		}
		runes := []rune(text)
		indent := runewidth.StringWidth(string(runes[:min(sp.Start.Col, len(runes))]))
		width := 1
		if sp.End.Line == sp.Start.Line {
			width = max(sp.End.Col-sp.Start.Col, 1)
		}
		mark := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %*s | %s%s\n", gutter, "", strings.Repeat(" ", indent), pal.caret.Sprint(mark))
	}
}
