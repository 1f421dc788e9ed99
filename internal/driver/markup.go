package driver

import (
	"fmt"
	"html"

	"exactprint/internal/annot"
	"exactprint/internal/diag"
	"exactprint/internal/format"
)

// Markup selects the decorated rendering produced next to the plain print.
type Markup string

const (
	MarkupNone Markup = "none"
	MarkupHTML Markup = "html"
)

// ParseMarkup converts a config or flag value.
func ParseMarkup(s string) (Markup, error) {
	switch Markup(s) {
	case "", MarkupNone:
		return MarkupNone, nil
	case MarkupHTML:
		return MarkupHTML, nil
	}
	return MarkupNone, fmt.Errorf("unknown markup %q (want none or html)", s)
}

// markupOptions wraps every node in a span named after its shape and
// escapes literal text. Layout is computed on the undecorated text, so
// stripping the tags and unescaping gives back the plain print.
func markupOptions(m Markup, rep diag.Reporter) format.Options {
	if m != MarkupHTML {
		return format.Options{Reporter: rep}
	}
	return format.Options{
		Reporter:  rep,
		Transform: html.EscapeString,
		Wrap: func(n annot.Node, chunk string) string {
			return `<span class="` + string(n.Shape()) + `">` + chunk + `</span>`
		},
	}
}
