package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"exactprint/internal/annot"
	"exactprint/internal/token"
)

func tokenCell(td annot.TokenDelta) string {
	name := td.Kw.String()
	switch {
	case td.Comment != nil:
		name = fmt.Sprintf("%q", td.Comment.Text)
	case td.IsBoundary():
		return "|"
	case td.Unicode:
		name += "/u"
	case td.Kw == token.KwEOF:
		name = "eof"
	}
	return name + td.Delta.String()
}

func commentCells(cds []annot.CommentDelta) string {
	parts := make([]string, 0, len(cds))
	for _, cd := range cds {
		parts = append(parts, fmt.Sprintf("%q%s", cd.Comment.Text, cd.Delta))
	}
	return strings.Join(parts, " ")
}

// FormatStoreTable печатает записи хранилища в порядке ключей, по строке на
// узел, с выравниванием колонок по ширине отображения.
func FormatStoreTable(w io.Writer, store *annot.Store) error {
	header := []string{"NODE", "ENTRY", "PRIOR", "TOKENS", "FOLLOWING"}
	rows := [][]string{header}
	for _, k := range store.Keys() {
		ann, _ := store.Get(k)
		cells := make([]string, 0, len(ann.Tokens))
		for _, td := range ann.Tokens {
			cells = append(cells, tokenCell(td))
		}
		rows = append(rows, []string{
			k.String(),
			ann.Entry.String(),
			commentCells(ann.Prior),
			strings.Join(cells, " "),
			commentCells(ann.Following),
		})
	}

	widths := make([]int, len(header))
	for _, r := range rows {
		for i, c := range r {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}
	for _, r := range rows {
		var b strings.Builder
		for i, c := range r {
			if i == len(r)-1 {
				b.WriteString(c)
				break
			}
			b.WriteString(runewidth.FillRight(c, widths[i]))
			b.WriteString("  ")
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
