package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"exactprint/internal/annot"
	"exactprint/internal/diag"
	"exactprint/internal/source"
	"exactprint/internal/token"
)

func sp(l0, c0, l1, c1 int) source.Span {
	return source.Span{Start: source.Pos{Line: l0, Col: c0}, End: source.Pos{Line: l1, Col: c1}}
}

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.LexUnterminatedString, sp(1, 4, 1, 8), "unterminated string literal").
		WithNote(sp(1, 0, 1, 1), "binding starts here")
	bag.Add(d)
	return bag
}

func TestPrettyExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.hs", []byte("x = \"abc\ny = 1\n")))

	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), file, PrettyOpts{Context: 0, ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"test.hs:1:5: ERROR LEX1002: unterminated string literal",
		` 1 | x = "abc`,
		"|     ^~~~",
		"note: test.hs:1:1: binding starts here",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "y = 1") {
		t.Errorf("context 0 printed a neighbour line:\n%s", out)
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{}, "no such file"))
	var buf bytes.Buffer
	Pretty(&buf, bag, nil, PrettyOpts{})
	if got, want := buf.String(), "<input>: ERROR IO6001: no such file\n"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestPathModes(t *testing.T) {
	long := "/very/long/absolute/path/to/some/nested/directory/of/sources/Main.hs"
	tests := []struct {
		name string
		path string
		mode PathMode
		base string
		want string
	}{
		{"auto short", "Main.hs", PathModeAuto, "", "Main.hs"},
		{"auto long", long, PathModeAuto, "", "Main.hs"},
		{"basename", "src/Main.hs", PathModeBasename, "", "Main.hs"},
		{"relative", "/src/app/Main.hs", PathModeRelative, "/src", "app/Main.hs"},
		{"relative outside", "/other/Main.hs", PathModeRelative, "/src", "/other/Main.hs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPath(tt.path, tt.mode, tt.base); got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), "test.hs", JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1002" || d.Severity != "ERROR" || d.Location.StartCol != 4 || d.Location.EndCol != 8 {
		t.Fatalf("diagnostic %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "binding starts here" {
		t.Fatalf("notes %+v", d.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	bag := diag.NewBag(10)
	for range 3 {
		bag.Add(diag.New(diag.SevWarning, diag.AnnAmbiguousFact, sp(1, 0, 1, 1), "w"))
	}
	out := BuildDiagnosticsOutput(bag, "a.hs", JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count %d", out.Count)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	toks := []token.Token{
		{Kind: token.VarID, Text: "f", Span: sp(1, 0, 1, 1)},
		{Kind: token.Reserved, Kw: token.KwEqual, Text: "=", Span: sp(1, 2, 1, 3),
			Leading: []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}},
		{Kind: token.EOF, Kw: token.KwEOF, Span: sp(2, 0, 2, 0)},
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks); err != nil {
		t.Fatalf("format: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[1], token.KwEqual.String()) || !strings.Contains(lines[1], "(leading: space)") {
		t.Fatalf("line %q", lines[1])
	}
	if !strings.Contains(lines[0], "at 1:1-1:2") {
		t.Fatalf("line %q", lines[0])
	}
}

func TestFormatStoreTableAligns(t *testing.T) {
	store := annot.NewStore()
	store.Put(annot.AnnKey{Span: sp(1, 0, 1, 5), Shape: "FunBind"}, &annot.Annotation{
		Tokens: []annot.TokenDelta{{Kw: token.KwEqual, Delta: source.DeltaPos{Col: 1}}},
	})
	c := annot.Comment{Text: "-- ∷ wide", Span: sp(1, 6, 1, 15)}
	store.Put(annot.AnnKey{Span: sp(1, 4, 1, 5), Shape: "Lit"}, &annot.Annotation{
		Following: []annot.CommentDelta{{Comment: c, Delta: source.DeltaPos{Col: 1}}},
	})
	var buf bytes.Buffer
	if err := FormatStoreTable(&buf, store); err != nil {
		t.Fatalf("table: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines %q", lines)
	}
	col := strings.Index(lines[0], "ENTRY")
	for _, l := range lines[1:] {
		if !strings.HasPrefix(l[col:], "(0,") {
			t.Fatalf("entry column misaligned in %q", l)
		}
	}
	if !strings.Contains(lines[1], token.KwEqual.String()+"(0,1)") {
		t.Fatalf("token cell missing in %q", lines[1])
	}
}
