package driver_test

import (
	"context"
	"errors"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"exactprint/internal/diag"
	"exactprint/internal/driver"
	"exactprint/internal/testkit"
)

func TestProcessSourceRoundTrips(t *testing.T) {
	for _, tc := range testkit.Corpus {
		t.Run(tc.Name, func(t *testing.T) {
			res := driver.ProcessSource(context.Background(), "test.hs", []byte(tc.Src), driver.Options{})
			if res.Err != nil {
				t.Fatalf("unexpected error: %v", res.Err)
			}
			if !res.RoundTrip || string(res.Output) != tc.Src {
				t.Fatalf("output mismatch:\nwant %q\ngot  %q", tc.Src, res.Output)
			}
			for _, st := range driver.Stages[1:] {
				if !res.Timings.Has(st) {
					t.Fatalf("no timing for %s", st)
				}
			}
		})
	}
}

func TestLineEndingsAndBOMAreRestored(t *testing.T) {
	src := "\xEF\xBB\xBFf x = x\r\ng = 1\r\n"
	res := driver.ProcessSource(context.Background(), "crlf.hs", []byte(src), driver.Options{})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !res.RoundTrip {
		t.Fatal("normalized content did not round-trip")
	}
	if string(res.Output) != src {
		t.Fatalf("want %q, got %q", src, res.Output)
	}
}

func TestIrregularWhitespaceRoundTrips(t *testing.T) {
	for _, src := range []string{
		"f x = x\t+ 1\n",
		"f = do\n\tprint 1\n\tprint 2\n",
		"f x = x + 1   \n",
		"f = 1  \r\ng = 2\t\r\n",
	} {
		res := driver.ProcessSource(context.Background(), "ws.hs", []byte(src), driver.Options{})
		if res.Err != nil {
			t.Fatalf("%q: %v", src, res.Err)
		}
		if !res.RoundTrip || string(res.Output) != src {
			t.Fatalf("want %q, got %q", src, res.Output)
		}
		if n := res.Bag.Count(diag.PrnMismatch); n != 0 {
			t.Fatalf("%q: unexpected mismatch report %v", src, res.Bag.Items())
		}
	}
}

func TestSyntaxErrorStopsThePipeline(t *testing.T) {
	res := driver.ProcessSource(context.Background(), "bad.hs", []byte("f = (1\n"), driver.Options{})
	if !errors.Is(res.Err, driver.ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", res.Err)
	}
	if res.Store != nil || res.Output != nil {
		t.Fatal("later stages ran after a syntax error")
	}
	if res.Bag.Count(diag.SynUnclosedParen) == 0 {
		t.Fatalf("missing parse diagnostic: %v", res.Bag.Items())
	}
}

func TestMissingFile(t *testing.T) {
	res := driver.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "none.hs"), driver.Options{})
	if res.Err == nil {
		t.Fatal("expected an error")
	}
	if res.Bag.Count(diag.IOLoadFileError) != 1 {
		t.Fatalf("expected %v, got %v", diag.IOLoadFileError, res.Bag.Items())
	}
}

func TestCacheIsReused(t *testing.T) {
	cache, err := driver.OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := []byte("f x = x -- id\ng = f 1\n")
	opts := driver.Options{Cache: cache}

	first := driver.ProcessSource(context.Background(), "a.hs", src, opts)
	if first.Err != nil || first.Cached {
		t.Fatalf("first run: err=%v cached=%v", first.Err, first.Cached)
	}
	second := driver.ProcessSource(context.Background(), "b.hs", src, opts)
	if second.Err != nil {
		t.Fatal(second.Err)
	}
	if !second.Cached {
		t.Fatal("second run did not hit the cache")
	}
	if second.Timings.Has(driver.StageRelativize) {
		t.Fatal("relativize ran on a cache hit")
	}
	if !second.RoundTrip || string(second.Output) != string(src) {
		t.Fatalf("cached store printed %q", second.Output)
	}
}

var tags = regexp.MustCompile(`<[^>]*>`)

func TestHTMLMarkup(t *testing.T) {
	src := "f x = x < 1\n"
	res := driver.ProcessSource(context.Background(), "m.hs", []byte(src), driver.Options{Markup: driver.MarkupHTML})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	out := string(res.Markup)
	for _, want := range []string{`<span class="Module">`, `<span class="FunBind">`, `<span class="OpApp">`, "&lt;"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %q", want, out)
		}
	}
	if got := html.UnescapeString(tags.ReplaceAllString(out, "")); got != src {
		t.Fatalf("markup without tags: want %q, got %q", src, got)
	}
	if string(res.Output) != src {
		t.Fatalf("plain output changed: %q", res.Output)
	}
}

func TestParseMarkup(t *testing.T) {
	for in, want := range map[string]driver.Markup{"": driver.MarkupNone, "none": driver.MarkupNone, "html": driver.MarkupHTML} {
		got, err := driver.ParseMarkup(in)
		if err != nil || got != want {
			t.Fatalf("ParseMarkup(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := driver.ParseMarkup("latex"); err == nil {
		t.Fatal("expected an error")
	}
}

type recorder struct {
	mu     sync.Mutex
	events []driver.Event
}

func (r *recorder) OnEvent(ev driver.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count(st driver.Stage, status driver.Status) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Stage == st && ev.Status == status {
			n++
		}
	}
	return n
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestProcessPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.hs"), "f = 1\n")
	writeFile(t, filepath.Join(dir, "bad.hs"), "f = (1\n")
	writeFile(t, filepath.Join(dir, "sub", "b.hs"), "main = do\n  print 1\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not source")

	rec := &recorder{}
	results, err := driver.ProcessPaths(context.Background(), []string{dir}, driver.Options{Jobs: 2, Progress: rec})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.hs"),
		filepath.Join(dir, "bad.hs"),
		filepath.Join(dir, "sub", "b.hs"),
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, r := range results {
		if r.Path != want[i] {
			t.Fatalf("result %d: want %s, got %s", i, want[i], r.Path)
		}
	}
	if results[0].Err != nil || !results[0].RoundTrip || results[2].Err != nil || !results[2].RoundTrip {
		t.Fatalf("good files failed: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, driver.ErrSyntax) {
		t.Fatalf("expected a syntax error, got %v", results[1].Err)
	}
	if got := rec.count(driver.StageLoad, driver.StatusQueued); got != 3 {
		t.Fatalf("queued events: %d", got)
	}
	if got := rec.count(driver.StagePrint, driver.StatusDone); got != 2 {
		t.Fatalf("print done events: %d", got)
	}
	if got := rec.count(driver.StageParse, driver.StatusError); got != 1 {
		t.Fatalf("parse error events: %d", got)
	}
}

func TestListSourcesKeepsExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "script.lhs")
	writeFile(t, file, "x = 1\n")
	writeFile(t, filepath.Join(dir, "a.hs"), "x = 1\n")
	got, err := driver.ListSources([]string{file, dir, file})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != filepath.Join(dir, "a.hs") || got[1] != file {
		t.Fatalf("unexpected list %v", got)
	}
}
