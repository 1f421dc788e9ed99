// Package driver takes source files through the exact-print pipeline:
// load, parse, relativize, balance and print, one independent store per file.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"exactprint/internal/annot"
	"exactprint/internal/ast"
	"exactprint/internal/balance"
	"exactprint/internal/delta"
	"exactprint/internal/diag"
	"exactprint/internal/format"
	"exactprint/internal/grammar"
	"exactprint/internal/parser"
	"exactprint/internal/source"
	"exactprint/internal/trace"
)

// ErrSyntax is returned for sources the reference parser rejects.
var ErrSyntax = errors.New("syntax errors")

const defaultMaxDiagnostics = 100

// Options configures one pipeline run.
type Options struct {
	MaxDiagnostics int
	// Jobs bounds the number of files processed at once by ProcessPaths;
	// zero means one per CPU.
	Jobs     int
	Markup   Markup
	Cache    *DiskCache
	Progress ProgressSink
}

// FileResult is everything the pipeline produced for one file.
type FileResult struct {
	Path   string
	File   *source.File
	Module *ast.Module
	Store  *annot.Store
	Bag    *diag.Bag
	// Output is the printed text with the file's BOM and line endings restored.
	Output []byte
	// Markup holds the decorated rendering when Options.Markup asks for one.
	Markup []byte
	// RoundTrip reports whether the plain print reproduced the input.
	RoundTrip bool
	Cached    bool
	Moved     int
	Timings   Timings
	Err       error
}

// ProcessFile loads path from disk and runs the pipeline on it.
func ProcessFile(ctx context.Context, path string, opts Options) *FileResult {
	res := &FileResult{Path: path, Bag: newBag(opts)}
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	began := time.Now()
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	res.Timings.Set(StageLoad, time.Since(began))
	if err != nil {
		diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.IOLoadFileError, source.Span{}, err.Error()).Emit()
		res.Err = fmt.Errorf("load %s: %w", path, err)
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: res.Err})
		return res
	}
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusDone, Elapsed: res.Timings.Duration(StageLoad)})
	run(ctx, res, content, opts)
	return res
}

// ProcessSource runs the pipeline on in-memory content. BOM and CRLF line
// endings are stripped before parsing and restored on output.
func ProcessSource(ctx context.Context, name string, src []byte, opts Options) *FileResult {
	res := &FileResult{Path: name, Bag: newBag(opts)}
	run(ctx, res, src, opts)
	return res
}

func newBag(opts Options) *diag.Bag {
	limit := opts.MaxDiagnostics
	if limit <= 0 {
		limit = defaultMaxDiagnostics
	}
	return diag.NewBag(limit)
}

// stage runs fn as one pipeline phase, recording its duration and progress.
func stage(res *FileResult, sink ProgressSink, st Stage, fn func() error) error {
	emit(sink, Event{File: res.Path, Stage: st, Status: StatusWorking})
	began := time.Now()
	err := fn()
	elapsed := time.Since(began)
	res.Timings.Set(st, elapsed)
	if err != nil {
		emit(sink, Event{File: res.Path, Stage: st, Status: StatusError, Err: err, Elapsed: elapsed})
		return err
	}
	emit(sink, Event{File: res.Path, Stage: st, Status: StatusDone, Elapsed: elapsed})
	return nil
}

func run(ctx context.Context, res *FileResult, content []byte, opts Options) {
	t := trace.FromContext(ctx)
	span := trace.Begin(t, trace.ScopeFile, "process_file", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", res.Path)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	defer func() {
		detail := ""
		if res.Err != nil {
			detail = res.Err.Error()
		}
		span.WithExtra("roundtrip", strconv.FormatBool(res.RoundTrip)).
			WithExtra("cached", strconv.FormatBool(res.Cached)).
			End(detail)
	}()

	rep := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	reg := grammar.Registry()

	fs := source.NewFileSet()
	res.File = fs.Get(fs.AddRaw(res.Path, content))

	var parsed parser.Result
	res.Err = stage(res, opts.Progress, StageParse, func() error {
		parsed = parser.ParseFile(res.File, parser.Options{Reporter: rep})
		if parsed.Errors > 0 || res.Bag.HasErrors() {
			return fmt.Errorf("%s: %w", res.Path, ErrSyntax)
		}
		return nil
	})
	if res.Err != nil {
		return
	}
	res.Module = parsed.Module

	if entry, ok := lookupCache(opts.Cache, res, rep); ok {
		res.Store = entry.Store
		res.Cached = true
		diag.Replay(rep, entry.Diagnostics)
	} else {
		// what the two store-building stages report is cached with the store
		built := &diag.Recorder{Next: rep}
		res.Err = stage(res, opts.Progress, StageRelativize, func() error {
			out, err := delta.Relativize(ctx, delta.Input{
				Root:     parsed.Module,
				Facts:    parsed.Facts,
				Comments: parsed.Comments,
				Source:   res.File,
			}, delta.Options{Registry: reg, Reporter: built})
			if err != nil {
				return err
			}
			res.Store = out.Store
			return nil
		})
		if res.Err != nil {
			return
		}
		res.Err = stage(res, opts.Progress, StageBalance, func() error {
			bal, err := balance.Run(ctx, parsed.Module, res.Store, balance.Options{Registry: reg, Reporter: built})
			res.Moved = bal.Moved
			return err
		})
		if res.Err != nil {
			return
		}
		entry := CacheEntry{Store: res.Store, Diagnostics: built.Items}
		if err := opts.Cache.Put(res.File.Hash, res.Path, entry); err != nil {
			diag.ReportWarning(rep, diag.IOCacheError, source.Span{}, "cache write: "+err.Error()).Emit()
		}
	}

	res.Err = stage(res, opts.Progress, StagePrint, func() error {
		plain, err := format.Print(ctx, parsed.Module, res.Store, reg, format.Options{Reporter: rep})
		if err != nil {
			return err
		}
		res.RoundTrip = plain == string(res.File.Content)
		if !res.RoundTrip {
			reportMismatch(rep, res.File, plain)
		}
		res.Output = res.File.Restore([]byte(plain))
		if opts.Markup == MarkupNone || opts.Markup == "" {
			return nil
		}
		decorated, err := format.Print(ctx, parsed.Module, res.Store, reg, markupOptions(opts.Markup, rep))
		if err != nil {
			return err
		}
		res.Markup = res.File.Restore([]byte(decorated))
		return nil
	})
}

func lookupCache(c *DiskCache, res *FileResult, rep diag.Reporter) (CacheEntry, bool) {
	if c == nil {
		return CacheEntry{}, false
	}
	entry, ok, err := c.Get(res.File.Hash)
	if err != nil {
		diag.ReportWarning(rep, diag.IOCacheError, source.Span{}, "cache read: "+err.Error()).Emit()
		return CacheEntry{}, false
	}
	return entry, ok
}

// reportMismatch points at the first line where out differs from the input.
func reportMismatch(rep diag.Reporter, file *source.File, out string) {
	want := file.Content
	got := []byte(out)
	n := min(len(want), len(got))
	i := 0
	for i < n && want[i] == got[i] {
		i++
	}
	line := bytes.Count(want[:i], []byte("\n")) + 1
	pos := source.Pos{Line: line}
	diag.ReportWarning(rep, diag.PrnMismatch, source.Span{Start: pos, End: pos},
		fmt.Sprintf("printed output differs from the input from line %d", line)).Emit()
}
