package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"exactprint/internal/trace"
)

// SourceExt is the extension of files picked up from directories.
const SourceExt = ".hs"

// ListSources expands paths into a sorted, de-duplicated list of files.
// Directories are walked for SourceExt files; plain files are kept as given.
func ListSources(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	for _, root := range paths {
		st, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ProcessPaths runs the pipeline over every file under paths. Files share
// nothing but the schedule registry and the cache, so they run concurrently;
// results come back in ListSources order. Per-file failures are reported in
// FileResult.Err; the returned error is for listing and cancellation only.
func ProcessPaths(ctx context.Context, paths []string, opts Options) ([]*FileResult, error) {
	files, err := ListSources(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "process_paths", trace.CurrentSpan(ctx).SpanID).
		WithExtra("files", strconv.Itoa(len(files))).
		WithExtra("jobs", strconv.Itoa(jobs))
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ProcessFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
