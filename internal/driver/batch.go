// Package driver compiles many source files in parallel. The core is
// single-threaded per unit, so the driver gives every worker its own
// compiler instance and never shares sessions between them.
package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lilt/internal/compiler"
	"lilt/internal/diag"
)

// SourceExt is the file extension of surface-language sources.
const SourceExt = ".lt"

// Result is the outcome of compiling one file: the emitted text or a
// fatal diagnostic, never both.
type Result struct {
	Path   string
	Output string
	Diag   *diag.Diagnostic
}

// Failed reports whether the compile produced a diagnostic.
func (r Result) Failed() bool { return r.Diag != nil }

// ListSources returns the sorted *.lt files under dir.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every source under dir. Results come back in the
// sorted file order regardless of completion order.
func CompileDir(ctx context.Context, dir string, cfg compiler.Config, jobs int) ([]Result, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, err
	}
	return CompileFiles(ctx, files, cfg, jobs)
}

// CompileFiles compiles the given paths with up to jobs workers. A
// diagnostic is a per-file result; only I/O and configuration problems
// abort the batch.
func CompileFiles(ctx context.Context, paths []string, cfg compiler.Config, jobs int) ([]Result, error) {
	// Validate once before spawning workers.
	if _, d := compiler.New(cfg); d != nil {
		return nil, d
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			// Each worker compiles with a private instance; the active
			// configuration is never shared.
			c, d := compiler.New(cfg)
			if d != nil {
				return d
			}
			out, d := c.Compile(path, string(src))
			results[i] = Result{Path: path, Output: out, Diag: d}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// OutputPath maps a source path to its emitted Python path.
func OutputPath(src string) string {
	return strings.TrimSuffix(src, SourceExt) + ".py"
}

// WriteOutputs stores the emitted text of every successful result next
// to its source. Failed results are skipped.
func WriteOutputs(results []Result) error {
	for _, r := range results {
		if r.Failed() {
			continue
		}
		if err := os.WriteFile(OutputPath(r.Path), []byte(r.Output), 0o644); err != nil {
			return err
		}
	}
	return nil
}
