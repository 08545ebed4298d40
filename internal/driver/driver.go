// Package driver runs the whole check pipeline over a directory: file
// discovery, parallel parsing, semantic analysis, and the on-disk result
// cache.
package driver

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"mica/internal/diag"
	"mica/internal/diagfmt"
	"mica/internal/hir"
	"mica/internal/item"
	"mica/internal/parser"
	"mica/internal/source"
)

// SourceExt is the extension of mica source files.
const SourceExt = ".mc"

// Options configures one CheckDir run.
type Options struct {
	// Jobs caps parallel parse workers; 0 means one per CPU.
	Jobs int
	// MaxDiagnostics caps the per-file bags; 0 keeps everything.
	MaxDiagnostics int
	// Cache, when non-nil, is consulted before analysis and updated after.
	Cache *DiskCache
}

// FileResult is the outcome for one source file, in discovery order.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Bag       *diag.Bag
	FromCache bool
}

// Result aggregates a directory check.
type Result struct {
	FileSet *source.FileSet
	DB      *hir.DB
	Files   []FileResult
}

// HasErrors reports whether any file produced an error.
func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Merged flattens the per-file bags in file order.
func (r *Result) Merged() *diag.Bag {
	out := diag.NewBag(0)
	for _, f := range r.Files {
		out.Merge(f.Bag)
	}
	return out
}

// RenderPretty writes every file's diagnostics in discovery order.
func (r *Result) RenderPretty(w io.Writer, opts diagfmt.PrettyOpts) {
	for _, f := range r.Files {
		diagfmt.Pretty(w, f.Bag, r.FileSet, opts)
	}
}

// listSourceFiles returns every *.mc file under dir, sorted for a
// deterministic pipeline order.
func listSourceFiles(dir string) ([]string, error) {
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

type parseJob struct {
	index  int
	path   string
	fileID source.FileID
}

// CheckDir checks every source file under dir. Parsing runs in parallel;
// semantic analysis walks the shared DB sequentially in file order, so
// results and diagnostics are deterministic regardless of Jobs.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources in %q: %w", dir, err)
	}

	fileSet := source.NewFileSet()
	interner := source.NewInterner()
	db := hir.NewDB(fileSet, interner)

	res := &Result{
		FileSet: fileSet,
		DB:      db,
		Files:   make([]FileResult, len(files)),
	}

	var jobs []parseJob
	for i, path := range files {
		res.Files[i] = FileResult{
			Path: path,
			Bag:  diag.NewBag(opts.MaxDiagnostics),
		}

		fileID, err := fileSet.Load(path)
		if err != nil {
			diag.Error(diag.BagReporter{Bag: res.Files[i].Bag}, diag.IOReadFailed,
				source.Span{}, fmt.Sprintf("failed to read %s: %v", path, err))
			continue
		}
		res.Files[i].FileID = fileID

		if payload, ok := cacheLookup(opts.Cache, fileSet.Get(fileID)); ok {
			payload.fillBag(fileID, res.Files[i].Bag)
			res.Files[i].FromCache = true
			continue
		}
		jobs = append(jobs, parseJob{index: i, path: path, fileID: fileID})
	}

	workers := opts.Jobs
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trees := make([]*item.Tree, len(jobs))
	parseBags := make([]*diag.Bag, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, max(len(jobs), 1)))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bag := diag.NewBag(opts.MaxDiagnostics)
			trees[i] = parser.ParseFile(fileSet.Get(job.fileID), interner, diag.BagReporter{Bag: bag})
			parseBags[i] = bag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sequential semantic pass over the shared DB, in file order.
	for i, job := range jobs {
		db.SetItemTree(job.fileID, trees[i], parseBags[i])

		fileBag := res.Files[job.index].Bag
		fileBag.Merge(parseBags[i])

		semBag := diag.NewBag(opts.MaxDiagnostics)
		hir.ModuleFor(job.fileID).Diagnostics(db, diag.BagReporter{Bag: semBag})
		fileBag.Merge(semBag)

		cacheStore(opts.Cache, fileSet.Get(job.fileID), fileBag)
	}
	return res, nil
}
