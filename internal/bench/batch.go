package bench

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lotSizing/internal/opt"
)

// Sink persists finished records outside the results file.
type Sink interface {
	Save(ctx context.Context, runID string, rec Record, conv []opt.Point) error
}

// Batch runs the Runner over many instance files with a bounded worker pool.
type Batch struct {
	Runner   Runner
	Workers  int // 0 = runtime.NumCPU()
	BaseSeed int64
	RunID    string

	Results *ResultsFile // optional
	Sink    Sink         // optional
}

// Run solves files in parallel. File i is solved with seed BaseSeed+i.
// Records come back in file order; on error only the completed ones are returned.
func (b *Batch) Run(ctx context.Context, files []string) ([]Record, error) {
	if b.RunID == "" {
		b.RunID = uuid.NewString()
	}
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	records := make([]Record, len(files))
	done := make([]bool, len(files))

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			rec, conv, err := b.Runner.RunFile(gctx, path, b.BaseSeed+int64(i))
			if err != nil {
				return err
			}
			if b.Results != nil {
				if err := b.Results.Append(rec); err != nil {
					return err
				}
			}
			if b.Sink != nil {
				if err := b.Sink.Save(gctx, b.RunID, rec, conv); err != nil {
					return err
				}
			}
			records[i] = rec
			done[i] = true
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	out := make([]Record, 0, len(files))
	for i, ok := range done {
		if ok {
			out = append(out, records[i])
		}
	}
	return out, err
}

// FindInstances lists the *.txt files under root in lexical order, skipping the skip directories.
func FindInstances(root string, skip ...string) ([]string, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if s != "" {
			skipped[filepath.Clean(s)] = true
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipped[filepath.Clean(path)] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".txt") {
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
