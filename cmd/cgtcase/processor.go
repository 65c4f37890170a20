// processor.go - Case processing and output functions
package main

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/lgbarn/cgtcase/internal/config"
	cgterrors "github.com/lgbarn/cgtcase/internal/errors"
	"github.com/lgbarn/cgtcase/internal/gamecase"
	"github.com/lgbarn/cgtcase/internal/hashing"
	"github.com/lgbarn/cgtcase/internal/output"
	"github.com/lgbarn/cgtcase/internal/parser"
	"github.com/lgbarn/cgtcase/internal/registry"
	"github.com/lgbarn/cgtcase/internal/worker"
)

// testFileExt is the extension -test-dir looks for.
const testFileExt = ".test"

// Stats counts what a run did.
type Stats struct {
	Sources    int
	Cases      int
	Output     int
	Filtered   int
	Duplicates int
	Errors     int
}

// ProcessingContext holds all processing state.
// NOT thread-safe: cases are handled on the goroutine that reads results.
type ProcessingContext struct {
	cfg      *config.Config
	reg      *registry.Registry
	writer   output.CaseWriter
	detector *hashing.ThreadSafeDuplicateDetector
	stats    Stats
}

// newProcessingContext creates the context for one run. Cases are written
// to cfg.OutputFile.
func newProcessingContext(cfg *config.Config, reg *registry.Registry) *ProcessingContext {
	ctx := &ProcessingContext{
		cfg:    cfg,
		reg:    reg,
		writer: output.NewWriter(cfg.OutputFile, cfg),
	}
	if cfg.Duplicate.Report || cfg.Duplicate.Suppress {
		ctx.detector = hashing.NewThreadSafeDuplicateDetector(cfg.Duplicate.ExactMatch, cfg.Duplicate.MaxCapacity)
	}
	return ctx
}

// processParser reads every case from p, then closes it.
func (ctx *ProcessingContext) processParser(p *parser.FileParser) {
	defer p.Close() //nolint:errcheck // G104: read-only source
	ctx.stats.Sources++

	for {
		c, err := p.ParseChunk()
		if err != nil {
			ctx.reportError(err)
			return
		}
		if c == nil {
			return
		}
		ctx.handleCase(c)
	}
}

// processFile parses one test file.
func (ctx *ProcessingContext) processFile(path string) {
	ctx.cfg.CurrentInputFile = path
	p, err := parser.FromFile(path, ctx.reg, ctx.cfg)
	if err != nil {
		ctx.reportError(cgterrors.Wrap(err, path))
		return
	}
	ctx.processParser(p)
}

// processReader parses a test file read from r, which must start with a
// version command.
func (ctx *ProcessingContext) processReader(r io.Reader, name string) {
	ctx.cfg.CurrentInputFile = name
	p, err := parser.FromReader(r, name, ctx.reg, ctx.cfg)
	if err != nil {
		ctx.reportError(err)
		return
	}
	ctx.processParser(p)
}

// processString parses test file text given on the command line.
func (ctx *ProcessingContext) processString(s string) {
	ctx.cfg.CurrentInputFile = parser.StringName
	p, err := parser.FromString(s, ctx.reg, ctx.cfg)
	if err != nil {
		ctx.reportError(err)
		return
	}
	ctx.processParser(p)
}

// processDir parses every test file under dir with a worker pool.
//
// Concurrency model: each worker parses whole files with a parser of its
// own. Results are consumed here, on a single goroutine, in path order, so
// the writer and the statistics need no locking.
func (ctx *ProcessingContext) processDir(dir string, numWorkers int) {
	paths, err := findTestFiles(dir)
	if err != nil {
		ctx.reportError(err)
		return
	}
	if len(paths) == 0 {
		ctx.cfg.Warnf("no %s files found under %s", testFileExt, dir)
		return
	}

	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	ctx.cfg.Debugf("Parsing %d file(s) with %d worker(s)", len(paths), numWorkers)

	results := worker.ParseFiles(paths, worker.ParseFileFunc(ctx.reg, ctx.cfg), numWorkers)
	for _, res := range results {
		ctx.stats.Sources++
		for _, c := range res.Cases {
			ctx.handleCase(c)
		}
		if res.Err != nil {
			ctx.reportError(res.Err)
		}
	}
}

// findTestFiles returns the sorted paths of the test files under dir.
func findTestFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), testFileExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cgterrors.ErrIO, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// handleCase filters, checks for duplicates and writes one case, then
// cleans it up.
func (ctx *ProcessingContext) handleCase(c *gamecase.Case) {
	defer c.Cleanup()
	ctx.stats.Cases++

	if !ctx.cfg.Filter.Matches(c) {
		ctx.stats.Filtered++
		return
	}

	if ctx.detector != nil {
		if first, dup := ctx.detector.CheckAndAdd(c); dup {
			ctx.stats.Duplicates++
			ctx.reportDuplicate(c, first)
			if ctx.cfg.Duplicate.Suppress {
				return
			}
		}
	}

	if err := ctx.writer.WriteCase(c); err != nil {
		ctx.reportError(fmt.Errorf("%w: writing output: %v", cgterrors.ErrIO, err))
		return
	}
	ctx.stats.Output++
}

// reportDuplicate writes a duplicate report to the duplicate file, or to
// the log when there is none.
func (ctx *ProcessingContext) reportDuplicate(c *gamecase.Case, first hashing.CaseSignature) {
	if !ctx.cfg.Duplicate.Report {
		return
	}
	w := ctx.cfg.Duplicate.DuplicateFile
	if w == nil {
		w = ctx.cfg.LogFile
	}
	if w == nil {
		return
	}
	err := &cgterrors.CaseError{
		Err:    cgterrors.ErrDuplicateCase,
		Source: c.Source,
		Line:   c.Line,
		Hash:   c.Hash,
		Other:  fmt.Sprintf("%s:%d", first.Source, first.Line),
	}
	fmt.Fprintf(w, "%v\n", err)
}

// reportError logs a failed source. Errors are written at every verbosity.
func (ctx *ProcessingContext) reportError(err error) {
	ctx.stats.Errors++
	if ctx.cfg.LogFile != nil {
		fmt.Fprintf(ctx.cfg.LogFile, "Error: %v\n", err)
	}
}

// finish flushes the writer.
func (ctx *ProcessingContext) finish() error {
	return ctx.writer.Close()
}
