package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/lgbarn/cgtcase/internal/config"
	cgterrors "github.com/lgbarn/cgtcase/internal/errors"
	"github.com/lgbarn/cgtcase/internal/output"
	"github.com/lgbarn/cgtcase/internal/testutil"
)

// syncBuffer is a bytes.Buffer safe for the concurrent warnings of workers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testRun struct {
	ctx *ProcessingContext
	out *bytes.Buffer
	log *syncBuffer
}

func newTestRun(t *testing.T, configure func(*config.Config)) *testRun {
	t.Helper()
	r := &testRun{out: &bytes.Buffer{}, log: &syncBuffer{}}
	cfg := config.NewConfig()
	cfg.OutputFile = r.out
	cfg.LogFile = r.log
	if configure != nil {
		configure(cfg)
	}
	r.ctx = newProcessingContext(cfg, testutil.NewRegistry())
	return r
}

func (r *testRun) finish(t *testing.T) string {
	t.Helper()
	testutil.AssertNoError(t, r.ctx.finish())
	return r.out.String()
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessString(t *testing.T) {
	r := newTestRun(t, nil)
	r.ctx.processString("[nim] (1 2) {B win, W}")
	out := r.finish(t)

	testutil.AssertEqual(t, r.ctx.stats, Stats{Sources: 1, Cases: 2, Output: 2})
	testutil.AssertContains(t, out, "{version 1.1}")
	testutil.AssertContains(t, out, "{B win}")
	testutil.AssertContains(t, out, "{W}")
	testutil.AssertEqual(t, strings.Count(out, "[nim] (1 2)"), 2)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "games.test", "{version 1.1}\n[clobber_1xn]\nXOXO\n{B loss}\n")

	r := newTestRun(t, func(cfg *config.Config) { cfg.Output.JSONFormat = true })
	r.ctx.processFile(path)
	out := r.finish(t)

	var got output.JSONOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got.Cases) != 1 {
		t.Fatalf("got %d cases; want 1", len(got.Cases))
	}
	testutil.AssertEqual(t, got.Cases[0].Source, path)
	testutil.AssertEqual(t, got.Cases[0].Line, 4)
	testutil.AssertEqual(t, got.Cases[0].Outcome, "loss")
}

func TestProcessErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.test")

	r := newTestRun(t, nil)
	r.ctx.processFile(missing)
	r.ctx.processReader(strings.NewReader("[nim] 1 {B}"), "stdin")
	r.ctx.processString("[nim] 1 {B} [nim] 2 {B, W, N, B}")
	r.finish(t)

	testutil.AssertEqual(t, r.ctx.stats.Errors, 3)
	// The case before the failing command is still output.
	testutil.AssertEqual(t, r.ctx.stats.Output, 1)

	log := r.log.String()
	testutil.AssertContains(t, log, missing)
	testutil.AssertContains(t, log, "stdin:1: missing version command")
	testutil.AssertContains(t, log, "string:1: run command has too many cases")
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.test", "{version 1.1}\n[nim] 1 {B}\n")
	writeTestFile(t, dir, "sub/b.test", "{version 1.1}\n[nim] 2 {W}\n")
	writeTestFile(t, dir, "sub/c.test", "{version 2.0}\n[nim] 3 {N}\n")
	writeTestFile(t, dir, "notes.txt", "not a test file")

	r := newTestRun(t, nil)
	r.ctx.processDir(dir, 2)
	out := r.finish(t)

	testutil.AssertEqual(t, r.ctx.stats, Stats{Sources: 3, Cases: 3, Output: 3})
	// Results are written in path order whatever order workers finish in.
	a, b, c := strings.Index(out, "{B}"), strings.Index(out, "{W}"), strings.Index(out, "{N}")
	if !(a >= 0 && a < b && b < c) {
		t.Errorf("cases out of path order:\n%s", out)
	}
	testutil.AssertContains(t, r.log.String(), "parser version mismatch")
}

func TestProcessDir_Empty(t *testing.T) {
	r := newTestRun(t, nil)
	r.ctx.processDir(t.TempDir(), 1)
	testutil.AssertEqual(t, r.finish(t), "")
	testutil.AssertContains(t, r.log.String(), "no .test files found")
}

func TestFindTestFiles_Missing(t *testing.T) {
	_, err := findTestFiles(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, cgterrors.ErrIO) {
		t.Errorf("findTestFiles() error = %v; want ErrIO", err)
	}
}

func TestHandleCase_Filters(t *testing.T) {
	r := newTestRun(t, func(cfg *config.Config) {
		cfg.Filter.Families = []string{"up_star"}
		cfg.Filter.Players = []string{"B", "W"}
	})
	r.ctx.processString("[nim] 1 {B} [up_star] * {N} [up_star] (2 *) [nim] 3 {W win}")
	out := r.finish(t)

	testutil.AssertEqual(t, r.ctx.stats, Stats{Sources: 1, Cases: 3, Output: 1, Filtered: 2})
	testutil.AssertContains(t, out, "{W win}")
	testutil.AssertNotContains(t, out, "{N}")
}

func TestHandleCase_Duplicates(t *testing.T) {
	input := "[nim] (1 2) {B} [nim] (1 2) /comments do not count/ {B} [nim] (1 2) {W}"

	tests := []struct {
		name       string
		configure  func(*config.Config)
		wantOutput int
		wantDups   int
	}{
		{"no detection", nil, 3, 0},
		{"report", func(c *config.Config) { c.Duplicate.Report = true }, 3, 1},
		{"suppress", func(c *config.Config) { c.Duplicate.Suppress = true }, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRun(t, tt.configure)
			r.ctx.processString(input)
			r.finish(t)

			testutil.AssertEqual(t, r.ctx.stats.Output, tt.wantOutput, "output")
			testutil.AssertEqual(t, r.ctx.stats.Duplicates, tt.wantDups, "duplicates")
		})
	}

	t.Run("report goes to the duplicate file", func(t *testing.T) {
		dups := &bytes.Buffer{}
		r := newTestRun(t, func(c *config.Config) {
			c.Duplicate.Report = true
			c.Duplicate.DuplicateFile = dups
		})
		r.ctx.processString(input)
		r.finish(t)

		testutil.AssertContains(t, dups.String(), "string:1: duplicate game case")
		testutil.AssertContains(t, dups.String(), "(first seen at string:1)")
		testutil.AssertNotContains(t, r.log.String(), "duplicate")
	})
}
