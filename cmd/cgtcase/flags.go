// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"

	"github.com/lgbarn/cgtcase/internal/config"
)

var (
	// Input options
	inputFile = flag.String("file", "", "Parse this test file")
	readStdin = flag.Bool("stdin", false, "Parse a test file from standard input")
	testDir   = flag.String("test-dir", "", "Parse every *.test file under this directory")
	workers   = flag.Int("workers", 0, "Number of worker threads for -test-dir (0 = auto-detect based on CPU cores)")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Output in JSON format")
	lineLength = flag.Int("w", 80, "Maximum line length")
	noComments = flag.Bool("C", false, "Don't output comments")
	noHash     = flag.Bool("nohash", false, "Don't output case hashes")

	// Parser options
	strictVersion = flag.Bool("strict", false, "Fail on a version command other than {"+config.ExpectedVersion+"}")
	silence       = flag.Bool("silence", false, "Silence parser warnings")
	parserDebug   = flag.Bool("parser-debug", false, "Trace every construct the parser matches")
	verbosity     = flag.Int("v", 1, "Verbosity: 0 quiet, 1 warnings, 2 commentary")

	// Duplicate detection
	reportDuplicates   = flag.Bool("D", false, "Report duplicate cases")
	suppressDuplicates = flag.Bool("U", false, "Suppress duplicate cases in the output")
	exactDuplicates    = flag.Bool("exact", false, "Count cases as duplicates only when their run commands match too")
	duplicateFile      = flag.String("d", "", "Write duplicate reports to this file (default: log)")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum duplicate hash table entries (0 = unlimited)")

	// Filtering options
	familyFilter = flag.String("family", "", "Only output cases with a game of these families (comma-separated)")
	playerFilter = flag.String("player", "", "Only output cases for these players: B, W, N (comma-separated)")

	// Modes
	serveAddr   = flag.String("serve", "", "Serve the HTTP API on this address (e.g. :8080)")
	interactive = flag.Bool("i", false, "Start an interactive session")

	// Logging
	logFile = flag.String("l", "", "Write diagnostics to log file")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyParserFlags(cfg)
	applyContentFlags(cfg)
	applyDuplicateFlags(cfg)
	applyFilterFlags(cfg)
	cfg.Workers = *workers
}

// applyParserFlags configures version checking and diagnostics.
func applyParserFlags(cfg *config.Config) {
	cfg.StrictVersion = *strictVersion
	cfg.SilenceWarnings = *silence
	cfg.ParserDebug = *parserDebug
	cfg.Verbosity = *verbosity
}

// applyContentFlags configures content output settings.
func applyContentFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.IncludeComments = !*noComments
	cfg.Output.IncludeHash = !*noHash
	if *lineLength > 0 {
		cfg.Output.MaxLineLength = uint(*lineLength)
	}
}

// applyDuplicateFlags configures duplicate detection settings.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.Report = *reportDuplicates
	cfg.Duplicate.Suppress = *suppressDuplicates
	cfg.Duplicate.ExactMatch = *exactDuplicates
	cfg.Duplicate.MaxCapacity = *duplicateCapacity
}

// applyFilterFlags configures case filter settings.
func applyFilterFlags(cfg *config.Config) {
	cfg.Filter.Families = splitList(*familyFilter)
	cfg.Filter.Players = splitList(*playerFilter)
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
