// cgtcase reads combinatorial game test files and prints the game cases they describe.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/cgtcase/internal/config"
	"github.com/lgbarn/cgtcase/internal/game"
	"github.com/lgbarn/cgtcase/internal/parser"
	"github.com/lgbarn/cgtcase/internal/registry"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("cgtcase version %s (test file %s)\n", programVersion, config.ExpectedVersion)
		os.Exit(0)
	}

	if err := registry.Init(game.RegisterAll); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering game parsers: %v\n", err)
		os.Exit(1)
	}
	reg := registry.Default()

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)
	setupDuplicateFile(cfg)

	switch {
	case *serveAddr != "":
		if err := runServer(*serveAddr, reg, cfg, cfg.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	case *interactive:
		os.Exit(runRepl(reg, cfg))
	}

	if !hasInput() {
		usage()
		os.Exit(2)
	}

	ctx := newProcessingContext(cfg, reg)
	processAllInputs(ctx)
	if err := ctx.finish(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		ctx.stats.Errors++
	}

	if cfg.Verbosity > 1 {
		reportStatistics(ctx)
	}
	if ctx.stats.Errors > 0 {
		os.Exit(1)
	}
}

// hasInput reports whether any input source was given.
func hasInput() bool {
	return *inputFile != "" || *readStdin || *testDir != "" || flag.NArg() > 0
}

// processAllInputs processes the sources in a fixed order: -file, -stdin,
// -test-dir, then each positional argument as test file text.
func processAllInputs(ctx *ProcessingContext) {
	if *inputFile != "" {
		ctx.processFile(*inputFile)
	}
	if *readStdin {
		ctx.processReader(os.Stdin, parser.StdinName)
	}
	if *testDir != "" {
		ctx.processDir(*testDir, ctx.cfg.Workers)
	}
	for _, arg := range flag.Args() {
		ctx.processString(arg)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFilename = *outputFile
	cfg.OutputFile = file
}

// setupDuplicateFile configures the duplicate report file.
func setupDuplicateFile(cfg *config.Config) {
	if *duplicateFile == "" {
		return
	}
	file, err := os.Create(*duplicateFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating duplicate file %s: %v\n", *duplicateFile, err)
		os.Exit(1)
	}
	cfg.Duplicate.DuplicateFile = file
	cfg.Duplicate.Report = true
}

// reportStatistics prints the final statistics to the log.
func reportStatistics(ctx *ProcessingContext) {
	s := ctx.stats
	fmt.Fprintf(ctx.cfg.LogFile, "%d source(s), %d case(s), %d output, %d filtered, %d duplicate(s), %d error(s).\n",
		s.Sources, s.Cases, s.Output, s.Filtered, s.Duplicates, s.Errors)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: cgtcase [options] [test-text...]\n\n")
	fmt.Fprintf(os.Stderr, "Reads combinatorial game test files and prints the game cases they describe.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nTest file syntax:\n")
	fmt.Fprintf(os.Stderr, "  {%s}     version command, first in every file\n", config.ExpectedVersion)
	fmt.Fprintf(os.Stderr, "  [nim]             section title naming the game family\n")
	fmt.Fprintf(os.Stderr, "  (1 2) 3           game tokens\n")
	fmt.Fprintf(os.Stderr, "  /text/            comment; /#k text/ targets case k, /_text/ is ignored\n")
	fmt.Fprintf(os.Stderr, "  {B win, W, N 3}   run command: up to 3 cases\n")
}
