// Package config provides configuration for the cgtcase tool.
package config

import (
	"fmt"
	"io"
	"os"
)

// ExpectedVersion is the format version this parser reads. Test files start
// with "{version 1.1}".
const ExpectedVersion = "version 1.1"

// Config holds all program configuration.
type Config struct {
	// Diagnostics
	Verbosity       int  // 0=nothing, 1=warnings, 2=running commentary
	ParserDebug     bool // Trace every matched construct
	SilenceWarnings bool // Suppress warnings, errors are still reported

	// StrictVersion makes a version mismatch fatal instead of a warning.
	// It takes precedence over SilenceWarnings.
	StrictVersion bool

	// Processing
	Workers          int    // Parallel parsers for directory input, 0 = one per CPU
	CurrentInputFile string // Name of the source being parsed

	// Output streams
	OutputFilename string
	OutputFile     io.Writer
	LogFile        io.Writer

	// Sub-configurations
	Output    *OutputConfig
	Duplicate *DuplicateConfig
	Filter    *FilterConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
		Output:     NewOutputConfig(),
		Duplicate:  NewDuplicateConfig(),
		Filter:     NewFilterConfig(),
	}
}

// Clone returns a shallow copy with its own sub-configurations, so that a
// worker can set CurrentInputFile without affecting other workers.
func (c *Config) Clone() *Config {
	cp := *c
	if c.Output != nil {
		o := *c.Output
		cp.Output = &o
	}
	if c.Duplicate != nil {
		d := *c.Duplicate
		cp.Duplicate = &d
	}
	if c.Filter != nil {
		cp.Filter = c.Filter.clone()
	}
	return &cp
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d: %w", c.Verbosity, ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, ErrInvalidConfig)
	}
	if c.Filter != nil {
		return c.Filter.Validate()
	}
	return nil
}

// Warnf writes a warning to the log file unless warnings are silenced.
func (c *Config) Warnf(format string, args ...interface{}) {
	if c.LogFile == nil || c.SilenceWarnings || c.Verbosity < 1 {
		return
	}
	fmt.Fprintf(c.LogFile, "WARNING: "+format+"\n", args...)
}

// Debugf writes running commentary when verbosity is at least 2 or parser
// debugging is on.
func (c *Config) Debugf(format string, args ...interface{}) {
	if c.LogFile == nil || (c.Verbosity < 2 && !c.ParserDebug) {
		return
	}
	fmt.Fprintf(c.LogFile, format+"\n", args...)
}
