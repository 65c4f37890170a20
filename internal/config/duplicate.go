package config

import "io"

// DuplicateConfig holds settings for duplicate case detection.
type DuplicateConfig struct {
	// Report enables duplicate case reporting
	Report bool

	// Suppress drops duplicate cases from the output
	Suppress bool

	// ExactMatch also compares run commands, not only hashes
	ExactMatch bool

	// MaxCapacity bounds the number of remembered cases (0 = unlimited)
	MaxCapacity int

	// DuplicateFile is the output stream for duplicate reports
	DuplicateFile io.Writer
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{}
}
