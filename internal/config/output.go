package config

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// JSONFormat enables JSON output instead of test file text
	JSONFormat bool

	// MaxLineLength is the maximum line length for text output
	MaxLineLength uint

	// IncludeHash adds each case's content hash
	IncludeHash bool

	// IncludeComments keeps case comments in the output
	IncludeComments bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength:   80,
		IncludeHash:     true,
		IncludeComments: true,
	}
}
