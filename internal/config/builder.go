package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithStrictVersion makes a wrong version fatal.
func (b *ConfigBuilder) WithStrictVersion(strict bool) *ConfigBuilder {
	b.cfg.StrictVersion = strict
	return b
}

// WithSilencedWarnings suppresses warnings.
func (b *ConfigBuilder) WithSilencedWarnings(silence bool) *ConfigBuilder {
	b.cfg.SilenceWarnings = silence
	return b
}

// WithParserDebug enables construct tracing.
func (b *ConfigBuilder) WithParserDebug(enabled bool) *ConfigBuilder {
	b.cfg.ParserDebug = enabled
	return b
}

// WithWorkers sets the number of parallel parsers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithHash controls whether case hashes are written.
func (b *ConfigBuilder) WithHash(include bool) *ConfigBuilder {
	b.cfg.Output.IncludeHash = include
	return b
}

// KeepComments controls whether comments are written.
func (b *ConfigBuilder) KeepComments(keep bool) *ConfigBuilder {
	b.cfg.Output.IncludeComments = keep
	return b
}

// WithDuplicateReport enables duplicate case reporting.
func (b *ConfigBuilder) WithDuplicateReport(enabled bool, w io.Writer) *ConfigBuilder {
	b.cfg.Duplicate.Report = enabled
	b.cfg.Duplicate.DuplicateFile = w
	return b
}

// WithFamilies restricts output to cases containing the given families.
func (b *ConfigBuilder) WithFamilies(families ...string) *ConfigBuilder {
	b.cfg.Filter.Families = append(b.cfg.Filter.Families, families...)
	return b
}

// WithPlayers restricts output to cases whose command names one of players.
func (b *ConfigBuilder) WithPlayers(players ...string) *ConfigBuilder {
	b.cfg.Filter.Players = append(b.cfg.Filter.Players, players...)
	return b
}
