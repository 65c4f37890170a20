package output

import (
	"io"

	"github.com/lgbarn/cgtcase/internal/config"
	"github.com/lgbarn/cgtcase/internal/gamecase"
)

// CaseWriter is the interface for writing cases to output.
// Writers copy what they need from a case, so the caller may clean the
// case up as soon as WriteCase returns.
type CaseWriter interface {
	// WriteCase writes a single case to the output.
	WriteCase(c *gamecase.Case) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewWriter returns the writer selected by cfg.Output.JSONFormat.
func NewWriter(w io.Writer, cfg *config.Config) CaseWriter {
	if cfg.Output.JSONFormat {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes cases as test file text. The version command is
// written before the first case.
type TextWriter struct {
	ow      *OutputWriter
	cfg     *config.Config
	started bool
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		ow:  NewOutputWriter(w, int(cfg.Output.MaxLineLength)),
		cfg: cfg,
	}
}

// WriteCase writes a case in test file form.
func (tw *TextWriter) WriteCase(c *gamecase.Case) error {
	if !tw.started {
		tw.started = true
		tw.ow.Write(VersionLine())
		tw.ow.BlankLine()
	}
	OutputCase(c, tw.cfg, tw.ow)
	return tw.ow.Err()
}

// Flush reports any write error; text is written immediately.
func (tw *TextWriter) Flush() error {
	return tw.ow.Err()
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return tw.Flush()
}

// JSONWriter writes cases in JSON format.
// It buffers cases and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	cfg    *config.Config
	cases  []*JSONCase
	single bool // If true, write each case immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches cases and writes them as an array on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:   w,
		cfg: cfg,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each case immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

// WriteCase buffers a case for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteCase(c *gamecase.Case) error {
	jc := CaseToJSON(c, jw.cfg)
	if jw.single {
		return encodeJSON(jw.w, jc)
	}
	jw.cases = append(jw.cases, jc)
	return nil
}

// Flush writes all buffered cases as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.cases) == 0 {
		return nil
	}
	err := encodeJSON(jw.w, &JSONOutput{Cases: jw.cases})
	jw.cases = nil
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
