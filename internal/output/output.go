// Package output renders parsed game cases as test file text or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/cgtcase/internal/config"
	"github.com/lgbarn/cgtcase/internal/gamecase"
	"github.com/lgbarn/cgtcase/internal/parser"
)

// HashCommentPrefix starts the ignored comment that carries a case hash.
const HashCommentPrefix = "_hash:"

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
// A string longer than the line is written on a line of its own.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.print("\n")
			o.lineLength = 0
			o.needsSpace = false
		} else {
			o.print(" ")
			o.lineLength++
		}
	}

	o.print(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line, if anything was written to it.
func (o *OutputWriter) NewLine() {
	if o.lineLength > 0 {
		o.print("\n")
	}
	o.lineLength = 0
	o.needsSpace = false
}

// BlankLine writes an empty line.
func (o *OutputWriter) BlankLine() {
	o.NewLine()
	o.print("\n")
}

// Err returns the first error returned by the underlying writer.
func (o *OutputWriter) Err() error {
	return o.err
}

func (o *OutputWriter) print(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// VersionLine returns the version command every output file starts with.
func VersionLine() string {
	return "{" + config.ExpectedVersion + "}"
}

// OutputCase writes c as test file text: the section titles and games,
// then the comments and the run command.
//
//	[nim] (1 2) 3
//	/first player wins/ /_hash:4342000000000000/
//	{B win}
func OutputCase(c *gamecase.Case, cfg *config.Config, ow *OutputWriter) {
	section := ""
	for _, g := range c.Games {
		if f := g.Family(); f != section {
			section = f
			ow.Write("[" + section + "]")
		}
		ow.Write(FormatGame(g.String()))
	}
	ow.NewLine()

	if cfg.Output.IncludeComments && c.Comments != "" {
		ow.Write("/" + c.Comments + "/")
	}
	if cfg.Output.IncludeHash && c.Hash != "" {
		ow.Write("/" + HashCommentPrefix + c.Hash + "/")
	}
	ow.NewLine()

	ow.Write("{" + c.Command.String() + "}")
	ow.BlankLine()
}

// FormatGame returns a game value as a token the parser reads back: bare
// when it is a single field that does not start a delimited construct,
// in parentheses otherwise.
func FormatGame(value string) string {
	if value != "" && !strings.ContainsAny(value, " \t") && !strings.ContainsRune(parser.ReservedChars, rune(value[0])) {
		return value
	}
	return "(" + value + ")"
}

// FormatCommand returns the run command that produces cmds.
func FormatCommand(cmds []gamecase.RunCommand) string {
	return fmt.Sprintf("{%s}", parser.FormatRunCommand(cmds))
}
