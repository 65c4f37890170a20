// Package errors provides sentinel errors and error types for the cgtcase tool.
// Every failure the test file parser can report has a sentinel here, so
// callers branch with errors.Is() and recover location context with
// errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Version errors.
var (
	// ErrMissingVersion indicates a file or stdin source without a leading
	// {version ...} command.
	ErrMissingVersion = errors.New("missing version command")

	// ErrWrongVersion indicates a version command naming another format
	// version. Only fatal in strict mode.
	ErrWrongVersion = errors.New("wrong version command")
)

// Structural errors.
var (
	ErrMissingSectionTitle    = errors.New("game token found but section title missing")
	ErrMissingSectionParser   = errors.New("no game parser registered for section")
	ErrDuplicateParser        = errors.New("game parser already registered")
	ErrRegistryFrozen         = errors.New("game parser registry is frozen")
	ErrRegistryNotInitialized = errors.New("game parser registry not initialized")
	ErrCaseLimitExceeded      = errors.New("run command has too many cases")
	ErrEmptyCommand           = errors.New("empty command")
	ErrEmptyCaseCommand       = errors.New("run command with no cases")
	ErrMalformedCaseCommand   = errors.New("failed to parse case command")
)

// Lexical errors.
var (
	// ErrFailedMatch indicates a bracketed construct that never closes, or
	// one with a reserved character inside it.
	ErrFailedMatch = errors.New("failed to match")

	// ErrMalformedComment indicates a bad "#<case>" comment prefix. It is
	// logged and never returned from the parser.
	ErrMalformedComment = errors.New("malformed comment")
)

var (
	// ErrGameTokenParse indicates a registered game parser rejected a token.
	ErrGameTokenParse = errors.New("failed to parse game token")

	// ErrCallerContract indicates ParseChunk was called while the previous
	// case still owned its games.
	ErrCallerContract = errors.New("previous game case not released")

	// ErrIO indicates a read failure on the underlying source.
	ErrIO = errors.New("input error")

	// ErrDuplicateCase indicates a case whose content hash was already seen.
	ErrDuplicateCase = errors.New("duplicate game case")

	// ErrInvalidConfig indicates an invalid configuration value.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Class groups sentinel errors by the kind of failure.
type Class int

const (
	ClassUnknown Class = iota
	ClassVersion
	ClassStructural
	ClassLexical
	ClassSemantic
	ClassCaller
	ClassIO
)

var classNames = [...]string{
	ClassUnknown:    "unknown",
	ClassVersion:    "version",
	ClassStructural: "structural",
	ClassLexical:    "lexical",
	ClassSemantic:   "semantic",
	ClassCaller:     "caller",
	ClassIO:         "io",
}

// String returns the lower-case class name.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

var classes = []struct {
	err   error
	class Class
}{
	{ErrMissingVersion, ClassVersion},
	{ErrWrongVersion, ClassVersion},
	{ErrMissingSectionTitle, ClassStructural},
	{ErrMissingSectionParser, ClassStructural},
	{ErrDuplicateParser, ClassStructural},
	{ErrRegistryFrozen, ClassStructural},
	{ErrRegistryNotInitialized, ClassStructural},
	{ErrCaseLimitExceeded, ClassStructural},
	{ErrEmptyCommand, ClassStructural},
	{ErrEmptyCaseCommand, ClassStructural},
	{ErrMalformedCaseCommand, ClassStructural},
	{ErrDuplicateCase, ClassStructural},
	{ErrFailedMatch, ClassLexical},
	{ErrMalformedComment, ClassLexical},
	{ErrGameTokenParse, ClassSemantic},
	{ErrCallerContract, ClassCaller},
	{ErrIO, ClassIO},
}

// ClassOf returns the class of the first sentinel found in err's chain.
func ClassOf(err error) Class {
	if err == nil {
		return ClassUnknown
	}
	for _, c := range classes {
		if errors.Is(err, c.err) {
			return c.class
		}
	}
	return ClassUnknown
}

// ParseError is a parser failure with its source location. Line is the line
// of the token that started the failing construct.
type ParseError struct {
	Err    error  // The underlying sentinel error
	File   string // Source name ("stdin", "string" or a path)
	Line   int    // Line number (1-based, 0 if unknown)
	Token  string // Text of the offending construct
	Detail string // Extra context, e.g. the section title
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.File != "" || e.Line > 0 {
		loc := e.File
		if e.Line > 0 {
			if loc != "" {
				loc += fmt.Sprintf(":%d", e.Line)
			} else {
				loc = fmt.Sprintf("line %d", e.Line)
			}
		}
		parts = append(parts, loc)
	}

	msg := "parse error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	if e.Token != "" {
		msg += fmt.Sprintf(": %q", e.Token)
	}
	parts = append(parts, msg)

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// CaseError attaches case context to an error found after parsing, such as
// a duplicate case.
type CaseError struct {
	Err    error
	Source string // Source of the case
	Line   int    // Line of the run command that produced the case
	Hash   string // Content hash of the case
	Other  string // Location of the earlier case, if any
}

// Error returns a formatted error message including all available context.
func (e *CaseError) Error() string {
	var sb strings.Builder
	if e.Source != "" {
		sb.WriteString(e.Source)
		if e.Line > 0 {
			fmt.Fprintf(&sb, ":%d", e.Line)
		}
		sb.WriteString(": ")
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString("case error")
	}
	if e.Hash != "" {
		fmt.Fprintf(&sb, " [%s]", e.Hash)
	}
	if e.Other != "" {
		fmt.Fprintf(&sb, " (first seen at %s)", e.Other)
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *CaseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
