package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("reading cases: %w", ErrFailedMatch)

	if !errors.Is(wrapped, ErrFailedMatch) {
		t.Errorf("errors.Is(wrapped, ErrFailedMatch) = false, want true")
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{"nil", nil, ClassUnknown},
		{"unrelated", errors.New("boom"), ClassUnknown},
		{"missing version", ErrMissingVersion, ClassVersion},
		{"wrong version", ErrWrongVersion, ClassVersion},
		{"missing title", ErrMissingSectionTitle, ClassStructural},
		{"missing parser", ErrMissingSectionParser, ClassStructural},
		{"duplicate parser", ErrDuplicateParser, ClassStructural},
		{"case limit", ErrCaseLimitExceeded, ClassStructural},
		{"empty command", ErrEmptyCommand, ClassStructural},
		{"empty case command", ErrEmptyCaseCommand, ClassStructural},
		{"malformed command", ErrMalformedCaseCommand, ClassStructural},
		{"failed match", ErrFailedMatch, ClassLexical},
		{"malformed comment", ErrMalformedComment, ClassLexical},
		{"game token", ErrGameTokenParse, ClassSemantic},
		{"caller", ErrCallerContract, ClassCaller},
		{"io", ErrIO, ClassIO},
		{"wrapped in ParseError", &ParseError{Err: ErrGameTokenParse, Line: 3}, ClassSemantic},
		{"wrapped twice", Wrap(&ParseError{Err: ErrFailedMatch}, "file"), ClassLexical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassOf(tt.err); got != tt.want {
				t.Errorf("ClassOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClass_String(t *testing.T) {
	if got := ClassSemantic.String(); got != "semantic" {
		t.Errorf("ClassSemantic.String() = %q, want %q", got, "semantic")
	}
	if got := Class(99).String(); got != "unknown" {
		t.Errorf("Class(99).String() = %q, want %q", got, "unknown")
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		contains []string
	}{
		{
			name: "full context",
			err: &ParseError{
				Err:    ErrMissingSectionParser,
				File:   "nim.test",
				Line:   12,
				Token:  "3 4",
				Detail: `"nimm"`,
			},
			contains: []string{"nim.test:12", "no game parser", `"nimm"`, `"3 4"`},
		},
		{
			name:     "line only",
			err:      &ParseError{Err: ErrFailedMatch, Line: 4},
			contains: []string{"line 4", "failed to match"},
		},
		{
			name:     "no underlying error",
			err:      &ParseError{File: "x.test"},
			contains: []string{"x.test", "parse error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("ParseError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestParseError_As verifies errors.As extracts the location
func TestParseError_As(t *testing.T) {
	wrapped := fmt.Errorf("running tests: %w", &ParseError{Err: ErrMissingSectionTitle, File: "a.test", Line: 2})

	var pe *ParseError
	if !errors.As(wrapped, &pe) {
		t.Fatal("errors.As() could not extract ParseError")
	}
	if pe.Line != 2 {
		t.Errorf("pe.Line = %d, want 2", pe.Line)
	}
	if !errors.Is(wrapped, ErrMissingSectionTitle) {
		t.Error("errors.Is(wrapped, ErrMissingSectionTitle) = false, want true")
	}
}

func TestCaseError(t *testing.T) {
	err := &CaseError{
		Err:    ErrDuplicateCase,
		Source: "b.test",
		Line:   9,
		Hash:   "0011223344556677",
		Other:  "a.test:3",
	}

	msg := err.Error()
	for _, s := range []string{"b.test:9", "duplicate game case", "0011223344556677", "a.test:3"} {
		if !strings.Contains(msg, s) {
			t.Errorf("CaseError.Error() = %q, should contain %q", msg, s)
		}
	}
	if !errors.Is(err, ErrDuplicateCase) {
		t.Error("errors.Is(err, ErrDuplicateCase) = false, want true")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIO, "reading %s", "cases.test")

	if !errors.Is(wrapped, ErrIO) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !strings.Contains(wrapped.Error(), "reading cases.test") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}
