// Package parser reads combinatorial game test files into game cases.
//
// A test file is a sequence of whitespace separated tokens. Four bracketed
// constructs may span several tokens: section titles "[...]", commands
// "{...}", game tokens "(...)" and comments "/.../". Any other token is a
// bare game token for the current section.
package parser

import "strings"

// Token is one whitespace delimited word of input.
type Token struct {
	Text string
	Line int // 1-based line the token was read from
}

// ReservedChars may only appear at the boundaries of a bracketed construct.
const ReservedChars = "[](){}/"

// Delims describes one bracketed construct.
type Delims struct {
	Open       string
	Close      string
	AllowInner bool   // Reserved characters may appear inside
	Name       string // Used in diagnostics
}

// The four constructs of the test file format.
var (
	TitleDelims   = Delims{Open: "[", Close: "]", Name: "section title"}
	CommandDelims = Delims{Open: "{", Close: "}", Name: "command"}
	GameDelims    = Delims{Open: "(", Close: ")", Name: "game token"}
	CommentDelims = Delims{Open: "/", Close: "/", AllowInner: true, Name: "comment"}
)

// Strip removes the delimiters from a fully matched construct.
func (d Delims) Strip(text string) string {
	if len(text) < len(d.Open)+len(d.Close) {
		return ""
	}
	return text[len(d.Open) : len(text)-len(d.Close)]
}

// hasInnerReserved reports whether a reserved character appears strictly
// between the delimiters of text.
func (d Delims) hasInnerReserved(text string) bool {
	return strings.ContainsAny(d.Strip(text), ReservedChars)
}

// MatchState is the progress of a delimiter match.
type MatchState int

const (
	MatchUnknown  MatchState = iota
	MatchNotFound            // Text does not start with the opening delimiter
	MatchStart               // Opened, not yet closed
	MatchFull                // Well formed construct
	MatchIllegal             // Inner reserved character, or input ended while open
)

var matchStateNames = [...]string{
	MatchUnknown:  "unknown",
	MatchNotFound: "not found",
	MatchStart:    "start",
	MatchFull:     "full",
	MatchIllegal:  "illegal",
}

// String returns the state name.
func (s MatchState) String() string {
	if int(s) >= 0 && int(s) < len(matchStateNames) {
		return matchStateNames[s]
	}
	return "invalid"
}

// Conclusive reports whether matching has finished.
func (s MatchState) Conclusive() bool {
	return s == MatchNotFound || s == MatchFull || s == MatchIllegal
}
