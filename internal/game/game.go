// Package game defines the capability set of a combinatorial game as seen by
// the test file parser, and the token grammars of every supported family.
package game

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Game is a parsed game instance. Games are mutable once handed to a solver,
// so cases that share a game list must each hold their own Clone.
type Game interface {
	// Family returns the section title the game is registered under.
	Family() string

	// String returns token text that parses back to an equal game.
	String() string

	// Clone returns a deep copy.
	Clone() Game
}

// ParseFunc builds a game from the interior text of a game token.
type ParseFunc func(token string) (Game, error)

// Registrar receives family registrations. It is satisfied by
// *registry.Registry.
type Registrar interface {
	Register(family string, fn ParseFunc) error
}

// Family names, matching the section titles used in test files.
const (
	Clobber1xN     = "clobber_1xn"
	NoGo1xN        = "nogo_1xn"
	Elephants      = "elephants"
	Nim            = "nim"
	IntegerGame    = "integer_game"
	NimberGame     = "nimber"
	DyadicRational = "dyadic_rational"
	SwitchGame     = "switch_game"
	UpStar         = "up_star"
)

// RegisterAll registers the parser of every supported family.
// New families must be added here to be usable from test files.
func RegisterAll(r Registrar) error {
	parsers := []struct {
		family string
		fn     ParseFunc
	}{
		{Clobber1xN, stripParser(Clobber1xN)},
		{NoGo1xN, stripParser(NoGo1xN)},
		{Elephants, stripParser(Elephants)},
		{Nim, ParseNim},
		{IntegerGame, ParseInteger},
		{NimberGame, ParseNimber},
		{DyadicRational, ParseDyadicRational},
		{SwitchGame, ParseSwitch},
		{UpStar, ParseUpStar},
	}

	for _, p := range parsers {
		if err := r.Register(p.family, p.fn); err != nil {
			return err
		}
	}
	return nil
}

// fields splits a token on whitespace and commas.
func fields(token string) []string {
	return strings.FieldsFunc(token, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

// parseInt accepts an optionally signed decimal integer.
func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return v, nil
}
