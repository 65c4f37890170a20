// Package gamecase defines the unit of work produced by the test file
// parser: a list of games plus the run command that says how to evaluate
// them.
package gamecase

import (
	"fmt"
	"strconv"

	"github.com/lgbarn/cgtcase/internal/game"
)

// Player is the player to move first.
type Player int

const (
	Black Player = iota
	White
	Impartial // "N": the case asks for a nim value, not a winner
)

var playerChars = [...]string{
	Black:     "B",
	White:     "W",
	Impartial: "N",
}

// String returns the command letter of the player.
func (p Player) String() string {
	if int(p) >= 0 && int(p) < len(playerChars) {
		return playerChars[p]
	}
	return "?"
}

// ParsePlayer converts a command letter to a Player.
func ParsePlayer(s string) (Player, bool) {
	for p, c := range playerChars {
		if c == s {
			return Player(p), true
		}
	}
	return 0, false
}

// Outcome is the expected result of a case.
type Outcome int

const (
	Unspecified Outcome = iota
	Win
	Loss
	NimberValue // expected nim value, see RunCommand.Nimber
)

var outcomeNames = [...]string{
	Unspecified: "Unspecified",
	Win:         "Win",
	Loss:        "Loss",
	NimberValue: "Nimber",
}

func (o Outcome) String() string {
	if int(o) >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "Unknown"
}

// RunCommand is one entry of a "{...}" run command.
type RunCommand struct {
	Player  Player
	Outcome Outcome
	Nimber  int // Only meaningful when Outcome is NimberValue
}

// String returns the entry in test file syntax, e.g. "B win" or "N 3".
func (rc RunCommand) String() string {
	s := rc.Player.String()
	switch rc.Outcome {
	case Win:
		s += " win"
	case Loss:
		s += " loss"
	case NimberValue:
		s += " " + strconv.Itoa(rc.Nimber)
	}
	return s
}

// noCopy makes go vet's copylocks check flag copies of a Case.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Case is one parsed test case. A Case owns its games exclusively until
// Release or Cleanup is called; pass it by pointer and never copy it.
type Case struct {
	noCopy noCopy

	Command  RunCommand
	Games    []game.Game
	Comments string
	Hash     string // Content hash of the tokens that produced the case

	Source string // Input name the case was read from
	Line   int    // Line of the run command
	Index  int    // Position within its run command (0-2)

	disposed bool
}

// Release transfers ownership of the games to the caller and empties the case.
func (c *Case) Release() []game.Game {
	games := c.Games
	c.Games = nil
	c.disposed = true
	return games
}

// Cleanup discards the games.
func (c *Case) Cleanup() {
	for i := range c.Games {
		c.Games[i] = nil
	}
	c.Games = nil
	c.disposed = true
}

// Disposed reports whether Release or Cleanup has been called.
func (c *Case) Disposed() bool {
	return c.disposed
}

// Families returns the distinct game families in order of first appearance.
func (c *Case) Families() []string {
	var families []string
	seen := make(map[string]bool)
	for _, g := range c.Games {
		if f := g.Family(); !seen[f] {
			seen[f] = true
			families = append(families, f)
		}
	}
	return families
}

// Location returns "source:line".
func (c *Case) Location() string {
	return fmt.Sprintf("%s:%d", c.Source, c.Line)
}
