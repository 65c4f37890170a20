package parser

import (
	"fmt"
	"strconv"
	"strings"

	cgterrors "github.com/lgbarn/cgtcase/internal/errors"
	"github.com/lgbarn/cgtcase/internal/gamecase"
)

// MaxCases is the largest number of cases one run command can produce.
const MaxCases = 3

// isVersionCommand reports whether a command interior is a version command.
func isVersionCommand(interior string) bool {
	return strings.HasPrefix(strings.TrimSpace(interior), "version")
}

// normalizeSpace collapses runs of whitespace to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseRunCommand parses the interior of a run command such as
// "B win, W loss" or "N 0" into one RunCommand per entry.
func ParseRunCommand(interior string) ([]gamecase.RunCommand, error) {
	if strings.TrimSpace(interior) == "" {
		return nil, cgterrors.ErrEmptyCommand
	}

	entries := strings.Split(interior, ",")
	nonEmpty := 0
	for i := range entries {
		entries[i] = strings.TrimSpace(entries[i])
		if entries[i] != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return nil, cgterrors.ErrEmptyCaseCommand
	}
	if nonEmpty > MaxCases {
		return nil, fmt.Errorf("%w: %d cases, maximum is %d", cgterrors.ErrCaseLimitExceeded, nonEmpty, MaxCases)
	}

	cmds := make([]gamecase.RunCommand, 0, len(entries))
	for _, entry := range entries {
		rc, err := parseCaseEntry(entry)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, rc)
	}
	return cmds, nil
}

// parseCaseEntry parses "B", "W win", "B loss", "N" or "N 3".
func parseCaseEntry(entry string) (gamecase.RunCommand, error) {
	var rc gamecase.RunCommand

	f := strings.Fields(entry)
	if len(f) == 0 || len(f) > 2 {
		return rc, fmt.Errorf("%w: bad entry %q", cgterrors.ErrMalformedCaseCommand, entry)
	}

	player, ok := gamecase.ParsePlayer(f[0])
	if !ok {
		return rc, fmt.Errorf("%w: unknown player %q", cgterrors.ErrMalformedCaseCommand, f[0])
	}
	rc.Player = player
	if len(f) == 1 {
		return rc, nil
	}

	switch player {
	case gamecase.Black, gamecase.White:
		switch f[1] {
		case "win":
			rc.Outcome = gamecase.Win
		case "loss":
			rc.Outcome = gamecase.Loss
		default:
			return rc, fmt.Errorf("%w: unknown outcome %q", cgterrors.ErrMalformedCaseCommand, f[1])
		}
	case gamecase.Impartial:
		n, err := parseNimber(f[1])
		if err != nil {
			return rc, fmt.Errorf("%w: %v", cgterrors.ErrMalformedCaseCommand, err)
		}
		rc.Outcome = gamecase.NimberValue
		rc.Nimber = n
	}
	return rc, nil
}

// parseNimber accepts an unsigned decimal integer.
func parseNimber(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("bad nimber %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad nimber %q", s)
	}
	return n, nil
}

// FormatRunCommand renders cmds as a command interior, the inverse of
// ParseRunCommand.
func FormatRunCommand(cmds []gamecase.RunCommand) string {
	parts := make([]string, len(cmds))
	for i, rc := range cmds {
		parts[i] = rc.String()
	}
	return strings.Join(parts, ", ")
}
