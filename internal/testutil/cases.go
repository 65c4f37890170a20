package testutil

import (
	"io"
	"testing"

	"github.com/lgbarn/cgtcase/internal/config"
	"github.com/lgbarn/cgtcase/internal/game"
	"github.com/lgbarn/cgtcase/internal/gamecase"
	"github.com/lgbarn/cgtcase/internal/parser"
	"github.com/lgbarn/cgtcase/internal/registry"
)

// NewRegistry returns a frozen registry holding every supported family.
// Tests use their own registry rather than the process-wide one.
func NewRegistry() *registry.Registry {
	r := registry.New()
	if err := game.RegisterAll(r); err != nil {
		panic(err)
	}
	r.Freeze()
	return r
}

// QuietConfig returns a default config that discards log output.
func QuietConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.LogFile = io.Discard
	return cfg
}

// ParseStringCases parses test file text, with or without a version
// command, and returns every case.
func ParseStringCases(input string) ([]*gamecase.Case, error) {
	p, err := parser.FromString(input, NewRegistry(), QuietConfig())
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ParseAll()
}

// MustParseString parses test file text and returns every case.
// It calls t.Fatal if parsing fails or no cases are found. The cases are
// cleaned up when the test ends.
func MustParseString(t *testing.T, input string) []*gamecase.Case {
	t.Helper()
	cases, err := ParseStringCases(input)
	if err != nil {
		t.Fatalf("failed to parse test cases: %v\n%s", err, input)
	}
	if len(cases) == 0 {
		t.Fatalf("no test cases in:\n%s", input)
	}
	t.Cleanup(func() { CleanupAll(cases) })
	return cases
}

// CleanupAll disposes of every case that still owns its games.
func CleanupAll(cases []*gamecase.Case) {
	for _, c := range cases {
		if c != nil && !c.Disposed() {
			c.Cleanup()
		}
	}
}
