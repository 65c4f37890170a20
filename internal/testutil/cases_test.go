package testutil

import (
	"testing"

	cgterrors "github.com/lgbarn/cgtcase/internal/errors"
	"github.com/lgbarn/cgtcase/internal/game"
)

func TestMustParseString(t *testing.T) {
	cases := MustParseString(t, "[nim] (1 2) {B win, W}")
	AssertEqual(t, len(cases), 2)
	AssertEqual(t, cases[0].Games[0].Family(), game.Nim)
	AssertEqual(t, cases[1].Command.Player.String(), "W")
}

func TestParseStringCases_Error(t *testing.T) {
	cases, err := ParseStringCases("(5)")
	AssertErrorIs(t, err, cgterrors.ErrMissingSectionTitle)
	AssertErrorClass(t, err, cgterrors.ClassStructural)
	AssertEqual(t, len(cases), 0)
}

func TestCleanupAll(t *testing.T) {
	cases, err := ParseStringCases("[nim] 3 {B, W} [nim] 4 {N}")
	AssertNoError(t, err)

	games := cases[0].Release()
	AssertEqual(t, len(games), 1)

	CleanupAll(cases)
	for i, c := range cases {
		if !c.Disposed() {
			t.Errorf("case %d not disposed", i)
		}
	}
	CleanupAll(nil)
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if !r.Frozen() {
		t.Error("registry should be frozen")
	}
	if _, ok := r.Lookup(game.UpStar); !ok {
		t.Error("up_star not registered")
	}
}
