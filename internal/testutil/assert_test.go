package testutil

import (
	"fmt"
	"testing"

	cgterrors "github.com/lgbarn/cgtcase/internal/errors"
)

// A failing assertion would fail this test, so only passing calls are made
// here; the message formatting is checked directly.

func TestAssertions_Pass(t *testing.T) {
	AssertEqual(t, []string{"nim", "up_star"}, []string{"nim", "up_star"})
	AssertEqual(t, 3, 3, "heap %d", 3)
	AssertNoError(t, nil)
	AssertContains(t, "{B win}", "win")
	AssertContains(t, "{B}", "")
	AssertNotContains(t, "{B win}", "loss")
}

func TestAssertErrors_Pass(t *testing.T) {
	err := fmt.Errorf("line 3: %w", cgterrors.ErrFailedMatch)
	AssertErrorIs(t, err, cgterrors.ErrFailedMatch)
	AssertErrorIs(t, nil, nil)
	AssertErrorClass(t, err, cgterrors.ClassLexical, "class of %q", err)
	AssertErrorClass(t, nil, cgterrors.ClassUnknown)
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		args []interface{}
		want string
	}{
		{nil, ""},
		{[]interface{}{"case 2"}, "case 2: "},
		{[]interface{}{7}, "7: "},
		{[]interface{}{"case %d of %s", 1, "a.test"}, "case 1 of a.test: "},
		{[]interface{}{""}, ""},
	}

	for _, tt := range tests {
		if got := prefix(tt.args...); got != tt.want {
			t.Errorf("prefix(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
