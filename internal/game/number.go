package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Integer is an integer game.
type Integer struct {
	Value int
}

// ParseInteger parses exactly one integer.
func ParseInteger(token string) (Game, error) {
	v, err := singleInt(IntegerGame, token)
	if err != nil {
		return nil, err
	}
	return &Integer{Value: v}, nil
}

func (g *Integer) Family() string { return IntegerGame }
func (g *Integer) String() string { return strconv.Itoa(g.Value) }
func (g *Integer) Clone() Game    { c := *g; return &c }

// Nimber is the impartial game *n.
type Nimber struct {
	Value int
}

// ParseNimber parses exactly one non-negative integer.
func ParseNimber(token string) (Game, error) {
	v, err := singleInt(NimberGame, token)
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, fmt.Errorf("%s: negative value %d", NimberGame, v)
	}
	return &Nimber{Value: v}, nil
}

func (g *Nimber) Family() string { return NimberGame }
func (g *Nimber) String() string { return strconv.Itoa(g.Value) }
func (g *Nimber) Clone() Game    { c := *g; return &c }

func singleInt(family, token string) (int, error) {
	f := fields(token)
	if len(f) != 1 {
		return 0, fmt.Errorf("%s: expected one integer, got %d values", family, len(f))
	}
	v, err := parseInt(f[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", family, err)
	}
	return v, nil
}

// Fraction is p/q with q a positive power of two.
type Fraction struct {
	Num int
	Den int
}

// ParseFraction accepts "p" or "p/q".
func ParseFraction(s string) (Fraction, error) {
	num, den := s, "1"
	if i := strings.IndexByte(s, '/'); i >= 0 {
		num, den = s[:i], s[i+1:]
	}
	p, err := parseInt(num)
	if err != nil {
		return Fraction{}, err
	}
	q, err := parseInt(den)
	if err != nil {
		return Fraction{}, err
	}
	if q <= 0 || q&(q-1) != 0 {
		return Fraction{}, fmt.Errorf("denominator %d is not a positive power of 2", q)
	}
	return Fraction{Num: p, Den: q}.reduce(), nil
}

func (f Fraction) reduce() Fraction {
	for f.Den > 1 && f.Num%2 == 0 {
		f.Num /= 2
		f.Den /= 2
	}
	return f
}

func (f Fraction) String() string {
	if f.Den == 1 {
		return strconv.Itoa(f.Num)
	}
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

func parseFractions(family, token string, n int) ([]Fraction, error) {
	f := fields(token)
	if len(f) != n {
		return nil, fmt.Errorf("%s: expected %d fractions, got %d", family, n, len(f))
	}
	fracs := make([]Fraction, n)
	for i, s := range f {
		fr, err := ParseFraction(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", family, err)
		}
		fracs[i] = fr
	}
	return fracs, nil
}

// Dyadic is a dyadic rational number.
type Dyadic struct {
	Value Fraction
}

// ParseDyadicRational parses one fraction.
func ParseDyadicRational(token string) (Game, error) {
	fracs, err := parseFractions(DyadicRational, token, 1)
	if err != nil {
		return nil, err
	}
	return &Dyadic{Value: fracs[0]}, nil
}

func (g *Dyadic) Family() string { return DyadicRational }
func (g *Dyadic) String() string { return g.Value.String() }
func (g *Dyadic) Clone() Game    { c := *g; return &c }

// Switch is the game {Left | Right} of two numbers.
type Switch struct {
	Left  Fraction
	Right Fraction
}

// ParseSwitch parses two fractions.
func ParseSwitch(token string) (Game, error) {
	fracs, err := parseFractions(SwitchGame, token, 2)
	if err != nil {
		return nil, err
	}
	return &Switch{Left: fracs[0], Right: fracs[1]}, nil
}

func (g *Switch) Family() string { return SwitchGame }
func (g *Switch) Clone() Game    { c := *g; return &c }

// String joins the values with a comma so that fractions, whose '/' is
// reserved inside brackets, still form a single bare token.
func (g *Switch) String() string { return g.Left.String() + "," + g.Right.String() }

// UpStarGame is n.up plus an optional star.
type UpStarGame struct {
	Ups  int
	Star bool
}

// ParseUpStar accepts at most one integer and at most one "*", in any order.
func ParseUpStar(token string) (Game, error) {
	f := fields(token)
	if len(f) == 0 || len(f) > 2 {
		return nil, fmt.Errorf("%s: expected 1 or 2 values, got %d", UpStar, len(f))
	}

	g := &UpStarGame{}
	ints, stars := 0, 0
	for _, s := range f {
		if s == "*" {
			stars++
			g.Star = true
			continue
		}
		v, err := parseInt(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", UpStar, err)
		}
		ints++
		g.Ups = v
	}
	if ints > 1 || stars > 1 {
		return nil, fmt.Errorf("%s: at most one integer and one star allowed", UpStar)
	}
	return g, nil
}

func (g *UpStarGame) Family() string { return UpStar }

func (g *UpStarGame) String() string {
	switch {
	case g.Star && g.Ups == 0:
		return "*"
	case g.Star:
		return strconv.Itoa(g.Ups) + " *"
	default:
		return strconv.Itoa(g.Ups)
	}
}

func (g *UpStarGame) Clone() Game { c := *g; return &c }
