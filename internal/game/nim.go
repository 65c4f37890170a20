package game

import (
	"fmt"
	"strconv"
	"strings"
)

// NimGame is a sum of nim heaps.
type NimGame struct {
	Heaps []int
}

// ParseNim parses whitespace or comma separated non-negative heap sizes.
func ParseNim(token string) (Game, error) {
	f := fields(token)
	if len(f) == 0 {
		return nil, fmt.Errorf("nim: no heaps")
	}
	heaps := make([]int, 0, len(f))
	for _, s := range f {
		v, err := parseInt(s)
		if err != nil {
			return nil, fmt.Errorf("nim: %w", err)
		}
		if v < 0 {
			return nil, fmt.Errorf("nim: negative heap %d", v)
		}
		heaps = append(heaps, v)
	}
	return &NimGame{Heaps: heaps}, nil
}

func (n *NimGame) Family() string { return Nim }

func (n *NimGame) String() string {
	parts := make([]string, len(n.Heaps))
	for i, h := range n.Heaps {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, " ")
}

// Clone returns a deep copy.
func (n *NimGame) Clone() Game {
	heaps := make([]int, len(n.Heaps))
	copy(heaps, n.Heaps)
	return &NimGame{Heaps: heaps}
}
