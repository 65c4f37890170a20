package game

import "fmt"

// Board cell characters shared by all 1xn strip games.
const (
	BlackStone = 'X'
	WhiteStone = 'O'
	EmptyCell  = '.'
)

// Strip is a 1xn board game: clobber_1xn, nogo_1xn or elephants.
type Strip struct {
	family string
	board  []byte
}

// NewStrip validates board and returns a strip game of the given family.
func NewStrip(family, board string) (*Strip, error) {
	if board == "" {
		return nil, fmt.Errorf("%s: empty board", family)
	}
	cells := make([]byte, len(board))
	for i := 0; i < len(board); i++ {
		switch c := board[i]; c {
		case BlackStone, WhiteStone, EmptyCell:
			cells[i] = c
		default:
			return nil, fmt.Errorf("%s: invalid board character %q at %d", family, c, i)
		}
	}
	return &Strip{family: family, board: cells}, nil
}

func stripParser(family string) ParseFunc {
	return func(token string) (Game, error) {
		f := fields(token)
		if len(f) != 1 {
			return nil, fmt.Errorf("%s: expected one board, got %d", family, len(f))
		}
		s, err := NewStrip(family, f[0])
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Family returns the strip's family name.
func (s *Strip) Family() string { return s.family }

// String returns the board text.
func (s *Strip) String() string { return string(s.board) }

// Len returns the number of cells.
func (s *Strip) Len() int { return len(s.board) }

// At returns the cell at i.
func (s *Strip) At(i int) byte { return s.board[i] }

// Set replaces the cell at i. Used by solvers when playing moves.
func (s *Strip) Set(i int, c byte) { s.board[i] = c }

// Clone returns a deep copy.
func (s *Strip) Clone() Game {
	board := make([]byte, len(s.board))
	copy(board, s.board)
	return &Strip{family: s.family, board: board}
}
