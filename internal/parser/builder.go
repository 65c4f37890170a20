package parser

import (
	"strings"

	"github.com/lgbarn/cgtcase/internal/game"
	"github.com/lgbarn/cgtcase/internal/gamecase"
	"github.com/lgbarn/cgtcase/internal/hashing"
)

// caseBuilder accumulates games and comments until a run command turns them
// into cases.
type caseBuilder struct {
	games    []game.Game
	hash     hashing.TextHash // Over the games only; each case adds its command
	comments [MaxCases][]string
}

// addGame appends g, parsed from interior in section.
func (b *caseBuilder) addGame(section, interior string, g game.Game) {
	b.games = append(b.games, g)
	b.hash.Update(section + interior)
}

// addComment attaches text to case k, or to every case when k < 0.
func (b *caseBuilder) addComment(k int, text string) {
	if k >= 0 {
		b.comments[k] = append(b.comments[k], text)
		return
	}
	for i := range b.comments {
		b.comments[i] = append(b.comments[i], text)
	}
}

// pending returns the number of games waiting for a run command.
func (b *caseBuilder) pending() int {
	return len(b.games)
}

// build finalizes one case per command and resets the builder. The first
// case takes the accumulated games; the others get clones.
func (b *caseBuilder) build(cmds []gamecase.RunCommand, source string, line int) []*gamecase.Case {
	cases := make([]*gamecase.Case, len(cmds))
	for i, rc := range cmds {
		games := b.games
		if i > 0 {
			games = cloneGames(b.games)
		}

		h := b.hash
		h.Update("PLAYER" + rc.String())

		cases[i] = &gamecase.Case{
			Command:  rc,
			Games:    games,
			Comments: strings.Join(b.comments[i], " "),
			Hash:     h.Sum(),
			Source:   source,
			Line:     line,
			Index:    i,
		}
	}

	b.games = nil
	b.hash.Reset()
	b.comments = [MaxCases][]string{}
	return cases
}

// reset drops everything accumulated.
func (b *caseBuilder) reset() {
	for i := range b.games {
		b.games[i] = nil
	}
	b.games = nil
	b.hash.Reset()
	b.comments = [MaxCases][]string{}
}

func cloneGames(games []game.Game) []game.Game {
	if games == nil {
		return nil
	}
	clones := make([]game.Game, len(games))
	for i, g := range games {
		clones[i] = g.Clone()
	}
	return clones
}
