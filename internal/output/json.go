package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/cgtcase/internal/config"
	"github.com/lgbarn/cgtcase/internal/gamecase"
)

// JSONCase represents a game case in JSON format.
type JSONCase struct {
	Source   string     `json:"source,omitempty"`
	Line     int        `json:"line,omitempty"`
	Index    int        `json:"index"`
	Command  string     `json:"command"`
	Player   string     `json:"player"`
	Outcome  string     `json:"outcome,omitempty"`
	Nimber   *int       `json:"nimber,omitempty"`
	Games    []JSONGame `json:"games"`
	Comments string     `json:"comments,omitempty"`
	Hash     string     `json:"hash,omitempty"`
}

// JSONGame represents one game of a case.
type JSONGame struct {
	Family string `json:"family"`
	Value  string `json:"value"`
}

// JSONOutput holds multiple cases for array output.
type JSONOutput struct {
	Cases []*JSONCase `json:"cases"`
}

// CaseToJSON converts a game case to JSON format.
func CaseToJSON(c *gamecase.Case, cfg *config.Config) *JSONCase {
	jc := &JSONCase{
		Source:  c.Source,
		Line:    c.Line,
		Index:   c.Index,
		Command: c.Command.String(),
		Player:  c.Command.Player.String(),
		Games:   make([]JSONGame, 0, len(c.Games)),
	}

	switch c.Command.Outcome {
	case gamecase.Unspecified:
	case gamecase.NimberValue:
		n := c.Command.Nimber
		jc.Outcome = "nimber"
		jc.Nimber = &n
	default:
		jc.Outcome = strings.ToLower(c.Command.Outcome.String())
	}

	for _, g := range c.Games {
		jc.Games = append(jc.Games, JSONGame{Family: g.Family(), Value: g.String()})
	}

	if cfg.Output.IncludeComments {
		jc.Comments = c.Comments
	}
	if cfg.Output.IncludeHash {
		jc.Hash = c.Hash
	}
	return jc
}

// OutputCasesJSON outputs multiple cases as a JSON array.
func OutputCasesJSON(cases []*gamecase.Case, cfg *config.Config, w io.Writer) error {
	out := &JSONOutput{Cases: make([]*JSONCase, len(cases))}
	for i, c := range cases {
		out.Cases[i] = CaseToJSON(c, cfg)
	}
	return encodeJSON(w, out)
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
