package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/cgtcase/internal/config"
	cgterrors "github.com/lgbarn/cgtcase/internal/errors"
	"github.com/lgbarn/cgtcase/internal/gamecase"
	"github.com/lgbarn/cgtcase/internal/registry"
)

// Source names used in diagnostics for inputs without a path.
const (
	StdinName  = "stdin"
	StringName = "string"
)

// FileParser turns a test file into game cases, one ParseChunk call at a
// time. A FileParser is not safe for concurrent use; separate parsers share
// nothing but their frozen registry.
type FileParser struct {
	lex    *Lexer
	reg    *registry.Registry
	cfg    *config.Config
	name   string
	closer io.Closer // Set only when the parser owns its source

	needVersion   bool
	warnedVersion bool
	section       string
	line          int // Line of the token that started the current construct
	builder       caseBuilder

	pending []*gamecase.Case
	last    *gamecase.Case // Most recently returned case
	err     error          // Sticky failure
	done    bool
}

// FromFile opens path and returns a parser that owns the file. The file must
// start with a version command.
// A nil reg uses registry.Default(); a nil cfg uses config.NewConfig().
func FromFile(path string, reg *registry.Registry, cfg *config.Config) (*FileParser, error) {
	reg, err := resolveRegistry(reg)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cgterrors.ErrIO, err)
	}
	p := newFileParser(f, path, true, reg, cfg)
	p.closer = f
	return p, nil
}

// FromReader returns a parser over r, which must start with a version
// command. The parser never closes r.
func FromReader(r io.Reader, name string, reg *registry.Registry, cfg *config.Config) (*FileParser, error) {
	reg, err := resolveRegistry(reg)
	if err != nil {
		return nil, err
	}
	return newFileParser(r, name, true, reg, cfg), nil
}

// FromStdin returns a parser over standard input.
func FromStdin(reg *registry.Registry, cfg *config.Config) (*FileParser, error) {
	return FromReader(os.Stdin, StdinName, reg, cfg)
}

// FromString returns a parser over s. A version command is optional, but is
// still checked when present.
func FromString(s string, reg *registry.Registry, cfg *config.Config) (*FileParser, error) {
	reg, err := resolveRegistry(reg)
	if err != nil {
		return nil, err
	}
	return newFileParser(strings.NewReader(s), StringName, false, reg, cfg), nil
}

func resolveRegistry(reg *registry.Registry) (*registry.Registry, error) {
	if reg != nil {
		return reg, nil
	}
	if reg = registry.Default(); reg == nil {
		return nil, cgterrors.ErrRegistryNotInitialized
	}
	return reg, nil
}

func newFileParser(r io.Reader, name string, needVersion bool, reg *registry.Registry, cfg *config.Config) *FileParser {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &FileParser{
		lex:         NewLexer(r),
		reg:         reg,
		cfg:         cfg,
		name:        name,
		needVersion: needVersion,
	}
}

// Name returns the source name used in errors.
func (p *FileParser) Name() string {
	return p.name
}

// WarnedWrongVersion reports whether a version command named a version other
// than config.ExpectedVersion.
func (p *FileParser) WarnedWrongVersion() bool {
	return p.warnedVersion
}

// ParseChunk returns the next game case, or nil when the input holds no more
// cases. The previously returned case must be released or cleaned up before
// calling ParseChunk again.
//
// Once ParseChunk fails, every later call returns the same error.
func (p *FileParser) ParseChunk() (*gamecase.Case, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.last != nil && !p.last.Disposed() {
		return nil, fmt.Errorf("%s: %w", p.last.Location(), cgterrors.ErrCallerContract)
	}
	p.last = nil

	if len(p.pending) > 0 {
		return p.next(), nil
	}
	if p.done {
		return nil, nil
	}

	for {
		tok, ok := p.lex.Next()
		if !ok {
			break
		}
		p.lex.Consume()
		p.line = tok.Line

		if p.needVersion {
			if err := p.readPreamble(tok); err != nil {
				return nil, p.fail(err)
			}
			continue
		}

		emitted, err := p.dispatch(tok)
		if err != nil {
			return nil, p.fail(err)
		}
		if emitted {
			return p.next(), nil
		}
	}

	if err := p.lex.Err(); err != nil {
		return nil, p.fail(p.errorf(err, "", ""))
	}
	if p.needVersion {
		return nil, p.fail(p.errorf(cgterrors.ErrMissingVersion, "", "at end of input"))
	}

	p.done = true
	if n := p.builder.pending(); n > 0 {
		p.cfg.Warnf("%s: dropping %d game(s) after the last run command", p.name, n)
		p.builder.reset()
	}
	return nil, nil
}

// ParseAll returns every remaining case. The caller owns the returned cases.
func (p *FileParser) ParseAll() ([]*gamecase.Case, error) {
	var cases []*gamecase.Case
	for {
		c, err := p.ParseChunk()
		if err != nil {
			return cases, err
		}
		if c == nil {
			return cases, nil
		}
		// Ownership moves to the slice.
		p.last = nil
		cases = append(cases, c)
	}
}

// Close discards any undelivered cases and closes the source if the parser
// opened it.
func (p *FileParser) Close() error {
	for _, c := range p.pending {
		c.Cleanup()
	}
	p.pending = nil
	p.builder.reset()
	p.done = true

	if p.closer == nil {
		return nil
	}
	err := p.closer.Close()
	p.closer = nil
	return err
}

// next pops the first pending case.
func (p *FileParser) next() *gamecase.Case {
	c := p.pending[0]
	p.pending[0] = nil
	p.pending = p.pending[1:]
	p.last = c
	return c
}

// fail records err as the sticky error and drops all partial state.
func (p *FileParser) fail(err error) error {
	p.err = err
	for _, c := range p.pending {
		c.Cleanup()
	}
	p.pending = nil
	p.builder.reset()
	return err
}

func (p *FileParser) errorf(err error, token, detail string) error {
	return &cgterrors.ParseError{
		Err:    err,
		File:   p.name,
		Line:   p.line,
		Token:  token,
		Detail: detail,
	}
}

// match expands tok with d. On a full match the tokens used are consumed and
// the interior is returned. Otherwise the lexer is rewound to just after tok
// and the unmatched text is returned.
func (p *FileParser) match(tok Token, d Delims) (string, MatchState, error) {
	text, state, err := Expand(p.lex, tok, d)
	if err != nil {
		return text, state, p.errorf(err, tok.Text, "")
	}
	if state != MatchFull {
		p.lex.Rewind()
		return text, state, nil
	}

	p.cfg.Debugf("Got %s: %s", d.Name, text)
	p.lex.Consume()
	return d.Strip(text), state, nil
}

// readPreamble requires tok to start a version command.
func (p *FileParser) readPreamble(tok Token) error {
	interior, state, err := p.match(tok, CommandDelims)
	if err != nil {
		return err
	}
	if state != MatchFull || !isVersionCommand(interior) {
		return p.errorf(cgterrors.ErrMissingVersion, tok.Text, "")
	}
	p.needVersion = false
	return p.checkVersion(interior)
}

// checkVersion compares a version command with config.ExpectedVersion.
func (p *FileParser) checkVersion(interior string) error {
	got := normalizeSpace(interior)
	if got == config.ExpectedVersion {
		return nil
	}

	p.warnedVersion = true
	if p.cfg.StrictVersion {
		return p.errorf(cgterrors.ErrWrongVersion, got, fmt.Sprintf("(expected %q)", config.ExpectedVersion))
	}
	p.cfg.Warnf("%s:%d: parser version mismatch. Expected %q, got: %q", p.name, p.line, config.ExpectedVersion, got)
	return nil
}

// dispatch handles one construct. It reports whether cases were emitted.
func (p *FileParser) dispatch(tok Token) (bool, error) {
	switch tok.Text[0] {
	case '{':
		return p.readCommand(tok)
	case '[':
		return false, p.readTitle(tok)
	case '(':
		return false, p.readGameToken(tok)
	case '/':
		p.readComment(tok)
		return false, nil
	default:
		p.cfg.Debugf("Got simple token: %s", tok.Text)
		return false, p.addGame(tok.Text, tok.Text)
	}
}

func (p *FileParser) readCommand(tok Token) (bool, error) {
	interior, state, err := p.match(tok, CommandDelims)
	if err != nil {
		return false, err
	}
	if state != MatchFull {
		return false, p.errorf(cgterrors.ErrFailedMatch, interior, CommandDelims.Name)
	}

	if isVersionCommand(interior) {
		return false, p.checkVersion(interior)
	}

	cmds, err := ParseRunCommand(interior)
	if err != nil {
		return false, p.errorf(err, interior, "")
	}

	p.pending = append(p.pending, p.builder.build(cmds, p.name, p.line)...)
	p.section = ""
	return true, nil
}

func (p *FileParser) readTitle(tok Token) error {
	interior, state, err := p.match(tok, TitleDelims)
	if err != nil {
		return err
	}
	if state != MatchFull {
		return p.errorf(cgterrors.ErrFailedMatch, interior, TitleDelims.Name)
	}
	p.section = strings.TrimSpace(interior)
	return nil
}

func (p *FileParser) readGameToken(tok Token) error {
	interior, state, err := p.match(tok, GameDelims)
	if err != nil {
		return err
	}
	if state != MatchFull {
		return p.errorf(cgterrors.ErrFailedMatch, interior, GameDelims.Name)
	}
	return p.addGame(strings.TrimSpace(interior), "("+interior+")")
}

// addGame parses interior with the current section's parser. text is the
// construct as written, for diagnostics.
func (p *FileParser) addGame(interior, text string) error {
	if p.section == "" {
		return p.errorf(cgterrors.ErrMissingSectionTitle, text, "")
	}
	parse, ok := p.reg.Lookup(p.section)
	if !ok {
		return p.errorf(cgterrors.ErrMissingSectionParser, text, fmt.Sprintf("%q", p.section))
	}

	g, err := parse(interior)
	if err != nil {
		return p.errorf(cgterrors.ErrGameTokenParse, text, fmt.Sprintf("in section %q (%v)", p.section, err))
	}
	p.builder.addGame(p.section, interior, g)
	return nil
}

// readComment attaches a comment to the pending cases. Comments never stop
// parsing: problems are logged and the comment is dropped.
func (p *FileParser) readComment(tok Token) {
	interior, state, err := p.match(tok, CommentDelims)
	if err != nil {
		// Read errors resurface from the next call to the lexer.
		return
	}
	if state != MatchFull {
		p.cfg.Warnf("%s:%d: unclosed comment starting with %q, skipping it", p.name, p.line, tok.Text)
		return
	}

	text := strings.TrimSpace(interior)
	if text == "" || text[0] == '_' {
		return
	}
	if text[0] != '#' {
		p.builder.addComment(-1, text)
		return
	}

	k, rest, ok := caseComment(text)
	if !ok {
		p.cfg.Warnf("%v", p.errorf(cgterrors.ErrMalformedComment, text, "(want \"#<case> text\")"))
		return
	}
	if rest != "" {
		p.builder.addComment(k, rest)
	}
}

// caseComment splits "#k text" into the case index k and the text.
func caseComment(text string) (int, string, bool) {
	if len(text) < 2 || text[1] < '0' || text[1] >= '0'+MaxCases {
		return 0, "", false
	}
	if len(text) > 2 && text[2] != ' ' {
		return 0, "", false
	}
	return int(text[1] - '0'), strings.TrimSpace(text[2:]), true
}
