package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	cgterrors "github.com/lgbarn/cgtcase/internal/errors"
)

// Lexer splits input into whitespace delimited tokens.
//
// Tokens read from the source are kept in a buffer until Consume is called,
// so a caller can look ahead any number of tokens and then Rewind to
// observe the same tokens again.
type Lexer struct {
	reader  *bufio.Reader
	fields  []string // Unread fields of the current line
	lineNum int
	eof     bool
	err     error

	buffer []Token
	idx    int // Next buffered token to return
	line   int // Line of the last token returned
}

// NewLexer creates a new lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// Next returns the next token. It returns false at the end of input or after
// a read error; check Err to tell them apart.
func (l *Lexer) Next() (Token, bool) {
	if l.idx < len(l.buffer) {
		t := l.buffer[l.idx]
		l.idx++
		l.line = t.Line
		return t, true
	}

	t, ok := l.readToken()
	if !ok {
		return Token{}, false
	}
	l.buffer = append(l.buffer, t)
	l.idx++
	l.line = t.Line
	return t, true
}

// Rewind makes Next return the buffered tokens again, starting with the
// oldest one not yet consumed.
func (l *Lexer) Rewind() {
	l.idx = 0
}

// Consume discards every token returned by Next since the last Consume.
func (l *Lexer) Consume() {
	n := copy(l.buffer, l.buffer[l.idx:])
	l.buffer = l.buffer[:n]
	l.idx = 0
}

// Buffered returns the number of tokens read but not consumed.
func (l *Lexer) Buffered() int {
	return len(l.buffer)
}

// LineNumber returns the line of the last token returned by Next.
func (l *Lexer) LineNumber() int {
	return l.line
}

// Err returns the first read error other than io.EOF. It wraps ErrIO.
func (l *Lexer) Err() error {
	return l.err
}

// readToken returns the next token from the source, skipping blank lines.
func (l *Lexer) readToken() (Token, bool) {
	for len(l.fields) == 0 {
		if !l.readLine() {
			return Token{}, false
		}
	}
	t := Token{Text: l.fields[0], Line: l.lineNum}
	l.fields = l.fields[1:]
	return t, true
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		l.eof = true
		if err != io.EOF {
			l.err = fmt.Errorf("%w: %v", cgterrors.ErrIO, err)
			return false
		}
		if len(line) == 0 {
			return false
		}
	}
	l.lineNum++
	l.fields = strings.Fields(line)
	return true
}
