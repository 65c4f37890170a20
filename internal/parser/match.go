package parser

import "strings"

// Expand grows start across the following tokens until the accumulated
// text, with tokens joined by single spaces, is a complete d.Open ... d.Close
// construct or can no longer become one.
//
// For example "(1", "5", "3)" expands as "(1", "(1 5", "(1 5 3)" and is
// accepted. "(1 5 3)[nim]" is not, because "[" and "]" end up inside it.
//
// Expand pulls tokens with lex.Next but never consumes or rewinds; that is
// left to the caller. The returned error is a read error from the lexer.
func Expand(lex *Lexer, start Token, d Delims) (string, MatchState, error) {
	text := start.Text
	state := advanceMatch(MatchUnknown, text, d)

	for !state.Conclusive() {
		tok, ok := lex.Next()
		if !ok {
			break
		}
		text += " " + tok.Text
		state = advanceMatch(state, text, d)
	}

	if err := lex.Err(); err != nil {
		return text, MatchIllegal, err
	}

	switch state {
	case MatchStart:
		// Input ended inside the construct.
		state = MatchIllegal
	case MatchUnknown:
		state = MatchNotFound
	}
	return text, state, nil
}

// advanceMatch moves state forward given the accumulated text.
func advanceMatch(state MatchState, text string, d Delims) MatchState {
	switch state {
	case MatchUnknown:
		if len(text) < len(d.Open) {
			return MatchUnknown
		}
		if !strings.HasPrefix(text, d.Open) {
			return MatchNotFound
		}
		return advanceMatch(MatchStart, text, d)

	case MatchStart:
		if len(text) >= len(d.Open)+len(d.Close) && strings.HasSuffix(text, d.Close) {
			if !d.AllowInner && d.hasInnerReserved(text) {
				return MatchIllegal
			}
			return MatchFull
		}
	}
	return state
}
