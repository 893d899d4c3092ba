package input

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned by Split when a quote is left open.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Split breaks a command line into tokens.
// Whitespace separates tokens unless quoted with ' or ". Inside quotes a
// backslash escapes a quote or another backslash. A quoted empty string ("")
// yields an empty token.
func Split(line string) ([]string, error) {
	tokens, _, open := split(line)
	if open {
		return nil, ErrUnterminatedQuote
	}
	return tokens, nil
}

// SplitForCompletion splits a partially typed line. The last token is the one
// being completed: an empty token is appended when the line is empty or ends
// in unquoted whitespace. An open quote is tolerated.
func SplitForCompletion(line string) []string {
	tokens, trailing, _ := split(line)
	if trailing || len(tokens) == 0 {
		tokens = append(tokens, "")
	}
	return tokens
}

// split returns the tokens, whether the line ended outside a token, and
// whether a quote was left open.
func split(line string) (tokens []string, trailing bool, open bool) {
	var current strings.Builder
	var quote rune
	started := false
	escaped := false

	flush := func() {
		if started {
			tokens = append(tokens, current.String())
			current.Reset()
			started = false
		}
	}

	for _, r := range line {
		switch {
		case escaped:
			if r != '"' && r != '\'' && r != '\\' {
				current.WriteRune('\\')
			}
			current.WriteRune(r)
			escaped = false
		case quote != 0 && r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			started = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	trailing = !started && quote == 0 && len(line) > 0
	open = quote != 0
	flush()
	return tokens, trailing, open
}
