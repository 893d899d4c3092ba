package input

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds a single command line in bytes.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides DefaultMaxInputSize.
	EnvMaxInputSize = "INTERCHANGE_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
	ErrMultiLine     = errors.New("input spans more than one line")
)

// Sanitize turns raw input into a single command line ready for Split.
//
// One trailing line ending is dropped; a line break anywhere else is
// rejected with ErrMultiLine. Oversized lines are rejected, never cut short.
// Tabs survive as token separators. Other control and formatting characters,
// such as terminal escapes or bidi overrides, are removed.
func Sanitize(line string) (string, error) {
	if limit := maxInputSize(); len(line) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(line), limit)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if at := strings.IndexAny(line, "\r\n"); at >= 0 {
		return "", fmt.Errorf("%w: line break at byte %d", ErrMultiLine, at)
	}
	if strings.IndexFunc(line, discarded) < 0 {
		return line, nil
	}
	return strings.Map(func(r rune) rune {
		if discarded(r) {
			return -1
		}
		return r
	}, line), nil
}

func discarded(r rune) bool {
	if r == '\t' {
		return false
	}
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}

func maxInputSize() int {
	v, ok := os.LookupEnv(EnvMaxInputSize)
	if !ok {
		return DefaultMaxInputSize
	}
	size, err := strconv.Atoi(v)
	if err != nil || size <= 0 {
		return DefaultMaxInputSize
	}
	return size
}
