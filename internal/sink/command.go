package sink

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrEmptyCommand is returned when a command template has no program
	ErrEmptyCommand = errors.New("empty command")
	// ErrUnterminatedQuote is returned when a quote is not closed
	ErrUnterminatedQuote = errors.New("unterminated quote")
)

// ParseCommand splits a command template into arguments. Single and double
// quotes group words, a backslash escapes the next character, \n and \t
// produce a newline and a tab. Inside single quotes everything is literal.
func ParseCommand(s string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inWord  bool
		single  bool
		double  bool
		escape  bool
	)

	for _, r := range s {
		switch {
		case escape:
			switch r {
			case 'n':
				current.WriteRune('\n')
			case 't':
				current.WriteRune('\t')
			default:
				current.WriteRune(r)
			}
			escape = false
			inWord = true
		case single:
			if r == '\'' {
				single = false
			} else {
				current.WriteRune(r)
			}
		case r == '\\':
			escape = true
		case r == '\'' && !double:
			single = true
			inWord = true
		case r == '"':
			double = !double
			inWord = true
		case unicode.IsSpace(r) && !double:
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if single || double {
		return nil, fmt.Errorf("%w in command %q", ErrUnterminatedQuote, s)
	}
	if escape {
		current.WriteRune('\\')
		inWord = true
	}
	if inWord {
		args = append(args, current.String())
	}
	if len(args) == 0 || args[0] == "" {
		return nil, ErrEmptyCommand
	}
	return args, nil
}
