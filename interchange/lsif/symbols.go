package lsif

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// item is a symbol as written: a label and its raw parameters.
type item struct {
	label  string
	params []string
}

// scanSymbols splits "F(1, 2)+F" into its items.
func scanSymbols(s string) ([]item, error) {
	var items []item
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && width <= 1 {
			return nil, errors.Errorf("invalid UTF-8 at offset %d in %q", i, s)
		}
		if unicode.IsSpace(r) {
			i += width
			continue
		}
		if r == '(' || r == ')' || r == ',' {
			return nil, errors.Errorf("unexpected %q at offset %d in %q", r, i, s)
		}

		it := item{label: string(r)}
		i += width

		if i < len(s) && s[i] == '(' {
			params, n, err := scanParams(s[i:])
			if err != nil {
				return nil, errors.Wrapf(err, "symbol %s at offset %d in %q", it.label, i-width, s)
			}
			it.params = params
			i += n
		}
		items = append(items, it)
	}
	return items, nil
}

// scanParams reads "(a, (b + c) * 2)" at the start of s, returning the parameters and the length read.
func scanParams(s string) ([]string, int, error) {
	var params []string
	depth, start := 0, 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				last := strings.TrimSpace(s[start:i])
				if last == "" && len(params) > 0 {
					return nil, 0, errors.New("empty parameter")
				}
				if last != "" {
					params = append(params, last)
				}
				return params, i + 1, nil
			}
		case ',':
			if depth == 1 {
				param := strings.TrimSpace(s[start:i])
				if param == "" {
					return nil, 0, errors.New("empty parameter")
				}
				params = append(params, param)
				start = i + 1
			}
		}
	}
	return nil, 0, errors.New("missing closing parenthesis")
}
