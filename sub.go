package turtle

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
)

type replacer interface {
	withMatch() bool
	replace(m *Match) (string, error)
}

// Replacer implementations

// Replacer for literal strings. Patterns have no capturing groups, so the string is inserted unchanged.
type literalReplacer string

// Replacer for functions
type functionReplacer func(m *Match) (string, error)

// Check if the types satisfy the replacer interface.
var (
	_ replacer = literalReplacer("")
	_ replacer = (functionReplacer)(nil)
)

func (r literalReplacer) withMatch() bool {
	return false
}

func (r literalReplacer) replace(_ *Match) (string, error) {
	return string(r), nil
}

func (r functionReplacer) withMatch() bool {
	return true
}

func (r functionReplacer) replace(m *Match) (string, error) {
	return r(m)
}

func getReplacer(thread *starlark.Thread, r starlark.Value) (replacer, error) {
	switch t := r.(type) {
	case starlark.String:
		return literalReplacer(t), nil
	case starlark.Callable:
		fn := func(m *Match) (string, error) {
			raw, err := starlark.Call(thread, t, starlark.Tuple{m}, nil)
			if err != nil {
				return "", err
			}

			res, ok := raw.(starlark.String)
			if !ok {
				return "", fmt.Errorf("got %s, want str", raw.Type())
			}

			return string(res), nil
		}

		return functionReplacer(fn), nil
	default:
		return nil, fmt.Errorf("got %s, want str or function", r.Type())
	}
}

// sub replaces the first `count` matches of `p` in `s`. See also `turtleSub`.
func sub(p *Pattern, r replacer, s string, count int) (starlark.Value, error) {
	var replaced strings.Builder
	var err error

	beg := 0

	findMatches(p, s, count, func(start, end int) bool {
		replaced.WriteString(s[beg:start])

		var m *Match
		if r.withMatch() {
			m = &Match{pattern: p, str: s, start: start, end: end}
		}

		repl, er := r.replace(m) // assign the outer error
		if er != nil {
			err = er
			return false
		}

		replaced.WriteString(repl)

		beg = end
		return true
	})
	if err != nil {
		return nil, err
	}

	replaced.WriteString(s[beg:])

	return starlark.String(replaced.String()), nil
}
