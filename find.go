package turtle

import "go.starlark.net/starlark"

// findMatches calls deliver for the first n non-overlapping matches of the pattern in s,
// with the byte offsets of each match. If n is zero or negative, all matches are delivered.
// If deliver returns false, the iteration stops.
func findMatches(p *Pattern, s string, n int, deliver func(start, end int) bool) {
	spans := p.re.SearchIndex(s)
	if n > 0 && n < len(spans) {
		spans = spans[:n]
	}

	for _, m := range spans {
		if !deliver(m.Start, m.End) {
			return
		}
	}
}

// search returns a list of `Match` objects for all matches of `p` in `s`. See also `turtleSearch`.
func search(p *Pattern, s string) *starlark.List {
	var l []starlark.Value

	findMatches(p, s, 0, func(start, end int) bool {
		l = append(l, &Match{pattern: p, str: s, start: start, end: end})
		return true
	})

	return starlark.NewList(l)
}

// findall returns the matched strings of all matches of `p` in `s`. See also `turtleFindall`.
func findall(p *Pattern, s string) *starlark.List {
	var l []starlark.Value

	findMatches(p, s, 0, func(start, end int) bool {
		l = append(l, starlark.String(s[start:end]))
		return true
	})

	return starlark.NewList(l)
}
