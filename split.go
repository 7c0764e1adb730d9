package turtle

import "go.starlark.net/starlark"

// split splits `s` at all occurrences of pattern `p`. See also `turtleSplit`.
func split(p *Pattern, s string, maxSplit int) *starlark.List {
	var list []starlark.Value

	beg := 0

	findMatches(p, s, maxSplit, func(start, end int) bool {
		list = append(list, starlark.String(s[beg:start]))

		beg = end
		return true
	})

	// Append even if empty
	list = append(list, starlark.String(s[beg:]))

	return starlark.NewList(list)
}
