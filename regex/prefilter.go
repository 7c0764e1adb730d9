package regex

import (
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/magnetde/starlark-turtle/syntax"
	"github.com/magnetde/starlark-turtle/util"
)

// prefilter finds the offsets, at which a match of a pattern may start.
// Every match of the pattern begins with one of the prefix strings, so all other offsets can be skipped.
type prefilter struct {
	auto     *ahocorasick.Automaton
	prefixes []string
}

// newPrefilter builds a prefilter from the leading characters of the root sequence.
// It returns nil, if the pattern does not start with a fixed set of strings.
func newPrefilter(root *syntax.Sequence) *prefilter {
	prefixes := leadingStrings(root)
	if len(prefixes) == 0 {
		return nil
	}

	builder := ahocorasick.NewBuilder()
	for _, p := range prefixes {
		builder.AddPattern([]byte(p))
	}

	auto, err := builder.Build()
	if err != nil {
		return nil
	}

	return &prefilter{
		auto:     auto,
		prefixes: prefixes,
	}
}

// leadingStrings returns the cross product of the leading literals and literal alternations of the root.
// A leading repetition, that must occur at least once, contributes the characters of its child and ends the prefixes.
// All returned strings have the same length in bytes, so the leftmost occurrence found by the automaton
// is also the leftmost possible start of a match.
func leadingStrings(root *syntax.Sequence) []string {
	prefixes := []string{""}

	for _, n := range root.Children {
		chars, last := leadingChars(n)
		if len(chars) == 0 || len(prefixes)*len(chars) > maxPrefilterLiterals {
			break
		}

		next := make([]string, 0, len(prefixes)*len(chars))
		for _, p := range prefixes {
			for _, c := range chars {
				next = append(next, p+string(c))
			}
		}

		prefixes = next

		if last {
			break
		}
	}

	if prefixes[0] == "" {
		return nil
	}

	return prefixes
}

// leadingChars returns the characters, one of which a match of n must start with.
// The second return value is true if the characters following n are unknown.
func leadingChars(n syntax.Node) ([]rune, bool) {
	switch t := n.(type) {
	case *syntax.Literal:
		return []rune{t.Char}, false
	case *syntax.Alternation:
		return alternationChars(t), false
	case *syntax.Repeat:
		if t.Min >= 1 {
			chars, _ := leadingChars(t.Child)
			return chars, true
		}
	}

	return nil, false
}

// alternationChars returns the characters of an alternation, that consists only of literals
// with the same encoded length. Otherwise nil is returned.
func alternationChars(a *syntax.Alternation) []rune {
	chars := make([]rune, 0, len(a.Children))

	for _, c := range a.Children {
		l, ok := c.(*syntax.Literal)
		if !ok || !utf8.ValidRune(l.Char) {
			return nil
		}
		if len(chars) > 0 && utf8.RuneLen(l.Char) != utf8.RuneLen(chars[0]) {
			return nil
		}

		chars = append(chars, l.Char)
	}

	return chars
}

// next returns the character offset of the next candidate start at or after the character offset `at`.
// If no candidate exists, -1 is returned. `haystack` must be valid UTF-8.
func (p *prefilter) next(haystack []byte, offs util.Offsets, at int) int {
	b := offs.Byte(at)
	if b >= len(haystack) {
		return -1
	}

	m := p.auto.Find(haystack, b)
	if m == nil || m.Start < b {
		return -1
	}

	return offs.Rune(m.Start)
}
