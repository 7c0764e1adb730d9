package syntax

import (
	"math/big"

	"github.com/magnetde/starlark-turtle/util"
)

// Compile parses a pattern into a tree of match nodes. The root of the tree is always a sequence.
//
// The pattern syntax knows the following metacharacters; all other characters are literals:
//
//   - `[...]`: alternation of the enclosed nodes; the first one that matches wins
//   - `.`: any character
//   - `*`: repeat the preceding node zero or more times
//   - `+`: repeat the preceding node one or more times
//   - `{n}`, `{n,}`, `{,m}`, `{n,m}`: repeat the preceding node in the given range
//
// Compile returns an error of type *Error if the pattern is invalid.
func Compile(pattern string) (*Sequence, error) {
	var s source
	s.init(pattern)

	root := &Sequence{}

	// open groups; the root sequence is never closed
	groups := []*[]Node{&root.Children}
	opened := []int{0} // positions of '[' for each open group

	for {
		here := s.tell()

		c, ok := s.read()
		if !ok {
			break // end of pattern
		}

		group := groups[len(groups)-1]

		switch c {
		default:
			*group = append(*group, &Literal{Char: c})

		case metaAny:
			*group = append(*group, &Wildcard{})

		case metaAltOpen:
			alt := &Alternation{}
			*group = append(*group, alt)

			groups = append(groups, &alt.Children)
			opened = append(opened, here)

		case metaAltClose:
			if len(groups) == 1 {
				return nil, s.errorp(ErrUnbalancedBracket, here)
			}

			groups = groups[:len(groups)-1]
			opened = opened[:len(opened)-1]

		case metaOneOrMore, metaZeroOrMore, metaRangeOpen:
			// repeat previous item
			var lo, hi int

			switch c {
			case metaOneOrMore:
				lo, hi = 1, Unbounded
			case metaZeroOrMore:
				lo, hi = 0, Unbounded
			case metaRangeOpen:
				r, end, err := scanRange(s.chars, s.tell())
				if err != nil {
					err.Pattern = pattern
					return nil, err
				}

				lo, ok = bound(r.min)
				if !ok {
					return nil, s.tooLarge(r.min, here)
				}

				hi = Unbounded
				if r.max != nil {
					hi, ok = bound(r.max)
					if !ok {
						return nil, s.tooLarge(r.max, here)
					}
				}

				s.seek(end + 1)
			}

			// figure out which item to repeat
			if len(*group) == 0 {
				return nil, s.errorp(ErrNothingToRepeat, here)
			}

			last := len(*group) - 1
			(*group)[last] = &Repeat{Child: (*group)[last], Min: lo, Max: hi}
		}
	}

	if len(groups) > 1 {
		return nil, s.errorp(ErrUnterminatedBracket, opened[len(opened)-1])
	}

	return root, nil
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
func MustCompile(pattern string) *Sequence {
	root, err := Compile(pattern)
	if err != nil {
		panic("syntax: Compile(" + util.Repr(pattern) + "): " + err.Error())
	}
	return root
}

// bound converts a repeat bound into an int, if it does not exceed MaxRepeat.
func bound(n *big.Int) (int, bool) {
	if !n.IsInt64() || n.Int64() > MaxRepeat {
		return 0, false
	}
	return int(n.Int64()), true
}

// tooLarge returns the error for a repeat bound exceeding MaxRepeat.
func (s *source) tooLarge(n *big.Int, pos int) *Error {
	e := s.errorp(ErrRepeatTooLarge, pos)
	e.Min = n
	return e
}
