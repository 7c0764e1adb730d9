package syntax

import "math/big"

// repeatRange holds the bounds of a `{min,max}` quantifier.
type repeatRange struct {
	min *big.Int
	max *big.Int // nil if unbounded
}

// scanRange scans the body of a repeat range. `pos` is the offset of the first character after '{'.
// It returns the parsed bounds and the offset of the closing '}'.
//
// Digits may be interleaved with spaces. Missing minimum digits mean 0, missing maximum digits after ','
// mean no upper limit, and a range without ',' repeats exactly the minimum.
// Bounds are parsed without precision limits. The returned error has no pattern set.
func scanRange(chars []rune, pos int) (repeatRange, int, *Error) {
	var r repeatRange

	here := pos - 1 // position of '{'

	var minDigits, maxDigits []rune
	i := pos
	exact := false

scanMin:
	for ; i < len(chars); i++ {
		c := chars[i]

		switch {
		case isDigit(c):
			minDigits = append(minDigits, c)
		case c == ' ':
			continue
		case c == metaRangeSep:
			break scanMin
		case c == metaRangeClose:
			exact = true
			break scanMin
		default:
			return r, i, &Error{Kind: ErrRangeMinSyntax, Pos: i, Char: c}
		}
	}

	if i >= len(chars) {
		return r, i, &Error{Kind: ErrRangeUnterminated, Pos: here}
	}

	if exact {
		// Exact number of repetitions, where min == max.
		maxDigits = minDigits
	} else {
		closed := false

	scanMax:
		for i++; i < len(chars); i++ {
			c := chars[i]

			switch {
			case isDigit(c):
				maxDigits = append(maxDigits, c)
			case c == ' ':
				continue
			case c == metaRangeClose:
				closed = true
				break scanMax
			default:
				return r, i, &Error{Kind: ErrRangeMaxSyntax, Pos: i, Char: c}
			}
		}

		if !closed {
			return r, i, &Error{Kind: ErrRangeUnterminated, Pos: here}
		}
	}

	r.min = parseDigits(minDigits)
	if len(maxDigits) > 0 {
		r.max = parseDigits(maxDigits)
	}

	if r.max != nil && r.max.Cmp(r.min) < 0 {
		return r, i, &Error{Kind: ErrRangeInvalid, Pos: here, Min: r.min, Max: r.max}
	}

	return r, i, nil
}

// parseDigits converts decimal digits into an integer. No digits result in zero.
func parseDigits(digits []rune) *big.Int {
	n := new(big.Int)
	if len(digits) == 0 {
		return n
	}

	n.SetString(string(digits), 10) // only ASCII digits; cannot fail
	return n
}

// isDigit reports whether c is an ASCII decimal digit.
func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
