package syntax

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/magnetde/starlark-turtle/util"
)

// ErrorKind describes the kind of a compile error.
type ErrorKind uint8

const (
	_ ErrorKind = iota

	ErrRangeMinSyntax      // unexpected character in the minimum of a repeat range
	ErrRangeMaxSyntax      // unexpected character in the maximum of a repeat range
	ErrRangeInvalid        // maximum of a repeat range less than its minimum
	ErrRangeUnterminated   // repeat range without closing '}'
	ErrRepeatTooLarge      // repeat bound larger than MaxRepeat
	ErrNothingToRepeat     // quantifier without preceding node
	ErrUnbalancedBracket   // ']' without open '['
	ErrUnterminatedBracket // '[' without closing ']'
)

func (k ErrorKind) String() string {
	switch k {
	case ErrRangeMinSyntax:
		return "RangeMinSyntax"
	case ErrRangeMaxSyntax:
		return "RangeMaxSyntax"
	case ErrRangeInvalid:
		return "RangeInvalid"
	case ErrRangeUnterminated:
		return "RangeUnterminated"
	case ErrRepeatTooLarge:
		return "RepeatTooLarge"
	case ErrNothingToRepeat:
		return "NothingToRepeat"
	case ErrUnbalancedBracket:
		return "UnbalancedBracket"
	case ErrUnterminatedBracket:
		return "UnterminatedBracket"
	}

	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is a compile error of a pattern.
// Depending on the kind, either Char or the bounds Min and Max describe the cause.
type Error struct {
	Kind    ErrorKind
	Pattern string
	Pos     int      // character offset in the pattern
	Char    rune     // offending character; ErrRangeMinSyntax, ErrRangeMaxSyntax
	Min     *big.Int // ErrRangeInvalid, ErrRepeatTooLarge
	Max     *big.Int // ErrRangeInvalid; nil if unbounded
}

func (e *Error) Error() string {
	var msg string

	switch e.Kind {
	case ErrRangeMinSyntax:
		msg = fmt.Sprintf("bad character %s in repeat minimum, expected digit, ',' or '}'", util.RuneRepr(e.Char))
	case ErrRangeMaxSyntax:
		msg = fmt.Sprintf("bad character %s in repeat maximum, expected digit or '}'", util.RuneRepr(e.Char))
	case ErrRangeInvalid:
		msg = fmt.Sprintf("invalid repeat range, min=%s > max=%s", e.Min, e.Max)
	case ErrRangeUnterminated:
		msg = "missing '}', unterminated repeat range"
	case ErrRepeatTooLarge:
		msg = fmt.Sprintf("the repetition number %s is too large, limit is %d", e.Min, MaxRepeat)
	case ErrNothingToRepeat:
		msg = "nothing to repeat"
	case ErrUnbalancedBracket:
		msg = "unbalanced bracket"
	case ErrUnterminatedBracket:
		msg = "missing ']', unterminated alternation"
	default:
		msg = e.Kind.String()
	}

	return position(msg, e.Pattern, e.Pos)
}

// position appends the position of an error to the message.
// If the pattern contains new line characters, the line and column number is also added.
func position(msg string, pattern string, pos int) string {
	msg = fmt.Sprintf("%s at position %d", msg, pos)

	if !strings.Contains(pattern, "\n") {
		return msg
	}

	chars := []rune(pattern)
	if pos > len(chars) {
		pos = len(chars)
	}

	before := string(chars[:pos])
	lineno := strings.Count(before, "\n") + 1
	colno := pos - len([]rune(before[:strings.LastIndex(before, "\n")+1]))

	// columns are counted from 1
	return fmt.Sprintf("%s (line %d, column %d)", msg, lineno, colno+1)
}
