package regex

import (
	"strconv"
	"time"
)

// Flags modify the matching behavior of a compiled pattern.
type Flags uint32

// Possible flags for the flag parameter.
const (
	// FlagStopAtMax ends a bounded repetition successfully as soon as it reached its maximum.
	// Without this flag, a repetition fails as a whole if one more iteration than its maximum would match.
	FlagStopAtMax Flags = 1 << iota

	supportedFlags = FlagStopAtMax
)

const (
	// maxPrefilterLiterals is the maximum number of leading strings loaded into the prefilter.
	maxPrefilterLiterals = 64

	// referenceTimeout limits a single match of the reference engine.
	referenceTimeout = 10 * time.Second
)

func (f Flags) String() string {
	if f == 0 {
		return "NOFLAG"
	}
	if f&FlagStopAtMax != 0 && f&^supportedFlags == 0 {
		return "STOPATMAX"
	}
	return "Flags(" + strconv.FormatUint(uint64(f), 10) + ")"
}
