package syntax

const (
	// Unbounded is the Max of a repetition without upper limit.
	Unbounded = -1

	// MaxRepeat is the largest repetition bound accepted by the compiler.
	// The range scanner parses bounds of any size; larger values are rejected afterwards.
	MaxRepeat = 65535
)

// Pattern metacharacters. There is no escape mechanism; every other character is a literal.
const (
	metaAltOpen    = '['
	metaAltClose   = ']'
	metaOneOrMore  = '+'
	metaZeroOrMore = '*'
	metaRangeOpen  = '{'
	metaRangeClose = '}'
	metaRangeSep   = ','
	metaAny        = '.'
)
