package syntax

// source represents a reader to read the pattern string.
// Positions are character offsets, not byte offsets.
// The attributes may only be changed by using its functions.
type source struct {
	orig  string // original string
	chars []rune
	pos   int // current read position
}

// init initializes the reader.
func (s *source) init(src string) {
	s.orig = src
	s.chars = []rune(src)
	s.pos = 0
}

// tell returns the current read position.
func (s *source) tell() int {
	return s.pos
}

// seek sets the current read position.
func (s *source) seek(pos int) {
	s.pos = min(max(pos, 0), len(s.chars))
}

// read reads the next character.
// If the current read position is at the end of the string, then the second return value is false.
// After reading, the current read position is increased.
func (s *source) read() (rune, bool) {
	if s.pos >= len(s.chars) {
		return 0, false
	}

	c := s.chars[s.pos]
	s.pos++

	return c, true
}

// errorp returns a new error of the given kind at the given position.
func (s *source) errorp(kind ErrorKind, pos int) *Error {
	return &Error{
		Kind:    kind,
		Pattern: s.orig,
		Pos:     pos,
	}
}
