package regex

import (
	"fmt"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/magnetde/starlark-turtle/logger"
	"github.com/magnetde/starlark-turtle/syntax"
	"github.com/magnetde/starlark-turtle/util"
)

// Span is a half-open range of characters `[Start, End)` of a text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return "(" + strconv.Itoa(s.Start) + ", " + strconv.Itoa(s.End) + ")"
}

// Regex is a compiled pattern. It is safe for concurrent use by multiple goroutines.
type Regex struct {
	pattern   string
	tree      *syntax.Sequence
	flags     Flags
	prefilter *prefilter

	pool sync.Pool // of *matcher
}

// Compile parses a pattern and returns a Regex, that can be used to search texts.
// Errors of the pattern are returned as *syntax.Error.
func Compile(pattern string, flags Flags) (*Regex, error) {
	if flags&^supportedFlags != 0 {
		return nil, fmt.Errorf("unsupported flags %s", flags)
	}

	tree, err := syntax.Compile(pattern)
	if err != nil {
		return nil, err
	}

	if logger.DebugEnabled() {
		logger.Debug("compiled pattern", "pattern", pattern, "flags", flags.String(), "tree", syntax.Dump(tree))
	}

	re := New(tree, flags)
	re.pattern = pattern

	return re, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string, flags Flags) *Regex {
	re, err := Compile(pattern, flags)
	if err != nil {
		panic(`regex: Compile(` + util.Repr(pattern) + `): ` + err.Error())
	}
	return re
}

// New returns a Regex for an already compiled tree. The tree must not be modified afterwards.
// Unsupported flags are ignored.
func New(tree *syntax.Sequence, flags Flags) *Regex {
	return &Regex{
		pattern:   tree.String(),
		tree:      tree,
		flags:     flags & supportedFlags,
		prefilter: newPrefilter(tree),
	}
}

// Search compiles the pattern and returns all non-overlapping matches in the text.
func Search(pattern, text string) ([]Span, error) {
	re, err := Compile(pattern, 0)
	if err != nil {
		return nil, err
	}

	return re.Search(text), nil
}

// Pattern returns the source text of the pattern.
func (re *Regex) Pattern() string {
	return re.pattern
}

// Tree returns the compiled tree of the pattern.
func (re *Regex) Tree() *syntax.Sequence {
	return re.tree
}

// Flags returns the flags used to compile the pattern.
func (re *Regex) Flags() Flags {
	return re.flags
}

func (re *Regex) String() string {
	return re.pattern
}

// Search returns all non-overlapping matches in the text, ordered ascending.
// The spans are measured in characters. Each invalid UTF-8 byte of the text is one character U+FFFD,
// the same character an invalid byte of the pattern compiles to.
func (re *Regex) Search(text string) []Span {
	spans, _ := re.search(text)
	return spans
}

// SearchIndex is like Search, but the spans are measured in bytes of the text.
func (re *Regex) SearchIndex(text string) []Span {
	spans, offs := re.search(text)

	for i, s := range spans {
		spans[i] = Span{Start: offs.Byte(s.Start), End: offs.Byte(s.End)}
	}

	return spans
}

func (re *Regex) search(text string) ([]Span, util.Offsets) {
	chars, offs := util.RuneOffsets(text)

	var next func(int) int
	if re.prefilter != nil && utf8.ValidString(text) {
		haystack := []byte(text)

		next = func(at int) int {
			return re.prefilter.next(haystack, offs, at)
		}
	}

	return re.scan(chars, next), offs
}

// SearchRunes is like Search, but for a text, that is already decoded into characters.
func (re *Regex) SearchRunes(text []rune) []Span {
	return re.scan(text, nil)
}

// FindAll is like SearchRunes. It never fails.
func (re *Regex) FindAll(text []rune) ([]Span, error) {
	return re.scan(text, nil), nil
}

// MatchAt matches the pattern at offset `start` of the text, without searching.
// It returns whether the pattern matched and how many characters were consumed.
func (re *Regex) MatchAt(text []rune, start int) (bool, int) {
	m := re.get()
	defer re.put(m)

	return m.match(re.tree, text, start)
}

// scan runs the engine at every offset of the text from left to right.
// A match continues the scan after its end, a failure at the next character.
// Matches of length zero advance by one character, so the scan always terminates.
// If `next` is not nil, it returns the next offset, at which a match may start, or -1 if none exists.
func (re *Regex) scan(text []rune, next func(int) int) []Span {
	m := re.get()
	defer re.put(m)

	var spans []Span

	for i := 0; i < len(text); {
		if next != nil {
			j := next(i)
			if j < 0 {
				break
			}
			i = j
		}

		ok, n := m.match(re.tree, text, i)
		if ok && n >= 0 {
			s := Span{Start: i, End: i + n}
			spans = append(spans, s)

			if m.debug {
				logger.Debug("text match", "span", s.String(), "text", util.Repr(string(text[s.Start:s.End])))
			}

			i += max(n, 1)
		} else {
			if m.debug {
				logger.Debug("no match", "pos", i, "char", util.RuneRepr(text[i]))
			}

			i++
		}
	}

	return spans
}

func (re *Regex) get() *matcher {
	m, _ := re.pool.Get().(*matcher)
	if m == nil {
		m = &matcher{}
	}

	m.flags = re.flags
	m.debug = logger.DebugEnabled()

	return m
}

func (re *Regex) put(m *matcher) {
	re.pool.Put(m)
}
