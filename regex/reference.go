package regex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/magnetde/starlark-turtle/syntax"
)

// Reference runs a tree on the backtracking engine of regexp2.
// It is used to compare the results of the turtle engine with a conventional engine.
//
// Both engines agree on patterns without alternations, that would need backtracking,
// and without repetitions, that exceed their maximum.
type Reference struct {
	pattern string
	expr    string
	re      *regexp2.Regexp
}

// NewReference translates the tree into the syntax of regexp2 and compiles it.
// `pattern` is only used for reporting.
func NewReference(tree syntax.Node, pattern string) (*Reference, error) {
	expr := Translate(tree)

	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("reference: failed to compile %s: %w", strconv.Quote(expr), err)
	}

	re.MatchTimeout = referenceTimeout

	r := &Reference{
		pattern: pattern,
		expr:    expr,
		re:      re,
	}

	return r, nil
}

// Pattern returns the source text of the pattern.
func (r *Reference) Pattern() string {
	return r.pattern
}

// Expr returns the translated expression, that was compiled by regexp2.
func (r *Reference) Expr() string {
	return r.expr
}

// FindAll returns all non-overlapping matches in the text.
// Like the turtle engine, it advances by one character after a match of length zero
// and does not report matches at the end of the text.
func (r *Reference) FindAll(text []rune) ([]Span, error) {
	var spans []Span

	for i := 0; i < len(text); {
		m, err := r.re.FindRunesMatchStartingAt(text, i)
		if err != nil {
			return nil, err
		}

		if m == nil || m.Index >= len(text) {
			break
		}

		s := Span{Start: m.Index, End: m.Index + m.Length}
		spans = append(spans, s)

		i = s.End
		if s.Len() == 0 {
			i++
		}
	}

	return spans, nil
}

// Translate converts a tree into an equivalent expression for regexp2.
func Translate(n syntax.Node) string {
	var b strings.Builder

	if s, ok := n.(*syntax.Sequence); ok {
		for _, c := range s.Children {
			translate(&b, c)
		}
	} else {
		translate(&b, n)
	}

	return b.String()
}

func translate(b *strings.Builder, n syntax.Node) {
	switch t := n.(type) {
	case *syntax.Literal:
		b.WriteString(regexp2.Escape(string(t.Char)))

	case *syntax.Wildcard:
		b.WriteString(`[\s\S]`)

	case *syntax.Sequence:
		b.WriteString("(?:")
		for _, c := range t.Children {
			translate(b, c)
		}
		b.WriteByte(')')

	case *syntax.Alternation:
		if len(t.Children) == 0 {
			b.WriteString("(?!)") // never matches
			return
		}

		b.WriteString("(?:")
		for i, c := range t.Children {
			if i > 0 {
				b.WriteByte('|')
			}
			translate(b, c)
		}
		b.WriteByte(')')

	case *syntax.Repeat:
		// regexp2 rejects nested quantifiers, so the child is always grouped
		b.WriteString("(?:")
		translate(b, t.Child)
		b.WriteByte(')')

		b.WriteByte('{')
		b.WriteString(strconv.Itoa(t.Min))
		b.WriteByte(',')
		if t.Bounded() {
			b.WriteString(strconv.Itoa(t.Max))
		}
		b.WriteByte('}')
	}
}
