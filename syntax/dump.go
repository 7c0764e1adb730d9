package syntax

import (
	"strconv"
	"strings"
)

// Dump returns debug information about a compiled tree.
// Each node is written on its own line, indented by its depth.
func Dump(n Node) string {
	var b strings.Builder
	dumpNode(&b, n, 0)
	return strings.TrimRight(b.String(), "\n") // trim the newline at the end
}

// dumpNode writes the debug information of node `n` to the string builder.
// The `level` parameter is used to indent the debug information.
func dumpNode(b *strings.Builder, n Node, level int) {
	b.WriteString(strings.Repeat("  ", level))

	switch t := n.(type) {
	case *Literal:
		b.WriteString("LITERAL ")
		b.WriteString(strconv.Itoa(int(t.Char)))
		b.WriteByte('\n')
	case *Wildcard:
		b.WriteString("ANY\n")
	case *Sequence:
		b.WriteString("SEQUENCE\n")
		for _, c := range t.Children {
			dumpNode(b, c, level+1)
		}
	case *Alternation:
		b.WriteString("ALTERNATION\n")
		for i, c := range t.Children {
			if i != 0 {
				b.WriteString(strings.Repeat("  ", level) + "OR\n")
			}
			dumpNode(b, c, level+1)
		}
	case *Repeat:
		b.WriteString("REPEAT ")
		b.WriteString(strconv.Itoa(t.Min))
		b.WriteByte(' ')
		if t.Bounded() {
			b.WriteString(strconv.Itoa(t.Max))
		} else {
			b.WriteString("MAXREPEAT")
		}
		b.WriteByte('\n')
		dumpNode(b, t.Child, level+1)
	default:
		b.WriteString("NONE\n")
	}
}

// String methods render nodes back into pattern syntax.
// For trees returned by Compile, compiling the rendered pattern results in an equal tree.

func (n *Literal) String() string     { return string(n.Char) }
func (n *Wildcard) String() string    { return string(metaAny) }
func (n *Sequence) String() string    { return writePattern(n) }
func (n *Alternation) String() string { return writePattern(n) }
func (n *Repeat) String() string      { return writePattern(n) }

// writePattern renders a group node.
func writePattern(n Node) string {
	var w patternWriter
	w.writeNode(n)
	return w.String()
}

// patternWriter builds the pattern string of a tree.
type patternWriter struct {
	strings.Builder
}

func (w *patternWriter) writeNode(n Node) {
	switch t := n.(type) {
	case *Literal:
		w.WriteRune(t.Char)
	case *Wildcard:
		w.WriteRune(metaAny)
	case *Sequence:
		for _, c := range t.Children {
			w.writeNode(c)
		}
	case *Alternation:
		w.WriteRune(metaAltOpen)
		for _, c := range t.Children {
			w.writeNode(c)
		}
		w.WriteRune(metaAltClose)
	case *Repeat:
		w.writeNode(t.Child)
		w.writeQuantifier(t.Min, t.Max)
	}
}

// writeQuantifier writes the shortest quantifier for the repetition bounds.
func (w *patternWriter) writeQuantifier(lo, hi int) {
	switch {
	case lo == 0 && hi == Unbounded:
		w.WriteRune(metaZeroOrMore)
	case lo == 1 && hi == Unbounded:
		w.WriteRune(metaOneOrMore)
	default:
		w.WriteRune(metaRangeOpen)
		w.WriteString(strconv.Itoa(lo))
		if lo != hi {
			w.WriteRune(metaRangeSep)
			if hi != Unbounded {
				w.WriteString(strconv.Itoa(hi))
			}
		}
		w.WriteRune(metaRangeClose)
	}
}
