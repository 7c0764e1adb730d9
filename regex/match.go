package regex

import (
	"github.com/magnetde/starlark-turtle/logger"
	"github.com/magnetde/starlark-turtle/syntax"
)

// halted is the cursor of an activation, that does not process any further children.
const halted = -1

// activation tracks one pass of the engine through a group node.
// Activations live on the stack of a matcher and never on the node itself, so trees stay immutable.
type activation struct {
	group     syntax.Node
	start     int  // offset in the text, where this activation began
	consumed  int  // characters consumed so far
	count     int  // completed iterations; only used by repetitions
	matched   bool // whether the activation is a match so far
	exhausted bool // set when the activation completes before the end of the text
	cursor    int  // index of the next child, or `halted`
}

// next returns the next child of the group and advances the cursor.
// The second return value is false if no children remain.
func (a *activation) next() (syntax.Node, bool) {
	if a.cursor == halted {
		return nil, false
	}

	var n syntax.Node

	switch g := a.group.(type) {
	case *syntax.Sequence:
		if a.cursor >= len(g.Children) {
			return nil, false
		}
		n = g.Children[a.cursor]
	case *syntax.Alternation:
		if a.cursor >= len(g.Children) {
			return nil, false
		}
		n = g.Children[a.cursor]
	case *syntax.Repeat:
		if a.cursor >= 1 {
			return nil, false
		}
		n = g.Child
	default:
		return nil, false
	}

	a.cursor++
	return n, true
}

// fail ends the activation without a match.
func (a *activation) fail() {
	a.matched = false
	a.consumed = 0
	a.cursor = halted
}

// succeed ends the activation with a match, retaining the consumed characters.
func (a *activation) succeed() {
	a.matched = true
	a.cursor = halted
}

// matcher executes a tree against a text. It owns the activation stack,
// which is reused between matches to avoid allocations.
type matcher struct {
	text  []rune
	flags Flags
	debug bool
	stack []activation
}

// Match matches the tree against the text, beginning at offset `start`.
// It returns whether the tree matched and the number of characters consumed.
// A leaf as tree is matched as a sequence containing only this leaf.
func Match(tree syntax.Node, text []rune, start int) (bool, int) {
	m := matcher{debug: logger.DebugEnabled()}
	return m.match(tree, text, start)
}

// match drives the root group to completion using an explicit stack instead of recursion,
// so the nesting depth of a pattern is only bounded by the available memory.
func (m *matcher) match(tree syntax.Node, text []rune, start int) (bool, int) {
	if !syntax.IsGroup(tree) {
		tree = &syntax.Sequence{Children: []syntax.Node{tree}}
	}

	m.text = text
	m.stack = append(m.stack[:0], m.enter(tree, start))

	defer func() {
		m.text = nil
		clear(m.stack) // do not retain trees in the pooled stack
		m.stack = m.stack[:0]
	}()

	for len(m.stack) > 0 {
		top := &m.stack[len(m.stack)-1]

		child, ok := top.next()
		if !ok {
			// The activation is complete.
			top.exhausted = top.start+top.consumed < len(m.text)

			done := *top
			m.stack = m.stack[:len(m.stack)-1]

			if m.debug {
				logger.Debug("group done",
					"group", done.group.String(),
					"start", done.start,
					"consumed", done.consumed,
					"matched", done.matched,
					"exhausted", done.exhausted)
			}

			if len(m.stack) == 0 {
				return done.matched, done.consumed
			}

			m.reduce(&m.stack[len(m.stack)-1], done.matched, done.consumed)
			continue
		}

		pos := top.start + top.consumed

		if syntax.IsGroup(child) {
			m.stack = append(m.stack, m.enter(child, pos))
			continue
		}

		m.reduce(top, evalLeaf(child, m.text, pos), 1)
	}

	return false, -1
}

// enter creates the activation of a group, that begins at offset `start`.
func (m *matcher) enter(group syntax.Node, start int) activation {
	a := activation{
		group: group,
		start: start,
	}

	// A repetition, that may not repeat at all, is complete before it started.
	if r, ok := group.(*syntax.Repeat); ok && m.flags&FlagStopAtMax != 0 && r.Max == 0 {
		a.succeed()
	}

	return a
}

// reduce feeds the result of a child into the reduction rule of its parent activation.
// `consumed` is the number of characters consumed by the child.
//
// The exhaustion flag checked by the rules belongs to the parent. It is only set once an activation
// completes, so a rule never observes it on a live activation.
func (m *matcher) reduce(a *activation, ok bool, consumed int) {
	switch g := a.group.(type) {
	case *syntax.Sequence:
		reduceSequence(a, ok, consumed)
	case *syntax.Alternation:
		reduceAlternation(a, ok, consumed)
	case *syntax.Repeat:
		m.reduceRepeat(g, a, ok, consumed)
	}
}

// reduceSequence fails the sequence at the first child, that fails.
func reduceSequence(a *activation, ok bool, consumed int) {
	if !ok || a.exhausted {
		a.fail()
		return
	}

	a.matched = true
	a.consumed += consumed
}

// reduceAlternation ends the alternation at the first child, that matches.
// If no child matches, the alternation stays unmatched.
func reduceAlternation(a *activation, ok bool, consumed int) {
	if a.exhausted {
		a.fail()
		return
	}

	if ok {
		a.consumed += consumed
		a.succeed()
	}
}

// reduceRepeat restarts the child of the repetition after each successful iteration.
// The first failing iteration ends the repetition, which matches if enough iterations succeeded.
func (m *matcher) reduceRepeat(r *syntax.Repeat, a *activation, ok bool, consumed int) {
	if !ok || a.exhausted {
		if a.count >= r.Min {
			a.succeed()
		} else {
			a.fail()
		}
		return
	}

	a.consumed += consumed
	a.count++

	// An iteration without consumption would repeat forever; any number of
	// further empty iterations satisfies the minimum.
	if consumed == 0 {
		a.succeed()
		return
	}

	if r.Bounded() {
		if m.flags&FlagStopAtMax != 0 && a.count >= r.Max {
			a.succeed()
			return
		}

		if a.count > r.Max {
			a.fail()
			return
		}
	}

	a.cursor = 0 // another pass
}

// evalLeaf evaluates a leaf node at offset `pos`.
func evalLeaf(n syntax.Node, text []rune, pos int) bool {
	if pos < 0 || pos >= len(text) {
		return false
	}

	switch t := n.(type) {
	case *syntax.Wildcard:
		return true
	case *syntax.Literal:
		return text[pos] == t.Char
	}

	return false
}
