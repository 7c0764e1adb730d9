package syntax

import "slices"

// Node is a node of a compiled pattern tree.
//
// The set of nodes is closed: *Literal, *Wildcard, *Sequence, *Alternation and *Repeat.
// Leaves (*Literal, *Wildcard) match exactly one character; groups contain other nodes.
// Trees hold no matching state and are never modified after compilation,
// so a tree may be shared by any number of concurrent matches.
type Node interface {
	String() string

	node() // restricts the implementations to this package
}

// Literal matches one specific character.
type Literal struct {
	Char rune
}

// Wildcard matches any character within the bounds of the text.
type Wildcard struct{}

// Sequence matches all of its children in order.
type Sequence struct {
	Children []Node
}

// Alternation matches the first of its children that matches.
type Alternation struct {
	Children []Node
}

// Repeat matches its child greedily, at least Min and at most Max times.
// A Max of Unbounded places no upper limit on the repetitions.
type Repeat struct {
	Child Node
	Min   int
	Max   int
}

// Check, if the types satisfy the interface.
var (
	_ Node = (*Literal)(nil)
	_ Node = (*Wildcard)(nil)
	_ Node = (*Sequence)(nil)
	_ Node = (*Alternation)(nil)
	_ Node = (*Repeat)(nil)
)

func (*Literal) node()     {}
func (*Wildcard) node()    {}
func (*Sequence) node()    {}
func (*Alternation) node() {}
func (*Repeat) node()      {}

// Bounded reports whether the repetition has an upper limit.
func (r *Repeat) Bounded() bool {
	return r.Max != Unbounded
}

// IsGroup reports whether n contains other nodes.
func IsGroup(n Node) bool {
	switch n.(type) {
	case *Sequence, *Alternation, *Repeat:
		return true
	}

	return false
}

// Equal reports whether two trees are structurally equal.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Char == y.Char
	case *Wildcard:
		_, ok := b.(*Wildcard)
		return ok
	case *Sequence:
		y, ok := b.(*Sequence)
		return ok && slices.EqualFunc(x.Children, y.Children, Equal)
	case *Alternation:
		y, ok := b.(*Alternation)
		return ok && slices.EqualFunc(x.Children, y.Children, Equal)
	case *Repeat:
		y, ok := b.(*Repeat)
		return ok && x.Min == y.Min && x.Max == y.Max && Equal(x.Child, y.Child)
	}

	return a == nil && b == nil
}
