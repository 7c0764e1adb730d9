package turtle

import (
	"fmt"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/magnetde/starlark-turtle/util"
)

// Match is a match of a pattern in a string.
// The offsets are byte offsets into the string, like all indices of Starlark strings.
type Match struct {
	pattern *Pattern
	str     string
	start   int
	end     int
}

// Check, if the type satisfies the interfaces.
var (
	_ starlark.Value      = (*Match)(nil)
	_ starlark.HasAttrs   = (*Match)(nil)
	_ starlark.Comparable = (*Match)(nil)
)

func (m *Match) String() string {
	return fmt.Sprintf("<turtle.Match object; span=(%d, %d), match=%s>", m.start, m.end, util.Repr(m.group()))
}

func (m *Match) Type() string         { return "match" }
func (m *Match) Freeze()              {} // immutable
func (m *Match) Truth() starlark.Bool { return true }

func (m *Match) Hash() (uint32, error) {
	h, _ := m.pattern.Hash() // string type; no error possible
	tmp, _ := starlark.String(m.group()).Hash()

	h ^= tmp ^ uint32(m.start) ^ uint32(m.end)
	return h * 16777619, nil
}

func (m *Match) group() string {
	return m.str[m.start:m.end]
}

// matchMethods contains methods of the match object.
var matchMethods = map[string]*starlark.Builtin{
	"group": starlark.NewBuiltin("group", matchGroup),
	"start": starlark.NewBuiltin("start", matchStart),
	"end":   starlark.NewBuiltin("end", matchEnd),
	"span":  starlark.NewBuiltin("span", matchSpan),
}

// matchMembers contains members of the match object.
var matchMembers = map[string]func(m *Match) starlark.Value{
	"re":     func(m *Match) starlark.Value { return m.pattern },
	"string": func(m *Match) starlark.Value { return starlark.String(m.str) },
}

// Attr gets a value for a string attribute.
func (m *Match) Attr(name string) (starlark.Value, error) {
	if o, ok := matchMethods[name]; ok {
		return o.BindReceiver(m), nil
	}

	if o, ok := matchMembers[name]; ok {
		return o(m), nil
	}

	return nil, nil
}

// AttrNames lists available dot expression strings.
func (m *Match) AttrNames() []string {
	names := make([]string, 0, len(matchMethods)+len(matchMembers))

	for name := range matchMethods {
		names = append(names, name)
	}
	for name := range matchMembers {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

func (m *Match) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	o := y.(*Match)

	switch op {
	case syntax.EQL:
		return matchEquals(m, o), nil
	case syntax.NEQ:
		return !matchEquals(m, o), nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", m.Type(), op, o.Type())
	}
}

func matchEquals(x, y *Match) bool {
	return patternEquals(x.pattern, y.pattern) && x.str == y.str && x.start == y.start && x.end == y.end
}

// checkGroup unpacks the optional group argument. Only the whole match (group 0) exists,
// since groups do not capture.
func checkGroup(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) error {
	group := 0
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "group?", &group); err != nil {
		return err
	}

	if group != 0 {
		return fmt.Errorf("%s: no such group %d", b.Name(), group)
	}

	return nil
}

func matchGroup(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := checkGroup(b, args, kwargs); err != nil {
		return nil, err
	}

	m := b.Receiver().(*Match)
	return starlark.String(m.group()), nil
}

func matchStart(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := checkGroup(b, args, kwargs); err != nil {
		return nil, err
	}

	m := b.Receiver().(*Match)
	return starlark.MakeInt(m.start), nil
}

func matchEnd(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := checkGroup(b, args, kwargs); err != nil {
		return nil, err
	}

	m := b.Receiver().(*Match)
	return starlark.MakeInt(m.end), nil
}

func matchSpan(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := checkGroup(b, args, kwargs); err != nil {
		return nil, err
	}

	m := b.Receiver().(*Match)
	return starlark.Tuple{starlark.MakeInt(m.start), starlark.MakeInt(m.end)}, nil
}
