package turtle

import (
	"fmt"
	"slices"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/magnetde/starlark-turtle/regex"
	sre "github.com/magnetde/starlark-turtle/syntax"
	"github.com/magnetde/starlark-turtle/util"
)

// Pattern is a Starlark representation of a compiled pattern.
type Pattern struct {
	re      *regex.Regex
	pattern string
	flags   int
}

// newPattern compiles a pattern into a pattern object, which is also a Starlark value.
func newPattern(pattern string, flags int) (*Pattern, error) {
	if flags < 0 {
		return nil, fmt.Errorf("invalid flags %d", flags)
	}

	re, err := regex.Compile(pattern, regex.Flags(flags))
	if err != nil {
		return nil, err
	}

	p := Pattern{
		re:      re,
		pattern: pattern,
		flags:   flags,
	}

	return &p, nil
}

// Check, if the type satisfies the interfaces.
var (
	_ starlark.Value      = (*Pattern)(nil)
	_ starlark.HasAttrs   = (*Pattern)(nil)
	_ starlark.Comparable = (*Pattern)(nil)
)

func (p *Pattern) String() string {
	r := util.Repr(p.pattern)
	if len(r) > 200 {
		r = r[:200]
	}

	var b strings.Builder
	b.WriteString("turtle.compile(")
	b.WriteString(r)
	if p.flags != 0 {
		b.WriteString(", turtle.")
		b.WriteString(regex.Flags(p.flags).String())
	}
	b.WriteByte(')')
	return b.String()
}

func (p *Pattern) Type() string          { return "pattern" }
func (p *Pattern) Freeze()               {} // immutable
func (p *Pattern) Truth() starlark.Bool  { return p.pattern != "" }
func (p *Pattern) Hash() (uint32, error) { return starlark.String(p.pattern).Hash() }

// Methods of the pattern object.
var patternMethods = map[string]*starlark.Builtin{
	"search":  starlark.NewBuiltin("search", patternSearch),
	"findall": starlark.NewBuiltin("findall", patternFindall),
	"split":   starlark.NewBuiltin("split", patternSplit),
	"sub":     starlark.NewBuiltin("sub", patternSub),
	"dump":    starlark.NewBuiltin("dump", patternDump),
}

// patternMembers contains members of the pattern object.
var patternMembers = map[string]func(p *Pattern) starlark.Value{
	"flags":   func(p *Pattern) starlark.Value { return starlark.MakeInt(p.flags) },
	"pattern": func(p *Pattern) starlark.Value { return starlark.String(p.pattern) },
}

// Attr gets a value for a string attribute.
func (p *Pattern) Attr(name string) (starlark.Value, error) {
	if o, ok := patternMethods[name]; ok {
		return o.BindReceiver(p), nil
	}

	if o, ok := patternMembers[name]; ok {
		return o(p), nil
	}

	return nil, nil
}

// AttrNames lists available dot expression strings.
func (p *Pattern) AttrNames() []string {
	names := make([]string, 0, len(patternMethods)+len(patternMembers))

	for name := range patternMethods {
		names = append(names, name)
	}
	for name := range patternMembers {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

func (p *Pattern) CompareSameType(op syntax.Token, y starlark.Value, _ int) (bool, error) {
	o := y.(*Pattern)

	switch op {
	case syntax.EQL:
		return patternEquals(p, o), nil
	case syntax.NEQ:
		return !patternEquals(p, o), nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", p.Type(), op, o.Type())
	}
}

func patternEquals(x, y *Pattern) bool {
	return x.pattern == y.pattern && x.flags == y.flags
}

// patternSearch - see `turtleSearch`.
func patternSearch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var str string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "string", &str); err != nil {
		return nil, err
	}

	p := b.Receiver().(*Pattern)
	return search(p, str), nil
}

// patternFindall - see `turtleFindall`.
func patternFindall(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var str string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "string", &str); err != nil {
		return nil, err
	}

	p := b.Receiver().(*Pattern)
	return findall(p, str), nil
}

// patternSplit - see `turtleSplit`.
func patternSplit(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		str      string
		maxSplit int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "string", &str, "maxsplit?", &maxSplit); err != nil {
		return nil, err
	}

	p := b.Receiver().(*Pattern)
	return split(p, str, maxSplit), nil
}

// patternSub - see `turtleSub`.
func patternSub(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		repl  starlark.Value
		str   string
		count int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "repl", &repl, "string", &str, "count?", &count); err != nil {
		return nil, err
	}

	r, err := getReplacer(thread, repl)
	if err != nil {
		return nil, err
	}

	p := b.Receiver().(*Pattern)
	return sub(p, r, str, count)
}

// patternDump returns the debug listing of the compiled tree.
func patternDump(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	p := b.Receiver().(*Pattern)
	return starlark.String(sre.Dump(p.re.Tree())), nil
}
