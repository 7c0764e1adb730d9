package turtle

import (
	"container/list"
	"errors"
	"fmt"

	"go.starlark.net/starlark"

	"github.com/magnetde/starlark-turtle/logger"
	"github.com/magnetde/starlark-turtle/regex"
	"github.com/magnetde/starlark-turtle/util"
)

// maxCacheSize is the number of compiled patterns kept by a module.
const maxCacheSize = 32

var zeroInt = starlark.MakeInt(0)

// Module is the Starlark value of the turtle module.
// Unlike a `starlarkstruct.Module`, it owns an LRU cache of compiled patterns,
// so repeated calls with the same pattern string compile it only once.
// The cache is not safe for concurrent use by multiple threads.
type Module struct {
	members starlark.StringDict

	list  *list.List                 // least recently used patterns
	cache map[cacheKey]*list.Element // mapping of patterns to list elements
}

// cacheKey is the key of the cache, containing the pattern and the flags.
type cacheKey struct {
	pattern string
	flags   int
}

// cacheValue is the value of a list element. Evicting an element needs its key.
type cacheValue struct {
	pattern *Pattern
	key     cacheKey
}

// NewModule creates a new turtle module.
func NewModule() *Module {
	members := starlark.StringDict{
		"NOFLAG":    zeroInt,
		"STOPATMAX": starlark.MakeInt(int(regex.FlagStopAtMax)),

		"compile": starlark.NewBuiltin("compile", turtleCompile),
		"purge":   starlark.NewBuiltin("purge", turtlePurge),

		"search":  starlark.NewBuiltin("search", turtleSearch),
		"findall": starlark.NewBuiltin("findall", turtleFindall),
		"split":   starlark.NewBuiltin("split", turtleSplit),
		"sub":     starlark.NewBuiltin("sub", turtleSub),
	}

	m := Module{
		members: members,
		list:    list.New(),
		cache:   make(map[cacheKey]*list.Element),
	}

	return &m
}

// Check, if the type satisfies the interfaces.
var (
	_ starlark.Value    = (*Module)(nil)
	_ starlark.HasAttrs = (*Module)(nil)
)

func (m *Module) Freeze()               { m.members.Freeze() }
func (m *Module) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable: %s", m.Type()) }
func (m *Module) String() string        { return "<module turtle>" }
func (m *Module) Truth() starlark.Bool  { return true }
func (m *Module) Type() string          { return "module" }

func (m *Module) Attr(name string) (starlark.Value, error) {
	if v, ok := m.members[name]; ok {
		if b, ok := v.(*starlark.Builtin); ok {
			return b.BindReceiver(m), nil
		}

		return v, nil
	}

	return nil, nil
}

func (m *Module) AttrNames() []string { return m.members.Keys() }

// compile returns the compiled pattern for the pattern string and flags, from the cache if possible.
// Patterns, that fail to compile, are not cached.
func (m *Module) compile(pattern string, flags int) (*Pattern, error) {
	key := cacheKey{pattern, flags}

	if e, ok := m.cache[key]; ok {
		m.list.MoveToFront(e)
		return e.Value.(*cacheValue).pattern, nil
	}

	p, err := newPattern(pattern, flags)
	if err != nil {
		return nil, err
	}

	if m.list.Len() >= maxCacheSize {
		last := m.list.Remove(m.list.Back()).(*cacheValue)
		delete(m.cache, last.key)

		logger.Debug("evicted pattern", "pattern", util.Repr(last.key.pattern), "flags", last.key.flags)
	}

	v := &cacheValue{
		pattern: p,
		key:     key,
	}

	m.cache[key] = m.list.PushFront(v)

	return p, nil
}

// purge clears the pattern cache.
func (m *Module) purge() {
	m.list.Init()
	clear(m.cache)
}

// patternParam represents the possible types of the pattern parameter.
type patternParam struct {
	compiled *Pattern
	raw      string
}

var _ starlark.Unpacker = (*patternParam)(nil)

func (p *patternParam) Unpack(v starlark.Value) error {
	switch t := v.(type) {
	case *Pattern:
		p.compiled = t
	case starlark.String:
		p.raw = string(t)
	default:
		return errors.New("first argument must be string or compiled pattern")
	}

	return nil
}

// compilePattern compiles a pattern using the cache of the module.
// The builtin receiver of the first parameter must be of type `*Module`.
func compilePattern(b *starlark.Builtin, p patternParam, flags int) (*Pattern, error) {
	if p.compiled != nil {
		if flags != 0 {
			return nil, errors.New("cannot process flags argument with a compiled pattern")
		}

		return p.compiled, nil
	}

	return b.Receiver().(*Module).compile(p.raw, flags)
}

// turtleCompile compiles a pattern into a pattern object.
// Because all member functions of the module cache compiled patterns,
// this function is only necessary, if the number of patterns exceeds the maximum cache size.
func turtleCompile(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		pattern patternParam
		flags   int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "flags?", &flags); err != nil {
		return nil, err
	}

	return compilePattern(b, pattern, flags)
}

// turtlePurge clears the pattern cache.
func turtlePurge(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}

	b.Receiver().(*Module).purge()

	return starlark.None, nil
}

// turtleSearch returns a list of `Match` objects for all non-overlapping matches of the pattern in the string.
func turtleSearch(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		pattern patternParam
		str     string
		flags   int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "string", &str, "flags?", &flags); err != nil {
		return nil, err
	}

	p, err := compilePattern(b, pattern, flags)
	if err != nil {
		return nil, err
	}

	return search(p, str), nil
}

// turtleFindall returns all non-overlapping matches of the pattern in the string, as a list of strings.
func turtleFindall(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		pattern patternParam
		str     string
		flags   int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "string", &str, "flags?", &flags); err != nil {
		return nil, err
	}

	p, err := compilePattern(b, pattern, flags)
	if err != nil {
		return nil, err
	}

	return findall(p, str), nil
}

// turtleSplit splits the string by the occurrences of the pattern.
// If maxsplit is nonzero, at most maxsplit splits occur, and the remainder of the string is returned as the final element of the list.
func turtleSplit(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		pattern         patternParam
		str             string
		maxSplit, flags int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "string", &str, "maxsplit?", &maxSplit, "flags?", &flags); err != nil {
		return nil, err
	}

	p, err := compilePattern(b, pattern, flags)
	if err != nil {
		return nil, err
	}

	return split(p, str, maxSplit), nil
}

// turtleSub returns the string obtained by replacing the leftmost non-overlapping occurrences of the pattern in the string by the replacement repl,
// replacing a maximum number of `count`. If the pattern is not found, the string is returned unchanged.
// `repl` is either a string or a function, which receives a `Match` object and returns the replacement string.
func turtleSub(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		pattern      patternParam
		repl         starlark.Value
		str          string
		count, flags int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "repl", &repl, "string", &str, "count?", &count, "flags?", &flags); err != nil {
		return nil, err
	}

	p, err := compilePattern(b, pattern, flags)
	if err != nil {
		return nil, err
	}

	r, err := getReplacer(thread, repl)
	if err != nil {
		return nil, err
	}

	return sub(p, r, str, count)
}
