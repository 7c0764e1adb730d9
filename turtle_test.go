package turtle

import (
	_ "embed"
	"fmt"
	"testing"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

//go:embed turtle_test.star
var turtleScript string

func TestTurtle(t *testing.T) {
	asserts := map[string]func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error){
		"assert_eq": assertEqFunc,
		"same":      sameFunc,
		"trycatch":  tryCatchFunc,
	}

	predeclared := starlark.StringDict{
		"turtle": NewModule(),

		// string literals cannot contain invalid UTF-8
		"invalid_utf8": starlark.String("x\xe9y\xffz"),
	}

	for name, fn := range asserts {
		predeclared[name] = starlark.NewBuiltin(name, fn)
	}

	opts := syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}

	_, prog, err := starlark.SourceProgramOptions(&opts, "turtle_test.star", turtleScript, predeclared.Has)
	if err != nil {
		t.Fatal(err)
	}

	thread := &starlark.Thread{
		Name: "test turtle",
		Print: func(thread *starlark.Thread, msg string) {
			t.Log(msg)
		},
	}

	_, err = prog.Init(thread, predeclared)
	if err != nil {
		if e, ok := err.(*starlark.EvalError); ok {
			t.Fatal(e.Backtrace())
		}

		t.Fatal(err)
	}
}

func TestModuleCache(t *testing.T) {
	m := NewModule()

	p1, err := m.compile("a+", 0)
	if err != nil {
		t.Fatal(err)
	}

	p2, _ := m.compile("a+", 0)
	if p1 != p2 {
		t.Error("cached pattern was compiled again")
	}

	// fill the cache until "a+" is evicted
	for i := 0; i < maxCacheSize; i++ {
		if _, err := m.compile(fmt.Sprintf("b{%d}", i), 0); err != nil {
			t.Fatal(err)
		}
	}

	if m.list.Len() != maxCacheSize || len(m.cache) != maxCacheSize {
		t.Errorf("cache size is %d/%d, want %d", m.list.Len(), len(m.cache), maxCacheSize)
	}

	if _, ok := m.cache[cacheKey{"a+", 0}]; ok {
		t.Error("least recently used pattern was not evicted")
	}

	m.purge()
	if m.list.Len() != 0 || len(m.cache) != 0 {
		t.Error("purge did not clear the cache")
	}
}

func TestModuleCompileError(t *testing.T) {
	m := NewModule()

	if _, err := m.compile("a{x}", 0); err == nil {
		t.Error("expected compile error")
	}
	if len(m.cache) != 0 {
		t.Error("invalid pattern was cached")
	}
}

func assertEqFunc(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}

	eq, err := starlark.Equal(x, y)
	if err != nil {
		return nil, err
	}
	if !eq {
		return nil, fmt.Errorf("%s: %s != %s", b.Name(), x, y)
	}

	return starlark.None, nil
}

func sameFunc(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}

	return starlark.Bool(x == y), nil
}

func tryCatchFunc(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%s: got %d arguments, want at least 1", b.Name(), len(args))
	}

	fn, ok := args[0].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("got %s, want callable", args[0].Type())
	}

	res, err := fn.CallInternal(thread, args[1:], kwargs)
	if err != nil {
		return starlark.Tuple{starlark.None, starlark.String(err.Error())}, nil
	}

	return starlark.Tuple{res, starlark.None}, nil
}
