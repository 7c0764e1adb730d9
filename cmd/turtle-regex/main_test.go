package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magnetde/starlark-turtle/regex"
)

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		args   []string
		stdin  string
		want   string
		status int
	}{
		{[]string{"[BCP]at", "1BatCatPatRat"}, "", "Matches are: 1[Bat][Cat][Pat]Rat\n", exitOK},
		{[]string{".[BCP]at", "1BatCatPatRat"}, "", "Matches are: [1Bat]Ca[tPat]Rat\n", exitOK},
		{[]string{"e{2,4}", "$$OleeeOlaOleOleOla"}, "", "Matches are: $$Ol[eee]OlaOleOleOla\n", exitOK},
		{[]string{"x", "abc"}, "", "No matches: abc\n", exitOK},
		{[]string{"[BCP]at"}, "Bat\nRat\n", "Matches are: [Bat]\nRat\n\n", exitOK},
		{[]string{"[BCP]at", "ÉBat"}, "", "Matches are: É[Bat]\n", exitOK},
		{[]string{"-stop-at-max", "a{2}", "aaaa"}, "", "Matches are: [aa][aa]\n", exitOK},
		{[]string{"a{2}", "aaaa"}, "", "Matches are: aa[aa]\n", exitOK},
	}

	for _, test := range tests {
		args := append([]string{"-color", "never"}, test.args...)

		status, stdout, _ := runCmd(t, test.stdin, args...)
		if status != test.status {
			t.Errorf("%v: got status %d, want %d", test.args, status, test.status)
		}
		if stdout != test.want {
			t.Errorf("%v: got output %q, want %q", test.args, stdout, test.want)
		}
	}
}

func TestRunColor(t *testing.T) {
	_, stdout, _ := runCmd(t, "", "-color", "always", "at", "Bat")

	want := ansiGreen + "Matches are:" + ansiReset + " B" + ansiBlue + "at" + ansiReset + "\n"
	if stdout != want {
		t.Errorf("got %q, want %q", stdout, want)
	}

	_, stdout, _ = runCmd(t, "", "-color", "always", "x", "Bat")
	if !strings.HasPrefix(stdout, ansiRed+"No matches:") {
		t.Errorf("got %q", stdout)
	}
}

func TestRunCompileError(t *testing.T) {
	status, stdout, stderr := runCmd(t, "", "a{x}", "abc")

	if status != exitFailure {
		t.Errorf("got status %d, want %d", status, exitFailure)
	}
	if stdout != "" {
		t.Errorf("got output %q", stdout)
	}
	if !strings.Contains(stderr, "bad character") || !strings.Contains(stderr, "level=ERROR") {
		t.Errorf("compile error not logged: %q", stderr)
	}
}

func TestRunUsage(t *testing.T) {
	tests := [][]string{
		{},
		{"a", "b", "c"},
		{"-color", "blue", "a", "b"},
		{"-log-format", "xml", "a", "b"},
		{"-unknown", "a", "b"},
	}

	for _, args := range tests {
		if status, _, _ := runCmd(t, "", args...); status != exitUsage {
			t.Errorf("%v: got status %d, want %d", args, status, exitUsage)
		}
	}
}

func TestRunCompare(t *testing.T) {
	_, stdout, _ := runCmd(t, "", "-color", "never", "-compare", "[BCP]at", "1BatCatPatRat")
	if !strings.HasSuffix(stdout, "Engines agree.\n") {
		t.Errorf("got %q", stdout)
	}

	_, stdout, stderr := runCmd(t, "", "-color", "never", "-compare", "a*a", "aa")
	want := "No matches: aa\nOnly turtle: -\nOnly reference: (0, 2)\n"
	if stdout != want {
		t.Errorf("got %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "level=WARN") || !strings.Contains(stderr, "engines disagree") {
		t.Errorf("missing warning in %q", stderr)
	}
}

func TestRunDebugLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turtle.log")

	status, _, stderr := runCmd(t, "", "-debug", "-log-format", "json", "-log-file", path, "-color", "never", ".t", "Bat")
	if status != exitOK {
		t.Fatalf("got status %d", status)
	}
	if stderr != "" {
		t.Errorf("log records written to stderr: %q", stderr)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	log := string(b)
	for _, msg := range []string{`"msg":"compiled pattern"`, `"msg":"text match"`, `"msg":"no match"`, `"msg":"group done"`, `"level":"DEBUG"`} {
		if !strings.Contains(log, msg) {
			t.Errorf("log does not contain %s:\n%s", msg, log)
		}
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		text  string
		spans []regex.Span
		want  string
	}{
		{"abc", nil, "abc"},
		{"", nil, ""},
		{"abc", []regex.Span{{Start: 0, End: 3}}, "[abc]"},
		{"abcabc", []regex.Span{{Start: 1, End: 2}, {Start: 4, End: 5}}, "a[b]ca[b]c"},
		{"ab", []regex.Span{{Start: 1, End: 1}}, "a[]b"},
		{"ab", []regex.Span{{Start: 0, End: 1}, {Start: 1, End: 2}}, "[a][b]"},
	}

	for _, test := range tests {
		if got := highlight(test.text, test.spans, plainStyle); got != test.want {
			t.Errorf("highlight(%q, %v) = %q, want %q", test.text, test.spans, got, test.want)
		}
	}
}

func TestFormatSpans(t *testing.T) {
	if got := formatSpans(nil); got != "-" {
		t.Errorf("got %q", got)
	}
	if got := formatSpans([]regex.Span{{Start: 0, End: 1}, {Start: 2, End: 4}}); got != "(0, 1), (2, 4)" {
		t.Errorf("got %q", got)
	}
}
