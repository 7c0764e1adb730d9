package regex

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/magnetde/starlark-turtle/syntax"
)

func spans(a ...int) []Span {
	if len(a) == 0 {
		return nil
	}

	s := make([]Span, 0, len(a)/2)
	for i := 0; i+1 < len(a); i += 2 {
		s = append(s, Span{Start: a[i], End: a[i+1]})
	}

	return s
}

var searchTests = []struct {
	pattern string
	text    string
	want    []Span
}{
	{"[BCP]at", "1BatCatPatRat", spans(1, 4, 4, 7, 7, 10)},
	{".[BCP]at", "1BatCatPatRat", spans(0, 4, 6, 10)},
	{"e{2,4}", "$$OleeeOlaOleOleOla", spans(4, 7)},
	{"[BCP]at", "ÉBat Cat", spans(1, 4, 5, 8)},
	{"[BCP]at", "\xffBat", spans(1, 4)},
	{"é+", "aéé b é", spans(1, 3, 6, 7)},
	{"ab", "xaxabab", spans(3, 5, 5, 7)},
	{"a*", "baa", spans(0, 0, 1, 3)},
	{"a**", "bab", spans(0, 0, 1, 2, 2, 2)},
	{"a{2}", "aaa", spans(1, 3)},
	{"a{2}", "aaaa", spans(2, 4)},
	{"[ab]c", "acbcc", spans(0, 2, 2, 4)},
	{"[]", "abc", nil},
	{"", "abc", nil},
	{"a", "", nil},
	{"x", "abc", nil},
}

func TestSearch(t *testing.T) {
	for _, test := range searchTests {
		got, err := Search(test.pattern, test.text)
		if err != nil {
			t.Errorf("Search(%q, %q): unexpected error: %v", test.pattern, test.text, err)
			continue
		}

		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Search(%q, %q) mismatch (-want +got):\n%s", test.pattern, test.text, diff)
		}
	}
}

func TestCompiledSearch(t *testing.T) {
	re := MustCompile("e{2,4}", 0)

	for i := 0; i < 3; i++ {
		got := re.Search("$$OleeeOlaOleOleOla")
		if diff := cmp.Diff(spans(4, 7), got); diff != "" {
			t.Errorf("search %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	if re.Pattern() != "e{2,4}" || re.String() != "e{2,4}" {
		t.Errorf("got pattern %q", re.Pattern())
	}
}

func TestSearchStopAtMax(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		want    []Span
	}{
		{"a{2}", "aaa", spans(0, 2)},
		{"a{2}", "aaaa", spans(0, 2, 2, 4)},
		{"a{0}", "ab", spans(0, 0, 1, 1)},
		{"[ab]{1,2}", "abab", spans(0, 2, 2, 4)},
	}

	for _, test := range tests {
		re := MustCompile(test.pattern, FlagStopAtMax)

		if diff := cmp.Diff(test.want, re.Search(test.text)); diff != "" {
			t.Errorf("Search(%q, %q) mismatch (-want +got):\n%s", test.pattern, test.text, diff)
		}
	}
}

func TestSearchOrdered(t *testing.T) {
	patterns := []string{"a", "a*", "a+", ".", "[ab]+", "a{1,2}", "[a[bc]+]", ".a", "a**", "[]", "b{0}"}
	texts := []string{"", "a", "aaaa", "abcabcaab", "bbbb", "xaxbxc", "äaäa"}

	for _, p := range patterns {
		re := MustCompile(p, 0)

		for _, text := range texts {
			got := re.Search(text)
			n := len([]rune(text))

			for i, s := range got {
				if s.Start < 0 || s.End < s.Start || s.End > n {
					t.Errorf("Search(%q, %q): span %v out of bounds", p, text, s)
				}
				if i > 0 {
					prev := got[i-1]
					if s.Start < prev.End || s.Start <= prev.Start {
						t.Errorf("Search(%q, %q): span %v after %v", p, text, s, prev)
					}
				}
			}
		}
	}
}

func TestSearchRunes(t *testing.T) {
	re := MustCompile("[BCP]at", 0)

	got := re.SearchRunes([]rune("1BatCatPatRat"))
	if diff := cmp.Diff(spans(1, 4, 4, 7, 7, 10), got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchAt(t *testing.T) {
	re := MustCompile("[BCP]at", 0)
	text := []rune("1BatCatPatRat")

	if ok, n := re.MatchAt(text, 4); !ok || n != 3 {
		t.Errorf("MatchAt(4) = (%v, %d), want (true, 3)", ok, n)
	}
	if ok, n := re.MatchAt(text, 10); ok || n != 0 {
		t.Errorf("MatchAt(10) = (%v, %d), want (false, 0)", ok, n)
	}
}

func TestNew(t *testing.T) {
	tree := seq(lit('a'), rep(alt(lit('b')), 1, syntax.Unbounded))
	re := New(tree, 0)

	if re.Pattern() != "a[b]+" {
		t.Errorf("got pattern %q, want %q", re.Pattern(), "a[b]+")
	}

	if diff := cmp.Diff(spans(0, 3, 4, 6), re.Search("abbxab")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Search("a{10,9}", "aaaaaaaaaa")

	var e *syntax.Error
	if !errors.As(err, &e) || e.Kind != syntax.ErrRangeInvalid {
		t.Errorf("got %v, want RangeInvalid", err)
	}

	if _, err := Compile("a", Flags(1<<5)); err == nil {
		t.Error("expected error for unsupported flags")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic")
		}
	}()

	MustCompile("a{x}", 0)
}

func TestFlagsString(t *testing.T) {
	tests := map[Flags]string{
		0:             "NOFLAG",
		FlagStopAtMax: "STOPATMAX",
		Flags(6):      "Flags(6)",
	}

	for f, want := range tests {
		if got := f.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestSpan(t *testing.T) {
	s := Span{Start: 1, End: 4}

	if s.Len() != 3 {
		t.Errorf("got length %d, want 3", s.Len())
	}
	if s.String() != "(1, 4)" {
		t.Errorf("got %q, want %q", s.String(), "(1, 4)")
	}
}

func TestSearchIndex(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		want    []Span
	}{
		{"[BCP]at", "1BatCat", spans(1, 4, 4, 7)},
		{"[BCP]at", "ÉBat Cat", spans(2, 5, 6, 9)},
		{"é+", "aéé b", spans(1, 5)},
		{"a", "\xffa", spans(1, 2)},
	}

	for _, test := range tests {
		got := MustCompile(test.pattern, 0).SearchIndex(test.text)

		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("SearchIndex(%q, %q) mismatch (-want +got):\n%s", test.pattern, test.text, diff)
		}
	}
}

func TestSearchInvalidUTF8(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		chars   []Span
		bytes   []Span
	}{
		{"é", "x\xe9y", nil, nil},
		{"ÿ", "x\xffy", nil, nil},
		{"\xff", "x\xffy", spans(1, 2), spans(1, 2)},
		{"�", "x\xffy", spans(1, 2), spans(1, 2)},
		{"x.y", "x\xe9y", spans(0, 3), spans(0, 3)},
		{".", "é\xff", spans(0, 1, 1, 2), spans(0, 2, 2, 3)},
		{"[BCP]at", "\xe9Bat\xc3", spans(1, 4), spans(1, 4)},
	}

	for _, test := range tests {
		re := MustCompile(test.pattern, 0)

		if diff := cmp.Diff(test.chars, re.Search(test.text)); diff != "" {
			t.Errorf("Search(%q, %q) mismatch (-want +got):\n%s", test.pattern, test.text, diff)
		}
		if diff := cmp.Diff(test.bytes, re.SearchIndex(test.text)); diff != "" {
			t.Errorf("SearchIndex(%q, %q) mismatch (-want +got):\n%s", test.pattern, test.text, diff)
		}
	}
}

// A compiled pattern and its tree are shared by all goroutines.
func TestSearchConcurrent(t *testing.T) {
	re := MustCompile("[BCP]at", 0)
	tree := re.Tree()

	text := "1BatCatPatRat"
	chars := []rune(text)
	want := spans(1, 4, 4, 7, 7, 10)

	var wg sync.WaitGroup
	errs := make(chan string, 16)

	for g := 0; g < 16; g++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < 200; i++ {
				if got := re.Search(text); !cmp.Equal(want, got) {
					errs <- "Search: got " + fmt.Sprint(got)
					return
				}
				if ok, n := Match(tree, chars, 4); !ok || n != 3 {
					errs <- fmt.Sprintf("Match: got (%v, %d), want (true, 3)", ok, n)
					return
				}
				if ok, _ := re.MatchAt(chars, 0); ok {
					errs <- "MatchAt: got a match at 0"
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
