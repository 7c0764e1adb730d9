package regex

// Engine finds all non-overlapping matches of a pattern in a text.
type Engine interface {
	Pattern() string
	FindAll(text []rune) ([]Span, error)
}

var (
	_ Engine = (*Regex)(nil)
	_ Engine = (*Reference)(nil)
)

// Compare runs both engines on the text and returns the spans, that were only found by one of them.
func Compare(a, b Engine, text []rune) (onlyA, onlyB []Span, err error) {
	sa, err := a.FindAll(text)
	if err != nil {
		return nil, nil, err
	}

	sb, err := b.FindAll(text)
	if err != nil {
		return nil, nil, err
	}

	onlyA, onlyB = Diff(sa, sb)
	return onlyA, onlyB, nil
}

// Diff returns the spans, that only occur in a, and the spans, that only occur in b.
// Both slices must be ordered ascending, as returned by an Engine.
func Diff(a, b []Span) (onlyA, onlyB []Span) {
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		switch x, y := a[i], b[j]; {
		case x == y:
			i++
			j++
		case x.Start < y.Start || (x.Start == y.Start && x.End < y.End):
			onlyA = append(onlyA, x)
			i++
		default:
			onlyB = append(onlyB, y)
			j++
		}
	}

	onlyA = append(onlyA, a[i:]...)
	onlyB = append(onlyB, b[j:]...)

	return onlyA, onlyB
}
