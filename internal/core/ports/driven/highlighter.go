package driven

// Span is a contiguous run of source text sharing one display color.
// A zero color renders as default text.
type Span struct {
	Text    string
	R, G, B uint8
}

// Highlighter tokenizes source text into colored spans. Implementations
// are pure functions of their input and never fail: input that cannot be
// highlighted comes back as a single uncolored span.
type Highlighter interface {
	Highlight(filename, source string) []Span
}
