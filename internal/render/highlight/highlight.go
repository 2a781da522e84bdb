// Package highlight implements the syntax highlighter port on top of the
// chroma lexer registry.
package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/custodia-labs/repopress/internal/core/ports/driven"
)

// DefaultStyle is the chroma style used for token colors.
const DefaultStyle = "github"

// Ensure Chroma implements the port.
var _ driven.Highlighter = (*Chroma)(nil)

// Chroma tokenizes source text into colored spans using the lexer matched
// by filename.
type Chroma struct {
	style *chroma.Style
}

// New creates a highlighter with the default style.
func New() *Chroma {
	return &Chroma{style: styles.Get(DefaultStyle)}
}

// Highlight returns the source as colored spans. Inputs that no lexer
// recognizes, or that fail to tokenize, come back as a single uncolored
// span; the concatenated span text always equals the input.
func (c *Chroma) Highlight(filename, source string) []driven.Span {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return []driven.Span{{Text: source}}
	}

	var spans []driven.Span
	for tok := it(); tok != chroma.EOF; tok = it() {
		span := driven.Span{Text: tok.Value}
		if entry := c.style.Get(tok.Type); entry.Colour.IsSet() {
			span.R = entry.Colour.Red()
			span.G = entry.Colour.Green()
			span.B = entry.Colour.Blue()
		}
		spans = append(spans, span)
	}
	if len(spans) == 0 {
		return []driven.Span{{Text: source}}
	}
	return spans
}
