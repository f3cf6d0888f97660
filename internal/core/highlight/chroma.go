package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is used when no syntax theme is configured.
const DefaultStyle = "monokai"

const fallbackColor = "#f8f8f2"

// Chroma highlights with a chroma style.
type Chroma struct {
	style *chroma.Style
}

// NewChroma returns a highlighter for the named chroma style. Unknown names
// fall back to DefaultStyle.
func NewChroma(styleName string) *Chroma {
	style, ok := lookupStyle(styleName)
	if !ok {
		style = styles.Get(DefaultStyle)
	}
	if style == nil {
		style = styles.Fallback
	}
	return &Chroma{style: style}
}

// StyleExists reports whether chroma knows the named style.
func StyleExists(name string) bool {
	_, ok := lookupStyle(name)
	return ok
}

func lookupStyle(name string) (*chroma.Style, bool) {
	if style, ok := styles.Registry[name]; ok {
		return style, true
	}
	style, ok := styles.Registry[strings.ToLower(name)]
	return style, ok
}

// Highlight tokenizes text as one document with the lexer chosen by hint and
// returns one Line per input line.
func (c *Chroma) Highlight(text, hint string) ([]Line, error) {
	want := strings.Count(text, "\n") + 1

	lexer := lexerFor(hint)
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", hint, err)
	}

	tokenLines := chroma.SplitTokensIntoLines(iterator.Tokens())

	out := make([]Line, want)
	for i := 0; i < want && i < len(tokenLines); i++ {
		out[i] = Line{Spans: c.spans(tokenLines[i])}
	}
	return out, nil
}

func (c *Chroma) spans(tokens []chroma.Token) []Span {
	var spans []Span
	for _, tok := range tokens {
		text := strings.TrimRight(tok.Value, "\n")
		if text == "" {
			continue
		}

		color := c.colorOf(tok.Type)
		// merge adjacent runs of the same color
		if n := len(spans); n > 0 && spans[n-1].Color == color {
			spans[n-1].Text += text
			continue
		}
		spans = append(spans, Span{Text: text, Color: color})
	}
	return spans
}

func (c *Chroma) colorOf(t chroma.TokenType) string {
	if entry := c.style.Get(t); entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	if entry := c.style.Get(chroma.Text); entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return fallbackColor
}

func lexerFor(hint string) chroma.Lexer {
	lexer := lexers.Match("file." + hint)
	if lexer == nil {
		lexer = lexers.Match(hint)
	}
	if lexer == nil {
		lexer = lexers.Get(hint)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}
