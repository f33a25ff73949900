package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle names the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// Highlighter renders code blocks with chroma.
type Highlighter struct {
	style   *chroma.Style
	options []chromahtml.Option
}

// NewHighlighter resolves styleName through the chroma style registry,
// falling back to chroma's default style for unknown names.
func NewHighlighter(styleName string, opts ...chromahtml.Option) *Highlighter {
	if strings.TrimSpace(styleName) == "" {
		styleName = DefaultHighlightStyle
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		style:   style,
		options: opts,
	}
}

// StyleName reports the resolved chroma style.
func (h *Highlighter) StyleName() string {
	return h.style.Name
}

// Highlight writes code tokenised for language inside a div wrapper.
// Languages chroma does not know are emitted through the plain text lexer.
func (h *Highlighter) Highlight(w io.Writer, language, code string) error {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("highlight %s: %w", language, err)
	}

	options := append([]chromahtml.Option{
		chromahtml.WithPreWrapper(divWrapper{language: language}),
	}, h.options...)
	formatter := chromahtml.New(options...)

	if err := formatter.Format(w, h.style, iterator); err != nil {
		return fmt.Errorf("highlight %s: %w", language, err)
	}
	return nil
}

const whitespaceStyle = "white-space:pre;"

// divWrapper replaces chroma's <pre> wrapper with a <div> that keeps
// white-space:pre so indentation survives.
type divWrapper struct {
	language string
}

func (d divWrapper) Start(code bool, styleAttr string) string {
	styleAttr = withWhitespaceStyle(styleAttr)
	if code {
		return fmt.Sprintf(`<div%s><code class="language-%s">`, styleAttr, d.language)
	}
	return fmt.Sprintf(`<div%s>`, styleAttr)
}

// withWhitespaceStyle appends whitespaceStyle to a ` style="..."` attribute,
// or creates one when chroma emitted none (class based output).
func withWhitespaceStyle(styleAttr string) string {
	inner, ok := strings.CutPrefix(strings.TrimSpace(styleAttr), `style="`)
	if !ok {
		return fmt.Sprintf(` style="%s"%s`, whitespaceStyle, styleAttr)
	}
	inner = strings.TrimSuffix(inner, `"`)
	if inner != "" && !strings.HasSuffix(inner, ";") {
		inner += ";"
	}
	return fmt.Sprintf(` style="%s%s"`, inner, whitespaceStyle)
}

func (d divWrapper) End(code bool) string {
	if code {
		return "</code></div>"
	}
	return "</div>"
}
