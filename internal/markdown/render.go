package markdown

import (
	"io"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var languagePattern = regexp.MustCompile(`language-(\w+)`)

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
}

// Renderer converts markdown bodies into render node trees. A Renderer is
// immutable after construction and safe for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
	html   *HTMLRenderer
}

var _ interfaces.MarkdownRenderer = (*Renderer)(nil)

// NewRenderer builds a renderer that enables the named goldmark extensions.
// Without extensions the body is parsed as plain CommonMark. Unknown names are
// ignored.
func NewRenderer(opts interfaces.ParseOptions, htmlOpts ...HTMLOption) *Renderer {
	return &Renderer{
		engine: newGoldmarkEngine(opts),
		html:   NewHTMLRenderer(htmlOpts...),
	}
}

// Render parses body and returns its block level nodes. Render never fails:
// constructs without a dedicated node degrade to literal Text.
func (r *Renderer) Render(body []byte) []interfaces.Node {
	doc := r.engine.Parser().Parse(text.NewReader(body))
	c := converter{source: body}
	return c.children(doc)
}

// RenderHTML renders body and writes the HTML fragment for the resulting
// nodes to w.
func (r *Renderer) RenderHTML(w io.Writer, body []byte) error {
	return r.html.Write(w, r.Render(body))
}

// HTML exposes the presenter used by RenderHTML.
func (r *Renderer) HTML() *HTMLRenderer {
	return r.html
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)
	if len(exts) == 0 {
		return goldmark.New()
	}
	return goldmark.New(goldmark.WithExtensions(exts...))
}

func collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

// KnownExtension reports whether name maps to a registered extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// LanguageFromClass extracts the language token from a "language-xxx" class.
func LanguageFromClass(class string) string {
	match := languagePattern.FindStringSubmatch(class)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

type converter struct {
	source []byte
}

func (c converter) children(parent ast.Node) []interfaces.Node {
	var out []interfaces.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = appendMerged(out, c.convert(child)...)
	}
	return out
}

func (c converter) convert(n ast.Node) []interfaces.Node {
	switch node := n.(type) {
	case *ast.Paragraph:
		return []interfaces.Node{interfaces.Paragraph{Nodes: c.children(node)}}
	case *ast.TextBlock:
		return c.children(node)
	case *ast.Heading:
		return []interfaces.Node{interfaces.Heading{Level: node.Level, Nodes: c.children(node)}}
	case *ast.ThematicBreak:
		return []interfaces.Node{interfaces.ThematicBreak{}}
	case *ast.Blockquote:
		return []interfaces.Node{interfaces.Blockquote{Nodes: c.children(node)}}
	case *ast.List:
		return []interfaces.Node{interfaces.List{
			Ordered: node.IsOrdered(),
			Start:   node.Start,
			Items:   c.children(node),
		}}
	case *ast.ListItem:
		return []interfaces.Node{interfaces.ListItem{
			Checked: taskState(node),
			Nodes:   c.children(node),
		}}
	case *ast.FencedCodeBlock:
		var language string
		if info := node.Language(c.source); len(info) > 0 {
			language = LanguageFromClass("language-" + string(info))
		}
		return []interfaces.Node{interfaces.CodeBlock{
			Language: language,
			Code:     c.code(node),
		}}
	case *ast.CodeBlock:
		return []interfaces.Node{interfaces.CodeBlock{Code: c.code(node)}}
	case *ast.HTMLBlock:
		value := c.lines(node)
		if node.HasClosure() {
			value += string(node.ClosureLine.Value(c.source))
		}
		return []interfaces.Node{interfaces.Text{Value: value}}
	case *ast.Text:
		out := []interfaces.Node{interfaces.Text{Value: string(node.Segment.Value(c.source))}}
		switch {
		case node.HardLineBreak():
			out = append(out, interfaces.LineBreak{})
		case node.SoftLineBreak():
			out = append(out, interfaces.Text{Value: "\n"})
		}
		return out
	case *ast.String:
		return []interfaces.Node{interfaces.Text{Value: string(node.Value)}}
	case *ast.CodeSpan:
		return []interfaces.Node{interfaces.InlineCode{Code: c.plain(node)}}
	case *ast.Emphasis:
		format := interfaces.FormatEmphasis
		if node.Level >= 2 {
			format = interfaces.FormatStrong
		}
		return []interfaces.Node{interfaces.Inline{Format: format, Nodes: c.children(node)}}
	case *east.Strikethrough:
		return []interfaces.Node{interfaces.Inline{
			Format: interfaces.FormatStrikethrough,
			Nodes:  c.children(node),
		}}
	case *ast.Link:
		return []interfaces.Node{interfaces.Link{
			Destination: string(node.Destination),
			Title:       string(node.Title),
			Nodes:       c.children(node),
		}}
	case *ast.AutoLink:
		return []interfaces.Node{interfaces.Link{
			Destination: string(node.URL(c.source)),
			Nodes:       []interfaces.Node{interfaces.Text{Value: string(node.Label(c.source))}},
		}}
	case *ast.Image:
		return []interfaces.Node{interfaces.Image{
			Source: string(node.Destination),
			Title:  string(node.Title),
			Alt:    c.plain(node),
		}}
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			segment := node.Segments.At(i)
			b.Write(segment.Value(c.source))
		}
		return []interfaces.Node{interfaces.Text{Value: b.String()}}
	case *east.TaskCheckBox:
		return nil
	case *east.Table:
		return []interfaces.Node{c.table(node)}
	default:
		if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
			return []interfaces.Node{interfaces.Text{Value: c.lines(n)}}
		}
		if value := c.plain(n); value != "" {
			return []interfaces.Node{interfaces.Text{Value: value}}
		}
		return nil
	}
}

func (c converter) table(node *east.Table) interfaces.Table {
	table := interfaces.Table{}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			table.Header = true
			table.Rows = append(table.Rows, interfaces.TableRow{Header: true, Cells: c.cells(row)})
		case *east.TableRow:
			table.Rows = append(table.Rows, interfaces.TableRow{Cells: c.cells(row)})
		}
	}
	return table
}

func (c converter) cells(row ast.Node) []interfaces.Node {
	var cells []interfaces.Node
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		cell, ok := child.(*east.TableCell)
		if !ok {
			continue
		}
		align := ""
		if cell.Alignment != east.AlignNone {
			align = cell.Alignment.String()
		}
		cells = append(cells, interfaces.TableCell{Align: align, Nodes: c.children(cell)})
	}
	return cells
}

// code joins the raw lines of a code block and drops exactly one trailing
// newline.
func (c converter) code(n ast.Node) string {
	return strings.TrimSuffix(c.lines(n), "\n")
}

func (c converter) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(c.source))
	}
	return b.String()
}

// plain flattens the text content of n and its descendants.
func (c converter) plain(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := child.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(c.source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func taskState(item *ast.ListItem) *bool {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	box, ok := first.FirstChild().(*east.TaskCheckBox)
	if !ok {
		return nil
	}
	checked := box.IsChecked
	return &checked
}

// appendMerged appends nodes to out, joining adjacent Text values.
func appendMerged(out []interfaces.Node, nodes ...interfaces.Node) []interfaces.Node {
	for _, n := range nodes {
		current, isText := n.(interfaces.Text)
		if isText && len(out) > 0 {
			if previous, ok := out[len(out)-1].(interfaces.Text); ok {
				out[len(out)-1] = interfaces.Text{Value: previous.Value + current.Value}
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
