package markdown

import (
	"fmt"
	"html"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// NodeFunc writes the HTML for a single node. Implementations call
// r.WriteNodes to descend into children.
type NodeFunc func(w io.Writer, node interfaces.Node, r *HTMLRenderer) error

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// HTMLRenderer presents render nodes as an HTML fragment by dispatching on
// node kind. Kinds without a registered func use the fallback, which writes
// the escaped text content of the node.
type HTMLRenderer struct {
	funcs       map[interfaces.NodeKind]NodeFunc
	fallback    NodeFunc
	highlighter *Highlighter
}

// WithNodeFunc overrides the presentation of one node kind.
func WithNodeFunc(kind interfaces.NodeKind, fn NodeFunc) HTMLOption {
	return func(r *HTMLRenderer) {
		if fn == nil {
			delete(r.funcs, kind)
			return
		}
		r.funcs[kind] = fn
	}
}

// WithFallback replaces the func used for kinds without a registered NodeFunc.
func WithFallback(fn NodeFunc) HTMLOption {
	return func(r *HTMLRenderer) {
		if fn != nil {
			r.fallback = fn
		}
	}
}

// WithHighlighter sets the highlighter for code blocks that carry a language.
// A nil highlighter presents every code block undecorated.
func WithHighlighter(h *Highlighter) HTMLOption {
	return func(r *HTMLRenderer) {
		r.highlighter = h
	}
}

// NewHTMLRenderer returns a presenter with the default funcs for every node
// kind and a monokai highlighter.
func NewHTMLRenderer(opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{
		funcs:       defaultNodeFuncs(),
		fallback:    textFallback,
		highlighter: NewHighlighter(DefaultHighlightStyle),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Write presents nodes in order.
func (r *HTMLRenderer) Write(w io.Writer, nodes []interfaces.Node) error {
	return r.WriteNodes(w, nodes)
}

// WriteNodes dispatches each node to its NodeFunc.
func (r *HTMLRenderer) WriteNodes(w io.Writer, nodes []interfaces.Node) error {
	for _, node := range nodes {
		if err := r.WriteNode(w, node); err != nil {
			return err
		}
	}
	return nil
}

// WriteNode dispatches a single node.
func (r *HTMLRenderer) WriteNode(w io.Writer, node interfaces.Node) error {
	if node == nil {
		return nil
	}
	if fn, ok := r.funcs[node.Kind()]; ok {
		return fn(w, node, r)
	}
	return r.fallback(w, node, r)
}

// Highlighter returns the configured highlighter, nil when disabled.
func (r *HTMLRenderer) Highlighter() *Highlighter {
	return r.highlighter
}

// PlainText flattens the text content of node.
func PlainText(node interfaces.Node) string {
	var b strings.Builder
	writePlain(&b, node)
	return b.String()
}

func writePlain(b *strings.Builder, node interfaces.Node) {
	switch n := node.(type) {
	case interfaces.Text:
		b.WriteString(n.Value)
	case interfaces.LineBreak:
		b.WriteByte('\n')
	case interfaces.InlineCode:
		b.WriteString(n.Code)
	case interfaces.CodeBlock:
		b.WriteString(n.Code)
	case interfaces.Image:
		b.WriteString(n.Alt)
	default:
		for _, child := range node.Children() {
			writePlain(b, child)
		}
	}
}

func defaultNodeFuncs() map[interfaces.NodeKind]NodeFunc {
	return map[interfaces.NodeKind]NodeFunc{
		interfaces.NodeText:          textFallback,
		interfaces.NodeLineBreak:     literal("<br>\n"),
		interfaces.NodeThematicBreak: literal("<hr>\n"),
		interfaces.NodeParagraph:     wrap("p", "\n"),
		interfaces.NodeBlockquote:    wrap("blockquote", "\n"),
		interfaces.NodeTableCell:     tableCellHTML,
		interfaces.NodeTableRow:      tableRowHTML,
		interfaces.NodeTable:         tableHTML,
		interfaces.NodeInline:        inlineHTML,
		interfaces.NodeInlineCode:    inlineCodeHTML,
		interfaces.NodeCodeBlock:     codeBlockHTML,
		interfaces.NodeHeading:       headingHTML,
		interfaces.NodeList:          listHTML,
		interfaces.NodeListItem:      listItemHTML,
		interfaces.NodeLink:          linkHTML,
		interfaces.NodeImage:         imageHTML,
	}
}

func textFallback(w io.Writer, node interfaces.Node, _ *HTMLRenderer) error {
	_, err := io.WriteString(w, html.EscapeString(PlainText(node)))
	return err
}

func literal(markup string) NodeFunc {
	return func(w io.Writer, _ interfaces.Node, _ *HTMLRenderer) error {
		_, err := io.WriteString(w, markup)
		return err
	}
}

func wrap(tag, suffix string) NodeFunc {
	return func(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
		if _, err := fmt.Fprintf(w, "<%s>", tag); err != nil {
			return err
		}
		if err := r.WriteNodes(w, node.Children()); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "</%s>%s", tag, suffix)
		return err
	}
}

func inlineHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	inline, ok := node.(interfaces.Inline)
	if !ok {
		return r.fallback(w, node, r)
	}
	tag := "em"
	switch inline.Format {
	case interfaces.FormatStrong:
		tag = "strong"
	case interfaces.FormatStrikethrough:
		tag = "del"
	}
	return wrap(tag, "")(w, node, r)
}

func inlineCodeHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	code, ok := node.(interfaces.InlineCode)
	if !ok {
		return r.fallback(w, node, r)
	}
	_, err := fmt.Fprintf(w, "<code>%s</code>", html.EscapeString(code.Code))
	return err
}

func codeBlockHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	block, ok := node.(interfaces.CodeBlock)
	if !ok {
		return r.fallback(w, node, r)
	}
	if block.Language != "" && r.highlighter != nil {
		if err := r.highlighter.Highlight(w, block.Language, block.Code); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
	_, err := fmt.Fprintf(w, "<pre><code>%s</code></pre>\n", html.EscapeString(block.Code))
	return err
}

func headingHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	heading, ok := node.(interfaces.Heading)
	if !ok {
		return r.fallback(w, node, r)
	}
	level := min(max(heading.Level, 1), 6)
	return wrap("h"+strconv.Itoa(level), "\n")(w, node, r)
}

func listHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	list, ok := node.(interfaces.List)
	if !ok {
		return r.fallback(w, node, r)
	}
	open, tag := "<ul>\n", "ul"
	if list.Ordered {
		tag = "ol"
		open = "<ol>\n"
		if list.Start != 0 && list.Start != 1 {
			open = fmt.Sprintf("<ol start=\"%d\">\n", list.Start)
		}
	}
	if _, err := io.WriteString(w, open); err != nil {
		return err
	}
	if err := r.WriteNodes(w, list.Items); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</%s>\n", tag)
	return err
}

func listItemHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	item, ok := node.(interfaces.ListItem)
	if !ok {
		return r.fallback(w, node, r)
	}
	if _, err := io.WriteString(w, "<li>"); err != nil {
		return err
	}
	if item.Checked != nil {
		box := `<input type="checkbox" disabled> `
		if *item.Checked {
			box = `<input type="checkbox" checked disabled> `
		}
		if _, err := io.WriteString(w, box); err != nil {
			return err
		}
	}
	if err := r.WriteNodes(w, item.Nodes); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</li>\n")
	return err
}

func linkHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	link, ok := node.(interfaces.Link)
	if !ok {
		return r.fallback(w, node, r)
	}
	if _, err := fmt.Fprintf(w, `<a href="%s"%s>`, html.EscapeString(safeURL(link.Destination)), titleAttr(link.Title)); err != nil {
		return err
	}
	if err := r.WriteNodes(w, link.Nodes); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</a>")
	return err
}

func imageHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	image, ok := node.(interfaces.Image)
	if !ok {
		return r.fallback(w, node, r)
	}
	_, err := fmt.Fprintf(w, `<img src="%s" alt="%s"%s>`,
		html.EscapeString(safeURL(image.Source)),
		html.EscapeString(image.Alt),
		titleAttr(image.Title),
	)
	return err
}

func tableHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	table, ok := node.(interfaces.Table)
	if !ok {
		return r.fallback(w, node, r)
	}
	if _, err := io.WriteString(w, "<table>\n"); err != nil {
		return err
	}
	rows := table.Rows
	if table.Header && len(rows) > 0 {
		if err := writeSection(w, "thead", rows[:1], r); err != nil {
			return err
		}
		rows = rows[1:]
	}
	if len(rows) > 0 {
		if err := writeSection(w, "tbody", rows, r); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</table>\n")
	return err
}

func writeSection(w io.Writer, tag string, rows []interfaces.Node, r *HTMLRenderer) error {
	if _, err := fmt.Fprintf(w, "<%s>\n", tag); err != nil {
		return err
	}
	if err := r.WriteNodes(w, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</%s>\n", tag)
	return err
}

func tableRowHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	row, ok := node.(interfaces.TableRow)
	if !ok {
		return r.fallback(w, node, r)
	}
	if _, err := io.WriteString(w, "<tr>\n"); err != nil {
		return err
	}
	for _, child := range row.Cells {
		cell, ok := child.(interfaces.TableCell)
		if !ok {
			if err := r.WriteNode(w, child); err != nil {
				return err
			}
			continue
		}
		if err := writeCell(w, cell, row.Header, r); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tr>\n")
	return err
}

func tableCellHTML(w io.Writer, node interfaces.Node, r *HTMLRenderer) error {
	cell, ok := node.(interfaces.TableCell)
	if !ok {
		return r.fallback(w, node, r)
	}
	return writeCell(w, cell, false, r)
}

func writeCell(w io.Writer, cell interfaces.TableCell, header bool, r *HTMLRenderer) error {
	tag := "td"
	if header {
		tag = "th"
	}
	align := ""
	if cell.Align != "" {
		align = fmt.Sprintf(` style="text-align:%s"`, html.EscapeString(cell.Align))
	}
	if _, err := fmt.Fprintf(w, "<%s%s>", tag, align); err != nil {
		return err
	}
	if err := r.WriteNodes(w, cell.Nodes); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</%s>\n", tag)
	return err
}

func titleAttr(title string) string {
	if title == "" {
		return ""
	}
	return fmt.Sprintf(` title="%s"`, html.EscapeString(title))
}

var safeSchemes = map[string]struct{}{
	"http":   {},
	"https":  {},
	"mailto": {},
	"tel":    {},
}

// safeURL replaces destinations whose scheme is not in safeSchemes with "#".
// Relative references pass through.
func safeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "#"
	}
	if parsed.Scheme == "" {
		return trimmed
	}
	if _, ok := safeSchemes[strings.ToLower(parsed.Scheme)]; ok {
		return trimmed
	}
	return "#"
}
