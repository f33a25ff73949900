package interfaces

import "io"

// NodeKind tags every render node variant.
type NodeKind string

const (
	NodeText          NodeKind = "text"
	NodeLineBreak     NodeKind = "line_break"
	NodeInline        NodeKind = "inline"
	NodeInlineCode    NodeKind = "inline_code"
	NodeCodeBlock     NodeKind = "code_block"
	NodeHeading       NodeKind = "heading"
	NodeParagraph     NodeKind = "paragraph"
	NodeList          NodeKind = "list"
	NodeListItem      NodeKind = "list_item"
	NodeLink          NodeKind = "link"
	NodeImage         NodeKind = "image"
	NodeBlockquote    NodeKind = "blockquote"
	NodeThematicBreak NodeKind = "thematic_break"
	NodeTable         NodeKind = "table"
	NodeTableRow      NodeKind = "table_row"
	NodeTableCell     NodeKind = "table_cell"
)

// Node is one parsed markdown construct ready for presentation. The set of
// implementations is closed; switch on the concrete type or on Kind.
type Node interface {
	Kind() NodeKind
	// Children returns nested nodes, nil for leaves.
	Children() []Node
	node()
}

// InlineFormat selects the generic inline formatting carried by Inline.
type InlineFormat string

const (
	FormatEmphasis      InlineFormat = "emphasis"
	FormatStrong        InlineFormat = "strong"
	FormatStrikethrough InlineFormat = "strikethrough"
)

// Text is literal text. Unknown constructs degrade to Text.
type Text struct {
	Value string
}

// LineBreak is a hard line break inside a paragraph.
type LineBreak struct{}

// Inline wraps children in emphasis, strong or strikethrough formatting.
type Inline struct {
	Format InlineFormat
	Nodes  []Node
}

// InlineCode is a code span, always presented undecorated.
type InlineCode struct {
	Code string
}

// CodeBlock is a fenced or indented code block. Language is empty when the
// block carries no language tag; Code has exactly one trailing newline removed.
type CodeBlock struct {
	Language string
	Code     string
}

// Heading is an ATX or setext heading with Level in 1..6.
type Heading struct {
	Level int
	Nodes []Node
}

// Paragraph groups inline nodes.
type Paragraph struct {
	Nodes []Node
}

// List is an ordered or bullet list whose children are ListItem values.
type List struct {
	Ordered bool
	Start   int
	Items   []Node
}

// ListItem is one entry of a List. Checked is non-nil for task list items.
type ListItem struct {
	Checked *bool
	Nodes   []Node
}

// Link points at Destination and wraps its label nodes.
type Link struct {
	Destination string
	Title       string
	Nodes       []Node
}

// Image references Source with the flattened alt text.
type Image struct {
	Source string
	Title  string
	Alt    string
}

// Blockquote wraps quoted blocks.
type Blockquote struct {
	Nodes []Node
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Table is a GFM table; the first row is the header when Header is true.
type Table struct {
	Header bool
	Rows   []Node
}

// TableRow holds TableCell nodes.
type TableRow struct {
	Header bool
	Cells  []Node
}

// TableCell holds the inline nodes of a single cell.
type TableCell struct {
	Align string
	Nodes []Node
}

func (Text) Kind() NodeKind          { return NodeText }
func (LineBreak) Kind() NodeKind     { return NodeLineBreak }
func (Inline) Kind() NodeKind        { return NodeInline }
func (InlineCode) Kind() NodeKind    { return NodeInlineCode }
func (CodeBlock) Kind() NodeKind     { return NodeCodeBlock }
func (Heading) Kind() NodeKind       { return NodeHeading }
func (Paragraph) Kind() NodeKind     { return NodeParagraph }
func (List) Kind() NodeKind          { return NodeList }
func (ListItem) Kind() NodeKind      { return NodeListItem }
func (Link) Kind() NodeKind          { return NodeLink }
func (Image) Kind() NodeKind         { return NodeImage }
func (Blockquote) Kind() NodeKind    { return NodeBlockquote }
func (ThematicBreak) Kind() NodeKind { return NodeThematicBreak }
func (Table) Kind() NodeKind         { return NodeTable }
func (TableRow) Kind() NodeKind      { return NodeTableRow }
func (TableCell) Kind() NodeKind     { return NodeTableCell }

func (Text) Children() []Node          { return nil }
func (LineBreak) Children() []Node     { return nil }
func (n Inline) Children() []Node      { return n.Nodes }
func (InlineCode) Children() []Node    { return nil }
func (CodeBlock) Children() []Node     { return nil }
func (n Heading) Children() []Node     { return n.Nodes }
func (n Paragraph) Children() []Node   { return n.Nodes }
func (n List) Children() []Node        { return n.Items }
func (n ListItem) Children() []Node    { return n.Nodes }
func (n Link) Children() []Node        { return n.Nodes }
func (Image) Children() []Node         { return nil }
func (n Blockquote) Children() []Node  { return n.Nodes }
func (ThematicBreak) Children() []Node { return nil }
func (n Table) Children() []Node       { return n.Rows }
func (n TableRow) Children() []Node    { return n.Cells }
func (n TableCell) Children() []Node   { return n.Nodes }

func (Text) node()          {}
func (LineBreak) node()     {}
func (Inline) node()        {}
func (InlineCode) node()    {}
func (CodeBlock) node()     {}
func (Heading) node()       {}
func (Paragraph) node()     {}
func (List) node()          {}
func (ListItem) node()      {}
func (Link) node()          {}
func (Image) node()         {}
func (Blockquote) node()    {}
func (ThematicBreak) node() {}
func (Table) node()         {}
func (TableRow) node()      {}
func (TableCell) node()     {}

// MarkdownRenderer converts a markdown body into render nodes and, for
// callers that want markup directly, into an HTML fragment.
type MarkdownRenderer interface {
	Render(body []byte) []Node
	RenderHTML(w io.Writer, body []byte) error
}

// ParseOptions selects the goldmark extensions enabled while parsing bodies.
type ParseOptions struct {
	Extensions []string
}
