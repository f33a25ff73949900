// Package markdown parses post documents. It splits front matter from the
// markdown body, converts bodies into interfaces.Node trees with goldmark and
// presents those trees as HTML fragments, highlighting fenced code blocks
// that carry a language tag.
package markdown
