package table

import "strings"

// Renderable is the content of a table cell: either plain text or a small
// markup tree that a presentation adapter knows how to draw.
type Renderable struct {
	text string
	node *Node
}

// Node is a markup element. Tag is an element name such as "span", "div" or
// "label"; adapters decide how to draw it.
type Node struct {
	Tag      string
	Class    string
	Style    string
	Children []Renderable
}

// Text returns a plain text renderable.
func Text(s string) Renderable {
	return Renderable{text: s}
}

// Markup returns a renderable wrapping n.
func Markup(n *Node) Renderable {
	return Renderable{node: n}
}

// Element builds a markup renderable in one call.
func Element(tag, class, style string, children ...Renderable) Renderable {
	return Markup(&Node{Tag: tag, Class: class, Style: style, Children: children})
}

// IsMarkup reports whether r carries a markup node.
func (r Renderable) IsMarkup() bool {
	return r.node != nil
}

// Node returns the markup node, or nil for text.
func (r Renderable) Node() *Node {
	return r.node
}

// String flattens r to its visible text.
func (r Renderable) String() string {
	if r.node == nil {
		return r.text
	}
	var b strings.Builder
	r.node.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for i, c := range n.Children {
		if i > 0 && n.Tag == "div" {
			b.WriteByte(' ')
		}
		if c.node == nil {
			b.WriteString(c.text)
			continue
		}
		c.node.writeText(b)
	}
}
