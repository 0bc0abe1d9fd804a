package ui

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CanvasFunc returns the node that stands in for a canvas when the tree is
// converted to HTML. A nil result keeps the empty canvas element.
type CanvasFunc func(canvas *Element) *html.Node

// Node converts e and its descendants to an html.Node tree. Text is carried
// as text nodes, so html.Render escapes it.
func (e *Element) Node(canvas CanvasFunc) *html.Node {
	if e.Tag == CanvasTag && canvas != nil {
		if n := canvas(e); n != nil {
			return n
		}
	}

	n := NewNode(e.Tag, e.Attrs()...)
	if e.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})
	}
	for _, c := range e.Children {
		n.AppendChild(c.Node(canvas))
	}
	return n
}

// Attrs returns the id, class and style of e as HTML attributes, skipping
// empty ones.
func (e *Element) Attrs() []html.Attribute {
	var attrs []html.Attribute
	if e.ID != "" {
		attrs = append(attrs, html.Attribute{Key: "id", Val: e.ID})
	}
	if e.Class != "" {
		attrs = append(attrs, html.Attribute{Key: "class", Val: e.Class})
	}
	if s := e.StyleString(); s != "" {
		attrs = append(attrs, html.Attribute{Key: "style", Val: s})
	}
	return attrs
}

// NewNode returns a detached element node.
func NewNode(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}
