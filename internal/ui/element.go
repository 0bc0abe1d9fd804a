// Package ui provides the small element tree that charts are rendered into.
package ui

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultWidth is the pixel width assumed for elements whose width is not
// given in pixels.
const DefaultWidth = 800

// Element is a node of the page tree. Hosts and canvases are both Elements.
type Element struct {
	Tag      string
	ID       string
	Text     string
	Class    string
	Style    map[string]string
	Children []*Element
	Parent   *Element

	surface *Surface
}

// NewElement creates a detached element with the given tag.
func NewElement(tag string) *Element {
	return &Element{
		Tag:   tag,
		Style: make(map[string]string),
	}
}

// NewText creates an element holding only text.
func NewText(tag, text string) *Element {
	e := NewElement(tag)
	e.Text = text
	return e
}

// AppendChild attaches child as the last child of e, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) *Element {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = e
	e.Children = append(e.Children, child)
	return child
}

// Append attaches several children in order and returns e.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		e.AppendChild(c)
	}
	return e
}

// RemoveChild detaches child from e. It reports whether child was found.
func (e *Element) RemoveChild(child *Element) bool {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// FindChild returns the first descendant with the given tag, searching
// depth first.
func (e *Element) FindChild(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
		if found := c.FindChild(tag); found != nil {
			return found
		}
	}
	return nil
}

// SetStyle sets a CSS property and returns e for chaining.
func (e *Element) SetStyle(property, value string) *Element {
	if e.Style == nil {
		e.Style = make(map[string]string)
	}
	e.Style[property] = value
	return e
}

// StyleValue returns the value of a CSS property, or "".
func (e *Element) StyleValue(property string) string {
	return e.Style[property]
}

// PixelWidth resolves the element's width in pixels. Percentages are
// resolved against the parent; anything else falls back to DefaultWidth.
func (e *Element) PixelWidth() int {
	w := strings.TrimSpace(e.StyleValue("width"))
	switch {
	case strings.HasSuffix(w, "px"):
		if n, err := strconv.ParseFloat(strings.TrimSuffix(w, "px"), 64); err == nil && n > 0 {
			return int(n)
		}
	case strings.HasSuffix(w, "%") && e.Parent != nil:
		if pct, err := strconv.ParseFloat(strings.TrimSuffix(w, "%"), 64); err == nil && pct > 0 {
			return int(float64(e.Parent.PixelWidth()) * pct / 100)
		}
	}
	return DefaultWidth
}

// PixelHeight parses a pixel height, returning 0 when none is set.
func (e *Element) PixelHeight() int {
	h := strings.TrimSpace(e.StyleValue("height"))
	if !strings.HasSuffix(h, "px") {
		return 0
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(h, "px"), 64)
	if err != nil || n <= 0 {
		return 0
	}
	return int(n)
}

// StyleString renders Style as a CSS declaration list with sorted keys.
func (e *Element) StyleString() string {
	if len(e.Style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Style))
	for k := range e.Style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Style[k])
		b.WriteByte(';')
	}
	return b.String()
}
