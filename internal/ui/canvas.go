package ui

import (
	"fmt"
	"sync"
)

// CanvasTag is the tag of drawing surface elements.
const CanvasTag = "canvas"

// DefaultCanvasHeight is the fixed visual height of canvases created by
// EnsureCanvas.
const DefaultCanvasHeight = 280

// Surface is the 2D drawing context of a canvas. Chart libraries paint
// encoded output onto it. A Surface holds no reference back to its canvas or
// host, so chart handles that keep a Surface never keep a host alive.
type Surface struct {
	mu     sync.Mutex
	width  int
	height int
	mime   string
	data   []byte
	paints int
}

// NewSurface returns a blank surface of the given pixel size.
func NewSurface(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Resize changes the surface dimensions and clears it.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.mime, s.data = "", nil
}

// Paint replaces the surface content.
func (s *Surface) Paint(mime string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mime = mime
	s.data = data
	s.paints++
}

// Clear releases the painted content.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mime, s.data = "", nil
}

// Content returns the painted content and its media type.
func (s *Surface) Content() (mime string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mime, s.data
}

// Painted reports whether the surface currently holds content.
func (s *Surface) Painted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data != nil
}

// Paints counts how many times the surface has been painted.
func (s *Surface) Paints() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paints
}

func (s *Surface) String() string {
	w, h := s.Size()
	return fmt.Sprintf("surface(%dx%d)", w, h)
}

// Surface returns the drawing context of a canvas element, creating it on
// first use. It returns nil for elements that are not canvases.
func (e *Element) Surface() *Surface {
	if e.Tag != CanvasTag {
		return nil
	}
	if e.surface == nil {
		e.surface = NewSurface(e.canvasSize())
	}
	return e.surface
}

// FitSurface returns the drawing context of a canvas, resized (and so
// cleared) when the canvas layout changed since the surface was sized.
func (e *Element) FitSurface() *Surface {
	s := e.Surface()
	if s == nil {
		return nil
	}
	w, h := e.canvasSize()
	if sw, sh := s.Size(); sw != w || sh != h {
		s.Resize(w, h)
	}
	return s
}

func (e *Element) canvasSize() (width, height int) {
	height = e.PixelHeight()
	if height == 0 {
		height = DefaultCanvasHeight
	}
	return e.PixelWidth(), height
}

// EnsureCanvas returns the first canvas inside host, creating and appending
// one sized to the host's full width and the given height when none exists.
// A non-positive height selects DefaultCanvasHeight.
func EnsureCanvas(host *Element, height int) *Element {
	if c := host.FindChild(CanvasTag); c != nil {
		return c
	}
	if height <= 0 {
		height = DefaultCanvasHeight
	}
	c := NewElement(CanvasTag)
	c.SetStyle("width", "100%")
	c.SetStyle("height", fmt.Sprintf("%dpx", height))
	host.AppendChild(c)
	return c
}

// Canvases counts the canvases anywhere below e.
func (e *Element) Canvases() int {
	n := 0
	for _, c := range e.Children {
		if c.Tag == CanvasTag {
			n++
		}
		n += c.Canvases()
	}
	return n
}
