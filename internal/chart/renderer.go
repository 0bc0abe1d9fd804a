package chart

import (
	"fmt"
	"log/slog"

	"github.com/user/dashboard-charts-go/internal/ui"
)

// Renderer draws charts into host elements, replacing any chart previously
// drawn into the same host.
type Renderer struct {
	library      Library
	registry     *Registry
	canvasHeight int
	log          *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCanvasHeight sets the height of canvases the renderer creates.
func WithCanvasHeight(px int) Option {
	return func(r *Renderer) { r.canvasHeight = px }
}

// WithLogger sets the logger used for render events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// NewRenderer creates a renderer drawing with lib.
func NewRenderer(lib Library, opts ...Option) *Renderer {
	r := &Renderer{
		library:      lib,
		registry:     NewRegistry(),
		canvasHeight: ui.DefaultCanvasHeight,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the renderer's host registry.
func (r *Renderer) Registry() *Registry { return r.registry }

// Render draws a single-series chart of the given kind into host. A nil host
// is a no-op. The chart previously drawn into host, if any, is destroyed
// before the new one is built, even when building the new one fails.
func (r *Renderer) Render(host *ui.Element, kind Kind, labels []string, datasetLabel string, values []float64) error {
	if host == nil {
		return nil
	}

	canvas := ui.EnsureCanvas(host, r.canvasHeight)
	if r.registry.Delete(host) {
		r.log.Debug("Destroyed previous chart", "host", host.ID)
	}

	cfg := NewConfig(kind, labels, datasetLabel, values)
	handle, err := r.library.New(canvas.FitSurface(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create %s chart with %s: %w", kind, r.library.Name(), err)
	}

	r.registry.Set(host, &Instance{cfg: cfg, library: r.library.Name(), handle: handle})
	r.log.Debug("Rendered chart", "host", host.ID, "kind", kind, "library", r.library.Name(), "points", len(cfg.Series().Data))
	return nil
}

// Current returns the live chart of host.
func (r *Renderer) Current(host *ui.Element) (*Instance, bool) {
	if host == nil {
		return nil, false
	}
	return r.registry.Get(host)
}

// Release destroys the chart of host, for hosts leaving the page.
func (r *Renderer) Release(host *ui.Element) {
	if host == nil {
		return
	}
	r.registry.Delete(host)
}
