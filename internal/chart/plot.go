package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/user/dashboard-charts-go/internal/ui"
)

// MIMEPNG is the media type painted by PlotLibrary.
const MIMEPNG = "image/png"

var seriesColor = color.RGBA{R: 54, G: 162, B: 235, A: 255}

// PlotLibrary draws charts with gonum/plot and paints them as PNG.
type PlotLibrary struct {
	DPI int
}

// NewPlotLibrary returns a PlotLibrary at screen resolution.
func NewPlotLibrary() *PlotLibrary {
	return &PlotLibrary{DPI: 96}
}

func (l *PlotLibrary) Name() string { return "plot" }

// New builds the plot described by cfg and paints it onto surface.
func (l *PlotLibrary) New(surface *ui.Surface, cfg Config) (Handle, error) {
	p, err := l.build(cfg)
	if err != nil {
		return nil, err
	}

	w, h := surface.Size()
	img, err := l.encode(p, w, h)
	if err != nil {
		return nil, err
	}
	surface.Paint(MIMEPNG, img)
	return &surfaceHandle{surface: surface}, nil
}

func (l *PlotLibrary) build(cfg Config) (*plot.Plot, error) {
	p := plot.New()
	series := cfg.Series()

	// Without values the frame, grid and legend are still drawn; the
	// series plotter is only added when there is something to plot.
	hasData := len(series.Data) > 0
	var thumb plot.Thumbnailer
	switch cfg.Type {
	case KindLine:
		line, err := plotter.NewLine(categoryXYs(series.Data))
		if err != nil {
			return nil, fmt.Errorf("failed to create line for %q: %w", series.Label, err)
		}
		line.Color = seriesColor
		line.LineStyle.Width = vg.Points(2)
		if hasData {
			p.Add(line)
		}
		thumb = line
	case KindBar:
		bars := &plotter.BarChart{Color: seriesColor, Width: vg.Points(20)}
		if hasData {
			var err error
			bars, err = plotter.NewBarChart(plotter.Values(series.Data), vg.Points(20))
			if err != nil {
				return nil, fmt.Errorf("failed to create bar chart for %q: %w", series.Label, err)
			}
			bars.Color = seriesColor
			bars.LineStyle.Width = 0
			p.Add(bars)
		}
		thumb = bars
	case KindScatter:
		scatter, err := plotter.NewScatter(categoryXYs(series.Data))
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter plot for %q: %w", series.Label, err)
		}
		scatter.GlyphStyle.Color = seriesColor
		scatter.GlyphStyle.Radius = vg.Points(3)
		if hasData {
			p.Add(scatter)
		}
		thumb = scatter
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, cfg.Type)
	}
	p.Add(plotter.NewGrid())

	if cfg.Options.LegendDisplay {
		p.Legend.Top = true
		p.Legend.Add(series.Label, thumb)
	}

	n := max(len(cfg.Data.Labels), len(series.Data), 1)
	if len(cfg.Data.Labels) > 0 {
		p.NominalX(cfg.Data.Labels...)
	} else {
		p.HideX()
	}
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.Y.Min, p.Y.Max = cfg.valueRange()

	return p, nil
}

// encode draws p at the given pixel size and returns PNG bytes.
func (l *PlotLibrary) encode(p *plot.Plot, width, height int) ([]byte, error) {
	dpi := l.DPI
	if dpi <= 0 {
		dpi = 96
	}
	toLength := func(px int) vg.Length {
		return vg.Length(px) * vg.Inch / vg.Length(dpi)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(toLength(width), toLength(height)),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// categoryXYs places each value at its category index.
func categoryXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	return pts
}
