package chart

import (
	"bytes"
	"fmt"
	"html"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/user/dashboard-charts-go/internal/ui"
)

// MIMESVG is the media type painted by GoChartLibrary.
const MIMESVG = "image/svg+xml"

// GoChartLibrary draws charts with go-chart and paints them as SVG.
type GoChartLibrary struct {
	StrokeColor drawing.Color
}

// NewGoChartLibrary returns a GoChartLibrary with the default series color.
func NewGoChartLibrary() *GoChartLibrary {
	return &GoChartLibrary{StrokeColor: drawing.ColorFromHex("36a2eb")}
}

func (l *GoChartLibrary) Name() string { return "gochart" }

// New renders cfg as SVG onto surface. go-chart refuses empty series, so a
// chart without values is painted as an empty frame of the surface size.
func (l *GoChartLibrary) New(surface *ui.Surface, cfg Config) (Handle, error) {
	switch cfg.Type {
	case KindLine, KindBar, KindScatter:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, cfg.Type)
	}

	w, h := surface.Size()
	series := cfg.Series()
	if len(series.Data) == 0 {
		surface.Paint(MIMESVG, emptySVG(w, h))
		return &surfaceHandle{surface: surface}, nil
	}

	var buf bytes.Buffer
	var err error
	if cfg.Type == KindBar {
		err = l.barChart(cfg, w, h).Render(gochart.SVG, &buf)
	} else {
		err = l.xyChart(cfg, w, h).Render(gochart.SVG, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	surface.Paint(MIMESVG, buf.Bytes())
	return &surfaceHandle{surface: surface}, nil
}

func (l *GoChartLibrary) barChart(cfg Config, w, h int) gochart.BarChart {
	series := cfg.Series()
	bars := make([]gochart.Value, len(series.Data))
	for i, v := range series.Data {
		bars[i] = gochart.Value{
			Label: labelAt(cfg.Data.Labels, i),
			Value: v,
			Style: gochart.Style{FillColor: l.StrokeColor, StrokeColor: l.StrokeColor},
		}
	}
	lo, hi := cfg.valueRange()

	bc := gochart.BarChart{
		Width:    w,
		Height:   h,
		BarWidth: max(w/(2*len(bars)+1), 4),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}
	// BarChart has no legend element; the series label is shown as its title.
	if cfg.Options.LegendDisplay {
		bc.Title = svgText(series.Label)
	}
	return bc
}

func (l *GoChartLibrary) xyChart(cfg Config, w, h int) gochart.Chart {
	series := cfg.Series()
	xs := make([]float64, len(series.Data))
	for i := range xs {
		xs[i] = float64(i)
	}

	style := gochart.Style{StrokeColor: l.StrokeColor, StrokeWidth: 2}
	if cfg.Type == KindScatter {
		style = gochart.Style{
			StrokeWidth: gochart.Disabled,
			DotWidth:    4,
			DotColor:    l.StrokeColor,
		}
	}

	// go-chart derives the x range from the ticks, so unlabeled ticks at the
	// category edges keep a single point on a non-empty range.
	n := max(len(cfg.Data.Labels), len(series.Data))
	ticks := make([]gochart.Tick, 0, n+2)
	ticks = append(ticks, gochart.Tick{Value: -0.5})
	for i := range n {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: labelAt(cfg.Data.Labels, i)})
	}
	ticks = append(ticks, gochart.Tick{Value: float64(n) - 0.5})
	lo, hi := cfg.valueRange()

	graph := gochart.Chart{
		Width:  w,
		Height: h,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    svgText(series.Label),
				Style:   style,
				XValues: xs,
				YValues: series.Data,
			},
		},
	}
	if cfg.Options.LegendDisplay {
		graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	}
	return graph
}

// labelAt returns the i-th label escaped for SVG output, or "".
func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return svgText(labels[i])
	}
	return ""
}

// svgText escapes s for an SVG text node; go-chart writes text verbatim.
func svgText(s string) string {
	return html.EscapeString(s)
}

func emptySVG(w, h int) []byte {
	return fmt.Appendf(nil, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"></svg>`, w, h)
}
