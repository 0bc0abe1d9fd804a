package chart

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/user/dashboard-charts-go/internal/ui"
)

// MIMEHTML is the media type painted by EChartsLibrary.
const MIMEHTML = "text/html"

// EChartsLibrary builds interactive ECharts pages with go-echarts. The
// painted content is a standalone HTML document.
type EChartsLibrary struct {
	AssetsHost string
}

// NewEChartsLibrary returns an EChartsLibrary using the go-echarts CDN.
func NewEChartsLibrary() *EChartsLibrary {
	return &EChartsLibrary{}
}

func (l *EChartsLibrary) Name() string { return "echarts" }

// New renders cfg as an ECharts document onto surface.
func (l *EChartsLibrary) New(surface *ui.Surface, cfg Config) (Handle, error) {
	w, h := surface.Size()
	global := l.globalOptions(cfg, w, h)
	series := cfg.Series()

	var buf bytes.Buffer
	var err error
	switch cfg.Type {
	case KindLine:
		items := make([]opts.LineData, len(series.Data))
		for i, v := range series.Data {
			items[i] = opts.LineData{Value: v}
		}
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(cfg.Data.Labels).AddSeries(series.Label, items)
		err = line.Render(&buf)
	case KindBar:
		items := make([]opts.BarData, len(series.Data))
		for i, v := range series.Data {
			items[i] = opts.BarData{Value: v}
		}
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(cfg.Data.Labels).AddSeries(series.Label, items)
		err = bar.Render(&buf)
	case KindScatter:
		items := make([]opts.ScatterData, len(series.Data))
		for i, v := range series.Data {
			items[i] = opts.ScatterData{Value: v}
		}
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(global...)
		scatter.SetXAxis(cfg.Data.Labels).AddSeries(series.Label, items)
		err = scatter.Render(&buf)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render echarts %s: %w", cfg.Type, err)
	}

	surface.Paint(MIMEHTML, buf.Bytes())
	return &surfaceHandle{surface: surface}, nil
}

func (l *EChartsLibrary) globalOptions(cfg Config, w, h int) []charts.GlobalOpts {
	width := fmt.Sprintf("%dpx", w)
	if cfg.Options.Responsive && !cfg.Options.MaintainAspectRatio {
		width = "100%"
	}
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:      width,
			Height:     fmt.Sprintf("%dpx", h),
			AssetsHost: l.AssetsHost,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(cfg.Options.LegendDisplay)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
	if cfg.Options.BeginAtZero {
		lo, _ := cfg.valueRange()
		global = append(global, charts.WithYAxisOpts(opts.YAxis{Min: lo}))
	}
	return global
}
