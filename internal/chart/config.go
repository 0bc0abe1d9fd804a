// Package chart renders category charts into ui hosts, keeping exactly one
// live chart per host.
package chart

import "errors"

// Kind selects the visual form of a chart. It is passed to the library as
// given; libraries reject kinds they cannot draw with ErrUnsupportedKind.
type Kind string

const (
	KindLine    Kind = "line"
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
)

var (
	// ErrUnsupportedKind is returned by a Library asked for a kind it cannot draw.
	ErrUnsupportedKind = errors.New("unsupported chart kind")
	// ErrUnknownLibrary is returned by LibraryByName.
	ErrUnknownLibrary = errors.New("unknown chart library")
)

// Dataset is a single named series of values.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// Data is the category axis and the series plotted against it.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Options are the display options handed to the library.
type Options struct {
	Responsive          bool `json:"responsive"`
	MaintainAspectRatio bool `json:"maintainAspectRatio"`
	LegendDisplay       bool `json:"legendDisplay"`
	BeginAtZero         bool `json:"beginAtZero"`
}

// Config is the complete description of a chart.
type Config struct {
	Type    Kind    `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

// NewConfig builds the configuration used for every rendered chart: one
// dataset, responsive without a fixed aspect ratio, a visible legend and a
// value axis starting at zero. Nil inputs become empty values.
func NewConfig(kind Kind, labels []string, datasetLabel string, values []float64) Config {
	if labels == nil {
		labels = []string{}
	}
	if values == nil {
		values = []float64{}
	}
	return Config{
		Type: kind,
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{
				{Label: datasetLabel, Data: values},
			},
		},
		Options: Options{
			Responsive:          true,
			MaintainAspectRatio: false,
			LegendDisplay:       true,
			BeginAtZero:         true,
		},
	}
}

// Series returns the first dataset, or an empty one.
func (c Config) Series() Dataset {
	if len(c.Data.Datasets) == 0 {
		return Dataset{Data: []float64{}}
	}
	return c.Data.Datasets[0]
}

// valueRange returns the value axis bounds for the config's series,
// widened to include zero when BeginAtZero is set and never degenerate.
func (c Config) valueRange() (lo, hi float64) {
	values := c.Series().Data
	for i, v := range values {
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	if c.Options.BeginAtZero {
		if lo > 0 {
			lo = 0
		}
		if hi < 0 {
			hi = 0
		}
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
