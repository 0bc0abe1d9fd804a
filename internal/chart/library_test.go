package chart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/user/dashboard-charts-go/internal/ui"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestLibraryByName(t *testing.T) {
	for _, name := range Libraries() {
		lib, err := LibraryByName(name)
		if err != nil {
			t.Fatalf("LibraryByName(%q) error = %v", name, err)
		}
		if lib.Name() != name {
			t.Errorf("LibraryByName(%q).Name() = %q", name, lib.Name())
		}
	}

	lib, err := LibraryByName("")
	if err != nil || lib.Name() != DefaultLibrary {
		t.Errorf("LibraryByName(\"\") = %v, %v; want default library", lib, err)
	}

	if _, err := LibraryByName("chartjs"); !errors.Is(err, ErrUnknownLibrary) {
		t.Errorf("LibraryByName(chartjs) error = %v, want ErrUnknownLibrary", err)
	}
}

func TestLibraries_PaintAndDestroy(t *testing.T) {
	tests := []struct {
		lib    Library
		mime   string
		marker []byte
	}{
		{NewPlotLibrary(), MIMEPNG, pngMagic},
		{NewGoChartLibrary(), MIMESVG, []byte("<svg")},
		{NewEChartsLibrary(), MIMEHTML, []byte("echarts")},
	}
	kinds := []Kind{KindLine, KindBar, KindScatter}
	datasets := []struct {
		name   string
		labels []string
		values []float64
	}{
		{"three", []string{"Jan", "Feb", "Mar"}, []float64{10, 20, 15}},
		{"one", []string{"Jan"}, []float64{10}},
	}

	for _, tc := range tests {
		for _, kind := range kinds {
			for _, ds := range datasets {
				t.Run(tc.lib.Name()+"/"+string(kind)+"/"+ds.name, func(t *testing.T) {
					surface := ui.NewSurface(400, 280)
					cfg := NewConfig(kind, ds.labels, "Sales", ds.values)

					h, err := tc.lib.New(surface, cfg)
					if err != nil {
						t.Fatalf("New() error = %v", err)
					}
					mime, data := surface.Content()
					if mime != tc.mime {
						t.Errorf("painted mime = %q, want %q", mime, tc.mime)
					}
					if !bytes.Contains(data, tc.marker) {
						t.Errorf("painted content does not contain %q", tc.marker)
					}

					h.Destroy()
					if surface.Painted() {
						t.Errorf("surface still painted after Destroy()")
					}
				})
			}
		}
	}
}

func TestLibraries_EmptyDataDoesNotFail(t *testing.T) {
	for _, name := range Libraries() {
		lib, _ := LibraryByName(name)
		for _, kind := range []Kind{KindLine, KindBar} {
			surface := ui.NewSurface(300, 200)
			if _, err := lib.New(surface, NewConfig(kind, nil, "", nil)); err != nil {
				t.Errorf("%s: New(%s, empty) error = %v", name, kind, err)
			}
			if !surface.Painted() {
				t.Errorf("%s: New(%s, empty) painted nothing", name, kind)
			}
		}
	}
}

func TestLibraries_RejectUnsupportedKind(t *testing.T) {
	for _, name := range Libraries() {
		lib, _ := LibraryByName(name)
		surface := ui.NewSurface(300, 200)
		_, err := lib.New(surface, NewConfig("doughnut", []string{"a"}, "x", []float64{1}))
		if !errors.Is(err, ErrUnsupportedKind) {
			t.Errorf("%s: New(doughnut) error = %v, want ErrUnsupportedKind", name, err)
		}
		if surface.Painted() {
			t.Errorf("%s: unsupported kind painted the surface", name)
		}
	}
}

func TestGoChartLibrary_EscapesText(t *testing.T) {
	for _, kind := range []Kind{KindLine, KindBar} {
		surface := ui.NewSurface(400, 280)
		cfg := NewConfig(kind, []string{"Tom & <b>", "Q2"}, `Sales "A" & B`, []float64{1, 2})

		if _, err := NewGoChartLibrary().New(surface, cfg); err != nil {
			t.Fatalf("New(%s) error = %v", kind, err)
		}
		_, data := surface.Content()
		if bytes.Contains(data, []byte("<b>")) {
			t.Errorf("%s: svg contains raw label markup", kind)
		}

		dec := xml.NewDecoder(bytes.NewReader(data))
		for {
			_, err := dec.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("%s: svg is not well-formed: %v", kind, err)
			}
		}
	}
}

func TestEChartsLibrary_ContainsSeries(t *testing.T) {
	surface := ui.NewSurface(400, 280)
	cfg := NewConfig(KindBar, []string{"Q1", "Q2"}, "Revenue", []float64{100, 200})

	if _, err := NewEChartsLibrary().New(surface, cfg); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, data := surface.Content()
	html := string(data)
	for _, want := range []string{"Q1", "Q2", "Revenue", `"min":0`} {
		if !strings.Contains(html, want) {
			t.Errorf("echarts output does not contain %q", want)
		}
	}
}

func TestValueRange(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		lo, hi float64
	}{
		{"empty", nil, 0, 1},
		{"positive", []float64{10, 20, 15}, 0, 20},
		{"negative", []float64{-5, -1}, -5, 0},
		{"zeros", []float64{0, 0}, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := NewConfig(KindLine, nil, "", tc.values).valueRange()
			if lo != tc.lo || hi != tc.hi {
				t.Errorf("valueRange() = %v, %v; want %v, %v", lo, hi, tc.lo, tc.hi)
			}
		})
	}
}
