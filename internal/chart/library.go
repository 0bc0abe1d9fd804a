package chart

import (
	"fmt"
	"sort"

	"github.com/user/dashboard-charts-go/internal/ui"
)

// Handle is a live chart owned by a library.
type Handle interface {
	// Destroy releases the drawing resources held by the chart.
	Destroy()
}

// Library constructs charts on a drawing surface.
type Library interface {
	Name() string
	New(surface *ui.Surface, cfg Config) (Handle, error)
}

var libraries = map[string]func() Library{
	"plot":    func() Library { return NewPlotLibrary() },
	"gochart": func() Library { return NewGoChartLibrary() },
	"echarts": func() Library { return NewEChartsLibrary() },
}

// DefaultLibrary is the library name used when none is configured.
const DefaultLibrary = "plot"

// Libraries lists the names accepted by LibraryByName.
func Libraries() []string {
	names := make([]string, 0, len(libraries))
	for name := range libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LibraryByName returns a new instance of the named library.
func LibraryByName(name string) (Library, error) {
	if name == "" {
		name = DefaultLibrary
	}
	mk, ok := libraries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownLibrary, name, Libraries())
	}
	return mk(), nil
}

// surfaceHandle is the Handle shared by the bundled libraries: destroying
// it clears the surface it painted, once.
type surfaceHandle struct {
	surface *ui.Surface
	done    bool
}

func (h *surfaceHandle) Destroy() {
	if h.done {
		return
	}
	h.done = true
	h.surface.Clear()
}
