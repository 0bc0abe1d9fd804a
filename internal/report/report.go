package report

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/net/html"

	"github.com/user/dashboard-charts-go/internal/chart"
	"github.com/user/dashboard-charts-go/internal/dashboard"
	"github.com/user/dashboard-charts-go/internal/ui"
)

//go:embed templates/dashboard.html.tmpl
var dashboardTemplate string

// ReportAdapter defines the interface for writing a rendered dashboard in
// different formats.
type ReportAdapter interface {
	PrepareData(page *dashboard.Page) error
	Write(outputFilePath string) error
}

// NewAdapter returns the adapter for format ("html" or "json").
func NewAdapter(format string) (ReportAdapter, error) {
	switch format {
	case "html":
		return &HTMLReportAdapter{}, nil
	case "json":
		return &JSONReportAdapter{}, nil
	}
	return nil, fmt.Errorf("invalid report format '%s'. Must be 'html' or 'json'", format)
}

// --- JSON Report Adapter ---

// JSONReportAdapter writes the dashboard figures as JSON.
type JSONReportAdapter struct {
	reportData []byte
}

// PrepareData marshals the page snapshot together with the library and
// configuration of every chart on the page.
func (jra *JSONReportAdapter) PrepareData(page *dashboard.Page) error {
	doc := struct {
		Title    string       `json:"title"`
		Snapshot any          `json:"snapshot"`
		Charts   []chartEntry `json:"charts"`
	}{
		Title:    page.Title,
		Snapshot: page.Snapshot,
		Charts:   chartEntries(page),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data to JSON: %w", err)
	}
	jra.reportData = data
	return nil
}

// Write saves the JSON report data to the specified output file.
func (jra *JSONReportAdapter) Write(outputFilePath string) error {
	return writeFile(outputFilePath, jra.reportData)
}

// --- HTML Report Adapter ---

// HTMLReportAdapter writes the page as a single self-contained HTML file.
type HTMLReportAdapter struct {
	reportBuf bytes.Buffer
}

// PrepareData renders the page tree into the dashboard template.
func (hra *HTMLReportAdapter) PrepareData(page *dashboard.Page) error {
	funcMap := template.FuncMap{
		"FormatDateTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05 MST")
		},
	}

	tmpl, err := template.New("dashboard").Funcs(funcMap).Parse(dashboardTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	var body bytes.Buffer
	if page.Root != nil {
		if err := html.Render(&body, page.Root.Node(canvasNode)); err != nil {
			return fmt.Errorf("failed to render page tree: %w", err)
		}
	}

	templateData := struct {
		Title       string
		GeneratedAt time.Time
		Body        template.HTML
	}{
		Title:       page.Title,
		GeneratedAt: page.Snapshot.GeneratedAt,
		Body:        template.HTML(body.String()),
	}

	hra.reportBuf.Reset()
	if err := tmpl.Execute(&hra.reportBuf, templateData); err != nil {
		return fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return nil
}

// Write saves the HTML report data to the specified output file.
func (hra *HTMLReportAdapter) Write(outputFilePath string) error {
	return writeFile(outputFilePath, hra.reportBuf.Bytes())
}

// Bytes returns the rendered document.
func (hra *HTMLReportAdapter) Bytes() []byte {
	return hra.reportBuf.Bytes()
}

// canvasNode replaces a canvas by whatever its chart painted onto it.
func canvasNode(e *ui.Element) *html.Node {
	mime, data := e.Surface().Content()
	switch mime {
	case chart.MIMEPNG, chart.MIMESVG:
		return ui.NewNode("img", append(e.Attrs(),
			html.Attribute{Key: "alt", Val: "chart"},
			html.Attribute{Key: "src", Val: dataURI(mime, data)},
		)...)
	case chart.MIMEHTML:
		return ui.NewNode("iframe", append(e.Attrs(),
			html.Attribute{Key: "srcdoc", Val: string(data)},
		)...)
	}
	return nil
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// chartEntry describes one chart of the page in the JSON report.
type chartEntry struct {
	Host    string       `json:"host,omitempty"`
	Library string       `json:"library"`
	Config  chart.Config `json:"config"`
}

// chartEntries collects every chart rendered into the page, in document
// order.
func chartEntries(page *dashboard.Page) []chartEntry {
	out := []chartEntry{}
	var walk func(e *ui.Element)
	walk = func(e *ui.Element) {
		if in, ok := page.Chart(e); ok {
			out = append(out, chartEntry{Host: e.ID, Library: in.Library(), Config: in.Config()})
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	if page.Root != nil {
		walk(page.Root)
	}
	return out
}

func writeFile(outputFilePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outputFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for report file %s: %w", outputFilePath, err)
	}
	return os.WriteFile(outputFilePath, data, 0644)
}
