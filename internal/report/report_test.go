package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/dashboard-charts-go/internal/chart"
	"github.com/user/dashboard-charts-go/internal/dashboard"
	"github.com/user/dashboard-charts-go/internal/ui"
)

const testDataset = `
products:
  - {id: tea, name: Black Tea}
  - {id: bread, name: Bread}
sales:
  - id: s1
    time: 2024-03-15T09:30:00Z
    lines:
      - {product: tea, quantity: 2, unit_price: 5}
      - {product: bread, quantity: 1, unit_price: 3}
stock:
  - {product: tea, on_hand: 1, min_required: 4}
`

func getTestPage(t *testing.T, lib chart.Library) *dashboard.Page {
	t.Helper()
	ds, err := dashboard.ParseDataset([]byte(testDataset))
	if err != nil {
		t.Fatalf("ParseDataset() error = %v", err)
	}
	svc := dashboard.NewService(ds, time.UTC)
	view := dashboard.NewView(svc, chart.NewRenderer(lib), dashboard.Params{SalesDays: 5}, nil)
	if err := view.Refresh(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	return view.Page()
}

func TestNewAdapter(t *testing.T) {
	if a, err := NewAdapter("html"); err != nil || a == nil {
		t.Errorf("NewAdapter(html) = %v, %v", a, err)
	}
	if a, err := NewAdapter("json"); err != nil || a == nil {
		t.Errorf("NewAdapter(json) = %v, %v", a, err)
	}
	if _, err := NewAdapter("pdf"); err == nil {
		t.Errorf("NewAdapter(pdf) returned nil error")
	}
}

func TestJSONReportAdapter(t *testing.T) {
	page := getTestPage(t, chart.NewPlotLibrary())
	adapter := &JSONReportAdapter{}

	if err := adapter.PrepareData(page); err != nil {
		t.Fatalf("JSONReportAdapter.PrepareData() error = %v", err)
	}

	var doc struct {
		Title    string `json:"title"`
		Snapshot struct {
			Day string `json:"day"`
		} `json:"snapshot"`
		Charts []struct {
			Host    string       `json:"host"`
			Library string       `json:"library"`
			Config  chart.Config `json:"config"`
		} `json:"charts"`
	}
	if err := json.Unmarshal(adapter.reportData, &doc); err != nil {
		t.Fatalf("Generated JSON is invalid: %v", err)
	}
	if doc.Snapshot.Day != "2024-03-15" {
		t.Errorf("snapshot day = %q, want 2024-03-15", doc.Snapshot.Day)
	}
	if len(doc.Charts) != 2 {
		t.Fatalf("got %d charts, want 2", len(doc.Charts))
	}
	if doc.Charts[0].Host != "sales-chart" || doc.Charts[1].Host != "top-products-chart" {
		t.Errorf("chart hosts = %s, %s", doc.Charts[0].Host, doc.Charts[1].Host)
	}
	for _, c := range doc.Charts {
		if c.Library != "plot" {
			t.Errorf("chart %s library = %q, want %q", c.Host, c.Library, "plot")
		}
	}
	if doc.Charts[0].Config.Type != chart.KindLine || doc.Charts[1].Config.Type != chart.KindBar {
		t.Errorf("chart kinds = %s, %s; want line, bar", doc.Charts[0].Config.Type, doc.Charts[1].Config.Type)
	}
	if got := doc.Charts[1].Config.Data.Labels; len(got) != 2 || got[0] != "Black Tea" {
		t.Errorf("top products labels = %v", got)
	}

	outputFile := filepath.Join(t.TempDir(), "nested", "report.json")
	if err := adapter.Write(outputFile); err != nil {
		t.Fatalf("JSONReportAdapter.Write() error = %v", err)
	}
	if _, err := os.Stat(outputFile); os.IsNotExist(err) {
		t.Errorf("Write() did not create output file %s", outputFile)
	}
}

func TestHTMLReportAdapter(t *testing.T) {
	testCases := []struct {
		name string
		lib  chart.Library
		want []string
	}{
		{"plot", chart.NewPlotLibrary(), []string{`<img style="height: 280px; width: 100%;" alt="chart"`, "data:image/png;base64,"}},
		{"gochart", chart.NewGoChartLibrary(), []string{`<img style="height: 280px; width: 100%;" alt="chart"`, "data:image/svg+xml;base64,"}},
		{"echarts", chart.NewEChartsLibrary(), []string{"<iframe", "srcdoc=", "echarts"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			adapter := &HTMLReportAdapter{}
			if err := adapter.PrepareData(getTestPage(t, tc.lib)); err != nil {
				t.Fatalf("HTMLReportAdapter.PrepareData() error = %v", err)
			}
			out := string(adapter.Bytes())
			for _, want := range append(tc.want,
				"<title>Dashboard</title>",
				`<div id="sales-chart" class="chart"`,
				"<td>Black Tea</td>",
				"Generated 2024-03-15 12:00:00 UTC",
			) {
				if !strings.Contains(out, want) {
					t.Errorf("HTML report does not contain %q", want)
				}
			}
			if strings.Contains(out, "<canvas") {
				t.Errorf("HTML report still contains an unpainted canvas")
			}
			if strings.Contains(out, "<svg") {
				t.Errorf("HTML report inlines chart markup")
			}
		})
	}
}

func TestHTMLReportAdapter_EscapesNames(t *testing.T) {
	dataset := strings.Replace(testDataset, "name: Black Tea", `name: "Tom & <b>"`, 1)
	ds, err := dashboard.ParseDataset([]byte(dataset))
	if err != nil {
		t.Fatalf("ParseDataset() error = %v", err)
	}
	view := dashboard.NewView(dashboard.NewService(ds, time.UTC), chart.NewRenderer(chart.NewGoChartLibrary()), dashboard.Params{SalesDays: 5}, nil)
	if err := view.Refresh(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	adapter := &HTMLReportAdapter{}
	if err := adapter.PrepareData(view.Page()); err != nil {
		t.Fatalf("HTMLReportAdapter.PrepareData() error = %v", err)
	}
	out := string(adapter.Bytes())
	if !strings.Contains(out, "<td>Tom &amp; &lt;b&gt;</td>") {
		t.Errorf("HTML report does not escape the product name")
	}
	if strings.Contains(out, "<b>") {
		t.Errorf("HTML report contains raw markup from the dataset")
	}
}

func TestHTMLReportAdapter_UnpaintedCanvas(t *testing.T) {
	root := ui.NewElement("div")
	root.SetStyle("width", "300px")
	host := ui.NewElement("div")
	root.AppendChild(host)
	ui.EnsureCanvas(host, 100)

	adapter := &HTMLReportAdapter{}
	if err := adapter.PrepareData(dashboard.NewPage("Empty", root, nil)); err != nil {
		t.Fatalf("HTMLReportAdapter.PrepareData() error = %v", err)
	}
	out := string(adapter.Bytes())
	if !strings.Contains(out, `<canvas style="height: 100px; width: 100%;"></canvas>`) {
		t.Errorf("HTML report does not keep the empty canvas: %s", out)
	}
	if !strings.Contains(out, "Generated -") {
		t.Errorf("HTML report footer without a snapshot time is wrong")
	}
}

func TestHTMLReportAdapter_Write(t *testing.T) {
	adapter := &HTMLReportAdapter{}
	if err := adapter.PrepareData(getTestPage(t, chart.NewGoChartLibrary())); err != nil {
		t.Fatalf("HTMLReportAdapter.PrepareData() error = %v", err)
	}

	outputFile := filepath.Join(t.TempDir(), "report.html")
	if err := adapter.Write(outputFile); err != nil {
		t.Fatalf("HTMLReportAdapter.Write() error = %v", err)
	}
	written, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read written report: %v", err)
	}
	if string(written) != string(adapter.Bytes()) {
		t.Errorf("written report differs from the prepared one")
	}
}
