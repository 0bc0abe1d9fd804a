package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/user/dashboard-charts-go/internal/chart"
	"github.com/user/dashboard-charts-go/internal/models"
	"github.com/user/dashboard-charts-go/internal/ui"
)

// Params are the display settings of the dashboard.
type Params struct {
	SalesDays      int
	TopProducts    int
	LowStockLimit  int
	CurrencySymbol string
}

func (p Params) withDefaults() Params {
	if p.SalesDays < 1 {
		p.SalesDays = 14
	}
	if p.TopProducts < 1 {
		p.TopProducts = 10
	}
	if p.LowStockLimit < 1 {
		p.LowStockLimit = 25
	}
	if p.CurrencySymbol == "" {
		p.CurrencySymbol = "$"
	}
	return p
}

// Page is the laid out dashboard.
type Page struct {
	Title    string
	Root     *ui.Element
	Snapshot models.Snapshot

	SalesChart       *ui.Element
	TopProductsChart *ui.Element

	renderer *chart.Renderer
}

// NewPage wraps an element tree whose charts are drawn by renderer.
func NewPage(title string, root *ui.Element, renderer *chart.Renderer) *Page {
	return &Page{Title: title, Root: root, renderer: renderer}
}

// Chart returns the chart currently rendered into host.
func (p *Page) Chart(host *ui.Element) (*chart.Instance, bool) {
	if p.renderer == nil {
		return nil, false
	}
	return p.renderer.Current(host)
}

// View owns the dashboard page and refreshes it from the service.
type View struct {
	svc      *Service
	renderer *chart.Renderer
	params   Params
	log      *slog.Logger
	printer  *message.Printer

	page *Page

	revenueToday     *ui.Element
	revenueThisMonth *ui.Element
	salesToday       *ui.Element
	lowStockCount    *ui.Element
	lowStockTable    *ui.Element
}

// NewView lays out an empty dashboard page.
func NewView(svc *Service, renderer *chart.Renderer, p Params, log *slog.Logger) *View {
	if log == nil {
		log = slog.Default()
	}
	v := &View{
		svc:      svc,
		renderer: renderer,
		params:   p.withDefaults(),
		log:      log,
		printer:  message.NewPrinter(language.AmericanEnglish),
	}
	v.layout()
	return v
}

// Page returns the current page.
func (v *View) Page() *Page { return v.page }

func (v *View) layout() {
	root := ui.NewElement("main")
	root.ID = "dashboard"
	root.SetStyle("width", "960px")

	header := ui.NewText("h2", "Dashboard")

	v.revenueToday = ui.NewText("span", "-")
	v.revenueThisMonth = ui.NewText("span", "-")
	v.salesToday = ui.NewText("span", "-")
	v.lowStockCount = ui.NewText("span", "-")
	kpis := ui.NewElement("div")
	kpis.Class = "kpi-row"
	kpis.Append(
		kpiCard("Revenue (Today)", v.revenueToday),
		kpiCard("Revenue (This Month)", v.revenueThisMonth),
		kpiCard("Sales (Today)", v.salesToday),
		kpiCard("Low Stock Products", v.lowStockCount),
	)

	salesHost := chartHost("sales-chart")
	topHost := chartHost("top-products-chart")
	charts := ui.NewElement("div")
	charts.Class = "charts"
	charts.SetStyle("width", "100%")
	charts.Append(
		section(fmt.Sprintf("Sales (Last %d days)", v.params.SalesDays), salesHost),
		section("Top Products (Revenue)", topHost),
	)

	v.lowStockTable = ui.NewElement("table")
	v.lowStockTable.Class = "low-stock"
	lowStock := section("Low Stock / Insufficient Quantity on Hand", v.lowStockTable)

	root.Append(header, kpis, charts, lowStock)

	v.page = &Page{
		Title:            "Dashboard",
		Root:             root,
		SalesChart:       salesHost,
		TopProductsChart: topHost,
		renderer:         v.renderer,
	}
}

// Refresh recomputes the dashboard for the day containing today and renders
// both charts into their hosts, replacing the charts of the previous
// refresh. A chart that fails to render is logged and reported in the
// returned error; the rest of the page is still updated.
func (v *View) Refresh(today time.Time) error {
	snap := v.svc.Snapshot(today, v.params)
	v.page.Snapshot = snap

	v.revenueToday.Text = v.formatMoney(snap.KPIs.RevenueToday)
	v.revenueThisMonth.Text = v.formatMoney(snap.KPIs.RevenueThisMonth)
	v.salesToday.Text = fmt.Sprint(snap.KPIs.SalesCountToday)
	v.lowStockCount.Text = fmt.Sprint(snap.KPIs.LowStockProductCount)
	v.fillLowStock(snap.LowStock)

	var errs []error
	if err := v.renderer.Render(v.page.SalesChart, chart.KindLine, snap.Sales.Labels, "Revenue", snap.Sales.Values); err != nil {
		v.log.Warn("Failed to render sales chart", "error", err)
		errs = append(errs, fmt.Errorf("sales chart: %w", err))
	}
	if err := v.renderer.Render(v.page.TopProductsChart, chart.KindBar, snap.TopProducts.Labels, "Revenue", snap.TopProducts.Values); err != nil {
		v.log.Warn("Failed to render top products chart", "error", err)
		errs = append(errs, fmt.Errorf("top products chart: %w", err))
	}

	v.log.Info("Dashboard refreshed", "day", snap.Day, "sales_points", len(snap.Sales.Values), "top_products", len(snap.TopProducts.Values), "low_stock", len(snap.LowStock))
	return errors.Join(errs...)
}

func (v *View) fillLowStock(rows []models.LowStockRow) {
	for _, c := range append([]*ui.Element(nil), v.lowStockTable.Children...) {
		v.lowStockTable.RemoveChild(c)
	}
	v.lowStockTable.AppendChild(row("th", "Product", "On Hand", "Min", "Missing"))
	for _, r := range rows {
		v.lowStockTable.AppendChild(row("td",
			r.ProductName,
			v.printer.Sprintf("%v", r.OnHand),
			v.printer.Sprintf("%v", r.MinRequired),
			v.printer.Sprintf("%v", r.Missing),
		))
	}
}

func (v *View) formatMoney(amount float64) string {
	return v.params.CurrencySymbol + v.printer.Sprintf("%.2f", amount)
}

func kpiCard(label string, value *ui.Element) *ui.Element {
	card := ui.NewElement("div")
	card.Class = "kpi-card"
	lbl := ui.NewText("span", label)
	lbl.Class = "kpi-label"
	value.Class = "kpi-value"
	return card.Append(lbl, value)
}

func chartHost(id string) *ui.Element {
	host := ui.NewElement("div")
	host.ID = id
	host.Class = "chart"
	host.SetStyle("width", "100%")
	host.SetStyle("height", "320px")
	return host
}

func section(title string, content *ui.Element) *ui.Element {
	s := ui.NewElement("section")
	s.SetStyle("width", "100%")
	return s.Append(ui.NewText("h3", title), content)
}

func row(cellTag string, cells ...string) *ui.Element {
	tr := ui.NewElement("tr")
	for _, c := range cells {
		tr.AppendChild(ui.NewText(cellTag, c))
	}
	return tr
}
