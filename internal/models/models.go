package models

import "time"

// Dataset is the raw point-of-sale data a dashboard is computed from.
type Dataset struct {
	Products []Product   `yaml:"products" json:"products"`
	Sales    []Sale      `yaml:"sales" json:"sales"`
	Stock    []StockItem `yaml:"stock" json:"stock"`
}

// Product is a sellable item.
type Product struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Unit string `yaml:"unit,omitempty" json:"unit,omitempty"` // e.g. "piece", "kg"
}

// Sale is a completed checkout.
type Sale struct {
	ID    string     `yaml:"id" json:"id"`
	Time  time.Time  `yaml:"time" json:"time"`
	Lines []SaleLine `yaml:"lines" json:"lines"`
	// Total overrides the sum of the lines when set (discounts, rounding).
	Total float64 `yaml:"total,omitempty" json:"total,omitempty"`
}

// Amount returns the sale total, falling back to the sum of its lines.
func (s Sale) Amount() float64 {
	if s.Total != 0 {
		return s.Total
	}
	var sum float64
	for _, l := range s.Lines {
		sum += l.Amount()
	}
	return sum
}

// SaleLine is one product within a sale.
type SaleLine struct {
	ProductID string  `yaml:"product" json:"product"`
	Quantity  float64 `yaml:"quantity" json:"quantity"`
	UnitPrice float64 `yaml:"unit_price" json:"unit_price"`
}

// Amount returns quantity times unit price.
func (l SaleLine) Amount() float64 {
	return l.Quantity * l.UnitPrice
}

// StockItem is the inventory level of a product.
type StockItem struct {
	ProductID   string  `yaml:"product" json:"product"`
	OnHand      float64 `yaml:"on_hand" json:"on_hand"`
	MinRequired float64 `yaml:"min_required" json:"min_required"`
}

// Low reports whether the item is below its required minimum.
func (s StockItem) Low() bool {
	return s.OnHand < s.MinRequired
}

// DashboardKPIs are the headline numbers of the dashboard.
type DashboardKPIs struct {
	RevenueToday         float64 `json:"revenue_today"`
	RevenueThisMonth     float64 `json:"revenue_this_month"`
	SalesCountToday      int64   `json:"sales_count_today"`
	LowStockProductCount int64   `json:"low_stock_product_count"`
}

// Series is a category axis with one value per label.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// LowStockRow is one line of the low-stock table.
type LowStockRow struct {
	ProductName string  `json:"product_name"`
	OnHand      float64 `json:"on_hand"`
	MinRequired float64 `json:"min_required"`
	Missing     float64 `json:"missing"`
}

// Snapshot is everything shown on the dashboard at one point in time.
type Snapshot struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Day         string        `json:"day"` // YYYY-MM-DD in the dashboard time zone
	KPIs        DashboardKPIs `json:"kpis"`
	Sales       Series        `json:"sales"`
	TopProducts Series        `json:"top_products"`
	LowStock    []LowStockRow `json:"low_stock"`
}
