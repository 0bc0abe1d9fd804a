package dashboard

import (
	"sort"
	"time"

	"github.com/user/dashboard-charts-go/internal/models"
)

// LabelLayout formats the day labels of the daily sales series.
const LabelLayout = "02 Jan"

// Service aggregates a dataset into dashboard figures. Day boundaries are
// taken in the service's time zone.
type Service struct {
	data     *models.Dataset
	loc      *time.Location
	products map[string]models.Product
}

// NewService creates a service over data. A nil loc means UTC.
func NewService(data *models.Dataset, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	products := make(map[string]models.Product, len(data.Products))
	for _, p := range data.Products {
		products[p.ID] = p
	}
	return &Service{data: data, loc: loc, products: products}
}

// Location returns the time zone of day boundaries.
func (s *Service) Location() *time.Location { return s.loc }

// KPIs returns the headline figures for the day containing today.
func (s *Service) KPIs(today time.Time) models.DashboardKPIs {
	startToday := s.startOfDay(today)
	startTomorrow := startToday.AddDate(0, 0, 1)
	startMonth := time.Date(startToday.Year(), startToday.Month(), 1, 0, 0, 0, 0, s.loc)

	var k models.DashboardKPIs
	for _, sale := range s.data.Sales {
		if inRange(sale.Time, startMonth, startTomorrow) {
			k.RevenueThisMonth += sale.Amount()
		}
		if inRange(sale.Time, startToday, startTomorrow) {
			k.RevenueToday += sale.Amount()
			k.SalesCountToday++
		}
	}
	for _, item := range s.data.Stock {
		if item.Low() {
			k.LowStockProductCount++
		}
	}
	return k
}

// DailySalesSeries returns the revenue of every day from from to to
// inclusive. Days without sales are zero.
func (s *Service) DailySalesSeries(from, to time.Time) models.Series {
	first := s.startOfDay(from)
	last := s.startOfDay(to)

	totals := make(map[string]float64)
	end := last.AddDate(0, 0, 1)
	for _, sale := range s.data.Sales {
		if inRange(sale.Time, first, end) {
			totals[dayKey(sale.Time.In(s.loc))] += sale.Amount()
		}
	}

	series := models.Series{Labels: []string{}, Values: []float64{}}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		series.Labels = append(series.Labels, d.Format(LabelLayout))
		series.Values = append(series.Values, totals[dayKey(d)])
	}
	return series
}

// TopProductsByRevenue returns the products with the highest line revenue
// between from and to inclusive, best first. limit is at least 1.
func (s *Service) TopProductsByRevenue(from, to time.Time, limit int) models.Series {
	start := s.startOfDay(from)
	end := s.startOfDay(to).AddDate(0, 0, 1)

	revenue := make(map[string]float64)
	for _, sale := range s.data.Sales {
		if !inRange(sale.Time, start, end) {
			continue
		}
		for _, l := range sale.Lines {
			revenue[l.ProductID] += l.Amount()
		}
	}

	type point struct {
		name  string
		total float64
	}
	points := make([]point, 0, len(revenue))
	for id, total := range revenue {
		points = append(points, point{name: s.productName(id), total: total})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].total != points[j].total {
			return points[i].total > points[j].total
		}
		return points[i].name < points[j].name
	})

	limit = max(1, limit)
	if len(points) > limit {
		points = points[:limit]
	}

	series := models.Series{Labels: []string{}, Values: []float64{}}
	for _, p := range points {
		series.Labels = append(series.Labels, p.name)
		series.Values = append(series.Values, p.total)
	}
	return series
}

// LowStockRows lists products whose stock is below the required minimum,
// most missing first. limit is at least 1.
func (s *Service) LowStockRows(limit int) []models.LowStockRow {
	rows := []models.LowStockRow{}
	for _, item := range s.data.Stock {
		if !item.Low() {
			continue
		}
		rows = append(rows, models.LowStockRow{
			ProductName: s.productName(item.ProductID),
			OnHand:      item.OnHand,
			MinRequired: item.MinRequired,
			Missing:     item.MinRequired - item.OnHand,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Missing != rows[j].Missing {
			return rows[i].Missing > rows[j].Missing
		}
		return rows[i].ProductName < rows[j].ProductName
	})

	limit = max(1, limit)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// Snapshot computes every dashboard figure for the day containing today.
func (s *Service) Snapshot(today time.Time, p Params) models.Snapshot {
	p = p.withDefaults()
	day := s.startOfDay(today)
	return models.Snapshot{
		GeneratedAt: today,
		Day:         day.Format(time.DateOnly),
		KPIs:        s.KPIs(today),
		Sales:       s.DailySalesSeries(day.AddDate(0, 0, -(p.SalesDays-1)), day),
		TopProducts: s.TopProductsByRevenue(time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, s.loc), day, p.TopProducts),
		LowStock:    s.LowStockRows(p.LowStockLimit),
	}
}

func (s *Service) productName(id string) string {
	if p, ok := s.products[id]; ok && p.Name != "" {
		return p.Name
	}
	return id
}

func (s *Service) startOfDay(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
