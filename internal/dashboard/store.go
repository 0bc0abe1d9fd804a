// Package dashboard computes the sales dashboard and lays it out as a page
// of chart hosts.
package dashboard

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/user/dashboard-charts-go/internal/models"
)

// ErrUnknownProduct is returned when a sale line or stock item refers to a
// product that is not defined.
var ErrUnknownProduct = errors.New("unknown product")

// LoadDataset reads a YAML dataset file.
func LoadDataset(path string) (*models.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	ds, err := ParseDataset(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// ParseDataset decodes and checks a YAML dataset.
func ParseDataset(data []byte) (*models.Dataset, error) {
	var ds models.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := checkReferences(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func checkReferences(ds *models.Dataset) error {
	known := make(map[string]bool, len(ds.Products))
	for _, p := range ds.Products {
		if p.ID == "" {
			return fmt.Errorf("product %q has no id", p.Name)
		}
		known[p.ID] = true
	}

	var errs []error
	for _, s := range ds.Sales {
		for _, l := range s.Lines {
			if !known[l.ProductID] {
				errs = append(errs, fmt.Errorf("sale %s: %w %q", s.ID, ErrUnknownProduct, l.ProductID))
			}
		}
	}
	for _, item := range ds.Stock {
		if !known[item.ProductID] {
			errs = append(errs, fmt.Errorf("stock: %w %q", ErrUnknownProduct, item.ProductID))
		}
	}
	return errors.Join(errs...)
}
