package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

//go:embed dashcharts.schema.json
var schemaJSON string

const schemaURL = "dashcharts.schema.json"

// Config holds the settings of the dashboard renderer.
type Config struct {
	Library        string    `json:"library"         yaml:"library"`
	TimeZone       string    `json:"time_zone"       yaml:"time_zone"`
	SalesDays      int       `json:"sales_days"      yaml:"sales_days"`
	TopProducts    int       `json:"top_products"    yaml:"top_products"`
	LowStockLimit  int       `json:"low_stock_limit" yaml:"low_stock_limit"`
	CanvasHeight   int       `json:"canvas_height"   yaml:"canvas_height"`
	CurrencySymbol string    `json:"currency_symbol" yaml:"currency_symbol"`
	Log            LogConfig `json:"log"             yaml:"log"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level   string `json:"level"    yaml:"level"`
	File    string `json:"file"     yaml:"file"`
	NoColor bool   `json:"no_color" yaml:"no_color"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Library:        "plot",
		TimeZone:       "Europe/Istanbul",
		SalesDays:      14,
		TopProducts:    10,
		LowStockLimit:  25,
		CanvasHeight:   280,
		CurrencySymbol: "$",
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads and validates a YAML config file. Fields absent from the file
// keep their defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates YAML data against the config schema and decodes it onto cfg.
func Parse(data []byte, cfg *Config) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	if raw == nil {
		return nil
	}

	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal into Config struct: %w", err)
	}
	return nil
}

// Location resolves TimeZone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid time_zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Validate checks values that the schema cannot.
func (c *Config) Validate() error {
	var errs []error
	if c.SalesDays < 1 {
		errs = append(errs, fmt.Errorf("sales_days must be at least 1, got %d", c.SalesDays))
	}
	if c.CanvasHeight < 1 {
		errs = append(errs, fmt.Errorf("canvas_height must be positive, got %d", c.CanvasHeight))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
}
