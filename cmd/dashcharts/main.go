package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/dashboard-charts-go/internal/chart"
	"github.com/user/dashboard-charts-go/internal/config"
	"github.com/user/dashboard-charts-go/internal/dashboard"
	"github.com/user/dashboard-charts-go/internal/logger"
	"github.com/user/dashboard-charts-go/internal/report"
	"github.com/user/dashboard-charts-go/internal/ui"
)

var (
	// Used for flags.
	configPath     string
	logLevel       string
	logFile        string
	libraryName    string
	outputFilePath string
	reportDate     string

	chartKind    string
	chartLabels  []string
	datasetLabel string
	chartValues  []string
	chartWidth   int

	rootCmd = &cobra.Command{
		Use:   "dashcharts",
		Short: "Dashcharts renders category charts and sales dashboards.",
		Long: `A tool that renders line and bar charts into page hosts, keeping one
live chart per host, and builds a sales dashboard page from a YAML dataset.
Charts are drawn with gonum/plot (PNG), go-chart (SVG) or go-echarts (HTML).`,
		SilenceUsage: true,
	}

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Renders a single chart into an HTML page.",
		Long:  `Renders one chart from the given labels and values into a host element and writes the page as HTML.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}

			values, err := parseValues(chartValues)
			if err != nil {
				return err
			}

			lib, err := chart.LibraryByName(cfg.Library)
			if err != nil {
				return err
			}
			renderer := chart.NewRenderer(lib, chart.WithCanvasHeight(cfg.CanvasHeight), chart.WithLogger(log))

			root := ui.NewElement("main")
			root.SetStyle("width", fmt.Sprintf("%dpx", chartWidth))
			host := ui.NewElement("div")
			host.ID = "chart"
			host.Class = "chart"
			host.SetStyle("width", "100%")
			root.AppendChild(host)

			if err := renderer.Render(host, chart.Kind(chartKind), chartLabels, datasetLabel, values); err != nil {
				return err
			}

			if outputFilePath == "" {
				outputFilePath = "chart.html"
			}
			return writeReport(dashboard.NewPage(datasetLabel, root, renderer), "html", outputFilePath, log)
		},
	}

	dashboardCmd = &cobra.Command{
		Use:   "dashboard [DATA_PATH] [html|json]",
		Short: "Generates the sales dashboard from a dataset.",
		Long: `Loads products, sales and stock from the YAML dataset at DATA_PATH, computes
the dashboard figures for the selected day and writes the page in the
specified format (html or json).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataPath := args[0]
			reportFormat := args[1]

			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			today := time.Now().In(loc)
			if reportDate != "" {
				today, err = time.ParseInLocation(time.DateOnly, reportDate, loc)
				if err != nil {
					return fmt.Errorf("invalid date '%s': %w", reportDate, err)
				}
				today = today.Add(12 * time.Hour)
			}

			data, err := dashboard.LoadDataset(dataPath)
			if err != nil {
				return err
			}
			log.Info("Dataset loaded", "path", dataPath, "products", len(data.Products), "sales", len(data.Sales), "stock", len(data.Stock))

			lib, err := chart.LibraryByName(cfg.Library)
			if err != nil {
				return err
			}
			renderer := chart.NewRenderer(lib, chart.WithCanvasHeight(cfg.CanvasHeight), chart.WithLogger(log))

			view := dashboard.NewView(dashboard.NewService(data, loc), renderer, dashboard.Params{
				SalesDays:      cfg.SalesDays,
				TopProducts:    cfg.TopProducts,
				LowStockLimit:  cfg.LowStockLimit,
				CurrencySymbol: cfg.CurrencySymbol,
			}, log)
			// A chart that fails leaves its host empty; the page is still written.
			if err := view.Refresh(today); err != nil {
				log.Warn("Dashboard refreshed with errors", "error", err)
			}

			if outputFilePath == "" {
				outputFilePath = fmt.Sprintf("dashboard.%s", reportFormat)
			}
			return writeReport(view.Page(), reportFormat, outputFilePath, log)
		},
	}

	librariesCmd = &cobra.Command{
		Use:   "libraries",
		Short: "Lists the available chart libraries.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range chart.Libraries() {
				marker := " "
				if name == chart.DefaultLibrary {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
		},
	}
)

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("library") {
		cfg.Library = libraryName
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(
		logger.WithLevel(level),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithNoColor(cfg.Log.NoColor),
		logger.WithLogFile(cfg.Log.File),
	)
	slog.SetDefault(log)
	return cfg, log, nil
}

func parseValues(raw []string) ([]float64, error) {
	values := make([]float64, 0, len(raw))
	for _, s := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value '%s': %w", s, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func writeReport(page *dashboard.Page, reportFormat, outputPath string, log *slog.Logger) error {
	adapter, err := report.NewAdapter(reportFormat)
	if err != nil {
		return err
	}
	absOutputFilePath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output file path '%s': %w", outputPath, err)
	}

	if err := adapter.PrepareData(page); err != nil {
		return fmt.Errorf("failed to prepare %s report data: %w", reportFormat, err)
	}
	if err := adapter.Write(absOutputFilePath); err != nil {
		return fmt.Errorf("failed to write %s report to %s: %w", reportFormat, absOutputFilePath, err)
	}

	log.Info("Report written", "format", reportFormat, "path", absOutputFilePath)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this rotating file")
	rootCmd.PersistentFlags().StringVarP(&libraryName, "library", "l", chart.DefaultLibrary,
		fmt.Sprintf("Chart library (%s)", strings.Join(chart.Libraries(), ", ")))
	rootCmd.PersistentFlags().StringVarP(&outputFilePath, "output-file-path", "o", "", "Output file path for the report")

	renderCmd.Flags().StringVarP(&chartKind, "kind", "k", string(chart.KindLine), "Chart kind (line, bar, scatter)")
	renderCmd.Flags().StringSliceVar(&chartLabels, "labels", nil, "Comma separated category labels")
	renderCmd.Flags().StringVar(&datasetLabel, "label", "Series", "Dataset label")
	renderCmd.Flags().StringSliceVar(&chartValues, "values", nil, "Comma separated values, one per label")
	renderCmd.Flags().IntVar(&chartWidth, "width", ui.DefaultWidth, "Page width in pixels")

	dashboardCmd.Flags().StringVar(&reportDate, "date", "", "Day to report (YYYY-MM-DD, default today)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(librariesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
