package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"savi/internal/config"
	"savi/internal/filter"
	"savi/internal/infrastructure"
	"savi/internal/services"
)

func main() {
	configFile := flag.String("config", config.DefaultConfigFile, "configuration file path")
	dataDir := flag.String("data", "", "input directory with the three SAP export files (overrides config)")
	outDir := flag.String("out", "", "output directory for the report (overrides config)")
	products := flag.String("products", "", "comma-separated product filter")
	customers := flag.String("customers", "", "comma-separated customer ID filter")
	channels := flag.String("channels", "", "comma-separated channel filter")
	currency := flag.String("currency", "", "currency filter (empty or Todas means all)")
	dateFrom := flag.String("from", "", "start date filter (YYYY-MM-DD, inclusive)")
	dateTo := flag.String("to", "", "end date filter (YYYY-MM-DD, inclusive)")
	noSummary := flag.Bool("no-summary", false, "omit the Resumen sheet")
	withCSV := flag.Bool("csv", false, "also export the analysis summary as CSV")
	keep := flag.Int("keep", 0, "prune old reports, keeping only the newest N (0 keeps all)")
	flag.Parse()

	cfg, err := config.LoadFrom(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Paths.ReportsDir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	criteria, err := buildCriteria(*products, *customers, *channels, *currency, *dateFrom, *dateTo)
	if err != nil {
		logger.Error("Invalid filter flags", "error", err)
		os.Exit(1)
	}

	service, err := services.NewAnalysisService(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize analysis service", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())

	dataset, err := service.LoadData(ctx)
	if err != nil {
		logger.Error("Failed to load data", "error", err)
		os.Exit(1)
	}

	result, err := service.Analyze(ctx, criteria)
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	path, err := service.SaveReport(ctx, criteria, !*noSummary)
	if err != nil {
		logger.Error("Report generation failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d sales, %d payments, %d stock rows\n",
		len(dataset.Sales), len(dataset.Payments), len(dataset.Stock))
	fmt.Printf("Matched sales:       %d\n", len(result.MatchedSales))
	fmt.Printf("Total ventas:        %.2f\n", result.Totals.Sales)
	fmt.Printf("Total pagado:        %.2f\n", result.Totals.Paid)
	fmt.Printf("Pendiente por cobrar: %.2f (%.1f%% collected)\n",
		result.Totals.Pending, result.PercentCollected)
	fmt.Printf("Report written to %s\n", path)

	if *withCSV {
		csvPath, err := service.ExportCSV(ctx, criteria)
		if err != nil {
			logger.Error("CSV export failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Summary CSV written to %s\n", csvPath)
	}

	if *keep > 0 {
		removed, err := service.PruneReports(*keep)
		if err != nil {
			logger.Warn("Failed to prune old reports", "error", err)
		} else if removed > 0 {
			fmt.Printf("Pruned %d old report(s)\n", removed)
		}
	}
}

// buildCriteria converts the CLI flags into filter criteria. Empty flags mean
// no restriction on that dimension.
func buildCriteria(products, customers, channels, currency, from, to string) (filter.Criteria, error) {
	criteria := filter.Criteria{
		Products:  splitList(products),
		Customers: splitList(customers),
		Channels:  splitList(channels),
		Currency:  currency,
	}

	if from != "" {
		d, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid -from date %q: %w", from, err)
		}
		criteria.DateFrom = &d
	}
	if to != "" {
		d, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid -to date %q: %w", to, err)
		}
		criteria.DateTo = &d
	}

	return criteria, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
