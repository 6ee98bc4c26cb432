package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"savi/internal/config"
	"savi/internal/dataprocessing"
	apperrors "savi/internal/errors"
	"savi/internal/exporter"
	"savi/internal/files"
	"savi/internal/filter"
	"savi/internal/kpi"
	"savi/internal/report"
	"savi/pkg/contracts/domain"
)

// ErrDataNotLoaded is returned by analysis operations invoked before a
// successful LoadData.
var ErrDataNotLoaded = apperrors.NewValidationError("data not loaded; call load first")

// AnalysisService is the session object behind the presentation boundary. It
// owns the immutable loaded dataset and coordinates filtering, KPI
// computation and report generation. It holds no process-wide state; callers
// create one per session.
type AnalysisService struct {
	config  *config.Config
	paths   *config.Paths
	logger  *slog.Logger
	loader  *dataprocessing.Loader
	filters *filter.Engine
	calc    *kpi.Calculator
	builder *report.Builder
	reports *files.Store
	csv     *exporter.CSVWriter

	// mu guards dataset replacement on reload; reads are lock-free copies
	// of the pointer.
	mu      sync.RWMutex
	dataset *domain.Dataset
}

// AnalysisResult bundles everything the presentation layer renders for one
// filter selection.
type AnalysisResult struct {
	Criteria         filter.Criteria                  `json:"criteria"`
	MatchedSales     []domain.Sale                    `json:"matched_sales"`
	Totals           domain.Totals                    `json:"totals"`
	PercentCollected float64                          `json:"percent_collected"`
	SalesByProduct   []dataprocessing.ProductSales    `json:"sales_by_product"`
	SalesByChannel   []dataprocessing.ChannelSales    `json:"sales_by_channel"`
	PaymentsByMonth  []dataprocessing.MonthlyPayments `json:"payments_by_month"`
	StockStatus      dataprocessing.StockStatus       `json:"stock_status"`
}

// NewAnalysisService creates a session service for the given configuration.
func NewAnalysisService(cfg *config.Config, logger *slog.Logger) (*AnalysisService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirs(); err != nil {
		return nil, err
	}

	logger.Info("analysis service initialized",
		slog.String("data_dir", paths.DataDir),
		slog.String("reports_dir", paths.ReportsDir))

	return &AnalysisService{
		config:  cfg,
		paths:   paths,
		logger:  logger,
		loader:  dataprocessing.NewLoader(paths, logger),
		filters: filter.NewEngine(logger),
		calc:    kpi.NewCalculator(logger),
		builder: report.NewBuilder(logger),
		reports: files.NewStore(paths.ReportsDir, logger),
		csv:     exporter.NewCSVWriter(logger),
	}, nil
}

// Paths exposes the resolved application paths.
func (s *AnalysisService) Paths() *config.Paths {
	return s.paths
}

// LoadData loads, validates and cleans the three input tables, replacing any
// previously loaded dataset. Load errors always propagate: nothing usable
// exists until a load succeeds.
func (s *AnalysisService) LoadData(ctx context.Context) (*domain.Dataset, error) {
	dataset, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.dataset = dataset
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("sales", len(dataset.Sales)),
		slog.Int("payments", len(dataset.Payments)),
		slog.Int("stock", len(dataset.Stock)))

	return dataset, nil
}

// Dataset returns the loaded dataset or ErrDataNotLoaded.
func (s *AnalysisService) Dataset() (*domain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, ErrDataNotLoaded
	}
	return s.dataset, nil
}

// ApplyFilters returns a new filtered sales view for the current dataset.
func (s *AnalysisService) ApplyFilters(ctx context.Context, criteria filter.Criteria) ([]domain.Sale, error) {
	dataset, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return s.filters.Apply(ctx, dataset.Sales, criteria), nil
}

// ComputeKPIs derives the financial totals for a filtered sales view against
// the session's full payments table.
func (s *AnalysisService) ComputeKPIs(ctx context.Context, filteredSales []domain.Sale) (domain.Totals, error) {
	dataset, err := s.Dataset()
	if err != nil {
		return domain.Totals{}, err
	}
	return s.calc.Compute(ctx, filteredSales, dataset.Payments), nil
}

// Analyze applies the criteria and returns the KPIs plus the chart
// aggregations for the resulting view.
func (s *AnalysisService) Analyze(ctx context.Context, criteria filter.Criteria) (*AnalysisResult, error) {
	dataset, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	matched := s.filters.Apply(ctx, dataset.Sales, criteria)
	totals := s.calc.Compute(ctx, matched, dataset.Payments)

	return &AnalysisResult{
		Criteria:         criteria,
		MatchedSales:     matched,
		Totals:           totals,
		PercentCollected: totals.PercentCollected(),
		SalesByProduct:   dataprocessing.SalesByProduct(matched),
		SalesByChannel:   dataprocessing.SalesByChannel(matched),
		PaymentsByMonth:  dataprocessing.PaymentsByMonth(dataset.Payments),
		StockStatus:      dataprocessing.StockStatusCounts(dataset.Stock, 0),
	}, nil
}

// BuildReport produces the spreadsheet bytes for the filtered sales view plus
// the full payments and stock tables. Report errors always propagate.
func (s *AnalysisService) BuildReport(ctx context.Context, criteria filter.Criteria, includeSummary bool) ([]byte, error) {
	dataset, err := s.Dataset()
	if err != nil {
		return nil, err
	}

	matched := s.filters.Apply(ctx, dataset.Sales, criteria)
	return s.builder.Build(ctx, matched, dataset.Payments, dataset.Stock, includeSummary)
}

// SaveReport builds the report and writes it to a timestamped file in the
// reports directory, returning the written path.
func (s *AnalysisService) SaveReport(ctx context.Context, criteria filter.Criteria, includeSummary bool) (string, error) {
	data, err := s.BuildReport(ctx, criteria, includeSummary)
	if err != nil {
		return "", err
	}

	path := s.paths.ReportFile(time.Now())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", apperrors.NewReportError("file write", err)
	}

	s.logger.InfoContext(ctx, "report written",
		slog.String("path", path),
		slog.Int("bytes", len(data)))

	return path, nil
}

// ExportCSV runs an analysis for the criteria and writes its totals and
// aggregations as a timestamped CSV in the reports directory, returning the
// written path.
func (s *AnalysisService) ExportCSV(ctx context.Context, criteria filter.Criteria) (string, error) {
	result, err := s.Analyze(ctx, criteria)
	if err != nil {
		return "", err
	}

	path := s.paths.SummaryCSVFile(time.Now())
	if err := s.csv.WriteAnalysis(path, result.Totals,
		result.SalesByProduct, result.SalesByChannel, result.PaymentsByMonth); err != nil {
		return "", apperrors.NewReportError("csv export", err)
	}
	return path, nil
}

// ListReports returns the generated reports on disk, newest first.
func (s *AnalysisService) ListReports() ([]files.ReportInfo, error) {
	return s.reports.List()
}

// OpenReport opens a generated report by base name for streaming to a client.
func (s *AnalysisService) OpenReport(name string) (*os.File, error) {
	f, err := s.reports.Open(name)
	if err != nil {
		return nil, apperrors.NewNotFoundError(name)
	}
	return f, nil
}

// PruneReports removes old generated reports, keeping the newest keep files.
func (s *AnalysisService) PruneReports(keep int) (int, error) {
	return s.reports.Prune(keep)
}
