package http

import (
	"context"
	"os"

	"savi/internal/files"
	"savi/internal/filter"
	"savi/internal/services"
	"savi/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the service operations the handlers need.
// Kept as an interface so handler tests can substitute a stub service.
type AnalysisServiceInterface interface {
	LoadData(ctx context.Context) (*domain.Dataset, error)
	Dataset() (*domain.Dataset, error)
	Analyze(ctx context.Context, criteria filter.Criteria) (*services.AnalysisResult, error)
	BuildReport(ctx context.Context, criteria filter.Criteria, includeSummary bool) ([]byte, error)
	ListReports() ([]files.ReportInfo, error)
	OpenReport(name string) (*os.File, error)
}
