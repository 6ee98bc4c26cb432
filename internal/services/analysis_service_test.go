package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"savi/internal/config"
	apperrors "savi/internal/errors"
	"savi/internal/filter"
	"savi/internal/shared/testutil"
)

func newTestService(t *testing.T) *AnalysisService {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			DataDir:    dir,
			ReportsDir: filepath.Join(dir, "reports"),
			LogsDir:    filepath.Join(dir, "logs"),
		},
	}

	svc, err := NewAnalysisService(cfg, slog.Default())
	require.NoError(t, err)
	return svc
}

func loadedTestService(t *testing.T) *AnalysisService {
	t.Helper()

	svc := newTestService(t)
	testutil.WriteSampleDataset(t, svc.Paths())

	_, err := svc.LoadData(context.Background())
	require.NoError(t, err)
	return svc
}

func TestAnalysisService_RequiresLoad(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Dataset()
	assert.ErrorIs(t, err, ErrDataNotLoaded)

	_, err = svc.ApplyFilters(ctx, filter.Criteria{})
	assert.ErrorIs(t, err, ErrDataNotLoaded)

	_, err = svc.ComputeKPIs(ctx, nil)
	assert.ErrorIs(t, err, ErrDataNotLoaded)

	_, err = svc.BuildReport(ctx, filter.Criteria{}, true)
	assert.ErrorIs(t, err, ErrDataNotLoaded)
}

func TestAnalysisService_LoadData(t *testing.T) {
	svc := loadedTestService(t)

	dataset, err := svc.Dataset()
	require.NoError(t, err)
	assert.Len(t, dataset.Sales, 2)
	assert.Len(t, dataset.Payments, 2)
	assert.Len(t, dataset.Stock, 2)
}

func TestAnalysisService_LoadData_MissingFiles(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.LoadData(context.Background())
	require.Error(t, err)

	var notFound *apperrors.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Len(t, notFound.Files, 3)
}

func TestAnalysisService_FilterAndKPIs(t *testing.T) {
	svc := loadedTestService(t)
	ctx := context.Background()

	matched, err := svc.ApplyFilters(ctx, filter.Criteria{Currency: "CLP"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "V001", matched[0].DocID)

	// Paid is relative to the filtered scope; the unmatched V999 reference
	// is excluded.
	totals, err := svc.ComputeKPIs(ctx, matched)
	require.NoError(t, err)
	assert.Equal(t, 200.0, totals.Sales)
	assert.Equal(t, 150.0, totals.Paid)
	assert.Equal(t, 50.0, totals.Pending)
}

func TestAnalysisService_Analyze(t *testing.T) {
	svc := loadedTestService(t)

	result, err := svc.Analyze(context.Background(), filter.Criteria{})
	require.NoError(t, err)

	assert.Len(t, result.MatchedSales, 2)
	assert.InDelta(t, 450.5, result.Totals.Sales, 1e-9)
	assert.Equal(t, 150.0, result.Totals.Paid)
	assert.InDelta(t, 150.0/450.5*100, result.PercentCollected, 1e-9)
	assert.Len(t, result.SalesByProduct, 2)
	assert.Len(t, result.SalesByChannel, 2)
	assert.Equal(t, 1, result.StockStatus.OutOfStock)
	assert.Equal(t, 1, result.StockStatus.Normal)
}

func TestAnalysisService_BuildReport(t *testing.T) {
	svc := loadedTestService(t)

	data, err := svc.BuildReport(context.Background(), filter.Criteria{Products: []string{"Widget"}}, true)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Ventas", "Pagos", "Stock", "Resumen"}, f.GetSheetList())

	// Only the filtered sale lands in the report; payments stay complete.
	salesRows, err := f.GetRows("Ventas")
	require.NoError(t, err)
	assert.Len(t, salesRows, 2)

	paymentRows, err := f.GetRows("Pagos")
	require.NoError(t, err)
	assert.Len(t, paymentRows, 3)
}

func TestAnalysisService_ExportCSVAndReportStore(t *testing.T) {
	svc := loadedTestService(t)
	ctx := context.Background()

	csvPath, err := svc.ExportCSV(ctx, filter.Criteria{})
	require.NoError(t, err)
	assert.FileExists(t, csvPath)
	assert.Contains(t, filepath.Base(csvPath), "Resumen_SAP_")

	_, err = svc.SaveReport(ctx, filter.Criteria{}, true)
	require.NoError(t, err)

	// The store lists only workbooks; the CSV next to them is not a report.
	reports, err := svc.ListReports()
	require.NoError(t, err)
	require.Len(t, reports, 1)

	f, err := svc.OpenReport(reports[0].Name)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = svc.OpenReport("missing.xlsx")
	var notFound *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestAnalysisService_SaveReport(t *testing.T) {
	svc := loadedTestService(t)

	path, err := svc.SaveReport(context.Background(), filter.Criteria{}, true)
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Contains(t, filepath.Base(path), "Reporte_SAP_")
}
