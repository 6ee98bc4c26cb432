package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"savi/internal/config"
	"savi/internal/errors"
	"savi/internal/validation"
	"savi/pkg/contracts/domain"
)

// Loader reads the three input workbooks and produces a cleaned Dataset.
type Loader struct {
	paths     *config.Paths
	logger    *slog.Logger
	validator *validation.FileValidator
}

// NewLoader creates a loader for the configured input paths.
func NewLoader(paths *config.Paths, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		paths:     paths,
		logger:    logger,
		validator: validation.NewFileValidator(logger),
	}
}

// Load reads, validates and cleans all three tables. It checks for all
// missing files up front so the returned NotFoundError names every missing
// input, not just the first. The three workbooks are read concurrently; any
// schema or read failure aborts the whole load.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	if missing := l.paths.MissingInputFiles(); len(missing) > 0 {
		l.logger.ErrorContext(ctx, "input files missing",
			slog.Any("files", missing))
		return nil, errors.NewNotFoundError(missing...)
	}

	l.logger.InfoContext(ctx, "loading input tables",
		slog.String("data_dir", l.paths.DataDir))

	var (
		sales    []domain.Sale
		payments []domain.Payment
		stock    []domain.StockItem
	)

	for _, path := range l.paths.InputFiles() {
		if err := l.validator.ValidateWorkbook(path); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := readTable(l.paths.SalesFile, TableSales, SalesColumns)
		if err != nil {
			return err
		}
		sales = CleanSales(rows)
		l.logger.InfoContext(ctx, "sales table loaded",
			slog.Int("raw_rows", len(rows)),
			slog.Int("clean_rows", len(sales)))
		return nil
	})
	g.Go(func() error {
		rows, err := readTable(l.paths.PaymentsFile, TablePayments, PaymentsColumns)
		if err != nil {
			return err
		}
		payments = CleanPayments(rows)
		l.logger.InfoContext(ctx, "payments table loaded",
			slog.Int("raw_rows", len(rows)),
			slog.Int("clean_rows", len(payments)))
		return nil
	})
	g.Go(func() error {
		rows, err := readTable(l.paths.StockFile, TableStock, StockColumns)
		if err != nil {
			return err
		}
		stock = CleanStock(rows)
		l.logger.InfoContext(ctx, "stock table loaded",
			slog.Int("rows", len(stock)))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Dataset{
		Sales:    sales,
		Payments: payments,
		Stock:    stock,
		LoadedAt: time.Now(),
	}, nil
}

// readTable opens a workbook, locates the required columns in the first
// sheet's header row and returns the data rows keyed by column name. Fully
// empty rows are skipped.
func readTable(path, table string, required []string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("failed to open %s workbook", table), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError(
			fmt.Sprintf("%s workbook has no sheets", table), nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError(
			fmt.Sprintf("failed to read %s sheet", table), err)
	}
	if len(rows) == 0 {
		return nil, errors.NewSchemaError(table, required)
	}

	index := headerIndex(rows[0])
	if err := ValidateSchema(table, index, required); err != nil {
		return nil, err
	}

	data := make([]Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		if isEmptyRow(raw) {
			continue
		}
		row := make(Row, len(required))
		for _, col := range required {
			if i := index[col]; i < len(raw) {
				row[col] = raw[i]
			}
		}
		data = append(data, row)
	}
	return data, nil
}

// isEmptyRow reports whether every cell in the row is blank.
func isEmptyRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
