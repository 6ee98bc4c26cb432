package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"savi/internal/dataprocessing"
	"savi/pkg/contracts/domain"
)

// utf8BOM makes Excel detect UTF-8 instead of the legacy codepage.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteCSV writes headers and records to the given path, creating parent
// directories as needed.
func (w *CSVWriter) WriteCSV(path string, headers []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := cw.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	w.logger.Info("CSV file written",
		slog.String("path", path),
		slog.Int("records", len(records)))

	return nil
}

// WriteAnalysis writes the KPI totals and chart aggregations of one analysis
// as a single CSV with sectioned rows, mirroring the Resumen sheet.
func (w *CSVWriter) WriteAnalysis(path string, totals domain.Totals,
	products []dataprocessing.ProductSales,
	channels []dataprocessing.ChannelSales,
	months []dataprocessing.MonthlyPayments) error {

	records := [][]string{
		{"Total Ventas", formatAmount(totals.Sales)},
		{"Total Pagado", formatAmount(totals.Paid)},
		{"Pendiente por Cobrar", formatAmount(totals.Pending)},
	}

	for _, p := range products {
		records = append(records, []string{"Ventas por Producto: " + p.Product, formatAmount(p.Value)})
	}
	for _, c := range channels {
		records = append(records, []string{"Ventas por Canal: " + c.Channel, formatAmount(c.Value)})
	}
	for _, m := range months {
		records = append(records, []string{"Pagos " + m.Month, formatAmount(m.Amount)})
	}

	return w.WriteCSV(path, []string{"Métrica", "Valor"}, records)
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
