// Package report serializes the session tables into a formatted multi-sheet
// spreadsheet.
//
// Unlike filtering and KPI computation, report generation never fails soft: a
// corrupt or partial report file is worse than an explicit failure, so every
// serialization error is wrapped and propagated.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"savi/internal/errors"
	"savi/internal/kpi"
	"savi/pkg/contracts/domain"
)

// Sheet names, in fixed output order.
const (
	SheetSales    = "Ventas"
	SheetPayments = "Pagos"
	SheetStock    = "Stock"
	SheetSummary  = "Resumen"
)

const (
	headerFillColor = "D7E4BC"
	numberFormat    = "#,##0.00"
	defaultColWidth = 15
	labelColWidth   = 30
	valueColWidth   = 20
	dateFormat      = "2006-01-02"
)

// summaryMetrics are the fixed labels of the summary sheet, in order.
var summaryMetrics = []string{
	"Total Ventas",
	"Total Pagado",
	"Pendiente por Cobrar",
	"Productos Únicos",
	"Clientes Únicos",
	"Transacciones de Venta",
	"Transacciones de Pago",
	"Materiales en Stock",
	"Centros de Distribución",
	"Stock Total (Unidades)",
}

// Builder produces spreadsheet report artifacts.
type Builder struct {
	logger *slog.Logger
	calc   *kpi.Calculator
}

// NewBuilder creates a report builder.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		logger: logger,
		calc:   kpi.NewCalculator(logger),
	}
}

// Build serializes the three tables (and optionally a summary sheet) into
// xlsx bytes. The summary is computed from exactly the tables passed to this
// call, so it always reflects what is in the report. Any failure is returned
// as a wrapped report error.
func (b *Builder) Build(ctx context.Context, sales []domain.Sale, payments []domain.Payment, stock []domain.StockItem, includeSummary bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, errors.NewReportError("style setup", err)
	}

	// Rename the default sheet instead of leaving an empty Sheet1 behind.
	if err := f.SetSheetName("Sheet1", SheetSales); err != nil {
		return nil, errors.NewReportError("sheet setup", err)
	}

	if err := b.writeSales(f, styles, sales); err != nil {
		return nil, errors.NewReportError("sales sheet", err)
	}
	if err := b.writePayments(f, styles, payments); err != nil {
		return nil, errors.NewReportError("payments sheet", err)
	}
	if err := b.writeStock(f, styles, stock); err != nil {
		return nil, errors.NewReportError("stock sheet", err)
	}
	if includeSummary {
		if err := b.writeSummary(ctx, f, styles, sales, payments, stock); err != nil {
			return nil, errors.NewReportError("summary sheet", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.NewReportError("serialization", err)
	}

	b.logger.InfoContext(ctx, "report generated",
		slog.Int("sales_rows", len(sales)),
		slog.Int("payment_rows", len(payments)),
		slog.Int("stock_rows", len(stock)),
		slog.Bool("summary", includeSummary),
		slog.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

// sheetStyles holds the style ids shared by all sheets.
type sheetStyles struct {
	header int
	number int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return sheetStyles{}, err
	}

	numFmt := numberFormat
	number, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return sheetStyles{}, err
	}

	return sheetStyles{header: header, number: number}, nil
}

func (b *Builder) writeSales(f *excelize.File, styles sheetStyles, sales []domain.Sale) error {
	header := []string{"Doc_Venta", "Fecha_Doc", "Cliente", "Nombre_Cliente", "Canal", "Producto", "Cantidad", "Valor_Neto", "Moneda"}
	rows := make([][]interface{}, len(sales))
	for i, s := range sales {
		rows[i] = []interface{}{
			s.DocID, formatDate(s.DocDate), s.CustomerID, s.CustomerName,
			s.Channel, s.Product, s.Quantity, s.NetValue, s.Currency,
		}
	}
	return writeSheet(f, SheetSales, styles, header, rows, []string{"G", "H"})
}

func (b *Builder) writePayments(f *excelize.File, styles sheetStyles, payments []domain.Payment) error {
	header := []string{"Doc_Pago", "Fecha_Pago", "Cliente", "Nombre_Cliente", "Banco", "Monto_Pago", "Moneda", "Referencia_Factura"}
	rows := make([][]interface{}, len(payments))
	for i, p := range payments {
		rows[i] = []interface{}{
			p.DocID, formatDate(p.PayDate), p.CustomerID, p.CustomerName,
			p.Bank, p.Amount, p.Currency, p.InvoiceRef,
		}
	}
	return writeSheet(f, SheetPayments, styles, header, rows, []string{"F"})
}

func (b *Builder) writeStock(f *excelize.File, styles sheetStyles, stock []domain.StockItem) error {
	header := []string{"Material", "Descripción", "Centro", "Tipo_Almacén", "Stock_Total", "Unidad_Medida"}
	rows := make([][]interface{}, len(stock))
	for i, s := range stock {
		rows[i] = []interface{}{
			s.MaterialID, s.Description, s.Center, s.WarehouseType, s.TotalStock, s.Unit,
		}
	}
	return writeSheet(f, SheetStock, styles, header, rows, []string{"E"})
}

// writeSummary appends the fixed ten-metric summary sheet computed from the
// tables in this report.
func (b *Builder) writeSummary(ctx context.Context, f *excelize.File, styles sheetStyles, sales []domain.Sale, payments []domain.Payment, stock []domain.StockItem) error {
	totals := b.calc.Compute(ctx, sales, payments)

	products := make(map[string]bool)
	customers := make(map[string]bool)
	for _, s := range sales {
		products[s.Product] = true
		customers[s.CustomerName] = true
	}

	centers := make(map[string]bool)
	var inStock int
	var totalUnits float64
	for _, s := range stock {
		centers[s.Center] = true
		if s.TotalStock > 0 {
			inStock++
		}
		totalUnits += s.TotalStock
	}

	values := []float64{
		totals.Sales,
		totals.Paid,
		totals.Pending,
		float64(len(products)),
		float64(len(customers)),
		float64(len(sales)),
		float64(len(payments)),
		float64(inStock),
		float64(len(centers)),
		totalUnits,
	}

	rows := make([][]interface{}, len(summaryMetrics))
	for i, metric := range summaryMetrics {
		rows[i] = []interface{}{metric, values[i]}
	}

	if err := writeSheet(f, SheetSummary, styles, []string{"Métrica", "Valor"}, rows, []string{"B"}); err != nil {
		return err
	}

	// The summary uses wider columns than the data sheets.
	if err := f.SetColWidth(SheetSummary, "A", "A", labelColWidth); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "B", "B", valueColWidth)
}

// writeSheet creates the sheet if needed and writes the styled header row,
// the data rows, column widths and numeric column formats.
func writeSheet(f *excelize.File, sheet string, styles sheetStyles, header []string, rows [][]interface{}, numericCols []string) error {
	if idx, err := f.GetSheetIndex(sheet); err != nil {
		return err
	} else if idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, defaultColWidth); err != nil {
		return err
	}

	// Numeric display format, applied to data cells only so the header keeps
	// its own style.
	for _, col := range numericCols {
		for i := range rows {
			cell := fmt.Sprintf("%s%d", col, i+2)
			if err := f.SetCellStyle(sheet, cell, cell, styles.number); err != nil {
				return err
			}
		}
	}

	lastHeaderCell := fmt.Sprintf("%s1", lastCol)
	return f.SetCellStyle(sheet, "A1", lastHeaderCell, styles.header)
}

// formatDate renders a nullable date; unknown dates appear as empty cells.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}
