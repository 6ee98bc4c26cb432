package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"savi/pkg/contracts/domain"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleData() ([]domain.Sale, []domain.Payment, []domain.StockItem) {
	sales := []domain.Sale{
		{DocID: "V001", DocDate: date(2024, 1, 15), CustomerID: "C1", CustomerName: "Acme",
			Channel: "Online", Product: "Widget", Quantity: 2, NetValue: 100, Currency: "CLP"},
		{DocID: "V002", DocDate: nil, CustomerID: "C2", CustomerName: "Globex",
			Channel: "Retail", Product: "Gadget", Quantity: 1, NetValue: 1250.5, Currency: "CLP"},
	}
	payments := []domain.Payment{
		{DocID: "P001", PayDate: date(2024, 1, 20), CustomerID: "C1", CustomerName: "Acme",
			Bank: "BancoEstado", Amount: 150, Currency: "CLP", InvoiceRef: "V001"},
	}
	stock := []domain.StockItem{
		{MaterialID: "M001", Description: "Widget", Center: "DC01", WarehouseType: "A1", TotalStock: 120, Unit: "UN"},
		{MaterialID: "M002", Description: "Gadget", Center: "DC02", WarehouseType: "A1", TotalStock: 0, Unit: "UN"},
	}
	return sales, payments, stock
}

func openReport(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestBuilder_Build_SheetLayout(t *testing.T) {
	builder := NewBuilder(nil)
	sales, payments, stock := sampleData()

	data, err := builder.Build(context.Background(), sales, payments, stock, true)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f := openReport(t, data)
	assert.Equal(t, []string{"Ventas", "Pagos", "Stock", "Resumen"}, f.GetSheetList())
}

func TestBuilder_Build_WithoutSummary(t *testing.T) {
	builder := NewBuilder(nil)
	sales, payments, stock := sampleData()

	data, err := builder.Build(context.Background(), sales, payments, stock, false)
	require.NoError(t, err)

	f := openReport(t, data)
	assert.Equal(t, []string{"Ventas", "Pagos", "Stock"}, f.GetSheetList())
}

func TestBuilder_Build_RoundTrip(t *testing.T) {
	builder := NewBuilder(nil)
	sales, payments, stock := sampleData()

	data, err := builder.Build(context.Background(), sales, payments, stock, true)
	require.NoError(t, err)

	f := openReport(t, data)

	// Row and column counts per sheet match input exactly: header + data rows.
	raw := excelize.Options{RawCellValue: true}

	salesRows, err := f.GetRows("Ventas", raw)
	require.NoError(t, err)
	require.Len(t, salesRows, len(sales)+1)
	assert.Equal(t,
		[]string{"Doc_Venta", "Fecha_Doc", "Cliente", "Nombre_Cliente", "Canal", "Producto", "Cantidad", "Valor_Neto", "Moneda"},
		salesRows[0])
	assert.Equal(t,
		[]string{"V001", "2024-01-15", "C1", "Acme", "Online", "Widget", "2", "100", "CLP"},
		salesRows[1])
	// Unknown date serializes as an empty cell.
	assert.Equal(t, "V002", salesRows[2][0])
	assert.Equal(t, "", salesRows[2][1])

	paymentRows, err := f.GetRows("Pagos", raw)
	require.NoError(t, err)
	require.Len(t, paymentRows, len(payments)+1)
	assert.Equal(t,
		[]string{"P001", "2024-01-20", "C1", "Acme", "BancoEstado", "150", "CLP", "V001"},
		paymentRows[1])

	stockRows, err := f.GetRows("Stock", raw)
	require.NoError(t, err)
	require.Len(t, stockRows, len(stock)+1)
	assert.Equal(t,
		[]string{"Material", "Descripción", "Centro", "Tipo_Almacén", "Stock_Total", "Unidad_Medida"},
		stockRows[0])
}

func TestBuilder_Build_NumberFormat(t *testing.T) {
	builder := NewBuilder(nil)
	sales, payments, stock := sampleData()

	data, err := builder.Build(context.Background(), sales, payments, stock, false)
	require.NoError(t, err)

	f := openReport(t, data)

	// Net value 1250.5 renders thousands-separated with two decimals.
	got, err := f.GetCellValue("Ventas", "H3")
	require.NoError(t, err)
	assert.Equal(t, "1,250.50", got)
}

func TestBuilder_Build_SummaryMetrics(t *testing.T) {
	builder := NewBuilder(nil)
	sales, payments, stock := sampleData()

	data, err := builder.Build(context.Background(), sales, payments, stock, true)
	require.NoError(t, err)

	f := openReport(t, data)

	rows, err := f.GetRows("Resumen", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 11) // header + ten metrics

	assert.Equal(t, []string{"Métrica", "Valor"}, rows[0])

	wantLabels := []string{
		"Total Ventas", "Total Pagado", "Pendiente por Cobrar",
		"Productos Únicos", "Clientes Únicos",
		"Transacciones de Venta", "Transacciones de Pago",
		"Materiales en Stock", "Centros de Distribución", "Stock Total (Unidades)",
	}
	for i, label := range wantLabels {
		assert.Equal(t, label, rows[i+1][0])
	}

	// totalSales = 2*100 + 1*1250.5; only the matched payment counts.
	assert.Equal(t, "1450.5", rows[1][1])
	assert.Equal(t, "150", rows[2][1])
	assert.Equal(t, "1300.5", rows[3][1])
	assert.Equal(t, "2", rows[4][1]) // distinct products
	assert.Equal(t, "2", rows[5][1]) // distinct customers
	assert.Equal(t, "2", rows[6][1]) // sales transactions
	assert.Equal(t, "1", rows[7][1]) // payment transactions
	assert.Equal(t, "1", rows[8][1]) // stock items with positive quantity
	assert.Equal(t, "2", rows[9][1]) // distinct centers
	assert.Equal(t, "120", rows[10][1])
}

func TestBuilder_Build_EmptyTables(t *testing.T) {
	builder := NewBuilder(nil)

	data, err := builder.Build(context.Background(), nil, nil, nil, true)
	require.NoError(t, err)

	f := openReport(t, data)

	rows, err := f.GetRows("Resumen", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 11)

	// All metrics are zero on empty input.
	for i := 1; i <= 10; i++ {
		require.Len(t, rows[i], 2, "metric row %d", i)
		assert.Equal(t, "0", rows[i][1])
	}
}
