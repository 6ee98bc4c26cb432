package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"savi/internal/config"
)

// WriteWorkbook creates an .xlsx file with a header row followed by data rows
// on the default sheet.
func WriteWorkbook(t *testing.T, path string, header []string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &headerCells))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	require.NoError(t, f.SaveAs(path))
}

// WriteSampleDataset writes a small consistent trio of input workbooks into
// the data directory of the given paths. The fixture has two valid sales
// (V001 2x100 CLP Online/Widget/Acme, V002 1x250.5 USD Retail/Gadget/Globex),
// one matched payment of 150 against V001 plus one unmatched reference, and
// two stock materials (one out of stock).
func WriteSampleDataset(t *testing.T, paths *config.Paths) {
	t.Helper()

	WriteWorkbook(t, paths.SalesFile,
		[]string{"Doc_Venta", "Fecha_Doc", "Cliente", "Nombre_Cliente", "Canal", "Producto", "Cantidad", "Valor_Neto", "Moneda"},
		[][]interface{}{
			{"V001", "2024-01-15", "C1", "Acme", "Online", "Widget", 2, 100, "CLP"},
			{"V002", "2024-02-01", "C2", "Globex", "Retail", "Gadget", 1, 250.5, "USD"},
		})

	WriteWorkbook(t, paths.PaymentsFile,
		[]string{"Doc_Pago", "Fecha_Pago", "Cliente", "Nombre_Cliente", "Banco", "Monto_Pago", "Moneda", "Referencia_Factura"},
		[][]interface{}{
			{"P001", "2024-01-20", "C1", "Acme", "BancoEstado", 150, "CLP", "V001"},
			{"P002", "2024-02-05", "C9", "Umbrella", "Santander", 999, "CLP", "V999"},
		})

	WriteWorkbook(t, paths.StockFile,
		[]string{"Material", "Descripción", "Centro", "Tipo_Almacén", "Stock_Total", "Unidad_Medida"},
		[][]interface{}{
			{"M001", "Widget", "DC01", "A1", 120, "UN"},
			{"M002", "Gadget", "DC02", "A1", 0, "UN"},
		})
}
