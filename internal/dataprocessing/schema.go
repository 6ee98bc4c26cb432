package dataprocessing

import (
	"strings"

	"savi/internal/errors"
)

// Table names as reported in schema errors.
const (
	TableSales    = "ventas"
	TablePayments = "pagos"
	TableStock    = "stock"
)

// Source column names for the sales table.
const (
	colSaleDoc      = "Doc_Venta"
	colSaleDate     = "Fecha_Doc"
	colCustomerID   = "Cliente"
	colCustomerName = "Nombre_Cliente"
	colChannel      = "Canal"
	colProduct      = "Producto"
	colQuantity     = "Cantidad"
	colNetValue     = "Valor_Neto"
	colCurrency     = "Moneda"
)

// Source column names for the payments table.
const (
	colPayDoc     = "Doc_Pago"
	colPayDate    = "Fecha_Pago"
	colBank       = "Banco"
	colPayAmount  = "Monto_Pago"
	colInvoiceRef = "Referencia_Factura"
)

// Source column names for the stock table.
const (
	colMaterial      = "Material"
	colDescription   = "Descripción"
	colCenter        = "Centro"
	colWarehouseType = "Tipo_Almacén"
	colStockTotal    = "Stock_Total"
	colUnit          = "Unidad_Medida"
)

// SalesColumns lists the required columns of the sales table.
var SalesColumns = []string{
	colSaleDoc, colSaleDate, colCustomerID, colCustomerName,
	colChannel, colProduct, colQuantity, colNetValue, colCurrency,
}

// PaymentsColumns lists the required columns of the payments table.
var PaymentsColumns = []string{
	colPayDoc, colPayDate, colCustomerID, colCustomerName,
	colBank, colPayAmount, colCurrency, colInvoiceRef,
}

// StockColumns lists the required columns of the stock table.
var StockColumns = []string{
	colMaterial, colDescription, colCenter,
	colWarehouseType, colStockTotal, colUnit,
}

// headerIndex maps trimmed header cell values to their column positions.
// Duplicate headers keep the first occurrence.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}

// ValidateSchema checks that every required column is present in the header
// index and returns a SchemaError naming the missing ones otherwise.
func ValidateSchema(table string, index map[string]int, required []string) error {
	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return errors.NewSchemaError(table, missing)
	}
	return nil
}
