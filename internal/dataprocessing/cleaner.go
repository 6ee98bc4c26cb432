package dataprocessing

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"savi/pkg/contracts/domain"
)

// Row is one raw table row keyed by source column name. Values are the
// formatted cell strings as read from the workbook.
type Row map[string]string

// dateLayouts are the accepted textual date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
	"01-02-06",
	"1/2/06 15:04",
}

// CleanSales converts raw sales rows to typed records. Rows with an empty
// document id are dropped; quantity and net value default to 0 when
// unparseable; an unparseable document date yields a nil date but keeps the
// row.
func CleanSales(rows []Row) []domain.Sale {
	sales := make([]domain.Sale, 0, len(rows))
	for _, row := range rows {
		docID := strings.TrimSpace(row[colSaleDoc])
		if docID == "" {
			continue
		}
		sales = append(sales, domain.Sale{
			DocID:        docID,
			DocDate:      parseDate(row[colSaleDate]),
			CustomerID:   strings.TrimSpace(row[colCustomerID]),
			CustomerName: strings.TrimSpace(row[colCustomerName]),
			Channel:      strings.TrimSpace(row[colChannel]),
			Product:      strings.TrimSpace(row[colProduct]),
			Quantity:     parseNumber(row[colQuantity]),
			NetValue:     parseNumber(row[colNetValue]),
			Currency:     strings.TrimSpace(row[colCurrency]),
		})
	}
	return sales
}

// CleanPayments converts raw payment rows to typed records. Rows with an
// empty invoice reference are dropped; the payment amount defaults to 0 when
// unparseable.
func CleanPayments(rows []Row) []domain.Payment {
	payments := make([]domain.Payment, 0, len(rows))
	for _, row := range rows {
		invoiceRef := strings.TrimSpace(row[colInvoiceRef])
		if invoiceRef == "" {
			continue
		}
		payments = append(payments, domain.Payment{
			DocID:        strings.TrimSpace(row[colPayDoc]),
			PayDate:      parseDate(row[colPayDate]),
			CustomerID:   strings.TrimSpace(row[colCustomerID]),
			CustomerName: strings.TrimSpace(row[colCustomerName]),
			Bank:         strings.TrimSpace(row[colBank]),
			Amount:       parseNumber(row[colPayAmount]),
			Currency:     strings.TrimSpace(row[colCurrency]),
			InvoiceRef:   invoiceRef,
		})
	}
	return payments
}

// CleanStock converts raw stock rows to typed records. Total stock defaults
// to 0 when unparseable.
func CleanStock(rows []Row) []domain.StockItem {
	stock := make([]domain.StockItem, 0, len(rows))
	for _, row := range rows {
		stock = append(stock, domain.StockItem{
			MaterialID:    strings.TrimSpace(row[colMaterial]),
			Description:   strings.TrimSpace(row[colDescription]),
			Center:        strings.TrimSpace(row[colCenter]),
			WarehouseType: strings.TrimSpace(row[colWarehouseType]),
			TotalStock:    parseNumber(row[colStockTotal]),
			Unit:          strings.TrimSpace(row[colUnit]),
		})
	}
	return stock
}

// parseNumber parses a numeric cell value, tolerating thousands separators
// and surrounding whitespace. Unparseable values become 0.
func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val
}

// parseDate parses a date cell value. Workbook cells may carry either a
// formatted date string or a raw Excel serial number, so both are accepted.
// Unparseable values yield nil; callers keep the row and treat the date as
// unknown.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	// Excel serial date. 60 is the first serial after the historical
	// leap-year bug window, which keeps small plain numbers from being
	// misread as dates.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 60 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}

	return nil
}
