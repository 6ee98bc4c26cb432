package domain

import (
	"time"
)

// Sale represents a single sales document line loaded from the sales table.
// DocDate is nil when the source value could not be parsed as a date;
// downstream consumers must treat it as "unknown", not as an error.
type Sale struct {
	DocID        string     `json:"doc_id"`
	DocDate      *time.Time `json:"doc_date,omitempty"`
	CustomerID   string     `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	Channel      string     `json:"channel"`
	Product      string     `json:"product"`
	Quantity     float64    `json:"quantity"`
	NetValue     float64    `json:"net_value"`
	Currency     string     `json:"currency"`
}

// Total returns the line total (quantity x unit net value).
func (s Sale) Total() float64 {
	return s.Quantity * s.NetValue
}

// Payment represents a customer payment. InvoiceRef links the payment to the
// sales document it settles (Sale.DocID); rows without a reference are dropped
// during cleaning, so after load InvoiceRef is always non-empty.
type Payment struct {
	DocID        string     `json:"doc_id"`
	PayDate      *time.Time `json:"pay_date,omitempty"`
	CustomerID   string     `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	Bank         string     `json:"bank"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	InvoiceRef   string     `json:"invoice_ref"`
}

// StockItem represents current stock for one material at one distribution
// center.
type StockItem struct {
	MaterialID    string  `json:"material_id"`
	Description   string  `json:"description"`
	Center        string  `json:"center"`
	WarehouseType string  `json:"warehouse_type"`
	TotalStock    float64 `json:"total_stock"`
	Unit          string  `json:"unit"`
}

// Dataset holds the three cleaned tables loaded for a session. It is the
// source of truth: filtering and analysis always derive new slices and never
// mutate the dataset in place.
type Dataset struct {
	Sales    []Sale      `json:"sales"`
	Payments []Payment   `json:"payments"`
	Stock    []StockItem `json:"stock"`
	LoadedAt time.Time   `json:"loaded_at"`
}

// Totals holds the aggregate financial indicators computed from a filtered
// sales view and the payments table.
type Totals struct {
	Sales   float64 `json:"total_sales"`
	Paid    float64 `json:"total_paid"`
	Pending float64 `json:"amount_pending"`
}

// PercentCollected returns paid as a percentage of sales, or 0 when there are
// no sales (avoids division by zero).
func (t Totals) PercentCollected() float64 {
	if t.Sales == 0 {
		return 0
	}
	return t.Paid / t.Sales * 100
}
