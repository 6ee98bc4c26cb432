package dataprocessing

import (
	"sort"

	"savi/pkg/contracts/domain"
)

// DefaultLowStockThreshold is the quantity at or below which an in-stock
// material counts as low stock.
const DefaultLowStockThreshold = 50

// ProductSales aggregates sales value and quantity for one product.
type ProductSales struct {
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
	Value    float64 `json:"value"`
}

// ChannelSales aggregates sales value for one sales channel.
type ChannelSales struct {
	Channel string  `json:"channel"`
	Value   float64 `json:"value"`
}

// MonthlyPayments aggregates payment amounts for one calendar month.
type MonthlyPayments struct {
	Month  string  `json:"month"` // formatted as 2006-01
	Amount float64 `json:"amount"`
}

// StockStatus counts materials by availability bucket.
type StockStatus struct {
	OutOfStock int `json:"out_of_stock"`
	LowStock   int `json:"low_stock"`
	Normal     int `json:"normal"`
}

// SalesByProduct returns per-product quantity and value totals, sorted by
// value descending with a name tiebreak for deterministic output.
func SalesByProduct(sales []domain.Sale) []ProductSales {
	totals := make(map[string]*ProductSales)
	for _, s := range sales {
		entry, ok := totals[s.Product]
		if !ok {
			entry = &ProductSales{Product: s.Product}
			totals[s.Product] = entry
		}
		entry.Quantity += s.Quantity
		entry.Value += s.Total()
	}

	result := make([]ProductSales, 0, len(totals))
	for _, entry := range totals {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Product < result[j].Product
	})
	return result
}

// SalesByChannel returns per-channel value totals, sorted by value descending
// with a name tiebreak.
func SalesByChannel(sales []domain.Sale) []ChannelSales {
	totals := make(map[string]float64)
	for _, s := range sales {
		totals[s.Channel] += s.Total()
	}

	result := make([]ChannelSales, 0, len(totals))
	for channel, value := range totals {
		result = append(result, ChannelSales{Channel: channel, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Channel < result[j].Channel
	})
	return result
}

// PaymentsByMonth returns payment totals per calendar month in chronological
// order. Payments with an unknown date are skipped.
func PaymentsByMonth(payments []domain.Payment) []MonthlyPayments {
	totals := make(map[string]float64)
	for _, p := range payments {
		if p.PayDate == nil {
			continue
		}
		totals[p.PayDate.Format("2006-01")] += p.Amount
	}

	result := make([]MonthlyPayments, 0, len(totals))
	for month, amount := range totals {
		result = append(result, MonthlyPayments{Month: month, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result
}

// StockStatusCounts buckets materials into out-of-stock, low and normal using
// the given threshold. A non-positive threshold falls back to the default.
func StockStatusCounts(stock []domain.StockItem, lowThreshold float64) StockStatus {
	if lowThreshold <= 0 {
		lowThreshold = DefaultLowStockThreshold
	}

	var status StockStatus
	for _, item := range stock {
		switch {
		case item.TotalStock <= 0:
			status.OutOfStock++
		case item.TotalStock <= lowThreshold:
			status.LowStock++
		default:
			status.Normal++
		}
	}
	return status
}
