// Package kpi derives the aggregate financial indicators from a filtered
// sales view and the payments table.
//
// Computation is fail-soft: an internal failure is logged and a zeroed result
// is returned, never an error, so a mid-session user keeps a working view.
package kpi

import (
	"context"
	"fmt"
	"log/slog"

	"savi/pkg/contracts/domain"
)

// Calculator computes KPI totals.
type Calculator struct {
	logger *slog.Logger
}

// NewCalculator creates a KPI calculator.
func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger}
}

// Compute returns total sales, total paid and pending amount for the given
// filtered sales view. Payments are matched against the document ids present
// in the view, so paid/pending is always relative to the current filter
// scope. Payments whose invoice reference matches no document in the view are
// excluded from the paid total; their count is logged as a data-quality
// signal. Pending may be negative when a scope is overpaid.
func (c *Calculator) Compute(ctx context.Context, filteredSales []domain.Sale, payments []domain.Payment) (totals domain.Totals) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.ErrorContext(ctx, "kpi computation failed, returning zeroed totals",
				slog.String("error", fmt.Sprintf("%v", r)))
			totals = domain.Totals{}
		}
	}()

	docIDs := make(map[string]bool, len(filteredSales))
	for _, sale := range filteredSales {
		totals.Sales += sale.Total()
		docIDs[sale.DocID] = true
	}

	var unmatched int
	for _, payment := range payments {
		if docIDs[payment.InvoiceRef] {
			totals.Paid += payment.Amount
		} else {
			unmatched++
		}
	}

	totals.Pending = totals.Sales - totals.Paid

	if unmatched > 0 {
		c.logger.DebugContext(ctx, "payments excluded from paid total",
			slog.Int("unmatched_refs", unmatched))
	}

	c.logger.InfoContext(ctx, "kpis computed",
		slog.Float64("total_sales", totals.Sales),
		slog.Float64("total_paid", totals.Paid),
		slog.Float64("pending", totals.Pending))

	return totals
}
