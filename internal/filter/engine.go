// Package filter narrows the sales table according to user-selected criteria.
//
// Filtering is fail-open: an internal failure is logged and the unfiltered
// input is returned, because showing unfiltered data mid-session is preferable
// to crashing the analysis view.
package filter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"savi/pkg/contracts/domain"
)

// AllCurrencies is the sentinel currency selection meaning "no currency
// constraint".
const AllCurrencies = "Todas"

// Criteria describes an optional, conjunctive set of sales filters. Nil or
// empty set fields and an empty (or sentinel) currency mean "no constraint";
// date bounds are inclusive and independent.
type Criteria struct {
	Products  []string   `json:"products,omitempty"`
	Customers []string   `json:"customers,omitempty"`
	Channels  []string   `json:"channels,omitempty"`
	Currency  string     `json:"currency,omitempty"`
	DateFrom  *time.Time `json:"date_from,omitempty"`
	DateTo    *time.Time `json:"date_to,omitempty"`
}

// IsZero reports whether no constraint is set.
func (c Criteria) IsZero() bool {
	return len(c.Products) == 0 && len(c.Customers) == 0 && len(c.Channels) == 0 &&
		(c.Currency == "" || c.Currency == AllCurrencies) &&
		c.DateFrom == nil && c.DateTo == nil
}

// Engine applies filter criteria to sales views.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a filter engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Apply returns a new slice holding the sales that match every constraint in
// the criteria. The input is never mutated. On internal failure the original
// input is returned unchanged and the error is logged, never propagated.
func (e *Engine) Apply(ctx context.Context, sales []domain.Sale, criteria Criteria) (result []domain.Sale) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "filter application failed, returning unfiltered view",
				slog.String("error", fmt.Sprintf("%v", r)))
			result = sales
		}
	}()

	products := toSet(criteria.Products)
	customers := toSet(criteria.Customers)
	channels := toSet(criteria.Channels)
	currency := criteria.Currency

	result = make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if len(products) > 0 && !products[sale.Product] {
			continue
		}
		if len(customers) > 0 && !customers[sale.CustomerName] {
			continue
		}
		if len(channels) > 0 && !channels[sale.Channel] {
			continue
		}
		if currency != "" && currency != AllCurrencies && sale.Currency != currency {
			continue
		}
		if !matchesDateRange(sale.DocDate, criteria.DateFrom, criteria.DateTo) {
			continue
		}
		result = append(result, sale)
	}

	e.logger.InfoContext(ctx, "filters applied",
		slog.Int("input_rows", len(sales)),
		slog.Int("output_rows", len(result)))

	return result
}

// matchesDateRange checks the inclusive [from, to] bounds. A sale with an
// unknown date fails any set bound.
func matchesDateRange(date, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if date == nil {
		return false
	}
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
