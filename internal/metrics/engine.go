// Package metrics derives revenue, cost and gross-profit figures by joining
// customer orders against the product catalog. All functions are pure reads
// over store snapshots; profit is always revenue minus cost and never stored.
package metrics

import (
	"time"

	"crm_manager/internal/models"
)

// Catalog resolves product references from orders. A missing product must
// report ok=false; the engine then counts the order with zero contribution
// instead of failing on the orphaned reference.
type Catalog interface {
	Lookup(id string) (models.Product, bool)
}

type Summary struct {
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
	Orders  int     `json:"orders"`
}

type DayPoint struct {
	Date    time.Time `json:"date"`
	Summary Summary   `json:"summary"`
}

// Daily aggregates all orders placed on the given calendar day.
func Daily(customers []models.Customer, catalog Catalog, day time.Time) Summary {
	return aggregate(customers, catalog, func(order models.CustomerOrder) bool {
		return sameDay(order.OrderDate, day)
	})
}

// Monthly aggregates all orders placed within the given month.
func Monthly(customers []models.Customer, catalog Catalog, year int, month time.Month) Summary {
	return aggregate(customers, catalog, func(order models.CustomerOrder) bool {
		return order.OrderDate.Year() == year && order.OrderDate.Month() == month
	})
}

// Window aggregates a rolling range of days ending on end, returning the
// per-day series oldest first plus the window totals.
func Window(customers []models.Customer, catalog Catalog, end time.Time, days int) ([]DayPoint, Summary) {
	series := make([]DayPoint, 0, days)
	var totals Summary
	for i := days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		summary := Daily(customers, catalog, day)
		series = append(series, DayPoint{Date: day, Summary: summary})
		totals.Revenue += summary.Revenue
		totals.Cost += summary.Cost
		totals.Orders += summary.Orders
	}
	totals.Profit = totals.Revenue - totals.Cost
	return series, totals
}

func aggregate(customers []models.Customer, catalog Catalog, match func(models.CustomerOrder) bool) Summary {
	var summary Summary
	for _, customer := range customers {
		for _, order := range customer.Orders {
			if !match(order) {
				continue
			}
			summary.Orders++
			product, ok := catalog.Lookup(order.ProductID)
			if !ok {
				// Orphaned reference: the product was deleted after the
				// order. Contributes zero rather than failing.
				continue
			}
			for _, variant := range models.Variants() {
				qty := order.Quantity[variant]
				if qty == 0 {
					continue
				}
				pricing := product.Pricing[variant]
				summary.Revenue += pricing.Price * float64(qty)
				summary.Cost += pricing.Cost * float64(qty)
			}
		}
	}
	summary.Profit = summary.Revenue - summary.Cost
	return summary
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
