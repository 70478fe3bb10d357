package models

import (
	"time"
)

// Variant is one of the three fixed seat configurations a product is sold in.
type Variant string

const (
	TwoSeater   Variant = "2 Seater"
	FiveSeater  Variant = "5 Seater"
	SevenSeater Variant = "7 Seater"
)

// Variants lists all seat configurations in display order.
func Variants() []Variant {
	return []Variant{TwoSeater, FiveSeater, SevenSeater}
}

type CustomerOrder struct {
	ProductID   string          `json:"product_id"`
	Quantity    map[Variant]int `json:"quantity"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount float64         `json:"total_amount"`
	GrossProfit float64         `json:"gross_profit"`
}

type Customer struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Location         string          `json:"location"`
	CarModel         string          `json:"car_model"`
	Notes            string          `json:"notes"`
	Tags             []string        `json:"tags"`
	Orders           []CustomerOrder `json:"orders"`
	TotalSales       float64         `json:"total_sales"`
	TotalGrossProfit float64         `json:"total_gross_profit"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ComputeRollups derives the cached customer totals from its orders. Every
// mutation path that touches orders goes through this one function so the
// rollups can never drift from the order list.
func ComputeRollups(orders []CustomerOrder) (totalSales, totalGrossProfit float64) {
	for _, order := range orders {
		totalSales += order.TotalAmount
		totalGrossProfit += order.GrossProfit
	}
	return totalSales, totalGrossProfit
}

// OrderTotals prices an order against the product's current variant pricing.
// Totals are frozen into the order at creation time; later price edits on the
// product do not change them.
func OrderTotals(product Product, quantity map[Variant]int) (totalAmount, grossProfit float64) {
	var totalCost float64
	for _, variant := range Variants() {
		qty := quantity[variant]
		if qty == 0 {
			continue
		}
		pricing := product.Pricing[variant]
		totalAmount += pricing.Price * float64(qty)
		totalCost += pricing.Cost * float64(qty)
	}
	return totalAmount, totalAmount - totalCost
}
