package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testProduct() Product {
	return Product{
		ID:   "prod_1",
		Name: "Legacy Classic",
		Pricing: map[Variant]VariantPricing{
			TwoSeater:   {Price: 800, Cost: 500},
			FiveSeater:  {Price: 1000, Cost: 600},
			SevenSeater: {Price: 1400, Cost: 900},
		},
	}
}

func TestOrderTotals(t *testing.T) {
	totalAmount, grossProfit := OrderTotals(testProduct(), map[Variant]int{
		FiveSeater: 2,
	})

	assert.Equal(t, 2000.0, totalAmount)
	assert.Equal(t, 800.0, grossProfit)
}

func TestOrderTotalsMixedVariants(t *testing.T) {
	totalAmount, grossProfit := OrderTotals(testProduct(), map[Variant]int{
		TwoSeater:   1,
		SevenSeater: 1,
	})

	// 800 + 1400 revenue, 500 + 900 cost
	assert.Equal(t, 2200.0, totalAmount)
	assert.Equal(t, 800.0, grossProfit)
}

func TestOrderTotalsMissingProductContributesZero(t *testing.T) {
	totalAmount, grossProfit := OrderTotals(Product{}, map[Variant]int{FiveSeater: 3})

	assert.Equal(t, 0.0, totalAmount)
	assert.Equal(t, 0.0, grossProfit)
}

func TestComputeRollups(t *testing.T) {
	orders := []CustomerOrder{
		{ProductID: "prod_1", OrderDate: time.Now(), TotalAmount: 2000, GrossProfit: 800},
		{ProductID: "prod_2", OrderDate: time.Now(), TotalAmount: 1500, GrossProfit: 400},
	}

	totalSales, totalGrossProfit := ComputeRollups(orders)

	assert.Equal(t, 3500.0, totalSales)
	assert.Equal(t, 1200.0, totalGrossProfit)
}

func TestComputeRollupsEmpty(t *testing.T) {
	totalSales, totalGrossProfit := ComputeRollups(nil)

	assert.Equal(t, 0.0, totalSales)
	assert.Equal(t, 0.0, totalGrossProfit)
}
