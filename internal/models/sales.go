package models

import (
	"time"
)

type YearlySales struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// SalesData is the singleton yearly revenue ledger. YearlyData is kept sorted
// ascending by year; TotalRevenue and YearOverYearGrowth are recomputed on
// every mutation.
type SalesData struct {
	ID                 string        `json:"id"`
	YearlyData         []YearlySales `json:"yearly_data"`
	TotalRevenue       float64       `json:"total_revenue"`
	YearOverYearGrowth float64       `json:"year_over_year_growth"`
	LastUpdated        time.Time     `json:"last_updated"`
}
