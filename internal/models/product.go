package models

import (
	"time"
)

type VariantPricing struct {
	Price float64 `json:"price"`
	Cost  float64 `json:"cost"`
}

type Product struct {
	ID         string                     `json:"id"`
	Name       string                     `json:"name"`
	ImageURL   string                     `json:"image_url"`
	Pricing    map[Variant]VariantPricing `json:"pricing"`
	TotalSales float64                    `json:"total_sales"`
	Status     string                     `json:"status"` // active, inactive
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)
