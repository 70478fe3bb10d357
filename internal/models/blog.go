package models

import (
	"time"
)

type BlogPost struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ImageURL      string    `json:"image_url"`
	Author        string    `json:"author"`
	Date          time.Time `json:"date"`
	Category      string    `json:"category"` // store-visit, update, promotion
	Tags          []string  `json:"tags"`
	Views         int       `json:"views"`
	Likes         int       `json:"likes"`
	StoreLocation string    `json:"store_location,omitempty"`
	VisitDate     string    `json:"visit_date,omitempty"`
	VisitPhotos   []string  `json:"visit_photos,omitempty"`
}

type BlogCategory string

const (
	CategoryStoreVisit BlogCategory = "store-visit"
	CategoryUpdate     BlogCategory = "update"
	CategoryPromotion  BlogCategory = "promotion"
)
