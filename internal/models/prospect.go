package models

import (
	"time"
)

type Prospect struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CarModel  string    `json:"car_model"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}
