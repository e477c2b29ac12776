package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductFilter narrows the catalog listing. Text matches name or description
// case-insensitively; Category "All" (or empty) matches every product.
type ProductFilter struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

type ProductListResponse struct {
	Products   []Product `json:"products"`
	Categories []string  `json:"categories"`
	Total      int       `json:"total"`
}
