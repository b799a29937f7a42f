package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalogue.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	ImageURL    string          `json:"image" db:"image_url"`
	Category    string          `json:"category" db:"category"`
	IsAvailable bool            `json:"isAvailable" db:"is_available"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProductInput represents the request payload for creating or updating a product.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image"`
	Category    string          `json:"category"`
	IsAvailable bool            `json:"isAvailable"`
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Available *bool
	Category  string
	Limit     int
	Offset    int
}

// CategoryCount is a per-category product tally.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProductStats summarises the catalogue for the admin dashboard.
type ProductStats struct {
	Total         int             `json:"total"`
	Available     int             `json:"available"`
	Unavailable   int             `json:"unavailable"`
	Categories    []CategoryCount `json:"categories"`
	AveragePrice  decimal.Decimal `json:"averagePrice"`
	RecentlyAdded int             `json:"recentlyAdded"`
}
