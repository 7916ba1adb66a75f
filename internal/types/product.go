package types

import "time"

type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusInactive   ProductStatus = "inactive"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// Product is owned by the catalog; pages reference products by id only and
// resolve them at render time.
type Product struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Price         float64       `json:"price"`
	OriginalPrice float64       `json:"originalPrice,omitempty"`
	Discount      int           `json:"discount,omitempty"`
	Images        []string      `json:"images"`
	Category      string        `json:"category"`
	Tags          []string      `json:"tags,omitempty"`
	Stock         int           `json:"stock"`
	Status        ProductStatus `json:"status"`
	Brand         string        `json:"brand,omitempty"`
	Rating        float64       `json:"rating,omitempty"`
	ReviewCount   int           `json:"reviewCount,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
