package dto

import (
	"time"

	"github.com/SscSPs/product_catalog_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a new product.
type CreateProductRequest struct {
	Name       string           `json:"name" binding:"required,min=1,max=255"`
	Currency   string           `json:"currency" binding:"required,len=3,alpha"`
	Price      *decimal.Decimal `json:"price" binding:"required"` // Non-negative, checked by the service
	Featured   bool             `json:"featured"`
	CategoryID int64            `json:"categoryID" binding:"required,gt=0"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProductRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Currency   *string          `json:"currency" binding:"omitempty,len=3,alpha"`
	Price      *decimal.Decimal `json:"price"`
	Featured   *bool            `json:"featured"`
	CategoryID *int64           `json:"categoryID" binding:"omitempty,gt=0"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	CategoryID *int64 `form:"category_id" binding:"omitempty,gt=0"`
	Featured   *bool  `form:"featured"`
	Limit      int    `form:"limit,default=50" binding:"gte=0,lte=500"`
	Offset     int    `form:"offset,default=0" binding:"gte=0"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     int64           `json:"productID"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	Featured      bool            `json:"featured"`
	CategoryID    int64           `json:"categoryID"`
	CategoryName  string          `json:"categoryName"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// FeaturedProductsResponse is the envelope of the featured products endpoint.
// Data holds []ProductResponse when no currency was requested and
// []domain.ConvertedItem otherwise.
type FeaturedProductsResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Price:         p.Price,
		Currency:      p.Currency,
		Featured:      p.Featured,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListProductResponse converts a slice of domain.Product to a slice of ProductResponse DTOs
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
