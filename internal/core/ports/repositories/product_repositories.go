package repositories

import (
	"context"

	"github.com/SscSPs/product_catalog_app/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// FindProductByID retrieves a product by its ID.
	FindProductByID(ctx context.Context, productID int64) (*domain.Product, error)

	// FindProducts retrieves products matching the filter.
	FindProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)

	// CountProductsByCategory returns how many products reference the category.
	CountProductsByCategory(ctx context.Context, categoryID int64) (int, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// SaveProduct inserts a new product and returns it with its generated ID.
	SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error)

	// UpdateProduct persists changes to an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// ProductLifecycleManager defines removal of products
type ProductLifecycleManager interface {
	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, productID int64) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductLifecycleManager
}
