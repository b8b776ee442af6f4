package services

import (
	"context"

	"github.com/SscSPs/product_catalog_app/internal/core/domain"
	"github.com/SscSPs/product_catalog_app/internal/dto"
)

// ProductReaderSvc defines read operations for products
type ProductReaderSvc interface {
	GetProductByID(ctx context.Context, productID int64) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for products
type ProductWriterSvc interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest) (*domain.Product, error)
	// DeleteProduct removes the product and returns it as it was before removal.
	DeleteProduct(ctx context.Context, productID int64) (*domain.Product, error)
}

// FeaturedProductSvc serves the featured products listing, optionally
// with prices converted into another currency.
type FeaturedProductSvc interface {
	GetFeaturedProducts(ctx context.Context) ([]domain.Product, error)
	GetFeaturedProductsInCurrency(ctx context.Context, currency string) ([]domain.ConvertedItem, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
	FeaturedProductSvc
}
