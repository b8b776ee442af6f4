package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/product_catalog_app/internal/apperrors"
	"github.com/SscSPs/product_catalog_app/internal/core/domain"
	portsrepo "github.com/SscSPs/product_catalog_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/product_catalog_app/internal/core/ports/services"
	"github.com/SscSPs/product_catalog_app/internal/dto"
	"github.com/SscSPs/product_catalog_app/internal/utils"
	"github.com/shopspring/decimal"
)

// maxListLimit caps the page size of product listings.
const maxListLimit = 500

type productService struct {
	BaseService
	productRepo  portsrepo.ProductRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	rateFetcher  portssvc.ExchangeRateFetcher
}

// NewProductService creates the product service. rateFetcher is used only by
// the featured listing when a target currency is requested.
func NewProductService(
	productRepo portsrepo.ProductRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	rateFetcher portssvc.ExchangeRateFetcher,
) portssvc.ProductSvcFacade {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		rateFetcher:  rateFetcher,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("product name must not be blank")
	}
	currency, err := validateCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, apperrors.NewValidationError("price is required")
	}
	if err := validatePrice(*req.Price); err != nil {
		return nil, err
	}
	category, err := s.requireCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		Name:         name,
		Price:        utils.RoundPrice(*req.Price),
		Currency:     currency,
		Featured:     req.Featured,
		CategoryID:   category.CategoryID,
		CategoryName: category.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.productRepo.SaveProduct(ctx, product)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to save product in repository", slog.String("name", name))
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.LogInfo(ctx, "Product created successfully", slog.Int64("product_id", saved.ProductID))
	return saved, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find product by ID", slog.Int64("product_id", productID))
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	filter := domain.ProductFilter{
		CategoryID: params.CategoryID,
		Featured:   params.Featured,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	products, err := s.productRepo.FindProducts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products", slog.Int("limit", filter.Limit), slog.Int("offset", filter.Offset))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	s.LogDebug(ctx, "Products listed", slog.Int("count", len(products)))
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("product name must not be blank")
		}
		product.Name = name
	}
	if req.Currency != nil {
		currency, err := validateCurrency(*req.Currency)
		if err != nil {
			return nil, err
		}
		product.Currency = currency
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		product.Price = utils.RoundPrice(*req.Price)
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		category, err := s.requireCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.CategoryID
		product.CategoryName = category.Name
	}
	product.LastUpdatedAt = time.Now().UTC()

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update product", slog.Int64("product_id", productID))
		}
		return nil, fmt.Errorf("failed to update product %d: %w", productID, err)
	}

	s.LogInfo(ctx, "Product updated successfully", slog.Int64("product_id", productID))
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete product", slog.Int64("product_id", productID))
		}
		return nil, fmt.Errorf("failed to delete product %d: %w", productID, err)
	}

	s.LogInfo(ctx, "Product deleted successfully", slog.Int64("product_id", productID))
	return product, nil
}

func (s *productService) GetFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	featured := true
	products, err := s.productRepo.FindProducts(ctx, domain.ProductFilter{Featured: &featured})
	if err != nil {
		s.LogError(ctx, err, "Failed to load featured products")
		return nil, fmt.Errorf("failed to load featured products: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

// GetFeaturedProductsInCurrency loads the featured products and converts their
// prices with a single rate fetched for currency. Nothing is converted when
// the rate cannot be obtained.
func (s *productService) GetFeaturedProductsInCurrency(ctx context.Context, currency string) ([]domain.ConvertedItem, error) {
	target := domain.NormalizeCurrencyCode(currency)
	if !domain.IsValidCurrencyCode(target) {
		return nil, fmt.Errorf("%w: currency code %q must be three letters", apperrors.ErrInvalidInput, currency)
	}

	products, err := s.GetFeaturedProducts(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.PricedItem, len(products))
	for i, p := range products {
		items[i] = p.ToPricedItem()
	}
	if err := domain.ValidatePricedItems(items); err != nil {
		s.LogError(ctx, err, "Featured product cannot be converted", slog.String("currency", target))
		return nil, err
	}

	rate, err := s.rateFetcher.FetchRate(ctx, target)
	if err != nil {
		s.LogWarn(ctx, "Failed to fetch exchange rate",
			slog.String("currency", target),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch exchange rate for %s: %w", target, err)
	}

	converted := ConvertList(rate, items, target)
	s.LogDebug(ctx, "Featured products converted",
		slog.String("currency", target),
		slog.Float64("rate", rate),
		slog.Int("count", len(converted)))
	return converted, nil
}

// requireCategory resolves a category referenced by a product. A missing
// category is a validation failure of the product, not a 404.
func (s *productService) requireCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("category %d does not exist", categoryID))
		}
		s.LogError(ctx, err, "Failed to look up category", slog.Int64("category_id", categoryID))
		return nil, fmt.Errorf("failed to look up category %d: %w", categoryID, err)
	}
	return category, nil
}

func validateCurrency(code string) (string, error) {
	normalized := domain.NormalizeCurrencyCode(code)
	if !domain.IsValidCurrencyCode(normalized) {
		return "", apperrors.NewValidationError(fmt.Sprintf("currency %q must be a three-letter code", code))
	}
	return normalized, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperrors.NewValidationError("price must not be negative")
	}
	if !utils.PriceFitsStorage(price) {
		return apperrors.NewValidationError(fmt.Sprintf("price %s is too large", utils.FormatPrice(price)))
	}
	return nil
}
