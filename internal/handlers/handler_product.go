package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/product_catalog_app/internal/apperrors"
	portssvc "github.com/SscSPs/product_catalog_app/internal/core/ports/services"
	"github.com/SscSPs/product_catalog_app/internal/dto"
	"github.com/SscSPs/product_catalog_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// productHandler handles HTTP requests related to products.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{
		productService: ps,
	}
}

// registerProductRoutes registers routes related to products.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := rg.Group("/products")
	{
		products.GET("", h.listProducts)
		products.POST("", h.createProduct)
		products.GET("/featured", h.listFeaturedProducts)
		products.GET("/featured/:currency", h.listFeaturedProducts)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
		products.POST("/:id", h.updateProduct)
		products.DELETE("/:id", h.deleteProduct)
	}
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param category_id query int false "Only products of this category"
// @Param featured query bool false "Only featured (true) or non-featured (false) products"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProductsResponse
// @Failure 400 {object} ErrorResponse
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Product not found", "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, dto.ListProductsResponse{Products: dto.ToListProductResponse(products)})
}

// listFeaturedProducts godoc
// @Summary List featured products
// @Description Returns featured products; with a currency, prices are converted using the current exchange rate
// @Tags products
// @Produce json
// @Param currency path string false "Target currency (3 letters)"
// @Param currency query string false "Target currency (3 letters)"
// @Success 200 {object} dto.FeaturedProductsResponse
// @Failure 400 {object} dto.FeaturedProductsResponse "Invalid currency code"
// @Failure 422 {object} dto.FeaturedProductsResponse "No rate for currency"
// @Failure 502 {object} dto.FeaturedProductsResponse "Rate provider failure"
// @Router /products/featured/{currency} [get]
func (h *productHandler) listFeaturedProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currency := c.Param("currency")
	if currency == "" {
		currency = c.Query("currency")
	}

	if currency == "" {
		products, err := h.productService.GetFeaturedProducts(c.Request.Context())
		if err != nil {
			respondFeaturedError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dto.FeaturedProductsResponse{Success: true, Data: dto.ToListProductResponse(products)})
		return
	}

	logger = logger.With(slog.String("currency", currency))
	items, err := h.productService.GetFeaturedProductsInCurrency(c.Request.Context(), currency)
	if err != nil {
		respondFeaturedError(c, logger, err)
		return
	}

	logger.Info("Featured products converted", slog.Int("count", len(items)))
	c.JSON(http.StatusOK, dto.FeaturedProductsResponse{Success: true, Data: items})
}

func respondFeaturedError(c *gin.Context, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	msg := "Failed to load featured products"
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrMissingRate):
		status, msg = http.StatusUnprocessableEntity, "No exchange rate available for the requested currency"
	case errors.Is(err, apperrors.ErrNetwork), errors.Is(err, apperrors.ErrParse):
		status, msg = http.StatusBadGateway, "Exchange rate provider is unavailable"
	}

	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()))
	}
	c.JSON(status, dto.FeaturedProductsResponse{Success: false, Error: msg})
}

// createProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Product not found", "Failed to create product")
		return
	}

	logger.Info("Product created successfully", slog.Int64("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// getProduct godoc
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	logger = logger.With(slog.Int64("product_id", id))

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, logger, err, "Product not found", "Failed to retrieve product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// updateProduct godoc
// @Summary Update a product
// @Description Applies the supplied fields; omitted fields keep their value
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	logger = logger.With(slog.Int64("product_id", id))

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, logger, err, "Product not found", "Failed to update product")
		return
	}

	logger.Info("Product updated successfully")
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	logger = logger.With(slog.Int64("product_id", id))

	product, err := h.productService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, logger, err, "Product not found", "Failed to delete product")
		return
	}

	logger.Info("Product deleted successfully")
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}
