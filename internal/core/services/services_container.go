package services

import (
	portsrepo "github.com/SscSPs/product_catalog_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/product_catalog_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, rateFetcher portssvc.ExchangeRateFetcher) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Category: NewCategoryService(repos.CategoryRepo),
		Product:  NewProductService(repos.ProductRepo, repos.CategoryRepo, rateFetcher),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CategorySvcFacade = (*categoryService)(nil)
	_ portssvc.ProductSvcFacade  = (*productService)(nil)
)
