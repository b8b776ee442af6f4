package pgsql

import (
	portsrepo "github.com/SscSPs/product_catalog_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	categoryRepo := newPgxCategoryRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CategoryRepo: categoryRepo,
		ProductRepo:  productRepo,
	}
}
