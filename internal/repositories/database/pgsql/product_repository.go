package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/product_catalog_app/internal/apperrors"
	"github.com/SscSPs/product_catalog_app/internal/core/domain"
	portsrepo "github.com/SscSPs/product_catalog_app/internal/core/ports/repositories"
	"github.com/SscSPs/product_catalog_app/internal/models"
	"github.com/SscSPs/product_catalog_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// productColumns is the select list shared by every product read; it expects
// products aliased as p and categories as c.
const productColumns = `
	p.product_id, p.name, p.price, p.currency, p.featured, p.category_id,
	c.name AS category_name, p.created_at, p.last_updated_at`

// PgxProductRepository implements the product repository ports using pgxpool.
type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) *PgxProductRepository {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ProductID, &p.Name, &p.Price, &p.Currency, &p.Featured, &p.CategoryID,
		&p.CategoryName, &p.CreatedAt, &p.LastUpdatedAt,
	)
	return p, err
}

// SaveProduct inserts a product and returns it joined with its category name.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	m := mapping.ToModelProduct(product)

	query := `
		WITH p AS (
			INSERT INTO products (name, price, currency, featured, category_id, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + productColumns + `
		FROM p JOIN categories c ON c.category_id = p.category_id;
	`
	saved, err := scanProduct(r.Pool.QueryRow(ctx, query,
		m.Name, m.Price, m.Currency, m.Featured, m.CategoryID, m.CreatedAt, m.LastUpdatedAt,
	))
	if err != nil {
		if hasSQLState(err, pgForeignKeyViolation) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("category %d does not exist", m.CategoryID))
		}
		return nil, fmt.Errorf("failed to save product %q: %w", m.Name, err)
	}

	d := mapping.ToDomainProduct(saved)
	return &d, nil
}

// UpdateProduct overwrites the mutable columns of a product.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)

	query := `
		UPDATE products
		SET name = $1, price = $2, currency = $3, featured = $4, category_id = $5, last_updated_at = $6
		WHERE product_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name, m.Price, m.Currency, m.Featured, m.CategoryID, m.LastUpdatedAt, m.ProductID,
	)
	if err != nil {
		if hasSQLState(err, pgForeignKeyViolation) {
			return apperrors.NewValidationError(fmt.Sprintf("category %d does not exist", m.CategoryID))
		}
		return fmt.Errorf("failed to update product %d: %w", m.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.category_id = p.category_id
		WHERE p.product_id = $1;`

	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by id %d: %w", productID, err)
	}

	d := mapping.ToDomainProduct(m)
	return &d, nil
}

// FindProducts lists products matching the filter, ordered by ID.
func (r *PgxProductRepository) FindProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.category_id = p.category_id
		WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND p.category_id = $%d", argNum)
		args = append(args, *filter.CategoryID)
		argNum++
	}
	if filter.Featured != nil {
		query += fmt.Sprintf(" AND p.featured = $%d", argNum)
		args = append(args, *filter.Featured)
		argNum++
	}

	query += " ORDER BY p.product_id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	modelProducts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	return mapping.ToDomainProductSlice(modelProducts), nil
}

// CountProductsByCategory returns how many products reference the category.
func (r *PgxProductRepository) CountProductsByCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products of category %d: %w", categoryID, err)
	}
	return count, nil
}

// DeleteProduct removes a product.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
