package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/product_catalog_app/internal/apperrors"
	"github.com/SscSPs/product_catalog_app/internal/core/domain"
	portsrepo "github.com/SscSPs/product_catalog_app/internal/core/ports/repositories"
	"github.com/SscSPs/product_catalog_app/internal/models"
	"github.com/SscSPs/product_catalog_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryWithTx {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CategoryRepositoryWithTx = (*PgxCategoryRepository)(nil)

// SaveCategory inserts a new category. The generated ID and timestamps are read back.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	modelCat := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (name, created_at, last_updated_at)
		VALUES ($1, $2, $3)
		RETURNING category_id, name, created_at, last_updated_at;
	`
	var saved models.Category
	err := r.Pool.QueryRow(ctx, query, modelCat.Name, modelCat.CreatedAt, modelCat.LastUpdatedAt).Scan(
		&saved.CategoryID,
		&saved.Name,
		&saved.CreatedAt,
		&saved.LastUpdatedAt,
	)
	if err != nil {
		if hasSQLState(err, pgUniqueViolation) {
			return nil, fmt.Errorf("%w: category %q", apperrors.ErrDuplicate, modelCat.Name)
		}
		return nil, fmt.Errorf("failed to save category %q: %w", modelCat.Name, err)
	}

	domainCat := mapping.ToDomainCategory(saved)
	return &domainCat, nil
}

// UpdateCategory renames an existing category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	modelCat := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $1, last_updated_at = $2
		WHERE category_id = $3;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, modelCat.Name, modelCat.LastUpdatedAt, modelCat.CategoryID)
	if err != nil {
		if hasSQLState(err, pgUniqueViolation) {
			return fmt.Errorf("%w: category %q", apperrors.ErrDuplicate, modelCat.Name)
		}
		return fmt.Errorf("failed to update category %d: %w", modelCat.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	query := `
		SELECT category_id, name, created_at, last_updated_at
		FROM categories
		WHERE category_id = $1;
	`
	var modelCat models.Category
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(
		&modelCat.CategoryID,
		&modelCat.Name,
		&modelCat.CreatedAt,
		&modelCat.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by id %d: %w", categoryID, err)
	}

	domainCat := mapping.ToDomainCategory(modelCat)
	return &domainCat, nil
}

// ListCategories retrieves all categories ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT category_id, name, created_at, last_updated_at
		FROM categories
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	modelCategories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		var c models.Category
		err := row.Scan(&c.CategoryID, &c.Name, &c.CreatedAt, &c.LastUpdatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	return mapping.ToDomainCategorySlice(modelCategories), nil
}

// DeleteCategory removes a category inside a transaction. The category row is
// locked first so no product can be attached between the check and the delete.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT category_id FROM categories WHERE category_id = $1 FOR UPDATE`, categoryID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock category %d: %w", categoryID, err)
	}

	var productCount int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&productCount)
	if err != nil {
		return fmt.Errorf("failed to count products of category %d: %w", categoryID, err)
	}
	if productCount > 0 {
		return apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("category %d has %d products", categoryID, productCount), apperrors.ErrConflict)
	}

	_, err = tx.Exec(ctx, `DELETE FROM categories WHERE category_id = $1`, categoryID)
	if err != nil {
		if hasSQLState(err, pgForeignKeyViolation) {
			return fmt.Errorf("%w: category %d still has products", apperrors.ErrConflict, categoryID)
		}
		return fmt.Errorf("failed to delete category %d: %w", categoryID, err)
	}

	return r.Commit(ctx, tx)
}
