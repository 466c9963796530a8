package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/logger"
)

// CategoryRepository handles category database operations
type CategoryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// categorySelect counts courses per category via a correlated subquery
var categorySelect = []string{
	"id", "name", "description", "slug",
	"(SELECT COUNT(*) FROM courses WHERE courses.category_id = categories.id) AS course_count",
	"created_at",
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	c := &models.Category{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.CourseCount, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new category and returns its ID
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) (int64, error) {
	sql, args, err := r.sb.Insert("categories").
		Columns("name", "description", "slug").
		Values(category.Name, category.Description, category.Slug).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create category query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrCategoryAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create category query")
		return 0, fmt.Errorf("error creating category: %w", err)
	}

	return id, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	sql, args, err := r.sb.Select(categorySelect...).
		From("categories").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get category query: %w", err)
	}

	category, err := scanCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		logger.Error().Err(err).Int64("categoryID", id).Msg("Error scanning category row")
		return nil, fmt.Errorf("error getting category by ID: %w", err)
	}

	return category, nil
}

// GetBySlug retrieves a category by its slug
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	sql, args, err := r.sb.Select(categorySelect...).
		From("categories").
		Where(squirrel.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get category by slug query: %w", err)
	}

	category, err := scanCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		logger.Error().Err(err).Str("slug", slug).Msg("Error scanning category row")
		return nil, fmt.Errorf("error getting category by slug: %w", err)
	}

	return category, nil
}

// GetAll retrieves all categories ordered by name
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*models.Category, error) {
	sql, args, err := r.sb.Select(categorySelect...).
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all categories query")
		return nil, fmt.Errorf("error querying categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}

// Update rewrites a category's name, description and slug
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	sql, args, err := r.sb.Update("categories").
		SetMap(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"slug":        category.Slug,
		}).
		Where(squirrel.Eq{"id": category.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update category query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		logger.Error().Err(err).Int64("categoryID", category.ID).Msg("Error executing update category query")
		return fmt.Errorf("error updating category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category; courses referencing it keep a NULL category
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete category query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("categoryID", id).Msg("Error executing delete category query")
		return fmt.Errorf("error deleting category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// Count returns the total number of categories
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("categories").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count categories query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting categories: %w", err)
	}

	return count, nil
}
