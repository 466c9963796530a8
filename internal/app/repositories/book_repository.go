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

// BookRepository handles book database operations
type BookRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBookRepository creates a new BookRepository
func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var bookColumns = []string{
	"id", "teacher_id", "course_id", "title", "author", "description",
	"price", "category", "is_free", "download_count", "purchase_count", "created_at",
}

func scanBook(row pgx.Row) (*models.Book, error) {
	b := &models.Book{}
	err := row.Scan(
		&b.ID, &b.TeacherID, &b.CourseID, &b.Title, &b.Author, &b.Description,
		&b.Price, &b.Category, &b.IsFree, &b.DownloadCount, &b.PurchaseCount, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts a new book and returns its ID
func (r *BookRepository) Create(ctx context.Context, book *models.Book) (int64, error) {
	sql, args, err := r.sb.Insert("books").
		Columns("teacher_id", "course_id", "title", "author", "description", "price", "category", "is_free").
		Values(book.TeacherID, book.CourseID, book.Title, book.Author, book.Description, book.Price, book.Category, book.IsFree).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create book query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("teacherID", book.TeacherID).Msg("Error executing create book query")
		return 0, fmt.Errorf("error creating book: %w", err)
	}

	return id, nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	sql, args, err := r.sb.Select(bookColumns...).
		From("books").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get book query: %w", err)
	}

	book, err := scanBook(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		logger.Error().Err(err).Int64("bookID", id).Msg("Error scanning book row")
		return nil, fmt.Errorf("error getting book by ID: %w", err)
	}

	return book, nil
}

// ListByCourse retrieves all books attached to a course
func (r *BookRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Book, error) {
	return r.list(ctx, squirrel.Eq{"course_id": courseID})
}

// ListByTeacher retrieves all books published by a teacher
func (r *BookRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*models.Book, error) {
	return r.list(ctx, squirrel.Eq{"teacher_id": teacherID})
}

// GetAll retrieves every book
func (r *BookRepository) GetAll(ctx context.Context) ([]*models.Book, error) {
	return r.list(ctx, nil)
}

func (r *BookRepository) list(ctx context.Context, cond interface{}) ([]*models.Book, error) {
	query := r.sb.Select(bookColumns...).From("books").OrderBy("created_at DESC")
	if cond != nil {
		query = query.Where(cond)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list books query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list books query")
		return nil, fmt.Errorf("error querying books: %w", err)
	}
	defer rows.Close()

	books := []*models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, nil
}

// Update rewrites the mutable fields of a book
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	sql, args, err := r.sb.Update("books").
		SetMap(map[string]interface{}{
			"title":       book.Title,
			"author":      book.Author,
			"description": book.Description,
			"price":       book.Price,
			"category":    book.Category,
			"is_free":     book.IsFree,
		}).
		Where(squirrel.Eq{"id": book.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update book query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("bookID", book.ID).Msg("Error executing update book query")
		return fmt.Errorf("error updating book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// Delete removes a book by ID
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("books").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete book query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("bookID", id).Msg("Error executing delete book query")
		return fmt.Errorf("error deleting book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// IncrementDownloadCount bumps the download counter for a book
func (r *BookRepository) IncrementDownloadCount(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "download_count")
}

// IncrementPurchaseCount bumps the purchase counter for a book
func (r *BookRepository) IncrementPurchaseCount(ctx context.Context, id int64) error {
	return r.increment(ctx, id, "purchase_count")
}

func (r *BookRepository) increment(ctx context.Context, id int64, column string) error {
	sql, args, err := r.sb.Update("books").
		Set(column, squirrel.Expr(column+" + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build increment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("bookID", id).Msg("Error executing increment query")
		return fmt.Errorf("error incrementing book counter: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// Count returns the total number of books
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("books").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count books query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting books: %w", err)
	}

	return count, nil
}
