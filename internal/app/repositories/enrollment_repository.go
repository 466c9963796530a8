package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/logger"
)

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var enrollmentColumns = []string{
	"id", "student_id", "course_id", "videos_watched",
	"progress_percentage", "completed", "completed_at", "enrolled_at",
}

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	var watched []byte
	err := row.Scan(
		&e.ID, &e.StudentID, &e.CourseID, &watched,
		&e.ProgressPercentage, &e.Completed, &e.CompletedAt, &e.EnrolledAt,
	)
	if err != nil {
		return nil, err
	}
	if len(watched) > 0 {
		if err := json.Unmarshal(watched, &e.VideosWatched); err != nil {
			return nil, fmt.Errorf("error decoding watched videos: %w", err)
		}
	}
	if e.VideosWatched == nil {
		e.VideosWatched = []models.WatchedVideo{}
	}
	return e, nil
}

// Create inserts a new enrollment and bumps the course enrollment counter
// in the same transaction. A unique constraint on (student_id, course_id)
// rejects double enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, studentID, courseID int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error starting enrollment transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertSql, insertArgs, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id", "videos_watched").
		Values(studentID, courseID, []byte("[]")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, insertSql, insertArgs...).Scan(&id); err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrAlreadyEnrolled
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).
			Msg("Error executing create enrollment query")
		return 0, fmt.Errorf("error creating enrollment: %w", err)
	}

	bumpSql, bumpArgs, err := r.sb.Update("courses").
		Set("enrollment_count", squirrel.Expr("enrollment_count + 1")).
		Where(squirrel.Eq{"id": courseID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build enrollment count query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, bumpSql, bumpArgs...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error bumping enrollment count")
		return 0, fmt.Errorf("error updating enrollment count: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, apperrors.ErrCourseNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing enrollment transaction: %w", err)
	}

	return id, nil
}

// GetByStudentAndCourse retrieves a single enrollment
func (r *EnrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns...).
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).
			Msg("Error scanning enrollment row")
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}

	return enrollment, nil
}

// ListByStudent retrieves a student's enrollments with course details
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	cols := append(prefixColumns("e", enrollmentColumns), "c.title", "c.subject", "c.final_price")
	sql, args, err := r.sb.Select(cols...).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.enrolled_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list enrollments query")
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		e := &models.Enrollment{Course: &models.Course{}}
		var watched []byte
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.CourseID, &watched,
			&e.ProgressPercentage, &e.Completed, &e.CompletedAt, &e.EnrolledAt,
			&e.Course.Title, &e.Course.Subject, &e.Course.FinalPrice,
		); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		if len(watched) > 0 {
			if err := json.Unmarshal(watched, &e.VideosWatched); err != nil {
				return nil, fmt.Errorf("error decoding watched videos: %w", err)
			}
		}
		if e.VideosWatched == nil {
			e.VideosWatched = []models.WatchedVideo{}
		}
		e.Course.ID = e.CourseID
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}

	return enrollments, nil
}

// UpdateProgress persists the watched list, progress percentage and
// completion state of an enrollment
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, enrollment *models.Enrollment) error {
	watched, err := json.Marshal(enrollment.VideosWatched)
	if err != nil {
		return fmt.Errorf("error encoding watched videos: %w", err)
	}

	setMap := map[string]interface{}{
		"videos_watched":      watched,
		"progress_percentage": enrollment.ProgressPercentage,
		"completed":           enrollment.Completed,
	}
	if enrollment.Completed && enrollment.CompletedAt == nil {
		setMap["completed_at"] = squirrel.Expr("NOW()")
	}

	sql, args, err := r.sb.Update("enrollments").
		SetMap(setMap).
		Where(squirrel.Eq{"id": enrollment.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update progress query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", enrollment.ID).Msg("Error executing update progress query")
		return fmt.Errorf("error updating enrollment progress: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Count returns the total number of enrollments
func (r *EnrollmentRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("enrollments").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count enrollments query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	return count, nil
}

// ProgressStats returns the average progress percentage and the completion
// rate across all enrollments
func (r *EnrollmentRepository) ProgressStats(ctx context.Context) (avgProgress, completionRate float64, err error) {
	sql, args, err := r.sb.Select(
		"COALESCE(AVG(progress_percentage), 0)",
		"COALESCE(AVG(CASE WHEN completed THEN 1.0 ELSE 0.0 END), 0)",
	).From("enrollments").ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build progress stats query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&avgProgress, &completionRate); err != nil {
		return 0, 0, fmt.Errorf("error querying progress stats: %w", err)
	}

	return avgProgress, completionRate, nil
}

// Revenue returns the sum of the final price of every enrolled course
func (r *EnrollmentRepository) Revenue(ctx context.Context) (float64, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(c.final_price), 0)").
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build revenue query: %w", err)
	}

	var revenue float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("error querying revenue: %w", err)
	}

	return revenue, nil
}
