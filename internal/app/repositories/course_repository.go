package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/logger"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var courseColumns = []string{
	"id", "teacher_id", "title", "description", "subject", "class_level",
	"category_id", "price", "final_price", "is_free", "approved",
	"rejection_reason", "videos", "enrollment_count", "created_at", "updated_at",
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(
		&c.ID, &c.TeacherID, &c.Title, &c.Description, &c.Subject, &c.ClassLevel,
		&c.CategoryID, &c.Price, &c.FinalPrice, &c.IsFree, &c.Approved,
		&c.RejectionReason, &c.Videos, &c.EnrollmentCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new course and returns its ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("teacher_id", "title", "description", "subject", "class_level",
			"category_id", "price", "final_price", "is_free", "approved", "videos").
		Values(course.TeacherID, course.Title, course.Description, course.Subject, course.ClassLevel,
			course.CategoryID, course.Price, course.FinalPrice, course.IsFree, course.Approved, course.Videos).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("teacherID", course.TeacherID).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// GetByID retrieves a course by ID, including the owning teacher's name
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	cols := append(prefixColumns("c", courseColumns), "u.name", "cat.name")
	sql, args, err := r.sb.Select(cols...).
		From("courses c").
		Join("users u ON u.id = c.teacher_id").
		LeftJoin("categories cat ON cat.id = c.category_id").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c := &models.Course{Teacher: &models.User{}}
	var categoryName *string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&c.ID, &c.TeacherID, &c.Title, &c.Description, &c.Subject, &c.ClassLevel,
		&c.CategoryID, &c.Price, &c.FinalPrice, &c.IsFree, &c.Approved,
		&c.RejectionReason, &c.Videos, &c.EnrollmentCount, &c.CreatedAt, &c.UpdatedAt,
		&c.Teacher.Name, &categoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	c.Teacher.ID = c.TeacherID
	if categoryName != nil {
		c.Category = &models.Category{Name: *categoryName}
		if c.CategoryID != nil {
			c.Category.ID = *c.CategoryID
		}
	}

	return c, nil
}

// List retrieves courses matching the filter, newest first. When
// approvedOnly is set only approved courses are returned.
func (r *CourseRepository) List(ctx context.Context, filter dto.CourseFilterRequest, approvedOnly bool) ([]*models.Course, int64, error) {
	conds := squirrel.And{}
	if approvedOnly {
		conds = append(conds, squirrel.Eq{"c.approved": true})
	}
	if filter.Subject != "" {
		conds = append(conds, squirrel.Eq{"c.subject": filter.Subject})
	}
	if filter.ClassLevel != "" {
		conds = append(conds, squirrel.Eq{"c.class_level": filter.ClassLevel})
	}
	if filter.CategoryID != 0 {
		conds = append(conds, squirrel.Eq{"c.category_id": filter.CategoryID})
	}
	if filter.FreeOnly {
		conds = append(conds, squirrel.Eq{"c.is_free": true})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"c.title": pattern},
			squirrel.ILike{"c.description": pattern},
		})
	}

	countQuery := r.sb.Select("COUNT(*)").From("courses c")
	listQuery := r.sb.Select(append(prefixColumns("c", courseColumns), "u.name")...).
		From("courses c").
		Join("users u ON u.id = c.teacher_id")
	if len(conds) > 0 {
		countQuery = countQuery.Where(conds)
		listQuery = listQuery.Where(conds)
	}

	countSql, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	sql, args, err := listQuery.
		OrderBy("c.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, 0, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c := &models.Course{Teacher: &models.User{}}
		if err := rows.Scan(
			&c.ID, &c.TeacherID, &c.Title, &c.Description, &c.Subject, &c.ClassLevel,
			&c.CategoryID, &c.Price, &c.FinalPrice, &c.IsFree, &c.Approved,
			&c.RejectionReason, &c.Videos, &c.EnrollmentCount, &c.CreatedAt, &c.UpdatedAt,
			&c.Teacher.Name,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		c.Teacher.ID = c.TeacherID
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, total, nil
}

// ListPending retrieves unapproved courses for the admin review queue,
// oldest submissions first
func (r *CourseRepository) ListPending(ctx context.Context, page, pageSize int) ([]*models.Course, int64, error) {
	var total int64
	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("courses").
		Where(squirrel.Eq{"approved": false}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count pending courses query: %w", err)
	}
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting pending courses: %w", err)
	}

	sql, args, err := r.sb.Select(append(prefixColumns("c", courseColumns), "u.name")...).
		From("courses c").
		Join("users u ON u.id = c.teacher_id").
		Where(squirrel.Eq{"c.approved": false}).
		OrderBy("c.created_at ASC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list pending courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list pending courses query")
		return nil, 0, fmt.Errorf("error querying pending courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c := &models.Course{Teacher: &models.User{}}
		if err := rows.Scan(
			&c.ID, &c.TeacherID, &c.Title, &c.Description, &c.Subject, &c.ClassLevel,
			&c.CategoryID, &c.Price, &c.FinalPrice, &c.IsFree, &c.Approved,
			&c.RejectionReason, &c.Videos, &c.EnrollmentCount, &c.CreatedAt, &c.UpdatedAt,
			&c.Teacher.Name,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		c.Teacher.ID = c.TeacherID
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, total, nil
}

// ListByTeacher retrieves all courses owned by a teacher, newest first
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"teacher_id": teacherID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list teacher courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", teacherID).Msg("Error executing list teacher courses query")
		return nil, fmt.Errorf("error querying teacher courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Update rewrites the mutable fields of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"title":       course.Title,
			"description": course.Description,
			"subject":     course.Subject,
			"class_level": course.ClassLevel,
			"category_id": course.CategoryID,
			"price":       course.Price,
			"final_price": course.FinalPrice,
			"is_free":     course.IsFree,
			"approved":    course.Approved,
			"videos":      course.Videos,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// SetApproval records an admin decision on a course. Rejection clears the
// approved flag so a previously approved course goes back to draft.
func (r *CourseRepository) SetApproval(ctx context.Context, id int64, approved bool, rejectionReason *string) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"approved":         approved,
			"rejection_reason": rejectionReason,
			"updated_at":       squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build course approval query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing course approval query")
		return fmt.Errorf("error setting course approval: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// CountByApproval returns the number of courses with the given approval state
func (r *CourseRepository) CountByApproval(ctx context.Context, approved bool) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("courses").
		Where(squirrel.Eq{"approved": approved}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}

	return count, nil
}

// Count returns the total number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("courses").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}

	return count, nil
}

// EnrollmentStatsBySubject aggregates course and enrollment counts per subject
func (r *CourseRepository) EnrollmentStatsBySubject(ctx context.Context) ([]dto.SubjectEnrollmentStat, error) {
	sql, args, err := r.sb.Select("subject", "COUNT(*)", "COALESCE(SUM(enrollment_count), 0)").
		From("courses").
		GroupBy("subject").
		OrderBy("subject ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build subject stats query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing subject stats query")
		return nil, fmt.Errorf("error querying subject stats: %w", err)
	}
	defer rows.Close()

	stats := []dto.SubjectEnrollmentStat{}
	for rows.Next() {
		var s dto.SubjectEnrollmentStat
		if err := rows.Scan(&s.Subject, &s.CourseCount, &s.Enrollments); err != nil {
			return nil, fmt.Errorf("error scanning subject stats row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject stats rows: %w", err)
	}

	return stats, nil
}

// TopCoursesByRevenue ranks courses by accumulated enrollment revenue
func (r *CourseRepository) TopCoursesByRevenue(ctx context.Context, limit int) ([]dto.CourseRevenueStat, error) {
	sql, args, err := r.sb.Select("id", "title", "enrollment_count", "enrollment_count * final_price AS revenue").
		From("courses").
		OrderBy("revenue DESC", "enrollment_count DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing top courses query")
		return nil, fmt.Errorf("error querying top courses: %w", err)
	}
	defer rows.Close()

	stats := []dto.CourseRevenueStat{}
	for rows.Next() {
		var s dto.CourseRevenueStat
		if err := rows.Scan(&s.CourseID, &s.Title, &s.Enrollments, &s.Revenue); err != nil {
			return nil, fmt.Errorf("error scanning top courses row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top courses rows: %w", err)
	}

	return stats, nil
}
