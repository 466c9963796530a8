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

// TeacherRequestRepository handles teacher application database operations
type TeacherRequestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRequestRepository creates a new TeacherRequestRepository
func NewTeacherRequestRepository(db *pgxpool.Pool) *TeacherRequestRepository {
	return &TeacherRequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var requestColumns = []string{
	"id", "teacher_id", "message", "status", "rejection_reason",
	"allocated_username", "allocated_password", "reviewed_by", "reviewed_at", "created_at",
}

func scanRequest(row pgx.Row) (*models.TeacherRequest, error) {
	req := &models.TeacherRequest{}
	err := row.Scan(
		&req.ID, &req.TeacherID, &req.Message, &req.Status, &req.RejectionReason,
		&req.AllocatedUsername, &req.AllocatedPassword, &req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Create inserts a new pending request. A partial unique index on
// (teacher_id) WHERE status = 'pending' rejects a second open application
// from the same user.
func (r *TeacherRequestRepository) Create(ctx context.Context, req *models.TeacherRequest) (int64, error) {
	sql, args, err := r.sb.Insert("teacher_requests").
		Columns("teacher_id", "message", "status").
		Values(req.TeacherID, req.Message, models.RequestPending).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create request query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrDuplicatePendingRequest
		}
		logger.Error().Err(err).Int64("teacherID", req.TeacherID).Msg("Error executing create request query")
		return 0, fmt.Errorf("error creating teacher request: %w", err)
	}

	return id, nil
}

// GetByID retrieves a request by ID, including the requesting user
func (r *TeacherRequestRepository) GetByID(ctx context.Context, id int64) (*models.TeacherRequest, error) {
	cols := append(prefixColumns("tr", requestColumns), "u.name", "u.email")
	sql, args, err := r.sb.Select(cols...).
		From("teacher_requests tr").
		Join("users u ON u.id = tr.teacher_id").
		Where(squirrel.Eq{"tr.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get request query: %w", err)
	}

	req := &models.TeacherRequest{Teacher: &models.User{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&req.ID, &req.TeacherID, &req.Message, &req.Status, &req.RejectionReason,
		&req.AllocatedUsername, &req.AllocatedPassword, &req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt,
		&req.Teacher.Name, &req.Teacher.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		logger.Error().Err(err).Int64("requestID", id).Msg("Error scanning request row")
		return nil, fmt.Errorf("error getting teacher request: %w", err)
	}
	req.Teacher.ID = req.TeacherID

	return req, nil
}

// GetLatestByTeacherID retrieves the most recent request of a user
func (r *TeacherRequestRepository) GetLatestByTeacherID(ctx context.Context, teacherID int64) (*models.TeacherRequest, error) {
	sql, args, err := r.sb.Select(requestColumns...).
		From("teacher_requests").
		Where(squirrel.Eq{"teacher_id": teacherID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get latest request query: %w", err)
	}

	req, err := scanRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		logger.Error().Err(err).Int64("teacherID", teacherID).Msg("Error scanning request row")
		return nil, fmt.Errorf("error getting latest teacher request: %w", err)
	}

	return req, nil
}

// List retrieves requests, optionally filtered by status, newest first
func (r *TeacherRequestRepository) List(ctx context.Context, status models.RequestStatus, page, pageSize int) ([]*models.TeacherRequest, int64, error) {
	countQuery := r.sb.Select("COUNT(*)").From("teacher_requests")
	listQuery := r.sb.Select(append(prefixColumns("tr", requestColumns), "u.name", "u.email")...).
		From("teacher_requests tr").
		Join("users u ON u.id = tr.teacher_id")

	if status != "" {
		countQuery = countQuery.Where(squirrel.Eq{"status": status})
		listQuery = listQuery.Where(squirrel.Eq{"tr.status": status})
	}

	countSql, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count requests query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting teacher requests: %w", err)
	}

	sql, args, err := listQuery.
		OrderBy("tr.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list requests query")
		return nil, 0, fmt.Errorf("error querying teacher requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.TeacherRequest{}
	for rows.Next() {
		req := &models.TeacherRequest{Teacher: &models.User{}}
		if err := rows.Scan(
			&req.ID, &req.TeacherID, &req.Message, &req.Status, &req.RejectionReason,
			&req.AllocatedUsername, &req.AllocatedPassword, &req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt,
			&req.Teacher.Name, &req.Teacher.Email,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning request row: %w", err)
		}
		req.Teacher.ID = req.TeacherID
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating request rows: %w", err)
	}

	return requests, total, nil
}

// MarkApproved transitions a request from pending to approved and records
// the allocated credentials. The status predicate makes the transition a
// compare-and-swap: a request already decided is left untouched and
// ErrRequestAlreadyReviewed is returned.
func (r *TeacherRequestRepository) MarkApproved(ctx context.Context, id, reviewerID int64, username, hashedPassword string) error {
	sql, args, err := r.sb.Update("teacher_requests").
		SetMap(map[string]interface{}{
			"status":             models.RequestApproved,
			"allocated_username": username,
			"allocated_password": hashedPassword,
			"reviewed_by":        reviewerID,
			"reviewed_at":        squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id, "status": models.RequestPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve request query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("requestID", id).Msg("Error executing approve request query")
		return fmt.Errorf("error approving teacher request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequestAlreadyReviewed
	}

	return nil
}

// MarkRejected transitions a request from pending to rejected. Same
// compare-and-swap semantics as MarkApproved.
func (r *TeacherRequestRepository) MarkRejected(ctx context.Context, id, reviewerID int64, reason string) error {
	sql, args, err := r.sb.Update("teacher_requests").
		SetMap(map[string]interface{}{
			"status":           models.RequestRejected,
			"rejection_reason": reason,
			"reviewed_by":      reviewerID,
			"reviewed_at":      squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": id, "status": models.RequestPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reject request query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("requestID", id).Msg("Error executing reject request query")
		return fmt.Errorf("error rejecting teacher request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequestAlreadyReviewed
	}

	return nil
}

// RevertApproval returns an approved request to pending and clears the
// recorded credentials. This is the compensation step used when a later
// write in the approval flow fails after the request was already marked.
func (r *TeacherRequestRepository) RevertApproval(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("teacher_requests").
		SetMap(map[string]interface{}{
			"status":             models.RequestPending,
			"allocated_username": nil,
			"allocated_password": nil,
			"reviewed_by":        nil,
			"reviewed_at":        nil,
		}).
		Where(squirrel.Eq{"id": id, "status": models.RequestApproved}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revert approval query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("requestID", id).Msg("Error executing revert approval query")
		return fmt.Errorf("error reverting request approval: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}

	return nil
}

// CountByStatus returns the number of requests in the given status
func (r *TeacherRequestRepository) CountByStatus(ctx context.Context, status models.RequestStatus) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("teacher_requests").
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count requests query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting teacher requests: %w", err)
	}

	return count, nil
}

// prefixColumns qualifies column names with a table alias
func prefixColumns(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
