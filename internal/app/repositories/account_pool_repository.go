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

// AccountPoolRepository handles the pre-provisioned teacher account pool
type AccountPoolRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAccountPoolRepository creates a new AccountPoolRepository
func NewAccountPoolRepository(db *pgxpool.Pool) *AccountPoolRepository {
	return &AccountPoolRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// claimQuery selects the lowest unallocated username and flips it to
// allocated in a single statement. FOR UPDATE SKIP LOCKED lets concurrent
// approvals each claim a distinct row without blocking on each other.
const claimQuery = `
UPDATE teacher_accounts_pool
SET allocated = TRUE, allocated_to = $1, allocated_at = NOW()
WHERE id = (
	SELECT id FROM teacher_accounts_pool
	WHERE allocated = FALSE
	ORDER BY username ASC
	LIMIT 1
	FOR UPDATE SKIP LOCKED
)
RETURNING id, username, password, allocated, allocated_to, allocated_at, created_at`

// ClaimNextAvailable atomically allocates the next free pool account to the
// given user. Returns ErrPoolExhausted when every account is taken.
func (r *AccountPoolRepository) ClaimNextAvailable(ctx context.Context, userID int64) (*models.TeacherAccount, error) {
	acc := &models.TeacherAccount{}
	err := r.db.QueryRow(ctx, claimQuery, userID).Scan(
		&acc.ID, &acc.Username, &acc.Password, &acc.Allocated,
		&acc.AllocatedTo, &acc.AllocatedAt, &acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPoolExhausted
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error claiming pool account")
		return nil, fmt.Errorf("error claiming teacher account: %w", err)
	}

	return acc, nil
}

// Release returns an allocated account to the pool. Used both as the
// compensation step in the approval flow and as an admin operation.
func (r *AccountPoolRepository) Release(ctx context.Context, username string) error {
	sql, args, err := r.sb.Update("teacher_accounts_pool").
		SetMap(map[string]interface{}{
			"allocated":    false,
			"allocated_to": nil,
			"allocated_at": nil,
		}).
		Where(squirrel.Eq{"username": username, "allocated": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build release account query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Error executing release account query")
		return fmt.Errorf("error releasing teacher account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotAllocated
	}

	return nil
}

// GetByUsername retrieves a pool account by its username
func (r *AccountPoolRepository) GetByUsername(ctx context.Context, username string) (*models.TeacherAccount, error) {
	sql, args, err := r.sb.Select("id", "username", "password", "allocated", "allocated_to", "allocated_at", "created_at").
		From("teacher_accounts_pool").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get account query: %w", err)
	}

	acc := &models.TeacherAccount{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&acc.ID, &acc.Username, &acc.Password, &acc.Allocated,
		&acc.AllocatedTo, &acc.AllocatedAt, &acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		logger.Error().Err(err).Str("username", username).Msg("Error scanning pool account row")
		return nil, fmt.Errorf("error getting teacher account: %w", err)
	}

	return acc, nil
}

// BulkInsert provisions pool accounts, skipping usernames that already
// exist. Used by the startup seeder; idempotent across restarts.
func (r *AccountPoolRepository) BulkInsert(ctx context.Context, accounts []*models.TeacherAccount) (int64, error) {
	if len(accounts) == 0 {
		return 0, nil
	}

	builder := r.sb.Insert("teacher_accounts_pool").
		Columns("username", "password", "allocated")
	for _, acc := range accounts {
		builder = builder.Values(acc.Username, acc.Password, false)
	}

	sql, args, err := builder.
		Suffix("ON CONFLICT (username) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build bulk insert query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing bulk insert of pool accounts")
		return 0, fmt.Errorf("error inserting pool accounts: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// Count returns the total pool size
func (r *AccountPoolRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("teacher_accounts_pool").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count accounts query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting pool accounts: %w", err)
	}

	return count, nil
}

// CountAllocated returns the number of allocated pool accounts
func (r *AccountPoolRepository) CountAllocated(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("teacher_accounts_pool").
		Where(squirrel.Eq{"allocated": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count allocated query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting allocated accounts: %w", err)
	}

	return count, nil
}
