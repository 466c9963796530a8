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

// ScheduleRepository handles study schedule database operations
type ScheduleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert replaces the student's schedule. Each student keeps exactly one
// schedule row; regeneration overwrites the previous plan.
func (r *ScheduleRepository) Upsert(ctx context.Context, schedule *models.Schedule) (int64, error) {
	entries, err := json.Marshal(schedule.Entries)
	if err != nil {
		return 0, fmt.Errorf("error encoding schedule entries: %w", err)
	}

	sql, args, err := r.sb.Insert("schedules").
		Columns("student_id", "entries", "selected_subjects", "generated_at").
		Values(schedule.StudentID, entries, schedule.SelectedSubjects, squirrel.Expr("NOW()")).
		Suffix(`ON CONFLICT (student_id) DO UPDATE
			SET entries = EXCLUDED.entries,
			    selected_subjects = EXCLUDED.selected_subjects,
			    generated_at = NOW()
			RETURNING id`).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build upsert schedule query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("studentID", schedule.StudentID).Msg("Error executing upsert schedule query")
		return 0, fmt.Errorf("error saving schedule: %w", err)
	}

	return id, nil
}

// GetByStudent retrieves a student's current schedule
func (r *ScheduleRepository) GetByStudent(ctx context.Context, studentID int64) (*models.Schedule, error) {
	sql, args, err := r.sb.Select("id", "student_id", "entries", "selected_subjects", "generated_at").
		From("schedules").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get schedule query: %w", err)
	}

	s := &models.Schedule{}
	var entries []byte
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.StudentID, &entries, &s.SelectedSubjects, &s.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning schedule row")
		return nil, fmt.Errorf("error getting schedule: %w", err)
	}
	if len(entries) > 0 {
		if err := json.Unmarshal(entries, &s.Entries); err != nil {
			return nil, fmt.Errorf("error decoding schedule entries: %w", err)
		}
	}

	return s, nil
}
