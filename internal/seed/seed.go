package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emres/learnhub/internal/app/models"
	appRepos "github.com/emres/learnhub/internal/app/repositories"
	"github.com/emres/learnhub/internal/config"
	"github.com/emres/learnhub/internal/pkg/apperrors"
	"github.com/emres/learnhub/internal/pkg/auth"
)

// PoolUsernameFormat is the naming pattern for pre-provisioned teacher
// accounts: TEACH0001 through TEACH<PoolSize>.
const PoolUsernameFormat = "TEACH%04d"

const poolPasswordLength = 12

// CreateDefaultData provisions the default admin user and the teacher
// account pool. Safe to run on every startup: existing rows are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	poolRepo := appRepos.NewAccountPoolRepository(dbPool)

	var finalErr error

	if err := createAdminUser(ctx, userRepo, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := provisionAccountPool(ctx, poolRepo, cfg.Pool.Size, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func createAdminUser(ctx context.Context, userRepo *appRepos.UserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	_, err := userRepo.GetByEmail(ctx, cfg.Admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for admin user")
		return err
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Creating default admin user")

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Name:       "Administrator",
		Email:      cfg.Admin.Email,
		Password:   hashed,
		Role:       appModels.RoleAdmin,
		IsApproved: true,
	}
	if _, err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	return nil
}

// provisionAccountPool fills the teacher account pool up to the configured
// size. Each account gets a random password that is stored only as a
// bcrypt hash. Hashing the full pool takes a while, so the whole step is
// skipped once the pool is complete.
func provisionAccountPool(ctx context.Context, poolRepo *appRepos.AccountPoolRepository, poolSize int, lgr zerolog.Logger) error {
	count, err := poolRepo.Count(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting pool accounts")
		return err
	}
	if count >= int64(poolSize) {
		return nil
	}

	lgr.Info().Int64("existing", count).Int("target", poolSize).
		Msg("Provisioning teacher account pool, this may take a while")

	accounts := make([]*appModels.TeacherAccount, 0, poolSize)
	for i := 1; i <= poolSize; i++ {
		password, err := auth.GeneratePoolPassword(poolPasswordLength)
		if err != nil {
			lgr.Error().Err(err).Msg("Error generating pool password")
			return err
		}
		hashed, err := auth.HashPassword(password)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing pool password")
			return err
		}
		accounts = append(accounts, &appModels.TeacherAccount{
			Username: fmt.Sprintf(PoolUsernameFormat, i),
			Password: hashed,
		})
	}

	inserted, err := poolRepo.BulkInsert(ctx, accounts)
	if err != nil {
		lgr.Error().Err(err).Msg("Error inserting pool accounts")
		return err
	}

	lgr.Info().Int64("inserted", inserted).Msg("Teacher account pool provisioned")
	return nil
}
