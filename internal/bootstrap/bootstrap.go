package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emres/learnhub/internal/app/controllers"
	appMigrations "github.com/emres/learnhub/internal/app/migrations"
	appRepos "github.com/emres/learnhub/internal/app/repositories"
	appRoutes "github.com/emres/learnhub/internal/app/routes"
	appServices "github.com/emres/learnhub/internal/app/services"
	"github.com/emres/learnhub/internal/config"
	"github.com/emres/learnhub/internal/db"
	appMiddleware "github.com/emres/learnhub/internal/middleware"
	pkgAuth "github.com/emres/learnhub/internal/pkg/auth"
	"github.com/emres/learnhub/internal/pkg/helpers"
	"github.com/emres/learnhub/internal/pkg/logger"
	"github.com/emres/learnhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        appServices.AuthService
	TeacherService     appServices.TeacherService
	CourseService      appServices.CourseService
	CategoryService    appServices.CategoryService
	BookService        appServices.BookService
	StudentService     appServices.StudentService
	AdminService       appServices.AdminService
	AuthController     *appControllers.AuthController
	TeacherController  *appControllers.TeacherController
	CourseController   *appControllers.CourseController
	CategoryController *appControllers.CategoryController
	BookController     *appControllers.BookController
	StudentController  *appControllers.StudentController
	AdminController    *appControllers.AdminController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// provisions default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	// Default admin and teacher account pool (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 168*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.TeacherService = appServices.NewTeacherService(
		deps.Repos.RequestRepository,
		deps.Repos.AccountPoolRepository,
		deps.Repos.UserRepository,
	)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, deps.Repos.CategoryRepository)
	deps.CategoryService = appServices.NewCategoryService(deps.Repos.CategoryRepository)
	deps.BookService = appServices.NewBookService(deps.Repos.BookRepository, deps.Repos.CourseRepository)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.ScheduleRepository,
	)
	deps.AdminService = appServices.NewAdminService(deps.Repos)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.CategoryController = appControllers.NewCategoryController(deps.CategoryService)
	deps.BookController = appControllers.NewBookController(deps.BookService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.TeacherController,
		deps.CourseController,
		deps.CategoryController,
		deps.BookController,
		deps.StudentController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
