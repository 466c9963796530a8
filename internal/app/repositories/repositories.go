package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	RequestRepository     *TeacherRequestRepository
	AccountPoolRepository *AccountPoolRepository
	CourseRepository      *CourseRepository
	CategoryRepository    *CategoryRepository
	BookRepository        *BookRepository
	EnrollmentRepository  *EnrollmentRepository
	ScheduleRepository    *ScheduleRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		RequestRepository:     NewTeacherRequestRepository(db),
		AccountPoolRepository: NewAccountPoolRepository(db),
		CourseRepository:      NewCourseRepository(db),
		CategoryRepository:    NewCategoryRepository(db),
		BookRepository:        NewBookRepository(db),
		EnrollmentRepository:  NewEnrollmentRepository(db),
		ScheduleRepository:    NewScheduleRepository(db),
	}
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation error.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // 23505 is unique_violation
}
