package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Teacher request and account pool errors
var (
	ErrRequestNotFound         = errors.New("teacher request not found")
	ErrDuplicatePendingRequest = errors.New("a pending teacher request already exists")
	ErrRequestAlreadyReviewed  = errors.New("teacher request has already been reviewed")
	ErrPoolExhausted           = errors.New("no unallocated teacher accounts available")
	ErrAccountNotFound         = errors.New("teacher account not found")
	ErrAccountNotAllocated     = errors.New("teacher account is not allocated")
)

// Course errors
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseApproved     = errors.New("approved courses cannot be modified")
	ErrCourseNotAvailable = errors.New("course is not available")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrNotCourseOwner     = errors.New("course belongs to another teacher")
)

// Category and book errors
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
	ErrBookNotFound          = errors.New("book not found")
	ErrNotBookOwner          = errors.New("book belongs to another teacher")
	ErrAlreadyPurchased      = errors.New("book already purchased")
)

// Enrollment and schedule errors
var (
	ErrEnrollmentNotFound = errors.New("course not found in your library")
	ErrScheduleNotFound   = errors.New("no schedule found")
)

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
