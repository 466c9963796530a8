package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleTeacher RoleType = "TEACHER"
	RoleStudent RoleType = "STUDENT"
)

// Valid reports whether the role is one of the known values
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// RequestStatus defines the lifecycle state of a teacher request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Terminal reports whether a request has been decided. Terminal requests
// may not be reviewed again.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// BookCategory defines the kind of a published book
type BookCategory string

const (
	BookTextbook     BookCategory = "Textbook"
	BookReference    BookCategory = "Reference"
	BookWorkbook     BookCategory = "Workbook"
	BookStudyGuide   BookCategory = "Study Guide"
	BookPracticeBook BookCategory = "Practice Book"
)

// Valid reports whether the book category is one of the known values
func (c BookCategory) Valid() bool {
	switch c {
	case BookTextbook, BookReference, BookWorkbook, BookStudyGuide, BookPracticeBook:
		return true
	}
	return false
}
