package dto

// PlatformStatsResponse summarizes platform-wide counts for the admin dashboard
type PlatformStatsResponse struct {
	TotalUsers       int64   `json:"totalUsers"`
	TotalStudents    int64   `json:"totalStudents"`
	TotalTeachers    int64   `json:"totalTeachers"`
	TotalCourses     int64   `json:"totalCourses"`
	ApprovedCourses  int64   `json:"approvedCourses"`
	PendingCourses   int64   `json:"pendingCourses"`
	TotalEnrollments int64   `json:"totalEnrollments"`
	PendingRequests  int64   `json:"pendingRequests"`
	TotalBooks       int64   `json:"totalBooks"`
	TotalCategories  int64   `json:"totalCategories"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

// SubjectEnrollmentStat is one row of the enrollment-by-subject breakdown
type SubjectEnrollmentStat struct {
	Subject     string `json:"subject"`
	CourseCount int64  `json:"courseCount"`
	Enrollments int64  `json:"enrollments"`
}

// CourseRevenueStat is one row of the top-courses-by-revenue ranking
type CourseRevenueStat struct {
	CourseID    int64   `json:"courseId"`
	Title       string  `json:"title"`
	Enrollments int64   `json:"enrollments"`
	Revenue     float64 `json:"revenue"`
}

// AnalyticsResponse carries enrollment analytics for the admin dashboard
type AnalyticsResponse struct {
	EnrollmentsBySubject []SubjectEnrollmentStat `json:"enrollmentsBySubject"`
	TopCourses           []CourseRevenueStat     `json:"topCourses"`
	AverageProgress      float64                 `json:"averageProgress"`
	CompletionRate       float64                 `json:"completionRate"`
}
