package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/pkg/apperrors"
)

type enrollmentKey struct {
	studentID, courseID int64
}

type fakeEnrollments struct {
	mu      sync.Mutex
	nextID  int64
	byKey   map[enrollmentKey]*models.Enrollment
	courses map[int64]*models.Course
}

func newFakeEnrollments(courses map[int64]*models.Course) *fakeEnrollments {
	return &fakeEnrollments{byKey: map[enrollmentKey]*models.Enrollment{}, courses: courses}
}

func (f *fakeEnrollments) Create(_ context.Context, studentID, courseID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := enrollmentKey{studentID, courseID}
	if _, ok := f.byKey[key]; ok {
		return 0, apperrors.ErrAlreadyEnrolled
	}
	f.nextID++
	f.byKey[key] = &models.Enrollment{
		ID:            f.nextID,
		StudentID:     studentID,
		CourseID:      courseID,
		VideosWatched: []models.WatchedVideo{},
	}
	return f.nextID, nil
}

func (f *fakeEnrollments) GetByStudentAndCourse(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	enrollment, ok := f.byKey[enrollmentKey{studentID, courseID}]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	out := *enrollment
	out.VideosWatched = append([]models.WatchedVideo{}, enrollment.VideosWatched...)
	return &out, nil
}

func (f *fakeEnrollments) ListByStudent(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Enrollment{}
	for key, enrollment := range f.byKey {
		if key.studentID == studentID {
			copied := *enrollment
			copied.Course = f.courses[key.courseID]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeEnrollments) UpdateProgress(_ context.Context, enrollment *models.Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := enrollmentKey{enrollment.StudentID, enrollment.CourseID}
	if _, ok := f.byKey[key]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	stored := *enrollment
	f.byKey[key] = &stored
	return nil
}

type fakeEnrollmentCourses struct {
	byID map[int64]*models.Course
}

func (f *fakeEnrollmentCourses) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

type fakeSchedules struct {
	mu        sync.Mutex
	nextID    int64
	byStudent map[int64]*models.Schedule
}

func newFakeSchedules() *fakeSchedules {
	return &fakeSchedules{byStudent: map[int64]*models.Schedule{}}
}

func (f *fakeSchedules) Upsert(_ context.Context, schedule *models.Schedule) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byStudent[schedule.StudentID]; ok {
		schedule.ID = existing.ID
	} else {
		f.nextID++
		schedule.ID = f.nextID
	}
	stored := *schedule
	f.byStudent[schedule.StudentID] = &stored
	return schedule.ID, nil
}

func (f *fakeSchedules) GetByStudent(_ context.Context, studentID int64) (*models.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	schedule, ok := f.byStudent[studentID]
	if !ok {
		return nil, apperrors.ErrScheduleNotFound
	}
	out := *schedule
	return &out, nil
}

type studentFixture struct {
	svc         StudentService
	enrollments *fakeEnrollments
	courses     *fakeEnrollmentCourses
	schedules   *fakeSchedules
}

func newStudentFixture() *studentFixture {
	courses := &fakeEnrollmentCourses{byID: map[int64]*models.Course{
		1: {ID: 1, TeacherID: 10, Title: "Calculus I", Subject: "Mathematics", Approved: true, Price: 19.99, FinalPrice: 20.59, Videos: []string{"v1", "v2"}},
		2: {ID: 2, TeacherID: 10, Title: "Draft Course", Subject: "Physics", Approved: false, Videos: []string{"v1"}},
	}}
	enrollments := newFakeEnrollments(courses.byID)
	schedules := newFakeSchedules()
	return &studentFixture{
		svc:         NewStudentService(enrollments, courses, schedules),
		enrollments: enrollments,
		courses:     courses,
		schedules:   schedules,
	}
}

func TestEnrollCourse(t *testing.T) {
	fx := newStudentFixture()

	enrollment, err := fx.svc.EnrollCourse(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), enrollment.StudentID)
	assert.Equal(t, int64(1), enrollment.CourseID)
	assert.Zero(t, enrollment.ProgressPercentage)
}

func TestEnrollUnapprovedCourse(t *testing.T) {
	fx := newStudentFixture()

	_, err := fx.svc.EnrollCourse(context.Background(), 1, 2)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotAvailable)
}

func TestEnrollTwice(t *testing.T) {
	fx := newStudentFixture()

	_, err := fx.svc.EnrollCourse(context.Background(), 1, 1)
	require.NoError(t, err)

	_, err = fx.svc.EnrollCourse(context.Background(), 1, 1)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestMarkVideoWatchedProgress(t *testing.T) {
	fx := newStudentFixture()

	_, err := fx.svc.EnrollCourse(context.Background(), 1, 1)
	require.NoError(t, err)

	enrollment, err := fx.svc.MarkVideoWatched(context.Background(), 1, 1, "v1", 300)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.ProgressPercentage)
	assert.False(t, enrollment.Completed)

	enrollment, err = fx.svc.MarkVideoWatched(context.Background(), 1, 1, "v2", 240)
	require.NoError(t, err)
	assert.Equal(t, 100, enrollment.ProgressPercentage)
	assert.True(t, enrollment.Completed)
}

func TestMarkVideoWatchedRewatchDoesNotAdvance(t *testing.T) {
	fx := newStudentFixture()

	_, err := fx.svc.EnrollCourse(context.Background(), 1, 1)
	require.NoError(t, err)

	_, err = fx.svc.MarkVideoWatched(context.Background(), 1, 1, "v1", 300)
	require.NoError(t, err)

	enrollment, err := fx.svc.MarkVideoWatched(context.Background(), 1, 1, "v1", 300)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.ProgressPercentage)
	assert.Len(t, enrollment.VideosWatched, 1)
}

func TestMarkVideoWatchedUnknownVideo(t *testing.T) {
	fx := newStudentFixture()

	_, err := fx.svc.EnrollCourse(context.Background(), 1, 1)
	require.NoError(t, err)

	_, err = fx.svc.MarkVideoWatched(context.Background(), 1, 1, "v99", 300)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestMarkVideoWatchedWithoutEnrollment(t *testing.T) {
	fx := newStudentFixture()

	_, err := fx.svc.MarkVideoWatched(context.Background(), 1, 1, "v1", 300)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestGenerateScheduleCyclesSubjects(t *testing.T) {
	fx := newStudentFixture()

	schedule, err := fx.svc.GenerateSchedule(context.Background(), 1, []string{"Math", "Physics"}, 45)
	require.NoError(t, err)
	require.Len(t, schedule.Entries, 15)

	// Subjects rotate through the slots in order: Monday morning gets the
	// first subject, Monday afternoon the second, and so on.
	assert.Equal(t, models.ScheduleEntry{Day: "Monday", TimeSlot: "morning", Subject: "Math", Duration: 45}, schedule.Entries[0])
	assert.Equal(t, models.ScheduleEntry{Day: "Monday", TimeSlot: "afternoon", Subject: "Physics", Duration: 45}, schedule.Entries[1])
	assert.Equal(t, models.ScheduleEntry{Day: "Monday", TimeSlot: "evening", Subject: "Math", Duration: 45}, schedule.Entries[2])
	assert.Equal(t, models.ScheduleEntry{Day: "Tuesday", TimeSlot: "morning", Subject: "Physics", Duration: 45}, schedule.Entries[3])
	assert.Equal(t, models.ScheduleEntry{Day: "Friday", TimeSlot: "evening", Subject: "Math", Duration: 45}, schedule.Entries[14])
}

func TestGenerateScheduleDefaultsSessionLength(t *testing.T) {
	fx := newStudentFixture()

	schedule, err := fx.svc.GenerateSchedule(context.Background(), 1, []string{"Math"}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, schedule.Entries)
	assert.Equal(t, 60, schedule.Entries[0].Duration)
}

func TestGenerateScheduleRequiresSubjects(t *testing.T) {
	fx := newStudentFixture()

	_, err := fx.svc.GenerateSchedule(context.Background(), 1, []string{"  ", ""}, 45)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGenerateScheduleReplacesExisting(t *testing.T) {
	fx := newStudentFixture()

	first, err := fx.svc.GenerateSchedule(context.Background(), 1, []string{"Math"}, 45)
	require.NoError(t, err)

	second, err := fx.svc.GenerateSchedule(context.Background(), 1, []string{"History"}, 30)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{"History"}, second.SelectedSubjects)

	stored, err := fx.svc.GetSchedule(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "History", stored.Entries[0].Subject)
}

func TestStats(t *testing.T) {
	fx := newStudentFixture()

	_, err := fx.svc.EnrollCourse(context.Background(), 1, 1)
	require.NoError(t, err)
	_, err = fx.svc.MarkVideoWatched(context.Background(), 1, 1, "v1", 300)
	require.NoError(t, err)
	_, err = fx.svc.MarkVideoWatched(context.Background(), 1, 1, "v2", 240)
	require.NoError(t, err)

	stats, err := fx.svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalEnrollments)
	assert.Equal(t, 1, stats.CompletedCourses)
	assert.Equal(t, 2, stats.VideosWatched)
	assert.InDelta(t, 100.0, stats.AverageProgress, 1e-9)
	assert.InDelta(t, 20.59, stats.TotalSpent, 1e-9)
}

func TestStatsNoEnrollments(t *testing.T) {
	fx := newStudentFixture()

	stats, err := fx.svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalEnrollments)
	assert.Zero(t, stats.AverageProgress)
}

func TestGetProgress(t *testing.T) {
	fx := newStudentFixture()

	_, err := fx.svc.EnrollCourse(context.Background(), 1, 1)
	require.NoError(t, err)
	_, err = fx.svc.MarkVideoWatched(context.Background(), 1, 1, "v1", 300)
	require.NoError(t, err)

	enrollment, err := fx.svc.GetProgress(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.ProgressPercentage)

	_, err = fx.svc.GetProgress(context.Background(), 1, 2)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestGetScheduleNotFound(t *testing.T) {
	fx := newStudentFixture()

	_, err := fx.svc.GetSchedule(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrScheduleNotFound)
}
