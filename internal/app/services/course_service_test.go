package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/app/models/dto"
	"github.com/emres/learnhub/internal/pkg/apperrors"
)

type fakeCourses struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Course
}

func newFakeCourses() *fakeCourses {
	return &fakeCourses{byID: map[int64]*models.Course{}}
}

func (f *fakeCourses) Create(_ context.Context, course *models.Course) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *course
	stored.ID = f.nextID
	f.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeCourses) GetByID(_ context.Context, id int64) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	out := *course
	return &out, nil
}

func (f *fakeCourses) List(_ context.Context, _ dto.CourseFilterRequest, approvedOnly bool) ([]*models.Course, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Course{}
	for _, course := range f.byID {
		if approvedOnly && !course.Approved {
			continue
		}
		copied := *course
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourses) ListPending(_ context.Context, _, _ int) ([]*models.Course, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Course{}
	for _, course := range f.byID {
		if !course.Approved {
			copied := *course
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourses) ListByTeacher(_ context.Context, teacherID int64) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Course{}
	for _, course := range f.byID {
		if course.TeacherID == teacherID {
			copied := *course
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCourses) Update(_ context.Context, course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	stored := *course
	f.byID[course.ID] = &stored
	return nil
}

func (f *fakeCourses) SetApproval(_ context.Context, id int64, approved bool, rejectionReason *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.byID[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	course.Approved = approved
	course.RejectionReason = rejectionReason
	return nil
}

func (f *fakeCourses) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCategories struct {
	byID map[int64]*models.Category
}

func (f *fakeCategories) GetByID(_ context.Context, id int64) (*models.Category, error) {
	category, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return category, nil
}

type courseFixture struct {
	svc     CourseService
	courses *fakeCourses
}

func newCourseFixture() *courseFixture {
	courses := newFakeCourses()
	categories := &fakeCategories{byID: map[int64]*models.Category{
		1: {ID: 1, Name: "Science"},
	}}
	return &courseFixture{
		svc:     NewCourseService(courses, categories),
		courses: courses,
	}
}

func paidCourseRequest() dto.CreateCourseRequest {
	return dto.CreateCourseRequest{
		Title:       "Calculus I",
		Description: "Limits, derivatives and integrals.",
		Subject:     "Mathematics",
		ClassLevel:  "University",
		Price:       19.99,
		Videos:      []string{"v1", "v2"},
	}
}

func TestCreateFreeCourseIsApprovedImmediately(t *testing.T) {
	fx := newCourseFixture()

	req := paidCourseRequest()
	req.IsFree = true
	req.Price = 49.99 // ignored for free courses

	course, err := fx.svc.CreateCourse(context.Background(), 1, req)
	require.NoError(t, err)
	assert.True(t, course.Approved)
	assert.True(t, course.IsFree)
	assert.Zero(t, course.Price)
	assert.Zero(t, course.FinalPrice)
}

func TestCreatePaidCourseAwaitsApproval(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)
	assert.False(t, course.Approved)
	assert.InDelta(t, 19.99, course.Price, 1e-9)
	assert.InDelta(t, 20.59, course.FinalPrice, 1e-9)
}

func TestCreatePaidCourseRequiresPositivePrice(t *testing.T) {
	fx := newCourseFixture()

	for _, price := range []float64{0, -5} {
		req := paidCourseRequest()
		req.Price = price

		_, err := fx.svc.CreateCourse(context.Background(), 1, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	}
}

func TestCreateFreeCourseIgnoresSubmittedPrice(t *testing.T) {
	fx := newCourseFixture()

	req := paidCourseRequest()
	req.IsFree = true
	req.Price = -5

	course, err := fx.svc.CreateCourse(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Zero(t, course.Price)
	assert.Zero(t, course.FinalPrice)
	assert.True(t, course.Approved)
}

func TestCreateCourseUnknownCategory(t *testing.T) {
	fx := newCourseFixture()

	req := paidCourseRequest()
	missing := int64(42)
	req.CategoryID = &missing

	_, err := fx.svc.CreateCourse(context.Background(), 1, req)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestGetCourseHidesDraftsFromOtherUsers(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)

	// Owner and admin see the draft.
	_, err = fx.svc.GetCourse(context.Background(), course.ID, 1, models.RoleTeacher)
	assert.NoError(t, err)
	_, err = fx.svc.GetCourse(context.Background(), course.ID, 5, models.RoleAdmin)
	assert.NoError(t, err)

	// Everyone else gets a not-found, not a forbidden.
	_, err = fx.svc.GetCourse(context.Background(), course.ID, 2, models.RoleStudent)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestUpdateCourseRecomputesFinalPrice(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)

	newPrice := 100.0
	updated, err := fx.svc.UpdateCourse(context.Background(), 1, course.ID, dto.UpdateCourseRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.InDelta(t, 103.0, updated.FinalPrice, 1e-9)
}

func TestUpdateApprovedCourseRejected(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)
	_, err = fx.svc.ApproveCourse(context.Background(), course.ID)
	require.NoError(t, err)

	title := "New Title"
	_, err = fx.svc.UpdateCourse(context.Background(), 1, course.ID, dto.UpdateCourseRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrCourseApproved)
}

func TestUpdateCourseNotOwner(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)

	title := "Hijacked"
	_, err = fx.svc.UpdateCourse(context.Background(), 2, course.ID, dto.UpdateCourseRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrNotCourseOwner)
}

func TestUpdateCourseToFreeAutoApproves(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)
	require.False(t, course.Approved)

	free := true
	updated, err := fx.svc.UpdateCourse(context.Background(), 1, course.ID, dto.UpdateCourseRequest{IsFree: &free})
	require.NoError(t, err)
	assert.True(t, updated.Approved)
	assert.Zero(t, updated.Price)
	assert.Zero(t, updated.FinalPrice)
}

func TestApproveCourse(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)

	approved, err := fx.svc.ApproveCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.Nil(t, approved.RejectionReason)
}

func TestApproveCourseIsIdempotent(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)
	_, err = fx.svc.ApproveCourse(context.Background(), course.ID)
	require.NoError(t, err)

	approved, err := fx.svc.ApproveCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
}

func TestRejectCourseForcesDraft(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)
	_, err = fx.svc.ApproveCourse(context.Background(), course.ID)
	require.NoError(t, err)

	// Rejection pulls an already approved course out of the catalog.
	rejected, err := fx.svc.RejectCourse(context.Background(), course.ID, "copyright complaint")
	require.NoError(t, err)
	assert.False(t, rejected.Approved)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "copyright complaint", *rejected.RejectionReason)
}

func TestRejectCourseRequiresReason(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)

	_, err = fx.svc.RejectCourse(context.Background(), course.ID, " ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteCourseOwnerDraftOnly(t *testing.T) {
	fx := newCourseFixture()

	course, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)
	_, err = fx.svc.ApproveCourse(context.Background(), course.ID)
	require.NoError(t, err)

	err = fx.svc.DeleteCourse(context.Background(), 1, course.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrCourseApproved)

	// Admins can remove approved courses.
	err = fx.svc.DeleteCourse(context.Background(), 99, course.ID, true)
	require.NoError(t, err)

	_, err = fx.svc.GetCourse(context.Background(), course.ID, 1, models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestListCoursesOnlyApproved(t *testing.T) {
	fx := newCourseFixture()

	_, err := fx.svc.CreateCourse(context.Background(), 1, paidCourseRequest())
	require.NoError(t, err)

	freeReq := paidCourseRequest()
	freeReq.IsFree = true
	freeReq.Title = "Free Algebra"
	_, err = fx.svc.CreateCourse(context.Background(), 1, freeReq)
	require.NoError(t, err)

	courses, total, err := fx.svc.ListCourses(context.Background(), dto.CourseFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, courses, 1)
	assert.Equal(t, "Free Algebra", courses[0].Title)
}
