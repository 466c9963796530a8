package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/pkg/apperrors"
)

// In-memory stores mirroring the compare-and-swap semantics of the real
// repositories.

type fakeRequests struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.TeacherRequest

	markApprovedErr error
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{byID: map[int64]*models.TeacherRequest{}}
}

func (f *fakeRequests) Create(_ context.Context, req *models.TeacherRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.TeacherID == req.TeacherID && existing.Status == models.RequestPending {
			return 0, apperrors.ErrDuplicatePendingRequest
		}
	}
	f.nextID++
	stored := *req
	stored.ID = f.nextID
	f.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeRequests) GetByID(_ context.Context, id int64) (*models.TeacherRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	out := *req
	out.Teacher = &models.User{ID: req.TeacherID}
	return &out, nil
}

func (f *fakeRequests) GetLatestByTeacherID(_ context.Context, teacherID int64) (*models.TeacherRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.TeacherRequest
	for _, req := range f.byID {
		if req.TeacherID != teacherID {
			continue
		}
		if latest == nil || req.ID > latest.ID {
			latest = req
		}
	}
	if latest == nil {
		return nil, apperrors.ErrRequestNotFound
	}
	out := *latest
	return &out, nil
}

func (f *fakeRequests) List(_ context.Context, status models.RequestStatus, _, _ int) ([]*models.TeacherRequest, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.TeacherRequest{}
	for _, req := range f.byID {
		if status == "" || req.Status == status {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequests) MarkApproved(_ context.Context, id, reviewerID int64, username, hashedPassword string) error {
	if f.markApprovedErr != nil {
		return f.markApprovedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.byID[id]
	if !ok || req.Status != models.RequestPending {
		return apperrors.ErrRequestAlreadyReviewed
	}
	req.Status = models.RequestApproved
	req.AllocatedUsername = &username
	req.AllocatedPassword = &hashedPassword
	req.ReviewedBy = &reviewerID
	return nil
}

func (f *fakeRequests) MarkRejected(_ context.Context, id, reviewerID int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.byID[id]
	if !ok || req.Status != models.RequestPending {
		return apperrors.ErrRequestAlreadyReviewed
	}
	req.Status = models.RequestRejected
	req.RejectionReason = &reason
	req.ReviewedBy = &reviewerID
	return nil
}

func (f *fakeRequests) RevertApproval(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.byID[id]
	if !ok || req.Status != models.RequestApproved {
		return apperrors.ErrRequestNotFound
	}
	req.Status = models.RequestPending
	req.AllocatedUsername = nil
	req.AllocatedPassword = nil
	req.ReviewedBy = nil
	req.ReviewedAt = nil
	return nil
}

func (f *fakeRequests) CountByStatus(_ context.Context, status models.RequestStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, req := range f.byID {
		if req.Status == status {
			count++
		}
	}
	return count, nil
}

type fakePool struct {
	mu       sync.Mutex
	accounts map[string]*models.TeacherAccount
}

func newFakePool(size int) *fakePool {
	pool := &fakePool{accounts: map[string]*models.TeacherAccount{}}
	for i := 1; i <= size; i++ {
		username := fmt.Sprintf("TEACH%04d", i)
		pool.accounts[username] = &models.TeacherAccount{
			ID:       int64(i),
			Username: username,
			Password: "hashed-" + username,
		}
	}
	return pool
}

func (f *fakePool) ClaimNextAvailable(_ context.Context, userID int64) (*models.TeacherAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	available := []string{}
	for username, acc := range f.accounts {
		if !acc.Allocated {
			available = append(available, username)
		}
	}
	if len(available) == 0 {
		return nil, apperrors.ErrPoolExhausted
	}
	sort.Strings(available)
	acc := f.accounts[available[0]]
	acc.Allocated = true
	acc.AllocatedTo = &userID
	out := *acc
	return &out, nil
}

func (f *fakePool) Release(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[username]
	if !ok || !acc.Allocated {
		return apperrors.ErrAccountNotAllocated
	}
	acc.Allocated = false
	acc.AllocatedTo = nil
	acc.AllocatedAt = nil
	return nil
}

func (f *fakePool) GetByUsername(_ context.Context, username string) (*models.TeacherAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[username]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	out := *acc
	return &out, nil
}

func (f *fakePool) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.accounts)), nil
}

func (f *fakePool) CountAllocated(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, acc := range f.accounts {
		if acc.Allocated {
			count++
		}
	}
	return count, nil
}

type fakeUsers struct {
	mu   sync.Mutex
	byID map[int64]*models.User

	promoteErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*models.User{}}
}

func (f *fakeUsers) add(user *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[user.ID] = user
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (f *fakeUsers) PromoteToTeacher(_ context.Context, id int64, accountUsername string) error {
	if f.promoteErr != nil {
		return f.promoteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Role = models.RoleTeacher
	user.IsApproved = true
	user.AllocatedTeacherAccount = &accountUsername
	return nil
}

func (f *fakeUsers) RevertTeacherPromotion(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Role = models.RoleStudent
	user.IsApproved = false
	user.AllocatedTeacherAccount = nil
	return nil
}

type teacherFixture struct {
	svc      TeacherService
	requests *fakeRequests
	pool     *fakePool
	users    *fakeUsers
}

func newTeacherFixture(poolSize int) *teacherFixture {
	requests := newFakeRequests()
	pool := newFakePool(poolSize)
	users := newFakeUsers()
	return &teacherFixture{
		svc:      NewTeacherService(requests, pool, users),
		requests: requests,
		pool:     pool,
		users:    users,
	}
}

func (fx *teacherFixture) addStudent(id int64) {
	fx.users.add(&models.User{ID: id, Role: models.RoleStudent})
}

func (fx *teacherFixture) addPendingRequest(t *testing.T, teacherID int64) *models.TeacherRequest {
	t.Helper()
	fx.addStudent(teacherID)
	req, err := fx.svc.CreateRequest(context.Background(), teacherID, "I would like to teach")
	require.NoError(t, err)
	return req
}

func TestCreateRequest(t *testing.T) {
	fx := newTeacherFixture(1)
	fx.addStudent(1)

	req, err := fx.svc.CreateRequest(context.Background(), 1, "  I would like to teach  ")
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, "I would like to teach", req.Message)
}

func TestCreateRequestRejectsNonStudents(t *testing.T) {
	fx := newTeacherFixture(1)
	fx.users.add(&models.User{ID: 1, Role: models.RoleTeacher})

	_, err := fx.svc.CreateRequest(context.Background(), 1, "again please")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreateRequestDuplicatePending(t *testing.T) {
	fx := newTeacherFixture(1)
	fx.addPendingRequest(t, 1)

	_, err := fx.svc.CreateRequest(context.Background(), 1, "second application")
	assert.ErrorIs(t, err, apperrors.ErrDuplicatePendingRequest)
}

func TestApproveRequestAllocatesLowestAvailableAccount(t *testing.T) {
	fx := newTeacherFixture(3)
	first := fx.addPendingRequest(t, 1)
	second := fx.addPendingRequest(t, 2)

	approved, err := fx.svc.ApproveRequest(context.Background(), first.ID, 99)
	require.NoError(t, err)
	require.NotNil(t, approved.AllocatedUsername)
	assert.Equal(t, "TEACH0001", *approved.AllocatedUsername)
	assert.Equal(t, models.RequestApproved, approved.Status)

	approved, err = fx.svc.ApproveRequest(context.Background(), second.ID, 99)
	require.NoError(t, err)
	require.NotNil(t, approved.AllocatedUsername)
	assert.Equal(t, "TEACH0002", *approved.AllocatedUsername)
}

func TestApproveRequestPromotesUser(t *testing.T) {
	fx := newTeacherFixture(1)
	req := fx.addPendingRequest(t, 1)

	_, err := fx.svc.ApproveRequest(context.Background(), req.ID, 99)
	require.NoError(t, err)

	user, err := fx.users.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.True(t, user.IsApproved)
	require.NotNil(t, user.AllocatedTeacherAccount)
	assert.Equal(t, "TEACH0001", *user.AllocatedTeacherAccount)
}

func TestApproveRequestPoolExhausted(t *testing.T) {
	fx := newTeacherFixture(1)
	first := fx.addPendingRequest(t, 1)
	second := fx.addPendingRequest(t, 2)

	_, err := fx.svc.ApproveRequest(context.Background(), first.ID, 99)
	require.NoError(t, err)

	_, err = fx.svc.ApproveRequest(context.Background(), second.ID, 99)
	assert.ErrorIs(t, err, apperrors.ErrPoolExhausted)

	// The losing request stays pending and can be decided later.
	req, getErr := fx.requests.GetByID(context.Background(), second.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.RequestPending, req.Status)
}

func TestApproveRequestAlreadyReviewed(t *testing.T) {
	fx := newTeacherFixture(2)
	req := fx.addPendingRequest(t, 1)

	_, err := fx.svc.ApproveRequest(context.Background(), req.ID, 99)
	require.NoError(t, err)

	_, err = fx.svc.ApproveRequest(context.Background(), req.ID, 99)
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyReviewed)

	// The second attempt must not consume another account.
	allocated, countErr := fx.pool.CountAllocated(context.Background())
	require.NoError(t, countErr)
	assert.Equal(t, int64(1), allocated)
}

func TestApproveRequestReleasesAccountOnMarkConflict(t *testing.T) {
	fx := newTeacherFixture(1)
	req := fx.addPendingRequest(t, 1)
	fx.requests.markApprovedErr = apperrors.ErrRequestAlreadyReviewed

	_, err := fx.svc.ApproveRequest(context.Background(), req.ID, 99)
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyReviewed)

	allocated, countErr := fx.pool.CountAllocated(context.Background())
	require.NoError(t, countErr)
	assert.Equal(t, int64(0), allocated)
}

func TestApproveRequestCompensatesOnPromotionFailure(t *testing.T) {
	fx := newTeacherFixture(1)
	req := fx.addPendingRequest(t, 1)
	fx.users.promoteErr = errors.New("users table unavailable")

	_, err := fx.svc.ApproveRequest(context.Background(), req.ID, 99)
	require.Error(t, err)

	// Both earlier writes are rolled back.
	stored, getErr := fx.requests.GetByID(context.Background(), req.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.RequestPending, stored.Status)
	assert.Nil(t, stored.AllocatedUsername)

	allocated, countErr := fx.pool.CountAllocated(context.Background())
	require.NoError(t, countErr)
	assert.Equal(t, int64(0), allocated)
}

func TestApproveRequestConcurrentApprovalsGetDistinctAccounts(t *testing.T) {
	const workers = 20

	fx := newTeacherFixture(workers)
	ids := make([]int64, 0, workers)
	for i := 1; i <= workers; i++ {
		req := fx.addPendingRequest(t, int64(i))
		ids = append(ids, req.ID)
	}

	results := make(chan string, workers)
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(requestID int64) {
			defer wg.Done()
			approved, err := fx.svc.ApproveRequest(context.Background(), requestID, 99)
			if err != nil {
				results <- ""
				return
			}
			results <- *approved.AllocatedUsername
		}(id)
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for username := range results {
		require.NotEmpty(t, username, "every approval should obtain an account")
		assert.False(t, seen[username], "account %s allocated twice", username)
		seen[username] = true
	}
	assert.Len(t, seen, workers)
}

func TestRejectRequest(t *testing.T) {
	fx := newTeacherFixture(1)
	req := fx.addPendingRequest(t, 1)

	rejected, err := fx.svc.RejectRequest(context.Background(), req.ID, 99, "insufficient experience")
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "insufficient experience", *rejected.RejectionReason)

	// Rejection never touches the pool.
	allocated, countErr := fx.pool.CountAllocated(context.Background())
	require.NoError(t, countErr)
	assert.Equal(t, int64(0), allocated)
}

func TestRejectRequestRequiresReason(t *testing.T) {
	fx := newTeacherFixture(1)
	req := fx.addPendingRequest(t, 1)

	_, err := fx.svc.RejectRequest(context.Background(), req.ID, 99, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRejectRequestAlreadyReviewed(t *testing.T) {
	fx := newTeacherFixture(1)
	req := fx.addPendingRequest(t, 1)

	_, err := fx.svc.RejectRequest(context.Background(), req.ID, 99, "no")
	require.NoError(t, err)

	_, err = fx.svc.RejectRequest(context.Background(), req.ID, 99, "still no")
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyReviewed)
}

func TestReleaseAccount(t *testing.T) {
	fx := newTeacherFixture(1)
	req := fx.addPendingRequest(t, 1)

	_, err := fx.svc.ApproveRequest(context.Background(), req.ID, 99)
	require.NoError(t, err)

	err = fx.svc.ReleaseAccount(context.Background(), "TEACH0001")
	require.NoError(t, err)

	account, err := fx.pool.GetByUsername(context.Background(), "TEACH0001")
	require.NoError(t, err)
	assert.False(t, account.Allocated)

	// The former holder is demoted back to student.
	user, err := fx.users.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Nil(t, user.AllocatedTeacherAccount)
}

func TestReleaseAccountNotAllocated(t *testing.T) {
	fx := newTeacherFixture(1)

	err := fx.svc.ReleaseAccount(context.Background(), "TEACH0001")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotAllocated)
}

func TestReleaseAccountUnknownUsername(t *testing.T) {
	fx := newTeacherFixture(1)

	err := fx.svc.ReleaseAccount(context.Background(), "TEACH9999")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestPoolStatus(t *testing.T) {
	fx := newTeacherFixture(4)
	req := fx.addPendingRequest(t, 1)

	_, err := fx.svc.ApproveRequest(context.Background(), req.ID, 99)
	require.NoError(t, err)

	status, err := fx.svc.PoolStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), status.Total)
	assert.Equal(t, int64(1), status.Allocated)
	assert.Equal(t, int64(3), status.Available)
	assert.InDelta(t, 25.0, status.UsagePercent, 1e-9)
}

func TestGetMyRequestNotFound(t *testing.T) {
	fx := newTeacherFixture(1)

	_, err := fx.svc.GetMyRequest(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}
