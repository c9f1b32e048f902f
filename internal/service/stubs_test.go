package service

import (
	"context"
	"errors"
	"testing"

	"tinfoil/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// theoryRepoStub is a stub for repository.TheoryRepository.
type theoryRepoStub struct {
	createFn          func(context.Context, *models.Theory, []uint) error
	getByIDFn         func(context.Context, uint) (*models.Theory, error)
	listFn            func(context.Context, int, int) ([]*models.Theory, error)
	getByUserIDFn     func(context.Context, uint, int, int) ([]*models.Theory, error)
	updateFn          func(context.Context, *models.Theory, []uint) error
	deleteFn          func(context.Context, uint) error
	incrementLikesFn  func(context.Context, uint, int) error
	incrementSharesFn func(context.Context, uint, int) error
}

func (s *theoryRepoStub) Create(ctx context.Context, theory *models.Theory, tagIDs []uint) error {
	return s.createFn(ctx, theory, tagIDs)
}
func (s *theoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Theory, error) {
	return s.getByIDFn(ctx, id)
}
func (s *theoryRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Theory, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *theoryRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Theory, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *theoryRepoStub) Update(ctx context.Context, theory *models.Theory, tagIDs []uint) error {
	return s.updateFn(ctx, theory, tagIDs)
}
func (s *theoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *theoryRepoStub) IncrementLikes(ctx context.Context, id uint, delta int) error {
	return s.incrementLikesFn(ctx, id, delta)
}
func (s *theoryRepoStub) IncrementShares(ctx context.Context, id uint, delta int) error {
	return s.incrementSharesFn(ctx, id, delta)
}

func noopTheoryRepo() *theoryRepoStub {
	return &theoryRepoStub{
		createFn: func(_ context.Context, th *models.Theory, _ []uint) error {
			th.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Theory, error) {
			return &models.Theory{ID: id, Tags: []models.Tag{}}, nil
		},
		listFn:            func(_ context.Context, _, _ int) ([]*models.Theory, error) { return nil, nil },
		getByUserIDFn:     func(_ context.Context, _ uint, _, _ int) ([]*models.Theory, error) { return nil, nil },
		updateFn:          func(_ context.Context, _ *models.Theory, _ []uint) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		incrementLikesFn:  func(_ context.Context, _ uint, _ int) error { return nil },
		incrementSharesFn: func(_ context.Context, _ uint, _ int) error { return nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	getByIDFn     func(context.Context, uint) (*models.Tag, error)
	getByNameFn   func(context.Context, string) (*models.Tag, error)
	getOrCreateFn func(context.Context, string) (*models.Tag, error)
	createFn      func(context.Context, *models.Tag) error
	deleteFn      func(context.Context, uint) error
	listFn        func(context.Context) ([]models.Tag, error)
}

func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return s.getByNameFn(ctx, name)
}
func (s *tagRepoStub) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	return s.getOrCreateFn(ctx, name)
}
func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error {
	return s.createFn(ctx, tag)
}
func (s *tagRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error) {
	return s.listFn(ctx)
}

// sequentialTagRepo assigns each distinct name the next ID, remembering
// earlier assignments, which mirrors find-or-create against real storage.
func sequentialTagRepo() *tagRepoStub {
	byName := make(map[string]uint)
	var next uint
	return &tagRepoStub{
		getOrCreateFn: func(_ context.Context, name string) (*models.Tag, error) {
			id, ok := byName[name]
			if !ok {
				next++
				id = next
				byName[name] = id
			}
			return &models.Tag{ID: id, Name: name}, nil
		},
		getByNameFn: func(_ context.Context, name string) (*models.Tag, error) {
			if id, ok := byName[name]; ok {
				return &models.Tag{ID: id, Name: name}, nil
			}
			return nil, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		createFn:  func(_ context.Context, _ *models.Tag) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		listFn:    func(_ context.Context) ([]models.Tag, error) { return nil, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	createFn          func(context.Context, uint, uint) (bool, error)
	deleteFn          func(context.Context, uint, uint) (bool, error)
	existsFn          func(context.Context, uint, uint) (bool, error)
	getByTheoryIDFn   func(context.Context, uint, int, int) ([]*models.Like, error)
	getByUserIDFn     func(context.Context, uint, int, int) ([]*models.Like, error)
	countByTheoryIDFn func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) Create(ctx context.Context, userID, theoryID uint) (bool, error) {
	return s.createFn(ctx, userID, theoryID)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, theoryID uint) (bool, error) {
	return s.deleteFn(ctx, userID, theoryID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID, theoryID uint) (bool, error) {
	return s.existsFn(ctx, userID, theoryID)
}
func (s *likeRepoStub) GetByTheoryID(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Like, error) {
	return s.getByTheoryIDFn(ctx, theoryID, limit, offset)
}
func (s *likeRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *likeRepoStub) CountByTheoryID(ctx context.Context, theoryID uint) (int64, error) {
	return s.countByTheoryIDFn(ctx, theoryID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn:          func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		deleteFn:          func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn:          func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		getByTheoryIDFn:   func(_ context.Context, _ uint, _, _ int) ([]*models.Like, error) { return nil, nil },
		getByUserIDFn:     func(_ context.Context, _ uint, _, _ int) ([]*models.Like, error) { return nil, nil },
		countByTheoryIDFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// shareRepoStub is a stub for repository.ShareRepository.
type shareRepoStub struct {
	createFn        func(context.Context, *models.Share) error
	getByIDFn       func(context.Context, uint) (*models.Share, error)
	getByTheoryIDFn func(context.Context, uint, int, int) ([]*models.Share, error)
	getByUserIDFn   func(context.Context, uint, int, int) ([]*models.Share, error)
	deleteFn        func(context.Context, uint) error
}

func (s *shareRepoStub) Create(ctx context.Context, share *models.Share) error {
	return s.createFn(ctx, share)
}
func (s *shareRepoStub) GetByID(ctx context.Context, id uint) (*models.Share, error) {
	return s.getByIDFn(ctx, id)
}
func (s *shareRepoStub) GetByTheoryID(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Share, error) {
	return s.getByTheoryIDFn(ctx, theoryID, limit, offset)
}
func (s *shareRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Share, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *shareRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopShareRepo() *shareRepoStub {
	return &shareRepoStub{
		createFn:        func(_ context.Context, sh *models.Share) error { sh.ID = 1; return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Share, error) { return &models.Share{ID: id}, nil },
		getByTheoryIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Share, error) { return nil, nil },
		getByUserIDFn:   func(_ context.Context, _ uint, _, _ int) ([]*models.Share, error) { return nil, nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	getByTheoryIDFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	getByUserIDFn   func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteFn        func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByTheoryID(ctx context.Context, theoryID uint, limit, offset int) ([]*models.Comment, error) {
	return s.getByTheoryIDFn(ctx, theoryID, limit, offset)
}
func (s *commentRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(_ context.Context, c *models.Comment) error { c.ID = 1; return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		getByTheoryIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		getByUserIDFn:   func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// activityRepoStub is a stub for repository.ActivityLogRepository.
type activityRepoStub struct {
	entries       []*models.ActivityLog
	createFn      func(context.Context, *models.ActivityLog) error
	listFn        func(context.Context, int, int) ([]*models.ActivityLog, error)
	getByUserIDFn func(context.Context, uint, int, int) ([]*models.ActivityLog, error)
}

func (s *activityRepoStub) Create(ctx context.Context, entry *models.ActivityLog) error {
	if s.createFn != nil {
		return s.createFn(ctx, entry)
	}
	s.entries = append(s.entries, entry)
	return nil
}
func (s *activityRepoStub) List(ctx context.Context, limit, offset int) ([]*models.ActivityLog, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return s.entries, nil
}
func (s *activityRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.ActivityLog, error) {
	if s.getByUserIDFn != nil {
		return s.getByUserIDFn(ctx, userID, limit, offset)
	}
	var out []*models.ActivityLog
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// generatedRepoStub is a stub for repository.GeneratedTheoryRepository.
type generatedRepoStub struct {
	entries []*models.GeneratedTheory
	err     error
}

func (s *generatedRepoStub) Create(_ context.Context, entry *models.GeneratedTheory) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}
func (s *generatedRepoStub) List(_ context.Context, _, _ int) ([]*models.GeneratedTheory, error) {
	return s.entries, s.err
}
func (s *generatedRepoStub) GetByUserID(_ context.Context, userID uint, _, _ int) ([]*models.GeneratedTheory, error) {
	var out []*models.GeneratedTheory
	for _, e := range s.entries {
		if e.UserID != nil && *e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, s.err
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}
