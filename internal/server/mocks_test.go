package server

import (
	"context"

	"tinfoil/internal/config"
	"tinfoil/internal/generator"
	"tinfoil/internal/models"
	"tinfoil/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockTheoryRepository is a mock of the TheoryRepository interface
type MockTheoryRepository struct {
	mock.Mock
}

func (m *MockTheoryRepository) Create(ctx context.Context, theory *models.Theory, tagIDs []uint) error {
	args := m.Called(ctx, theory, tagIDs)
	return args.Error(0)
}

func (m *MockTheoryRepository) GetByID(ctx context.Context, id uint) (*models.Theory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Theory), args.Error(1)
}

func (m *MockTheoryRepository) List(ctx context.Context, limit, offset int) ([]*models.Theory, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Theory), args.Error(1)
}

func (m *MockTheoryRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Theory, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Theory), args.Error(1)
}

func (m *MockTheoryRepository) Update(ctx context.Context, theory *models.Theory, tagIDs []uint) error {
	args := m.Called(ctx, theory, tagIDs)
	return args.Error(0)
}

func (m *MockTheoryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTheoryRepository) IncrementLikes(ctx context.Context, id uint, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockTheoryRepository) IncrementShares(ctx context.Context, id uint, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockTagRepository is a mock of the TagRepository interface
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockGeneratedTheoryRepository is a mock of the GeneratedTheoryRepository interface
type MockGeneratedTheoryRepository struct {
	mock.Mock
}

func (m *MockGeneratedTheoryRepository) Create(ctx context.Context, entry *models.GeneratedTheory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockGeneratedTheoryRepository) List(ctx context.Context, limit, offset int) ([]*models.GeneratedTheory, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GeneratedTheory), args.Error(1)
}

func (m *MockGeneratedTheoryRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.GeneratedTheory, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GeneratedTheory), args.Error(1)
}

// MockActivityLogRepository is a mock of the ActivityLogRepository interface
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityLogRepository) List(ctx context.Context, limit, offset int) ([]*models.ActivityLog, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ActivityLog), args.Error(1)
}

func (m *MockActivityLogRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.ActivityLog, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ActivityLog), args.Error(1)
}

// testConfig returns a config suitable for handler tests.
func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		Env:       "test",
	}
}

// newTheoryTestServer wires a Server around mocked theory and tag storage.
func newTheoryTestServer(theories *MockTheoryRepository, tags *MockTagRepository) *Server {
	s := &Server{config: testConfig()}
	s.theoryService = service.NewTheoryService(theories, tags)
	s.generatorService = service.NewGeneratorService(generator.New(), &MockGeneratedTheoryRepository{})
	return s
}
