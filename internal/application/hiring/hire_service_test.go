package hiring

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/catalog"
	"github.com/hirehub/backend/internal/domain/hiring"
	"github.com/hirehub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStore is a mock implementation of hiring.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) HasActive(ctx context.Context, userID, employeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, employeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, hire *hiring.Hire) error {
	args := m.Called(ctx, hire)
	return args.Error(0)
}

func (m *MockStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]hiring.Hire, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hiring.Hire), args.Error(1)
}

func (m *MockStore) FindActive(ctx context.Context, userID, employeeID uuid.UUID) (*hiring.Hire, error) {
	args := m.Called(ctx, userID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hiring.Hire), args.Error(1)
}

// MockHoldingsCache is a mock implementation of hiring.HoldingsCache
type MockHoldingsCache struct {
	mock.Mock
}

func (m *MockHoldingsCache) Get(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockHoldingsCache) Populate(ctx context.Context, userID uuid.UUID, entryIDs []uuid.UUID) error {
	args := m.Called(ctx, userID, entryIDs)
	return args.Error(0)
}

func (m *MockHoldingsCache) MarkHired(ctx context.Context, userID, employeeID uuid.UUID) error {
	args := m.Called(ctx, userID, employeeID)
	return args.Error(0)
}

func (m *MockHoldingsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEmployeeRepository is a mock implementation of catalog.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByCode(ctx context.Context, code string) (*catalog.Employee, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListActive(ctx context.Context) ([]catalog.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Employee, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *catalog.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type hireFixture struct {
	store    *MockStore
	cache    *MockHoldingsCache
	repo     *MockEmployeeRepository
	bus      *MockEventPublisher
	service  *HireService
	user     uuid.UUID
	employee *catalog.Employee
}

func newHireFixture(t *testing.T) *hireFixture {
	t.Helper()
	e, err := catalog.NewEmployee("EMP-DEV-001", "Ada", "Backend Engineer", catalog.CategoryDev, 4900)
	require.NoError(t, err)
	e.ClearDomainEvents()

	f := &hireFixture{
		store:    new(MockStore),
		cache:    new(MockHoldingsCache),
		repo:     new(MockEmployeeRepository),
		bus:      new(MockEventPublisher),
		user:     uuid.New(),
		employee: e,
	}
	f.service = NewHireService(f.store, f.cache, f.repo, f.bus, zap.NewNop())
	return f
}

func TestHireService_Hire_FirstTime(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	f.repo.On("FindByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.cache.On("Get", mock.Anything, f.user).Return(nil, false, nil)
	f.store.On("ListActiveByUser", mock.Anything, f.user).Return([]hiring.Hire{}, nil)
	f.cache.On("Populate", mock.Anything, f.user, []uuid.UUID{}).Return(nil)
	f.store.On("Create", mock.Anything, mock.AnythingOfType("*hiring.Hire")).Return(nil)
	f.cache.On("MarkHired", mock.Anything, f.user, f.employee.ID).Return(nil)
	f.bus.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Hire(ctx, f.user, f.employee.ID)

	require.NoError(t, err)
	assert.Equal(t, hiring.StatusHired, result.Status)
	require.NotNil(t, result.Record)
	assert.Equal(t, f.user, result.Record.UserID)
	assert.Equal(t, f.employee.ID, result.Record.EmployeeID)
	f.store.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.bus.AssertExpectations(t)
}

func TestHireService_Hire_RepeatFromCache(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	existing, err := hiring.NewHire(f.user, f.employee.ID)
	require.NoError(t, err)

	f.repo.On("FindByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.cache.On("Get", mock.Anything, f.user).Return([]uuid.UUID{f.employee.ID}, true, nil)
	f.store.On("FindActive", mock.Anything, f.user, f.employee.ID).Return(existing, nil)

	result, err := f.service.Hire(ctx, f.user, f.employee.ID)

	require.NoError(t, err)
	assert.Equal(t, hiring.StatusAlreadyHired, result.Status)
	assert.Equal(t, existing, result.Record)
	f.store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHireService_Hire_RaceCollapsesToAlreadyHired(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	existing, err := hiring.NewHire(f.user, f.employee.ID)
	require.NoError(t, err)

	f.repo.On("FindByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.cache.On("Get", mock.Anything, f.user).Return([]uuid.UUID{}, true, nil)
	f.store.On("Create", mock.Anything, mock.AnythingOfType("*hiring.Hire")).Return(hiring.ErrDuplicateHire)
	f.cache.On("MarkHired", mock.Anything, f.user, f.employee.ID).Return(nil)
	f.store.On("FindActive", mock.Anything, f.user, f.employee.ID).Return(existing, nil)

	result, err := f.service.Hire(ctx, f.user, f.employee.ID)

	require.NoError(t, err)
	assert.Equal(t, hiring.StatusAlreadyHired, result.Status)
	f.bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHireService_Hire_StoreFailureLeavesCacheUntouched(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	f.repo.On("FindByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.cache.On("Get", mock.Anything, f.user).Return([]uuid.UUID{}, true, nil)
	f.store.On("Create", mock.Anything, mock.AnythingOfType("*hiring.Hire")).Return(hiring.ErrStoreUnavailable)

	_, err := f.service.Hire(ctx, f.user, f.employee.ID)

	assert.ErrorIs(t, err, hiring.ErrStoreUnavailable)
	f.cache.AssertNotCalled(t, "MarkHired", mock.Anything, mock.Anything, mock.Anything)
	f.bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHireService_Hire_NotProvisionedPropagates(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	f.repo.On("FindByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.cache.On("Get", mock.Anything, f.user).Return([]uuid.UUID{}, true, nil)
	f.store.On("Create", mock.Anything, mock.AnythingOfType("*hiring.Hire")).Return(hiring.ErrStoreNotProvisioned)

	_, err := f.service.Hire(ctx, f.user, f.employee.ID)

	assert.ErrorIs(t, err, hiring.ErrStoreNotProvisioned)
}

func TestHireService_Hire_UncertainLookupProceedsToWrite(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	f.repo.On("FindByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.cache.On("Get", mock.Anything, f.user).Return(nil, false, nil)
	f.store.On("ListActiveByUser", mock.Anything, f.user).Return(nil, hiring.ErrLookupFailed)
	f.store.On("Create", mock.Anything, mock.AnythingOfType("*hiring.Hire")).Return(nil)
	f.cache.On("MarkHired", mock.Anything, f.user, f.employee.ID).Return(nil)
	f.bus.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Hire(ctx, f.user, f.employee.ID)

	require.NoError(t, err)
	assert.Equal(t, hiring.StatusHired, result.Status)
}

func TestHireService_Hire_CacheFailureFallsBackToStore(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	f.repo.On("FindByID", mock.Anything, f.employee.ID).Return(f.employee, nil)
	f.cache.On("Get", mock.Anything, f.user).Return(nil, false, assert.AnError)
	f.store.On("ListActiveByUser", mock.Anything, f.user).Return([]hiring.Hire{}, nil)
	f.cache.On("Populate", mock.Anything, f.user, []uuid.UUID{}).Return(nil)
	f.store.On("Create", mock.Anything, mock.AnythingOfType("*hiring.Hire")).Return(nil)
	f.cache.On("MarkHired", mock.Anything, f.user, f.employee.ID).Return(nil)
	f.bus.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Hire(ctx, f.user, f.employee.ID)

	require.NoError(t, err)
	assert.Equal(t, hiring.StatusHired, result.Status)
	f.store.AssertExpectations(t)
}

func TestHireService_Hire_UnknownEmployee(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	id := uuid.New()
	f.repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := f.service.Hire(ctx, f.user, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHireService_Hire_RetiredEmployee(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	require.NoError(t, f.employee.Retire())
	f.repo.On("FindByID", mock.Anything, f.employee.ID).Return(f.employee, nil)

	_, err := f.service.Hire(ctx, f.user, f.employee.ID)

	assert.ErrorIs(t, err, hiring.ErrEmployeeRetired)
	f.store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHireService_HasHired_CacheHit(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	f.cache.On("Get", ctx, f.user).Return([]uuid.UUID{f.employee.ID}, true, nil)

	held, err := f.service.HasHired(ctx, f.user, f.employee.ID)

	require.NoError(t, err)
	assert.True(t, held)
	f.store.AssertNotCalled(t, "ListActiveByUser", mock.Anything, mock.Anything)
}

func TestHireService_HasHired_MissRebuildsFromStore(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	hire, err := hiring.NewHire(f.user, f.employee.ID)
	require.NoError(t, err)

	f.cache.On("Get", ctx, f.user).Return(nil, false, nil)
	f.store.On("ListActiveByUser", ctx, f.user).Return([]hiring.Hire{*hire}, nil)
	f.cache.On("Populate", ctx, f.user, []uuid.UUID{f.employee.ID}).Return(nil)

	held, err := f.service.HasHired(ctx, f.user, f.employee.ID)

	require.NoError(t, err)
	assert.True(t, held)
	f.cache.AssertExpectations(t)
}

func TestHireService_HasHired_EmptyPopulatedCacheIsAuthoritative(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	f.cache.On("Get", ctx, f.user).Return([]uuid.UUID{}, true, nil)

	held, err := f.service.HasHired(ctx, f.user, f.employee.ID)

	require.NoError(t, err)
	assert.False(t, held)
	f.store.AssertNotCalled(t, "ListActiveByUser", mock.Anything, mock.Anything)
}

func TestHireService_HasHired_LookupFailureIsAnError(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	f.cache.On("Get", ctx, f.user).Return(nil, false, nil)
	f.store.On("ListActiveByUser", ctx, f.user).Return(nil, hiring.ErrLookupFailed)

	_, err := f.service.HasHired(ctx, f.user, f.employee.ID)

	assert.ErrorIs(t, err, hiring.ErrLookupFailed)
}

func TestHireService_ListHires_JoinsEmployeeData(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	hire, err := hiring.NewHire(f.user, f.employee.ID)
	require.NoError(t, err)

	f.store.On("ListActiveByUser", ctx, f.user).Return([]hiring.Hire{*hire}, nil)
	f.repo.On("FindByIDs", ctx, []uuid.UUID{f.employee.ID}).Return([]catalog.Employee{*f.employee}, nil)

	roster, err := f.service.ListHires(ctx, f.user)

	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Ada", roster[0].DisplayName)
	assert.Equal(t, "EMP-DEV-001", roster[0].Code)
	assert.Equal(t, hire.HiredAt, roster[0].HiredAt)
}

func TestHireService_ListHires_Empty(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	f.store.On("ListActiveByUser", ctx, f.user).Return([]hiring.Hire{}, nil)

	roster, err := f.service.ListHires(ctx, f.user)

	require.NoError(t, err)
	assert.Empty(t, roster)
	f.repo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestHireService_InvalidateSession(t *testing.T) {
	f := newHireFixture(t)
	ctx := context.Background()

	f.cache.On("Invalidate", ctx, f.user).Return(nil)

	require.NoError(t, f.service.InvalidateSession(ctx, f.user))
	f.cache.AssertExpectations(t)
}
