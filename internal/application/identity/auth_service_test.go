package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/identity"
	"github.com/hirehub/backend/internal/domain/shared"
	"github.com/hirehub/backend/internal/infrastructure/auth"
	"github.com/hirehub/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func newTestAuthService(repo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "hirehub-test",
		MaxRefreshCount:        10,
	})
	return NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), DefaultAuthServiceConfig(), zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	ctx := context.Background()

	mockRepo.On("ExistsByUsername", ctx, "alice").Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	resp, err := service.Register(ctx, RegisterInput{
		Username: "alice",
		Password: "sup3rsecret",
		Email:    "alice@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	ctx := context.Background()

	mockRepo.On("ExistsByUsername", ctx, "alice").Return(true, nil)

	_, err := service.Register(ctx, RegisterInput{Username: "alice", Password: "sup3rsecret"})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	ctx := context.Background()

	user, err := identity.NewUser("alice", "sup3rsecret")
	require.NoError(t, err)

	mockRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	mockRepo.On("Save", ctx, user).Return(nil)

	result, err := service.Login(ctx, LoginInput{Username: "alice", Password: "sup3rsecret", IP: "192.0.2.1"})

	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, "192.0.2.1", user.LastLoginIP)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	ctx := context.Background()

	user, err := identity.NewUser("alice", "sup3rsecret")
	require.NoError(t, err)

	mockRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	mockRepo.On("Save", ctx, user).Return(nil)

	_, err = service.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestAuthService_Login_UnknownUserGetsSameError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	ctx := context.Background()

	mockRepo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

	_, err := service.Login(ctx, LoginInput{Username: "ghost", Password: "whatever1"})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_LocksAfterMaxAttempts(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	ctx := context.Background()

	user, err := identity.NewUser("alice", "sup3rsecret")
	require.NoError(t, err)

	mockRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	mockRepo.On("Save", ctx, user).Return(nil)

	for i := 0; i < 4; i++ {
		_, err = service.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
		require.Error(t, err)
	}

	_, err = service.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)

	// Correct password is refused while the lock holds
	_, err = service.Login(ctx, LoginInput{Username: "alice", Password: "sup3rsecret"})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	ctx := context.Background()

	user, err := identity.NewUser("alice", "sup3rsecret")
	require.NoError(t, err)

	mockRepo.On("FindByUsername", ctx, "alice").Return(user, nil)
	mockRepo.On("Save", ctx, user).Return(nil)

	result, err := service.Login(ctx, LoginInput{Username: "alice", Password: "sup3rsecret"})
	require.NoError(t, err)

	pair, err := service.Refresh(ctx, result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	require.NoError(t, service.Logout(ctx, result.Tokens.AccessToken, pair.RefreshToken))

	_, err = service.Refresh(ctx, pair.RefreshToken)
	assert.Error(t, err, "a revoked refresh token cannot be used again")
}

func TestAuthService_ChangePassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestAuthService(mockRepo)
	ctx := context.Background()

	user, err := identity.NewUser("alice", "oldpass1")
	require.NoError(t, err)

	mockRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mockRepo.On("Save", ctx, user).Return(nil)

	require.NoError(t, service.ChangePassword(ctx, user.ID, "oldpass1", "newpass1"))
	assert.True(t, user.VerifyPassword("newpass1"))

	err = service.ChangePassword(ctx, user.ID, "oldpass1", "another1")
	assert.Error(t, err)
}
