package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
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

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
	})
}

type authFixture struct {
	service   *AuthService
	users     *MockUserRepository
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:     new(MockUserRepository),
		jwt:       newTestJWTService(),
		blacklist: auth.NewInMemoryTokenBlacklist(),
	}
	f.service = NewAuthService(f.users, f.jwt, f.blacklist, zap.NewNop())
	return f
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("alice", "s3cretpass", "alice@example.com", "Alice", "Smith")
	require.NoError(t, err)
	return u
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("ExistsByUsername", ctx, "bob").Return(false, nil)
	f.users.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
		return u.Username == "bob" && u.PasswordHash != "" && u.PasswordHash != "password123" && !u.IsStaff
	})).Return(nil)

	result, err := f.service.Register(ctx, UserCreateRequest{Username: "bob", Password: "password123", FirstName: "Bob"})

	require.NoError(t, err)
	assert.Equal(t, "bob", result.Username)
	assert.Equal(t, "Bob", result.FirstName)
	f.users.AssertExpectations(t)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("ExistsByUsername", ctx, "bob").Return(true, nil)

	_, err := f.service.Register(ctx, UserCreateRequest{Username: "bob", Password: "password123"})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := newTestUser(t)
	user.PromoteToStaff()

	f.users.On("FindByUsername", ctx, "alice").Return(user, nil)
	f.users.On("Save", ctx, user).Return(nil)

	pair, err := f.service.Login(ctx, LoginRequest{Username: "alice", Password: "s3cretpass"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	claims, err := f.jwt.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.True(t, claims.IsStaff)
	assert.NotNil(t, user.LastLogin)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := newTestUser(t)

	f.users.On("FindByUsername", ctx, "alice").Return(user, nil)

	_, err := f.service.Login(ctx, LoginRequest{Username: "alice", Password: "wrongpass1"})

	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

	_, err := f.service.Login(ctx, LoginRequest{Username: "ghost", Password: "whatever1"})

	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := newTestUser(t)
	pair, err := f.jwt.GenerateTokenPair(auth.Subject{UserID: user.ID, Username: user.Username})
	require.NoError(t, err)

	f.users.On("FindByID", ctx, user.ID).Return(user, nil)

	next, err := f.service.Refresh(ctx, RefreshRequest{Refresh: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)

	_, err = f.service.Refresh(ctx, RefreshRequest{Refresh: pair.RefreshToken})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture()
	pair, err := f.jwt.GenerateTokenPair(auth.Subject{UserID: uuid.New(), Username: "x"})
	require.NoError(t, err)

	_, err = f.service.Refresh(context.Background(), RefreshRequest{Refresh: pair.AccessToken})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	userID := uuid.New()
	pair, err := f.jwt.GenerateTokenPair(auth.Subject{UserID: userID, Username: "carol"})
	require.NoError(t, err)
	access, err := f.jwt.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := f.jwt.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	err = f.service.Logout(ctx, LogoutInput{
		UserID:       userID,
		AccessJTI:    access.ID,
		AccessTTL:    access.GetRemainingTTL(),
		RefreshToken: pair.RefreshToken,
	})
	require.NoError(t, err)

	revoked, err := f.blacklist.IsBlacklisted(ctx, access.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = f.blacklist.IsBlacklisted(ctx, refresh.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_Logout_ForeignRefreshToken(t *testing.T) {
	f := newAuthFixture()
	pair, err := f.jwt.GenerateTokenPair(auth.Subject{UserID: uuid.New(), Username: "mallory"})
	require.NoError(t, err)

	err = f.service.Logout(context.Background(), LogoutInput{
		UserID:       uuid.New(),
		AccessJTI:    uuid.NewString(),
		AccessTTL:    time.Minute,
		RefreshToken: pair.RefreshToken,
	})

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestAuthService_Me(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := newTestUser(t)

	f.users.On("FindByID", ctx, user.ID).Return(user, nil)

	result, err := f.service.Me(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, UserResponse{ID: user.ID, Username: "alice", FirstName: "Alice", LastName: "Smith"}, *result)
}
