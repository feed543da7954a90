package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/mocks"
)

type authDeps struct {
	userRepo    *mocks.MockUserRepository
	sessionRepo *mocks.MockSessionRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	otpSvc      *mocks.MockOTPService
	publisher   *mocks.MockEventPublisher
}

func newAuthDeps() *authDeps {
	return &authDeps{
		userRepo:    mocks.NewMockUserRepository(),
		sessionRepo: mocks.NewMockSessionRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		otpSvc:      mocks.NewMockOTPService(),
		publisher:   mocks.NewMockEventPublisher(),
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T, d *authDeps) domain.AuthService {
	t.Helper()

	return NewAuthService(d.userRepo, d.sessionRepo, d.passwordSvc, d.tokenSvc, d.otpSvc, d.publisher, zap.NewNop(), AuthConfig{
		AccessTTL:  15 * time.Minute,
		SessionTTL: 24 * time.Hour,
	})
}

// setupTestRedis starts an in-memory Redis server for the test
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Email:        "test@example.com",
		Name:         "Test User",
		Phone:        "+5511912345678",
		PasswordHash: "hashed_password123",
		UserType:     domain.UserTypeClient,
		IsActive:     true,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createInactiveUser creates an inactive user entity for testing
func createInactiveUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.IsActive = false
	return user
}

// createProfessional creates an active professional for testing
func createProfessional(t *testing.T, id uint) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.ID = id
	user.Email = "pro@example.com"
	user.Name = "Ana Souza"
	user.UserType = domain.UserTypeProfessional
	return user
}

// createValidSession creates a live session for testing
func createValidSession(t *testing.T, userID uint) *domain.Session {
	t.Helper()

	return &domain.Session{
		ID:        "session_123",
		UserID:    userID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now().Add(-1 * time.Hour),
	}
}

// createValidTokenClaims creates token claims for testing
func createValidTokenClaims(t *testing.T, userID uint, role string, sessionID string) *domain.TokenClaims {
	t.Helper()

	now := time.Now()
	return &domain.TokenClaims{
		UserID:    userID,
		Role:      role,
		SessionID: sessionID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(15 * time.Minute).Unix(),
	}
}

// assertAuthResult checks the common fields of a successful auth result
func assertAuthResult(t *testing.T, result *domain.AuthResult, expectedUser *domain.User) {
	t.Helper()

	require.NotNil(t, result)
	require.NotNil(t, result.User)
	assert.Equal(t, expectedUser.ID, result.User.ID)
	assert.Equal(t, expectedUser.Email, result.User.Email)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, int64(15*60), result.ExpiresIn)
}

// setupSuccessfulLoginMocks sets up mocks for a successful login flow
func setupSuccessfulLoginMocks(t *testing.T, d *authDeps, user *domain.User) {
	t.Helper()

	d.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if email == user.Email {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}
	d.passwordSvc.VerifyFunc = func(hashedPassword, password string) bool {
		return hashedPassword == user.PasswordHash && password == "password123"
	}
}

func ptr[T any](v T) *T { return &v }
