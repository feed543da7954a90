package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/mocks"
)

func setupAuthRouter(actor *domain.Actor, authSvc *mocks.MockAuthService, verification *mocks.MockVerificationUseCase) *gin.Engine {
	h := NewAuthHandlers(authSvc, verification)
	r := newTestRouter(actor)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", h.Me)
	r.POST("/auth/verification/send", h.SendVerification)
	r.POST("/auth/verification/verify", h.VerifyVerification)
	return r
}

func TestAuthHandlers_Register(t *testing.T) {
	validBody := map[string]interface{}{
		"email":    "ana@example.com",
		"name":     "Ana Souza",
		"password": "password123",
		"phone":    "(11) 91234-5678",
		"userType": "PROFESSIONAL",
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		validate       func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "successful registration",
			body: validBody,
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
					assert.Equal(t, domain.UserTypeProfessional, input.UserType)
					assert.Equal(t, "(11) 91234-5678", input.Phone)
					return &domain.User{ID: 5, Email: input.Email, Name: input.Name, UserType: input.UserType, IsActive: true, PasswordHash: "secret"}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validate: func(t *testing.T, body map[string]interface{}) {
				data := body["data"].(map[string]interface{})
				assert.Equal(t, float64(5), data["id"])
				assert.Equal(t, "PROFESSIONAL", data["userType"])
				assert.NotContains(t, data, "passwordHash")
				assert.NotContains(t, data, "PasswordHash")
			},
		},
		{
			name: "duplicate email",
			body: validBody,
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
					return nil, domain.ErrUserAlreadyExists
				}
			},
			expectedStatus: http.StatusConflict,
			validate: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "user already exists", body["error"])
			},
		},
		{
			name: "field validation",
			body: map[string]interface{}{
				"email":    "not-an-email",
				"name":     "A",
				"password": "short",
				"userType": "ADMIN",
			},
			expectedStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "validation failed", body["error"])
				fields := body["fields"].(map[string]interface{})
				assert.Equal(t, "must be a valid email", fields["email"])
				assert.Equal(t, "must be at least 8 characters", fields["password"])
				assert.Equal(t, "must be CLIENT or PROFESSIONAL", fields["userType"])
				assert.Contains(t, fields, "name")
			},
		},
		{
			name:           "malformed json",
			body:           "{",
			expectedStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "invalid request body", body["error"])
				assert.NotContains(t, body, "fields")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(authSvc)
			}
			r := setupAuthRouter(nil, authSvc, mocks.NewMockVerificationUseCase())

			w := performRequest(r, http.MethodPost, "/auth/register", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validate(t, decodeBody(t, w))
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		loginErr       error
		expectedStatus int
	}{
		{name: "success", expectedStatus: http.StatusOK},
		{name: "invalid credentials", loginErr: domain.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized},
		{name: "inactive account", loginErr: domain.ErrUserInactive, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
				if tt.loginErr != nil {
					return nil, tt.loginErr
				}
				return &domain.AuthResult{
					User:         &domain.User{ID: 1, Email: email, UserType: domain.UserTypeClient},
					AccessToken:  "access",
					RefreshToken: "refresh",
					SessionID:    "sess",
					ExpiresIn:    900,
				}, nil
			}
			r := setupAuthRouter(nil, authSvc, mocks.NewMockVerificationUseCase())

			w := performRequest(r, http.MethodPost, "/auth/login", map[string]string{
				"email":    "test@example.com",
				"password": "password123",
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.loginErr != nil {
				assert.Equal(t, tt.loginErr.Error(), decodeBody(t, w)["error"])
				return
			}
			data := dataOf(t, w)
			assert.Equal(t, "access", data["accessToken"])
			assert.Equal(t, "refresh", data["refreshToken"])
			assert.Equal(t, "Bearer", data["tokenType"])
			assert.Equal(t, float64(900), data["expiresIn"])
			assert.Equal(t, "test@example.com", data["user"].(map[string]interface{})["email"])
		})
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RefreshTokenFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
		if refreshToken == "stale" {
			return nil, domain.ErrSessionExpired
		}
		return &domain.AuthResult{AccessToken: "new-access", RefreshToken: refreshToken, ExpiresIn: 900}, nil
	}
	r := setupAuthRouter(nil, authSvc, mocks.NewMockVerificationUseCase())

	w := performRequest(r, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": "good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new-access", dataOf(t, w)["accessToken"])

	w = performRequest(r, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": "stale"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodPost, "/auth/refresh", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_LogoutAndMe(t *testing.T) {
	var loggedOut string
	authSvc := mocks.NewMockAuthService()
	authSvc.LogoutFunc = func(ctx context.Context, sessionID string) error {
		loggedOut = sessionID
		return nil
	}
	r := setupAuthRouter(clientActor, authSvc, mocks.NewMockVerificationUseCase())

	w := performRequest(r, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-1", loggedOut)

	w = performRequest(r, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(clientActor.UserID), dataOf(t, w)["id"])
}

func TestAuthHandlers_Me_Unauthenticated(t *testing.T) {
	r := setupAuthRouter(nil, mocks.NewMockAuthService(), mocks.NewMockVerificationUseCase())

	w := performRequest(r, http.MethodGet, "/auth/me", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlers_SendVerification(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		sendErr        error
		expectedStatus int
	}{
		{name: "email code sent", body: map[string]string{"channel": "email"}, expectedStatus: http.StatusAccepted},
		{name: "sms without phone", body: map[string]string{"channel": "sms"}, sendErr: domain.ErrPhoneRequired, expectedStatus: http.StatusBadRequest},
		{name: "already verified", body: map[string]string{"channel": "email"}, sendErr: domain.ErrAlreadyVerified, expectedStatus: http.StatusConflict},
		{name: "throttled", body: map[string]string{"channel": "sms"}, sendErr: &domain.ResendWaitError{Seconds: 30}, expectedStatus: http.StatusTooManyRequests},
		{name: "unknown channel", body: map[string]string{"channel": "fax"}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verification := mocks.NewMockVerificationUseCase()
			var gotUser uint
			verification.SendCodeFunc = func(ctx context.Context, userID uint, channel domain.VerificationChannel) error {
				gotUser = userID
				return tt.sendErr
			}
			r := setupAuthRouter(clientActor, mocks.NewMockAuthService(), verification)

			w := performRequest(r, http.MethodPost, "/auth/verification/send", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusAccepted {
				assert.Equal(t, clientActor.UserID, gotUser)
			}
			if tt.expectedStatus == http.StatusTooManyRequests {
				assert.Equal(t, "30", w.Header().Get("Retry-After"))
			}
		})
	}
}

func TestAuthHandlers_VerifyVerification(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		verifyErr      error
		expectedStatus int
	}{
		{name: "verified", code: "123456", expectedStatus: http.StatusOK},
		{name: "wrong code", code: "000000", verifyErr: domain.ErrOTPInvalid, expectedStatus: http.StatusBadRequest},
		{name: "nothing pending", code: "123456", verifyErr: domain.ErrOTPNotFound, expectedStatus: http.StatusNotFound},
		{name: "too many attempts", code: "123456", verifyErr: domain.ErrOTPMaxAttempts, expectedStatus: http.StatusTooManyRequests},
		{name: "non numeric code", code: "abc123", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verification := mocks.NewMockVerificationUseCase()
			verification.VerifyCodeFunc = func(ctx context.Context, userID uint, channel domain.VerificationChannel, code string) error {
				assert.Equal(t, domain.ChannelSMS, channel)
				return tt.verifyErr
			}
			r := setupAuthRouter(clientActor, mocks.NewMockAuthService(), verification)

			w := performRequest(r, http.MethodPost, "/auth/verification/verify", map[string]string{
				"channel": "sms",
				"code":    tt.code,
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, true, dataOf(t, w)["verified"])
			}
		})
	}
}
