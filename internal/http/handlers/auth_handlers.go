package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/http/middleware"
)

// AuthHandlers handles authentication and account verification requests
type AuthHandlers struct {
	authSvc      domain.AuthService
	verification domain.VerificationUseCase
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, verification domain.VerificationUseCase) *AuthHandlers {
	return &AuthHandlers{
		authSvc:      authSvc,
		verification: verification,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	CPF      string `json:"cpf" binding:"omitempty,cpf"`
	UserType string `json:"userType" binding:"required,usertype"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SendCodeRequest asks for a verification code on a channel
type SendCodeRequest struct {
	Channel string `json:"channel" binding:"required,channel"`
}

// VerifyCodeRequest submits a received verification code
type VerifyCodeRequest struct {
	Channel string `json:"channel" binding:"required,channel"`
	Code    string `json:"code" binding:"required,numeric,min=4,max=10"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Phone:    req.Phone,
		CPF:      req.CPF,
		UserType: domain.UserType(req.UserType),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, newUserResponse(user))
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"tokenType":    "Bearer",
		"expiresIn":    result.ExpiresIn,
		"user":         newUserResponse(result.User),
	})
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"tokenType":    "Bearer",
		"expiresIn":    result.ExpiresIn,
	})
}

// Logout ends the session of the presented access token
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID := middleware.CurrentSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id not found"})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the caller's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, newUserResponse(user))
}

// SendVerification delivers a verification code to the caller's email or phone
func (h *AuthHandlers) SendVerification(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	channel := domain.VerificationChannel(req.Channel)
	if err := h.verification.SendCode(c.Request.Context(), actor.UserID, channel); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusAccepted, gin.H{
		"message": "Verification code sent",
		"channel": channel,
	})
}

// VerifyVerification checks a code and marks the channel verified
func (h *AuthHandlers) VerifyVerification(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	channel := domain.VerificationChannel(req.Channel)
	if err := h.verification.VerifyCode(c.Request.Context(), actor.UserID, channel, req.Code); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"message":  "Verified successfully",
		"channel":  channel,
		"verified": true,
	})
}
