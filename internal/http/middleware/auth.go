package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/quezi/domain"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID    = "user_id"
	ContextUserRole  = "user_role"
	ContextSessionID = "session_id"
)

// AuthMW wraps the token service and session repository for middleware
type AuthMW struct {
	tokenSvc    domain.TokenService
	sessionRepo domain.SessionRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) *AuthMW {
	return &AuthMW{
		tokenSvc:    tokenSvc,
		sessionRepo: sessionRepo,
	}
}

// WithJWT returns the JWT middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.sessionRepo)
}

// CurrentActor returns the authenticated caller. ok is false on routes
// that did not pass through AuthMiddleware.
func CurrentActor(c *gin.Context) (actor domain.Actor, ok bool) {
	rawID, exists := c.Get(ContextUserID)
	if !exists {
		return domain.Actor{}, false
	}
	idStr, isString := rawID.(string)
	if !isString {
		return domain.Actor{}, false
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return domain.Actor{}, false
	}
	role, _ := c.Get(ContextUserRole)
	roleStr, _ := role.(string)
	return domain.Actor{UserID: uint(id), UserType: domain.UserType(roleStr)}, true
}

// CurrentSessionID returns the session id of the access token, if any
func CurrentSessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
