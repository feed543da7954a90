package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/validation"
	"github.com/you/quezi/pkg/pagination"
)

// errorStatus maps domain sentinels to HTTP status codes. Order matters
// only for wrapped errors matching more than one entry.
var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrProfessionalNotFound, http.StatusNotFound},
	{domain.ErrOrganizationNotFound, http.StatusNotFound},
	{domain.ErrMemberNotFound, http.StatusNotFound},
	{domain.ErrReviewNotFound, http.StatusNotFound},
	{domain.ErrOTPNotFound, http.StatusNotFound},

	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrTokenInvalid, http.StatusUnauthorized},
	{domain.ErrTokenExpired, http.StatusUnauthorized},
	{domain.ErrTokenMalformed, http.StatusUnauthorized},
	{domain.ErrSessionNotFound, http.StatusUnauthorized},
	{domain.ErrSessionExpired, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized},

	{domain.ErrUserInactive, http.StatusForbidden},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrInsufficientRole, http.StatusForbidden},
	{domain.ErrSelfReview, http.StatusForbidden},
	{domain.ErrOwnerImmutable, http.StatusForbidden},

	{domain.ErrUserAlreadyExists, http.StatusConflict},
	{domain.ErrSlugTaken, http.StatusConflict},
	{domain.ErrAlreadyMember, http.StatusConflict},
	{domain.ErrReviewAlreadyExists, http.StatusConflict},
	{domain.ErrAlreadyVerified, http.StatusConflict},

	{domain.ErrOTPInvalid, http.StatusBadRequest},
	{domain.ErrOTPExpired, http.StatusBadRequest},
	{domain.ErrInvalidUserType, http.StatusBadRequest},
	{domain.ErrInvalidChannel, http.StatusBadRequest},
	{domain.ErrPhoneRequired, http.StatusBadRequest},
	{domain.ErrInvalidMemberRole, http.StatusBadRequest},
	{domain.ErrInvalidRating, http.StatusBadRequest},

	{domain.ErrOTPMaxAttempts, http.StatusTooManyRequests},
	{domain.ErrOTPResendLimit, http.StatusTooManyRequests},
}

// respondError writes the error envelope for err. Unmapped errors become a
// generic 500 and are attached to the context for the request logger.
func respondError(c *gin.Context, err error) {
	var wait *domain.ResendWaitError
	if errors.As(err, &wait) {
		c.Header("Retry-After", strconv.FormatInt(wait.Seconds, 10))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": wait.Error(), "retryAfter": wait.Seconds})
		return
	}

	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": m.err.Error()})
			return
		}
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// respondBindError reports a request body or query that failed binding
func respondBindError(c *gin.Context, err error) {
	if fields := validation.FieldErrors(err); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

// pageFromQuery reads ?page&limit into a pagination state and the matching
// storage window.
func pageFromQuery(c *gin.Context) (*pagination.State, domain.Page) {
	state := pagination.FromQuery(c.Query("page"), c.Query("limit"))
	return state, domain.Page{Offset: state.Offset(), Limit: state.Limit()}
}

// respondList writes {"data": items, "meta": ...} after feeding total back
// into the state.
func respondList(c *gin.Context, state *pagination.State, items interface{}, total int64) {
	state.SetTotalItems(int(total))
	c.JSON(http.StatusOK, gin.H{"data": items, "meta": state.Meta()})
}

// uintParam parses a numeric path parameter, writing 400 on failure
func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
