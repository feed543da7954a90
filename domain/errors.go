package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidUserType    = errors.New("invalid user type")
)

// Verification code errors
var (
	ErrOTPExpired      = errors.New("otp has expired")
	ErrOTPInvalid      = errors.New("invalid otp code")
	ErrOTPMaxAttempts  = errors.New("maximum otp attempts exceeded")
	ErrOTPNotFound     = errors.New("otp not found")
	ErrOTPResendLimit  = errors.New("otp resend limit exceeded")
	ErrPhoneRequired   = errors.New("phone number required for sms verification")
	ErrInvalidChannel  = errors.New("invalid verification channel")
	ErrAlreadyVerified = errors.New("already verified")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)

// Organization errors
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrSlugTaken            = errors.New("organization slug already taken")
	ErrMemberNotFound       = errors.New("organization member not found")
	ErrAlreadyMember        = errors.New("user is already a member")
	ErrInvalidMemberRole    = errors.New("invalid member role")
	ErrOwnerImmutable       = errors.New("organization owner cannot be changed or removed")
)

// Review errors
var (
	ErrReviewNotFound       = errors.New("review not found")
	ErrReviewAlreadyExists  = errors.New("appointment already reviewed")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrSelfReview           = errors.New("cannot review yourself")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
)

// Cache errors
var (
	ErrCacheMiss = errors.New("cache miss")
)

// ResendWaitError reports how long to wait before another code may be sent
type ResendWaitError struct {
	Seconds int64
}

func (e *ResendWaitError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting a new code", e.Seconds)
}

func (e *ResendWaitError) Unwrap() error { return ErrOTPResendLimit }
