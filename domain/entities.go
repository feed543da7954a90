package domain

import "time"

// UserType is the marketplace side a user belongs to
type UserType string

const (
	UserTypeClient       UserType = "CLIENT"
	UserTypeProfessional UserType = "PROFESSIONAL"
	UserTypeAdmin        UserType = "ADMIN"
)

// Valid reports whether t is a known user type
func (t UserType) Valid() bool {
	switch t {
	case UserTypeClient, UserTypeProfessional, UserTypeAdmin:
		return true
	}
	return false
}

// SelfRegisterable reports whether users may sign up with this type
func (t UserType) SelfRegisterable() bool {
	return t == UserTypeClient || t == UserTypeProfessional
}

// User represents a marketplace account
type User struct {
	ID              uint
	Email           string
	Name            string
	Phone           string
	CPF             string
	PasswordHash    string
	UserType        UserType
	Bio             string
	City            string
	IsActive        bool
	IsEmailVerified bool
	IsPhoneVerified bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserFilter narrows user listings
type UserFilter struct {
	UserType   UserType
	Search     string
	City       string
	ActiveOnly bool
}

// UserUpdate carries optional profile changes; nil fields are left untouched
type UserUpdate struct {
	Name  *string
	Phone *string
	CPF   *string
	Bio   *string
	City  *string
}

// MemberRole is a user's role inside an organization
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// Valid reports whether r is a known member role
func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleMember:
		return true
	}
	return false
}

// CanManageMembers reports whether the role may add or remove members
func (r MemberRole) CanManageMembers() bool {
	return r == MemberRoleOwner || r == MemberRoleAdmin
}

// Organization is a tenant such as a salon
type Organization struct {
	ID          uint
	Name        string
	Slug        string
	Description string
	OwnerID     uint
	LogoURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrganizationFilter narrows organization listings
type OrganizationFilter struct {
	Search string
}

// OrganizationUpdate carries optional organization changes
type OrganizationUpdate struct {
	Name        *string
	Description *string
	LogoURL     *string
}

// OrganizationMember links a user to an organization
type OrganizationMember struct {
	OrganizationID uint
	UserID         uint
	Role           MemberRole
	User           *User
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Review is a client's rating of a professional for one appointment
type Review struct {
	ID             uint
	AppointmentID  string
	ProfessionalID uint
	AuthorID       uint
	Rating         int
	Comment        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RatingSummary aggregates a professional's reviews
type RatingSummary struct {
	ProfessionalID uint    `json:"professionalId"`
	Average        float64 `json:"average"`
	Count          int64   `json:"count"`
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// VerificationChannel is where a verification code is delivered
type VerificationChannel string

const (
	ChannelEmail VerificationChannel = "email"
	ChannelSMS   VerificationChannel = "sms"
)

// VerificationCode represents an issued one-time code
type VerificationCode struct {
	Channel   VerificationChannel
	Target    string
	Code      string
	UserID    uint
	ExpiresAt time.Time
}

// Session represents a user session
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Page is a window into a listing
type Page struct {
	Offset int
	Limit  int
}

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID   uint
	UserType UserType
}

// IsAdmin reports whether the actor is a platform admin
func (a Actor) IsAdmin() bool {
	return a.UserType == UserTypeAdmin
}
