package domain

import "context"

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	MarkPhoneVerified(ctx context.Context, userID uint) error
	SetActive(ctx context.Context, userID uint, active bool) error
	List(ctx context.Context, filter UserFilter, page Page) ([]User, int64, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// OrganizationRepository defines organization and membership data access
type OrganizationRepository interface {
	CreateWithOwner(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, id uint) (*Organization, error)
	FindBySlug(ctx context.Context, slug string) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter OrganizationFilter, page Page) ([]Organization, int64, error)
	ListByMember(ctx context.Context, userID uint, page Page) ([]Organization, int64, error)
	FindMember(ctx context.Context, orgID, userID uint) (*OrganizationMember, error)
	AddMember(ctx context.Context, member *OrganizationMember) error
	UpdateMemberRole(ctx context.Context, orgID, userID uint, role MemberRole) error
	RemoveMember(ctx context.Context, orgID, userID uint) error
	ListMembers(ctx context.Context, orgID uint, page Page) ([]OrganizationMember, int64, error)
}

// ReviewRepository defines review data access operations
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	ExistsForAppointment(ctx context.Context, appointmentID string) (bool, error)
	Delete(ctx context.Context, id uint) error
	ListByProfessional(ctx context.Context, professionalID uint, page Page) ([]Review, int64, error)
	Summary(ctx context.Context, professionalID uint) (*RatingSummary, error)
}

// RatingCache stores computed rating summaries
type RatingCache interface {
	Get(ctx context.Context, professionalID uint) (*RatingSummary, error)
	Set(ctx context.Context, summary *RatingSummary) error
	Invalidate(ctx context.Context, professionalID uint) error
}

// EventPublisher delivers domain events to the message broker
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}

// RegisterInput carries sign-up data
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Phone    string
	CPF      string
	UserType UserType
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// OTPService issues and checks one-time codes for a delivery target
type OTPService interface {
	Generate(ctx context.Context, channel VerificationChannel, target string, userID uint) (*VerificationCode, error)
	Verify(ctx context.Context, channel VerificationChannel, code string, userID uint) (bool, error)
	CanResend(ctx context.Context, channel VerificationChannel, userID uint) (bool, int64, error)
}

// VerificationUseCase verifies a user's email or phone
type VerificationUseCase interface {
	SendCode(ctx context.Context, userID uint, channel VerificationChannel) error
	VerifyCode(ctx context.Context, userID uint, channel VerificationChannel, code string) error
}

// UserService defines profile and directory operations
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*User, error)
	UpdateProfile(ctx context.Context, userID uint, update UserUpdate) (*User, error)
	GetProfessional(ctx context.Context, id uint) (*User, error)
	ListProfessionals(ctx context.Context, filter UserFilter, page Page) ([]User, int64, error)
	ListUsers(ctx context.Context, filter UserFilter, page Page) ([]User, int64, error)
	SetActive(ctx context.Context, userID uint, active bool) (*User, error)
}

// OrganizationInput carries data for a new organization
type OrganizationInput struct {
	Name        string
	Slug        string
	Description string
	LogoURL     string
}

// OrganizationService defines organization and membership business logic
type OrganizationService interface {
	Create(ctx context.Context, actor Actor, input OrganizationInput) (*Organization, error)
	GetByID(ctx context.Context, id uint) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	Update(ctx context.Context, actor Actor, orgID uint, update OrganizationUpdate) (*Organization, error)
	Delete(ctx context.Context, actor Actor, orgID uint) error
	List(ctx context.Context, filter OrganizationFilter, page Page) ([]Organization, int64, error)
	ListForMember(ctx context.Context, userID uint, page Page) ([]Organization, int64, error)
	ListMembers(ctx context.Context, actor Actor, orgID uint, page Page) ([]OrganizationMember, int64, error)
	AddMember(ctx context.Context, actor Actor, orgID, userID uint, role MemberRole) (*OrganizationMember, error)
	UpdateMemberRole(ctx context.Context, actor Actor, orgID, userID uint, role MemberRole) (*OrganizationMember, error)
	RemoveMember(ctx context.Context, actor Actor, orgID, userID uint) error
}

// ReviewInput carries data for a new review
type ReviewInput struct {
	AppointmentID  string
	ProfessionalID uint
	Rating         int
	Comment        string
}

// ReviewService defines review business logic
type ReviewService interface {
	Create(ctx context.Context, authorID uint, input ReviewInput) (*Review, error)
	Delete(ctx context.Context, actor Actor, id uint) error
	ListForProfessional(ctx context.Context, professionalID uint, page Page) ([]Review, int64, error)
	Summary(ctx context.Context, professionalID uint) (*RatingSummary, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// Policy is one authorization rule. Rule is an optional field constraint
// such as "path.id==token.user_id"; empty means none.
type Policy struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Rule     string `json:"rule,omitempty"`
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(p Policy) error
	RemovePolicy(p Policy) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() ([]Policy, error)
	SeedDefaults() (bool, error)
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	AddGroupingPolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
