package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/you/quezi/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID              uint           `gorm:"primaryKey"`
	Email           string         `gorm:"uniqueIndex;size:255"`
	Name            string         `gorm:"size:120"`
	Phone           string         `gorm:"index;size:32"`
	CPF             string         `gorm:"column:cpf;size:14"`
	PasswordHash    string         `gorm:"column:password"`
	UserType        string         `gorm:"index;size:16"`
	Bio             string         `gorm:"size:1000"`
	City            string         `gorm:"index;size:120"`
	IsActive        bool           `gorm:"index"`
	IsEmailVerified bool           `gorm:"not null;default:false"`
	IsPhoneVerified bool           `gorm:"not null;default:false"`
	CreatedAt       time.Time      `gorm:"index"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Save(dbUser).Error; err != nil {
		return err
	}
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// MarkEmailVerified implements domain.UserRepository
func (r *UserRepositoryImpl) MarkEmailVerified(ctx context.Context, userID uint) error {
	return r.setFlag(ctx, userID, "is_email_verified", true)
}

// MarkPhoneVerified implements domain.UserRepository
func (r *UserRepositoryImpl) MarkPhoneVerified(ctx context.Context, userID uint) error {
	return r.setFlag(ctx, userID, "is_phone_verified", true)
}

// SetActive implements domain.UserRepository
func (r *UserRepositoryImpl) SetActive(ctx context.Context, userID uint, active bool) error {
	return r.setFlag(ctx, userID, "is_active", active)
}

func (r *UserRepositoryImpl) setFlag(ctx context.Context, userID uint, column string, value bool) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List implements domain.UserRepository. Results are ordered newest first.
func (r *UserRepositoryImpl) List(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBUser{})
	if filter.UserType != "" {
		q = q.Where("user_type = ?", string(filter.UserType))
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.City != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", p, p)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []DBUser
	if err := q.Scopes(paginate(page)).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *userToDomain(&rows[i]))
	}
	return users, total, nil
}

func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Phone:           user.Phone,
		CPF:             user.CPF,
		PasswordHash:    user.PasswordHash,
		UserType:        string(user.UserType),
		Bio:             user.Bio,
		City:            user.City,
		IsActive:        user.IsActive,
		IsEmailVerified: user.IsEmailVerified,
		IsPhoneVerified: user.IsPhoneVerified,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

func userToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:              dbUser.ID,
		Email:           dbUser.Email,
		Name:            dbUser.Name,
		Phone:           dbUser.Phone,
		CPF:             dbUser.CPF,
		PasswordHash:    dbUser.PasswordHash,
		UserType:        domain.UserType(dbUser.UserType),
		Bio:             dbUser.Bio,
		City:            dbUser.City,
		IsActive:        dbUser.IsActive,
		IsEmailVerified: dbUser.IsEmailVerified,
		IsPhoneVerified: dbUser.IsPhoneVerified,
		CreatedAt:       dbUser.CreatedAt,
		UpdatedAt:       dbUser.UpdatedAt,
	}
}
