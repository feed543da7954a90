package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/validation"
)

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	userRepo domain.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo domain.UserRepository, logger *zap.Logger) domain.UserService {
	return &UserServiceImpl{userRepo: userRepo, logger: logger.Named("users")}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile applies the non-nil fields of update. A new phone number
// must be verified again.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uint, update domain.UserUpdate) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Phone != nil {
		phone := ""
		if *update.Phone != "" {
			phone = validation.NormalizePhone(*update.Phone)
		}
		if phone != user.Phone {
			user.Phone = phone
			user.IsPhoneVerified = false
		}
	}
	if update.CPF != nil {
		user.CPF = validation.NormalizeCPF(*update.CPF)
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.City != nil {
		user.City = strings.TrimSpace(*update.City)
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// GetProfessional returns an active professional
func (s *UserServiceImpl) GetProfessional(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrProfessionalNotFound
		}
		return nil, err
	}
	if user.UserType != domain.UserTypeProfessional || !user.IsActive {
		return nil, domain.ErrProfessionalNotFound
	}
	return user, nil
}

// ListProfessionals only ever returns active professionals
func (s *UserServiceImpl) ListProfessionals(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error) {
	filter.UserType = domain.UserTypeProfessional
	filter.ActiveOnly = true
	return s.userRepo.List(ctx, filter, page)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error) {
	if filter.UserType != "" && !filter.UserType.Valid() {
		return nil, 0, domain.ErrInvalidUserType
	}
	return s.userRepo.List(ctx, filter, page)
}

// SetActive activates or deactivates an account
func (s *UserServiceImpl) SetActive(ctx context.Context, userID uint, active bool) (*domain.User, error) {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return nil, err
	}
	s.logger.Info("user status changed", zap.Uint("user_id", userID), zap.Bool("active", active))
	return s.userRepo.FindByID(ctx, userID)
}
