package mocks

import (
	"context"

	"github.com/you/quezi/domain"
)

// MockUserService implements domain.UserService for testing
type MockUserService struct {
	GetProfileFunc        func(ctx context.Context, userID uint) (*domain.User, error)
	UpdateProfileFunc     func(ctx context.Context, userID uint, update domain.UserUpdate) (*domain.User, error)
	GetProfessionalFunc   func(ctx context.Context, id uint) (*domain.User, error)
	ListProfessionalsFunc func(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error)
	ListUsersFunc         func(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error)
	SetActiveFunc         func(ctx context.Context, userID uint, active bool) (*domain.User, error)
}

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID uint, update domain.UserUpdate) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, update)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) GetProfessional(ctx context.Context, id uint) (*domain.User, error) {
	if m.GetProfessionalFunc != nil {
		return m.GetProfessionalFunc(ctx, id)
	}
	return nil, domain.ErrProfessionalNotFound
}

func (m *MockUserService) ListProfessionals(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error) {
	if m.ListProfessionalsFunc != nil {
		return m.ListProfessionalsFunc(ctx, filter, page)
	}
	return []domain.User{}, 0, nil
}

func (m *MockUserService) ListUsers(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, filter, page)
	}
	return []domain.User{}, 0, nil
}

func (m *MockUserService) SetActive(ctx context.Context, userID uint, active bool) (*domain.User, error) {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, userID, active)
	}
	return nil, domain.ErrUserNotFound
}

var _ domain.UserService = (*MockUserService)(nil)
