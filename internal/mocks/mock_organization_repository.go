package mocks

import (
	"context"

	"github.com/you/quezi/domain"
)

// MockOrganizationRepository implements domain.OrganizationRepository for testing
type MockOrganizationRepository struct {
	CreateWithOwnerFunc  func(ctx context.Context, org *domain.Organization) error
	FindByIDFunc         func(ctx context.Context, id uint) (*domain.Organization, error)
	FindBySlugFunc       func(ctx context.Context, slug string) (*domain.Organization, error)
	UpdateFunc           func(ctx context.Context, org *domain.Organization) error
	DeleteFunc           func(ctx context.Context, id uint) error
	ListFunc             func(ctx context.Context, filter domain.OrganizationFilter, page domain.Page) ([]domain.Organization, int64, error)
	ListByMemberFunc     func(ctx context.Context, userID uint, page domain.Page) ([]domain.Organization, int64, error)
	FindMemberFunc       func(ctx context.Context, orgID, userID uint) (*domain.OrganizationMember, error)
	AddMemberFunc        func(ctx context.Context, member *domain.OrganizationMember) error
	UpdateMemberRoleFunc func(ctx context.Context, orgID, userID uint, role domain.MemberRole) error
	RemoveMemberFunc     func(ctx context.Context, orgID, userID uint) error
	ListMembersFunc      func(ctx context.Context, orgID uint, page domain.Page) ([]domain.OrganizationMember, int64, error)
}

func NewMockOrganizationRepository() *MockOrganizationRepository {
	return &MockOrganizationRepository{}
}

func (m *MockOrganizationRepository) CreateWithOwner(ctx context.Context, org *domain.Organization) error {
	if m.CreateWithOwnerFunc != nil {
		return m.CreateWithOwnerFunc(ctx, org)
	}
	return nil
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uint) (*domain.Organization, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrOrganizationNotFound
}

func (m *MockOrganizationRepository) FindBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, domain.ErrOrganizationNotFound
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, org)
	}
	return nil
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockOrganizationRepository) List(ctx context.Context, filter domain.OrganizationFilter, page domain.Page) ([]domain.Organization, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page)
	}
	return []domain.Organization{}, 0, nil
}

func (m *MockOrganizationRepository) ListByMember(ctx context.Context, userID uint, page domain.Page) ([]domain.Organization, int64, error) {
	if m.ListByMemberFunc != nil {
		return m.ListByMemberFunc(ctx, userID, page)
	}
	return []domain.Organization{}, 0, nil
}

// FindMember reports domain.ErrMemberNotFound unless configured
func (m *MockOrganizationRepository) FindMember(ctx context.Context, orgID, userID uint) (*domain.OrganizationMember, error) {
	if m.FindMemberFunc != nil {
		return m.FindMemberFunc(ctx, orgID, userID)
	}
	return nil, domain.ErrMemberNotFound
}

func (m *MockOrganizationRepository) AddMember(ctx context.Context, member *domain.OrganizationMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	return nil
}

func (m *MockOrganizationRepository) UpdateMemberRole(ctx context.Context, orgID, userID uint, role domain.MemberRole) error {
	if m.UpdateMemberRoleFunc != nil {
		return m.UpdateMemberRoleFunc(ctx, orgID, userID, role)
	}
	return nil
}

func (m *MockOrganizationRepository) RemoveMember(ctx context.Context, orgID, userID uint) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, orgID, userID)
	}
	return nil
}

func (m *MockOrganizationRepository) ListMembers(ctx context.Context, orgID uint, page domain.Page) ([]domain.OrganizationMember, int64, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, orgID, page)
	}
	return []domain.OrganizationMember{}, 0, nil
}

var _ domain.OrganizationRepository = (*MockOrganizationRepository)(nil)
