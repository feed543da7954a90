package mocks

import (
	"context"

	"github.com/you/quezi/domain"
)

// MockOrganizationService implements domain.OrganizationService for testing
type MockOrganizationService struct {
	CreateFunc           func(ctx context.Context, actor domain.Actor, input domain.OrganizationInput) (*domain.Organization, error)
	GetByIDFunc          func(ctx context.Context, id uint) (*domain.Organization, error)
	GetBySlugFunc        func(ctx context.Context, slug string) (*domain.Organization, error)
	UpdateFunc           func(ctx context.Context, actor domain.Actor, orgID uint, update domain.OrganizationUpdate) (*domain.Organization, error)
	DeleteFunc           func(ctx context.Context, actor domain.Actor, orgID uint) error
	ListFunc             func(ctx context.Context, filter domain.OrganizationFilter, page domain.Page) ([]domain.Organization, int64, error)
	ListForMemberFunc    func(ctx context.Context, userID uint, page domain.Page) ([]domain.Organization, int64, error)
	ListMembersFunc      func(ctx context.Context, actor domain.Actor, orgID uint, page domain.Page) ([]domain.OrganizationMember, int64, error)
	AddMemberFunc        func(ctx context.Context, actor domain.Actor, orgID, userID uint, role domain.MemberRole) (*domain.OrganizationMember, error)
	UpdateMemberRoleFunc func(ctx context.Context, actor domain.Actor, orgID, userID uint, role domain.MemberRole) (*domain.OrganizationMember, error)
	RemoveMemberFunc     func(ctx context.Context, actor domain.Actor, orgID, userID uint) error
}

func NewMockOrganizationService() *MockOrganizationService {
	return &MockOrganizationService{}
}

func (m *MockOrganizationService) Create(ctx context.Context, actor domain.Actor, input domain.OrganizationInput) (*domain.Organization, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, input)
	}
	return &domain.Organization{ID: 1, Name: input.Name, Slug: input.Slug, OwnerID: actor.UserID}, nil
}

func (m *MockOrganizationService) GetByID(ctx context.Context, id uint) (*domain.Organization, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrOrganizationNotFound
}

func (m *MockOrganizationService) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, domain.ErrOrganizationNotFound
}

func (m *MockOrganizationService) Update(ctx context.Context, actor domain.Actor, orgID uint, update domain.OrganizationUpdate) (*domain.Organization, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, orgID, update)
	}
	return nil, domain.ErrOrganizationNotFound
}

func (m *MockOrganizationService) Delete(ctx context.Context, actor domain.Actor, orgID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, orgID)
	}
	return nil
}

func (m *MockOrganizationService) List(ctx context.Context, filter domain.OrganizationFilter, page domain.Page) ([]domain.Organization, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page)
	}
	return []domain.Organization{}, 0, nil
}

func (m *MockOrganizationService) ListForMember(ctx context.Context, userID uint, page domain.Page) ([]domain.Organization, int64, error) {
	if m.ListForMemberFunc != nil {
		return m.ListForMemberFunc(ctx, userID, page)
	}
	return []domain.Organization{}, 0, nil
}

func (m *MockOrganizationService) ListMembers(ctx context.Context, actor domain.Actor, orgID uint, page domain.Page) ([]domain.OrganizationMember, int64, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, actor, orgID, page)
	}
	return []domain.OrganizationMember{}, 0, nil
}

func (m *MockOrganizationService) AddMember(ctx context.Context, actor domain.Actor, orgID, userID uint, role domain.MemberRole) (*domain.OrganizationMember, error) {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, actor, orgID, userID, role)
	}
	return &domain.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: role}, nil
}

func (m *MockOrganizationService) UpdateMemberRole(ctx context.Context, actor domain.Actor, orgID, userID uint, role domain.MemberRole) (*domain.OrganizationMember, error) {
	if m.UpdateMemberRoleFunc != nil {
		return m.UpdateMemberRoleFunc(ctx, actor, orgID, userID, role)
	}
	return &domain.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: role}, nil
}

func (m *MockOrganizationService) RemoveMember(ctx context.Context, actor domain.Actor, orgID, userID uint) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, actor, orgID, userID)
	}
	return nil
}

var _ domain.OrganizationService = (*MockOrganizationService)(nil)
