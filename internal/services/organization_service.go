package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/infrastructure/observability"
)

// OrganizationServiceImpl implements domain.OrganizationService. Platform
// admins pass every organization role check.
type OrganizationServiceImpl struct {
	orgRepo   domain.OrganizationRepository
	userRepo  domain.UserRepository
	publisher domain.EventPublisher
	logger    *zap.Logger
}

func NewOrganizationService(
	orgRepo domain.OrganizationRepository,
	userRepo domain.UserRepository,
	publisher domain.EventPublisher,
	logger *zap.Logger,
) domain.OrganizationService {
	return &OrganizationServiceImpl{
		orgRepo:   orgRepo,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger.Named("organizations"),
	}
}

// Create stores the organization and makes the actor its owner
func (s *OrganizationServiceImpl) Create(ctx context.Context, actor domain.Actor, input domain.OrganizationInput) (*domain.Organization, error) {
	ctx, span := observability.Tracer().Start(ctx, "OrganizationService.Create")
	defer span.End()

	if actor.UserType != domain.UserTypeProfessional && !actor.IsAdmin() {
		return nil, domain.ErrInsufficientRole
	}

	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if _, err := s.orgRepo.FindBySlug(ctx, slug); err == nil {
		return nil, domain.ErrSlugTaken
	} else if !errors.Is(err, domain.ErrOrganizationNotFound) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	now := time.Now()
	org := &domain.Organization{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Description: input.Description,
		LogoURL:     input.LogoURL,
		OwnerID:     actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.orgRepo.CreateWithOwner(ctx, org); err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	span.SetAttributes(attribute.Int64("organization.id", int64(org.ID)))

	publish(ctx, s.publisher, s.logger, domain.NewEvent(domain.OrganizationCreatedEvent, actor.UserID).
		WithMetadata("organization_id", org.ID).
		WithMetadata("slug", org.Slug).
		WithMetadata("owner_id", org.OwnerID))
	return org, nil
}

func (s *OrganizationServiceImpl) GetByID(ctx context.Context, id uint) (*domain.Organization, error) {
	return s.orgRepo.FindByID(ctx, id)
}

func (s *OrganizationServiceImpl) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	return s.orgRepo.FindBySlug(ctx, strings.ToLower(slug))
}

// Update is allowed to the owner and organization admins
func (s *OrganizationServiceImpl) Update(ctx context.Context, actor domain.Actor, orgID uint, update domain.OrganizationUpdate) (*domain.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, actor, orgID, domain.MemberRoleOwner, domain.MemberRoleAdmin); err != nil {
		return nil, err
	}

	if update.Name != nil {
		org.Name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		org.Description = *update.Description
	}
	if update.LogoURL != nil {
		org.LogoURL = *update.LogoURL
	}
	org.UpdatedAt = time.Now()

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

// Delete is allowed to the owner only
func (s *OrganizationServiceImpl) Delete(ctx context.Context, actor domain.Actor, orgID uint) error {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org.OwnerID != actor.UserID && !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.orgRepo.Delete(ctx, orgID); err != nil {
		return err
	}

	publish(ctx, s.publisher, s.logger, domain.NewEvent(domain.OrganizationDeletedEvent, actor.UserID).
		WithMetadata("organization_id", org.ID).
		WithMetadata("slug", org.Slug))
	return nil
}

func (s *OrganizationServiceImpl) List(ctx context.Context, filter domain.OrganizationFilter, page domain.Page) ([]domain.Organization, int64, error) {
	return s.orgRepo.List(ctx, filter, page)
}

func (s *OrganizationServiceImpl) ListForMember(ctx context.Context, userID uint, page domain.Page) ([]domain.Organization, int64, error) {
	return s.orgRepo.ListByMember(ctx, userID, page)
}

// ListMembers is visible to any member
func (s *OrganizationServiceImpl) ListMembers(ctx context.Context, actor domain.Actor, orgID uint, page domain.Page) ([]domain.OrganizationMember, int64, error) {
	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return nil, 0, err
	}
	if _, err := s.requireRole(ctx, actor, orgID); err != nil {
		return nil, 0, err
	}
	return s.orgRepo.ListMembers(ctx, orgID, page)
}

// AddMember lets owners and organization admins add members. Only the owner
// may add admins.
func (s *OrganizationServiceImpl) AddMember(ctx context.Context, actor domain.Actor, orgID, userID uint, role domain.MemberRole) (*domain.OrganizationMember, error) {
	if role != domain.MemberRoleAdmin && role != domain.MemberRoleMember {
		return nil, domain.ErrInvalidMemberRole
	}

	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	actorRole, err := s.requireRole(ctx, actor, orgID, domain.MemberRoleOwner, domain.MemberRoleAdmin)
	if err != nil {
		return nil, err
	}
	if role == domain.MemberRoleAdmin && actorRole != domain.MemberRoleOwner {
		return nil, domain.ErrInsufficientRole
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	member := &domain.OrganizationMember{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.orgRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, domain.NewEvent(domain.MemberAddedEvent, actor.UserID).
		WithPayload(domain.MemberAdded{
			OrganizationID:   org.ID,
			OrganizationName: org.Name,
			UserID:           userID,
			Role:             role,
		}))
	return member, nil
}

// UpdateMemberRole is reserved to the owner; ownership never changes hands
func (s *OrganizationServiceImpl) UpdateMemberRole(ctx context.Context, actor domain.Actor, orgID, userID uint, role domain.MemberRole) (*domain.OrganizationMember, error) {
	if role != domain.MemberRoleAdmin && role != domain.MemberRoleMember {
		return nil, domain.ErrInvalidMemberRole
	}
	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, actor, orgID, domain.MemberRoleOwner); err != nil {
		return nil, err
	}

	target, err := s.orgRepo.FindMember(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if target.Role == domain.MemberRoleOwner {
		return nil, domain.ErrOwnerImmutable
	}

	if err := s.orgRepo.UpdateMemberRole(ctx, orgID, userID, role); err != nil {
		return nil, err
	}
	target.Role = role
	target.UpdatedAt = time.Now()
	return target, nil
}

// RemoveMember lets a member leave, and owners or organization admins remove
// others. Admins can only be removed by the owner and the owner never.
func (s *OrganizationServiceImpl) RemoveMember(ctx context.Context, actor domain.Actor, orgID, userID uint) error {
	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return err
	}

	// outsiders must not learn who is a member
	var actorRole domain.MemberRole
	if actor.UserID != userID {
		role, err := s.requireRole(ctx, actor, orgID, domain.MemberRoleOwner, domain.MemberRoleAdmin)
		if err != nil {
			return err
		}
		actorRole = role
	}

	target, err := s.orgRepo.FindMember(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if target.Role == domain.MemberRoleOwner {
		return domain.ErrOwnerImmutable
	}
	if target.Role == domain.MemberRoleAdmin && actorRole == domain.MemberRoleAdmin {
		return domain.ErrInsufficientRole
	}

	if err := s.orgRepo.RemoveMember(ctx, orgID, userID); err != nil {
		return err
	}

	publish(ctx, s.publisher, s.logger, domain.NewEvent(domain.MemberRemovedEvent, actor.UserID).
		WithMetadata("organization_id", orgID).
		WithMetadata("user_id", userID))
	return nil
}

// requireRole returns the actor's role in the organization when it is one of
// allowed (any role when allowed is empty). Platform admins are treated as
// owners.
func (s *OrganizationServiceImpl) requireRole(ctx context.Context, actor domain.Actor, orgID uint, allowed ...domain.MemberRole) (domain.MemberRole, error) {
	if actor.IsAdmin() {
		return domain.MemberRoleOwner, nil
	}

	member, err := s.orgRepo.FindMember(ctx, orgID, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return "", domain.ErrForbidden
		}
		return "", err
	}
	if len(allowed) == 0 {
		return member.Role, nil
	}
	for _, r := range allowed {
		if member.Role == r {
			return member.Role, nil
		}
	}
	return "", domain.ErrInsufficientRole
}
