package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/quezi/domain"
)

// OrganizationRepositoryImpl implements domain.OrganizationRepository using GORM
type OrganizationRepositoryImpl struct {
	db *gorm.DB
}

// DBOrganization is the organizations table
type DBOrganization struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Slug        string    `gorm:"uniqueIndex;size:60;not null"`
	Description string    `gorm:"size:500"`
	OwnerID     uint      `gorm:"index;not null"`
	LogoURL     string    `gorm:"column:logo_url;size:500"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (DBOrganization) TableName() string {
	return "organizations"
}

// DBOrganizationMember is the organization_members join table
type DBOrganizationMember struct {
	OrganizationID uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"primaryKey;index"`
	Role           string    `gorm:"size:16;not null"`
	User           DBUser    `gorm:"foreignKey:UserID"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (DBOrganizationMember) TableName() string {
	return "organization_members"
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) domain.OrganizationRepository {
	return &OrganizationRepositoryImpl{db: db}
}

// CreateWithOwner inserts the organization and its owner membership atomically
func (r *OrganizationRepositoryImpl) CreateWithOwner(ctx context.Context, org *domain.Organization) error {
	dbOrg := orgToDB(org)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dbOrg).Error; err != nil {
			return err
		}
		owner := &DBOrganizationMember{
			OrganizationID: dbOrg.ID,
			UserID:         dbOrg.OwnerID,
			Role:           string(domain.MemberRoleOwner),
		}
		return tx.Omit("User").Create(owner).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return domain.ErrSlugTaken
		}
		return err
	}
	org.ID = dbOrg.ID
	org.CreatedAt = dbOrg.CreatedAt
	org.UpdatedAt = dbOrg.UpdatedAt
	return nil
}

// FindByID implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Organization, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindBySlug implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *OrganizationRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.Organization, error) {
	var dbOrg DBOrganization
	if err := r.db.WithContext(ctx).Where(query, arg).First(&dbOrg).Error; err != nil {
		if notFound(err) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}
	return orgToDomain(&dbOrg), nil
}

// Update implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) Update(ctx context.Context, org *domain.Organization) error {
	dbOrg := orgToDB(org)
	if err := r.db.WithContext(ctx).Save(dbOrg).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrSlugTaken
		}
		return err
	}
	org.UpdatedAt = dbOrg.UpdatedAt
	return nil
}

// Delete removes the organization together with its memberships
func (r *OrganizationRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("organization_id = ?", id).Delete(&DBOrganizationMember{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&DBOrganization{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrOrganizationNotFound
		}
		return nil
	})
}

// List implements domain.OrganizationRepository, ordered by name
func (r *OrganizationRepositoryImpl) List(ctx context.Context, filter domain.OrganizationFilter, page domain.Page) ([]domain.Organization, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBOrganization{})
	if filter.Search != "" {
		p := likePattern(filter.Search)
		q = q.Where("LOWER(name) LIKE ? OR slug LIKE ?", p, p)
	}
	return r.listOrgs(q, page)
}

// ListByMember returns the organizations userID belongs to
func (r *OrganizationRepositoryImpl) ListByMember(ctx context.Context, userID uint, page domain.Page) ([]domain.Organization, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBOrganization{}).
		Joins("JOIN organization_members om ON om.organization_id = organizations.id").
		Where("om.user_id = ?", userID)
	return r.listOrgs(q, page)
}

func (r *OrganizationRepositoryImpl) listOrgs(q *gorm.DB, page domain.Page) ([]domain.Organization, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []DBOrganization
	if err := q.Scopes(paginate(page)).Order("organizations.name ASC, organizations.id ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orgs := make([]domain.Organization, 0, len(rows))
	for i := range rows {
		orgs = append(orgs, *orgToDomain(&rows[i]))
	}
	return orgs, total, nil
}

// FindMember implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) FindMember(ctx context.Context, orgID, userID uint) (*domain.OrganizationMember, error) {
	var m DBOrganizationMember
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&m).Error
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return memberToDomain(&m, false), nil
}

// AddMember implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) AddMember(ctx context.Context, member *domain.OrganizationMember) error {
	m := &DBOrganizationMember{
		OrganizationID: member.OrganizationID,
		UserID:         member.UserID,
		Role:           string(member.Role),
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(m).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrAlreadyMember
		}
		return err
	}
	member.CreatedAt = m.CreatedAt
	member.UpdatedAt = m.UpdatedAt
	return nil
}

// UpdateMemberRole implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) UpdateMemberRole(ctx context.Context, orgID, userID uint, role domain.MemberRole) error {
	res := r.db.WithContext(ctx).Model(&DBOrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Update("role", string(role))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// RemoveMember implements domain.OrganizationRepository
func (r *OrganizationRepositoryImpl) RemoveMember(ctx context.Context, orgID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&DBOrganizationMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// ListMembers returns members with their user records, oldest membership first
func (r *OrganizationRepositoryImpl) ListMembers(ctx context.Context, orgID uint, page domain.Page) ([]domain.OrganizationMember, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBOrganizationMember{}).Where("organization_id = ?", orgID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []DBOrganizationMember
	if err := q.Preload("User").Scopes(paginate(page)).Order("created_at ASC, user_id ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	members := make([]domain.OrganizationMember, 0, len(rows))
	for i := range rows {
		members = append(members, *memberToDomain(&rows[i], true))
	}
	return members, total, nil
}

func orgToDB(org *domain.Organization) *DBOrganization {
	return &DBOrganization{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		Description: org.Description,
		OwnerID:     org.OwnerID,
		LogoURL:     org.LogoURL,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

func orgToDomain(o *DBOrganization) *domain.Organization {
	return &domain.Organization{
		ID:          o.ID,
		Name:        o.Name,
		Slug:        o.Slug,
		Description: o.Description,
		OwnerID:     o.OwnerID,
		LogoURL:     o.LogoURL,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func memberToDomain(m *DBOrganizationMember, withUser bool) *domain.OrganizationMember {
	member := &domain.OrganizationMember{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           domain.MemberRole(m.Role),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if withUser && m.User.ID != 0 {
		member.User = userToDomain(&m.User)
	}
	return member
}
