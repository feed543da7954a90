package handlers

import (
	"time"

	"github.com/you/quezi/domain"
)

// UserResponse is the public shape of a user; the password hash never leaves
// the service.
type UserResponse struct {
	ID              uint            `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone,omitempty"`
	UserType        domain.UserType `json:"userType"`
	Bio             string          `json:"bio,omitempty"`
	City            string          `json:"city,omitempty"`
	IsActive        bool            `json:"isActive"`
	IsEmailVerified bool            `json:"isEmailVerified"`
	IsPhoneVerified bool            `json:"isPhoneVerified"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Phone:           u.Phone,
		UserType:        u.UserType,
		Bio:             u.Bio,
		City:            u.City,
		IsActive:        u.IsActive,
		IsEmailVerified: u.IsEmailVerified,
		IsPhoneVerified: u.IsPhoneVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func newUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return out
}

// ProfessionalResponse is a directory entry; contact details are omitted
type ProfessionalResponse struct {
	ID        uint                  `json:"id"`
	Name      string                `json:"name"`
	Bio       string                `json:"bio,omitempty"`
	City      string                `json:"city,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	Rating    *domain.RatingSummary `json:"rating,omitempty"`
}

func newProfessionalResponse(u *domain.User) ProfessionalResponse {
	return ProfessionalResponse{
		ID:        u.ID,
		Name:      u.Name,
		Bio:       u.Bio,
		City:      u.City,
		CreatedAt: u.CreatedAt,
	}
}

type OrganizationResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	OwnerID     uint      `json:"ownerId"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
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

func newOrganizationResponses(orgs []domain.Organization) []OrganizationResponse {
	out := make([]OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		out = append(out, newOrganizationResponse(&orgs[i]))
	}
	return out
}

type MemberResponse struct {
	OrganizationID uint              `json:"organizationId"`
	UserID         uint              `json:"userId"`
	Role           domain.MemberRole `json:"role"`
	Name           string            `json:"name,omitempty"`
	Email          string            `json:"email,omitempty"`
	JoinedAt       time.Time         `json:"joinedAt"`
}

func newMemberResponse(m *domain.OrganizationMember) MemberResponse {
	resp := MemberResponse{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           m.Role,
		JoinedAt:       m.CreatedAt,
	}
	if m.User != nil {
		resp.Name = m.User.Name
		resp.Email = m.User.Email
	}
	return resp
}

func newMemberResponses(members []domain.OrganizationMember) []MemberResponse {
	out := make([]MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, newMemberResponse(&members[i]))
	}
	return out
}

type ReviewResponse struct {
	ID             uint      `json:"id"`
	AppointmentID  string    `json:"appointmentId"`
	ProfessionalID uint      `json:"professionalId"`
	AuthorID       uint      `json:"authorId"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func newReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:             r.ID,
		AppointmentID:  r.AppointmentID,
		ProfessionalID: r.ProfessionalID,
		AuthorID:       r.AuthorID,
		Rating:         r.Rating,
		Comment:        r.Comment,
		CreatedAt:      r.CreatedAt,
	}
}

func newReviewResponses(reviews []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, newReviewResponse(&reviews[i]))
	}
	return out
}
