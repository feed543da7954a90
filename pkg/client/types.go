package client

import (
	"time"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/pkg/pagination"
)

type User struct {
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
}

type Professional struct {
	ID     uint                  `json:"id"`
	Name   string                `json:"name"`
	Bio    string                `json:"bio,omitempty"`
	City   string                `json:"city,omitempty"`
	Rating *domain.RatingSummary `json:"rating,omitempty"`
}

type Organization struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	OwnerID     uint   `json:"ownerId"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

type Review struct {
	ID             uint      `json:"id"`
	AppointmentID  string    `json:"appointmentId"`
	ProfessionalID uint      `json:"professionalId"`
	AuthorID       uint      `json:"authorId"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CreateReviewInput struct {
	AppointmentID  string `json:"appointmentId"`
	ProfessionalID uint   `json:"professionalId"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment,omitempty"`
}

type CreateOrganizationInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

// ProfessionalQuery filters the professional directory
type ProfessionalQuery struct {
	Search string
	City   string
}

// Page is one page of a listing together with the server's pagination meta
type Page[T any] struct {
	Items []T
	Meta  pagination.Meta
}
