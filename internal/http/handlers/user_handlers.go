package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/quezi/domain"
)

// UserHandlers serves profiles and the professional directory
type UserHandlers struct {
	users   domain.UserService
	reviews domain.ReviewService
}

func NewUserHandlers(users domain.UserService, reviews domain.ReviewService) *UserHandlers {
	return &UserHandlers{users: users, reviews: reviews}
}

// UpdateUserRequest carries optional profile changes
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone *string `json:"phone" binding:"omitempty,phone"`
	CPF   *string `json:"cpf" binding:"omitempty,cpf"`
	Bio   *string `json:"bio" binding:"omitempty,max=1000"`
	City  *string `json:"city" binding:"omitempty,max=100"`
}

// ListProfessionals is the public directory of active professionals
func (h *UserHandlers) ListProfessionals(c *gin.Context) {
	state, page := pageFromQuery(c)
	filter := domain.UserFilter{
		Search: c.Query("search"),
		City:   c.Query("city"),
	}

	users, total, err := h.users.ListProfessionals(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]ProfessionalResponse, 0, len(users))
	for i := range users {
		items = append(items, newProfessionalResponse(&users[i]))
	}
	respondList(c, state, items, total)
}

// GetProfessional returns a professional with the rating summary
func (h *UserHandlers) GetProfessional(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetProfessional(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.reviews.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newProfessionalResponse(user)
	resp.Rating = summary
	respondData(c, http.StatusOK, resp)
}

// ListProfessionalReviews lists a professional's reviews, newest first
func (h *UserHandlers) ListProfessionalReviews(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.users.GetProfessional(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	state, page := pageFromQuery(c)
	reviews, total, err := h.reviews.ListForProfessional(c.Request.Context(), id, page)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, state, newReviewResponses(reviews), total)
}

// GetUser returns a full profile. Ownership is enforced by the policy rule.
func (h *UserHandlers) GetUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, newUserResponse(user))
}

// UpdateUser applies a partial profile update
func (h *UserHandlers) UpdateUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), id, domain.UserUpdate{
		Name:  req.Name,
		Phone: req.Phone,
		CPF:   req.CPF,
		Bio:   req.Bio,
		City:  req.City,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, newUserResponse(user))
}
