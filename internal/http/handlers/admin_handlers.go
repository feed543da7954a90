package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/quezi/domain"
)

// AdminHandlers serves the back-office user management endpoints
type AdminHandlers struct {
	users domain.UserService
}

func NewAdminHandlers(users domain.UserService) *AdminHandlers {
	return &AdminHandlers{users: users}
}

// SetStatusRequest activates or deactivates an account
type SetStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ListUsers lists all users, optionally of one type
func (h *AdminHandlers) ListUsers(c *gin.Context) {
	state, page := pageFromQuery(c)
	filter := domain.UserFilter{
		UserType: domain.UserType(strings.ToUpper(c.Query("userType"))),
		Search:   c.Query("search"),
		City:     c.Query("city"),
	}

	users, total, err := h.users.ListUsers(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, state, newUserResponses(users), total)
}

// SetStatus toggles a user's active flag
func (h *AdminHandlers) SetStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.users.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, newUserResponse(user))
}
