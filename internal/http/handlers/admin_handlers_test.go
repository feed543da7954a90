package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/mocks"
)

var adminActor = &domain.Actor{UserID: 99, UserType: domain.UserTypeAdmin}

func TestAdminHandlers_ListUsers(t *testing.T) {
	users := mocks.NewMockUserService()
	users.ListUsersFunc = func(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]domain.User, int64, error) {
		if !filter.UserType.Valid() && filter.UserType != "" {
			return nil, 0, domain.ErrInvalidUserType
		}
		assert.Equal(t, domain.UserTypeProfessional, filter.UserType)
		return []domain.User{{ID: 2, UserType: domain.UserTypeProfessional}}, 41, nil
	}
	h := NewAdminHandlers(users)
	r := newTestRouter(adminActor)
	r.GET("/admin/users", h.ListUsers)

	w := performRequest(r, http.MethodGet, "/admin/users?userType=professional&limit=20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	meta := decodeBody(t, w)["meta"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["totalPages"])
	assert.Equal(t, float64(20), meta["limit"])

	w = performRequest(r, http.MethodGet, "/admin/users?userType=robot", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandlers_SetStatus(t *testing.T) {
	users := mocks.NewMockUserService()
	users.SetActiveFunc = func(ctx context.Context, userID uint, active bool) (*domain.User, error) {
		return &domain.User{ID: userID, IsActive: active}, nil
	}
	h := NewAdminHandlers(users)
	r := newTestRouter(adminActor)
	r.PATCH("/admin/users/:id/status", h.SetStatus)

	w := performRequest(r, http.MethodPatch, "/admin/users/5/status", map[string]bool{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, dataOf(t, w)["isActive"])

	w = performRequest(r, http.MethodPatch, "/admin/users/5/status", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["fields"], "isActive")
}
