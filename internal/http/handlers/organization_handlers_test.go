package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/mocks"
)

func setupOrganizationRouter(actor *domain.Actor, orgs *mocks.MockOrganizationService) *gin.Engine {
	h := NewOrganizationHandlers(orgs)
	r := newTestRouter(actor)
	r.GET("/organizations", h.List)
	r.GET("/organizations/:id", h.Get)
	r.POST("/organizations", h.Create)
	r.PATCH("/organizations/:id", h.Update)
	r.DELETE("/organizations/:id", h.Delete)
	r.GET("/organizations/:id/members", h.ListMembers)
	r.POST("/organizations/:id/members", h.AddMember)
	r.PATCH("/organizations/:id/members/:userId", h.UpdateMember)
	r.DELETE("/organizations/:id/members/:userId", h.RemoveMember)
	r.GET("/me/organizations", h.ListMine)
	return r
}

func salon() *domain.Organization {
	return &domain.Organization{ID: 10, Name: "Studio Bela", Slug: "studio-bela", OwnerID: 2}
}

func TestOrganizationHandlers_Get_IDOrSlug(t *testing.T) {
	var byID, bySlug int
	orgs := mocks.NewMockOrganizationService()
	orgs.GetByIDFunc = func(ctx context.Context, id uint) (*domain.Organization, error) {
		byID++
		if id == 10 {
			return salon(), nil
		}
		return nil, domain.ErrOrganizationNotFound
	}
	orgs.GetBySlugFunc = func(ctx context.Context, slug string) (*domain.Organization, error) {
		bySlug++
		if slug == "studio-bela" {
			return salon(), nil
		}
		return nil, domain.ErrOrganizationNotFound
	}
	r := setupOrganizationRouter(nil, orgs)

	w := performRequest(r, http.MethodGet, "/organizations/10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "studio-bela", dataOf(t, w)["slug"])

	w = performRequest(r, http.MethodGet, "/organizations/studio-bela", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(10), dataOf(t, w)["id"])

	w = performRequest(r, http.MethodGet, "/organizations/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1, byID)
	assert.Equal(t, 2, bySlug)
}

func TestOrganizationHandlers_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createErr      error
		expectedStatus int
		expectedField  string
	}{
		{name: "created", body: map[string]string{"name": "Studio Bela", "slug": "studio-bela"}, expectedStatus: http.StatusCreated},
		{name: "slug taken", body: map[string]string{"name": "Studio Bela", "slug": "studio-bela"}, createErr: domain.ErrSlugTaken, expectedStatus: http.StatusConflict},
		{name: "client cannot create", body: map[string]string{"name": "Studio Bela", "slug": "studio-bela"}, createErr: domain.ErrInsufficientRole, expectedStatus: http.StatusForbidden},
		{name: "bad slug", body: map[string]string{"name": "Studio Bela", "slug": "Studio Bela"}, expectedStatus: http.StatusBadRequest, expectedField: "slug"},
		{name: "bad logo url", body: map[string]string{"name": "Studio Bela", "slug": "studio", "logoUrl": "nope"}, expectedStatus: http.StatusBadRequest, expectedField: "logoUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orgs := mocks.NewMockOrganizationService()
			orgs.CreateFunc = func(ctx context.Context, actor domain.Actor, input domain.OrganizationInput) (*domain.Organization, error) {
				assert.Equal(t, *proActor, actor)
				if tt.createErr != nil {
					return nil, tt.createErr
				}
				return &domain.Organization{ID: 10, Name: input.Name, Slug: input.Slug, OwnerID: actor.UserID}, nil
			}
			r := setupOrganizationRouter(proActor, orgs)

			w := performRequest(r, http.MethodPost, "/organizations", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedField != "" {
				assert.Contains(t, decodeBody(t, w)["fields"], tt.expectedField)
			}
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, float64(proActor.UserID), dataOf(t, w)["ownerId"])
			}
		})
	}
}

func TestOrganizationHandlers_Members(t *testing.T) {
	orgs := mocks.NewMockOrganizationService()
	orgs.ListMembersFunc = func(ctx context.Context, actor domain.Actor, orgID uint, page domain.Page) ([]domain.OrganizationMember, int64, error) {
		if actor.UserID != proActor.UserID {
			return nil, 0, domain.ErrForbidden
		}
		return []domain.OrganizationMember{
			{OrganizationID: orgID, UserID: 2, Role: domain.MemberRoleOwner, User: &domain.User{Name: "Bia"}},
			{OrganizationID: orgID, UserID: 3, Role: domain.MemberRoleMember},
		}, 2, nil
	}
	orgs.AddMemberFunc = func(ctx context.Context, actor domain.Actor, orgID, userID uint, role domain.MemberRole) (*domain.OrganizationMember, error) {
		if userID == 3 {
			return nil, domain.ErrAlreadyMember
		}
		return &domain.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: role}, nil
	}
	orgs.UpdateMemberRoleFunc = func(ctx context.Context, actor domain.Actor, orgID, userID uint, role domain.MemberRole) (*domain.OrganizationMember, error) {
		return &domain.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: role}, nil
	}
	orgs.RemoveMemberFunc = func(ctx context.Context, actor domain.Actor, orgID, userID uint) error {
		if userID == 2 {
			return domain.ErrOwnerImmutable
		}
		return nil
	}
	r := setupOrganizationRouter(proActor, orgs)

	w := performRequest(r, http.MethodGet, "/organizations/10/members", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "owner", items[0].(map[string]interface{})["role"])
	assert.Equal(t, "Bia", items[0].(map[string]interface{})["name"])

	w = performRequest(r, http.MethodPost, "/organizations/10/members", map[string]interface{}{"userId": 4, "role": "admin"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "admin", dataOf(t, w)["role"])

	w = performRequest(r, http.MethodPost, "/organizations/10/members", map[string]interface{}{"userId": 3, "role": "member"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performRequest(r, http.MethodPost, "/organizations/10/members", map[string]interface{}{"userId": 4, "role": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be admin or member", decodeBody(t, w)["fields"].(map[string]interface{})["role"])

	w = performRequest(r, http.MethodPatch, "/organizations/10/members/4", map[string]string{"role": "member"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, http.MethodDelete, "/organizations/10/members/4", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(r, http.MethodDelete, "/organizations/10/members/2", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrganizationHandlers_ListMine(t *testing.T) {
	orgs := mocks.NewMockOrganizationService()
	orgs.ListForMemberFunc = func(ctx context.Context, userID uint, page domain.Page) ([]domain.Organization, int64, error) {
		assert.Equal(t, proActor.UserID, userID)
		return []domain.Organization{*salon()}, 1, nil
	}
	r := setupOrganizationRouter(proActor, orgs)

	w := performRequest(r, http.MethodGet, "/me/organizations", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)
}

func TestOrganizationHandlers_UpdateAndDelete(t *testing.T) {
	orgs := mocks.NewMockOrganizationService()
	orgs.UpdateFunc = func(ctx context.Context, actor domain.Actor, orgID uint, update domain.OrganizationUpdate) (*domain.Organization, error) {
		org := salon()
		require.NotNil(t, update.Description)
		org.Description = *update.Description
		return org, nil
	}
	orgs.DeleteFunc = func(ctx context.Context, actor domain.Actor, orgID uint) error {
		if actor.UserID != 2 {
			return domain.ErrForbidden
		}
		return nil
	}

	r := setupOrganizationRouter(proActor, orgs)
	w := performRequest(r, http.MethodPatch, "/organizations/10", map[string]string{"description": "Hair and nails"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hair and nails", dataOf(t, w)["description"])

	w = performRequest(r, http.MethodDelete, "/organizations/10", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	r = setupOrganizationRouter(clientActor, orgs)
	w = performRequest(r, http.MethodDelete, "/organizations/10", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
