package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/http/middleware"
)

// OrganizationHandlers serves organizations and their memberships
type OrganizationHandlers struct {
	orgs domain.OrganizationService
}

func NewOrganizationHandlers(orgs domain.OrganizationService) *OrganizationHandlers {
	return &OrganizationHandlers{orgs: orgs}
}

type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Slug        string `json:"slug" binding:"required,slug,min=2,max=60"`
	Description string `json:"description" binding:"max=1000"`
	LogoURL     string `json:"logoUrl" binding:"omitempty,url"`
}

type UpdateOrganizationRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	LogoURL     *string `json:"logoUrl" binding:"omitempty,url"`
}

type AddMemberRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required,memberrole"`
}

type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required,memberrole"`
}

// Create makes the caller the owner of a new organization
func (h *OrganizationHandlers) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	org, err := h.orgs.Create(c.Request.Context(), actor, domain.OrganizationInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, newOrganizationResponse(org))
}

// List is the public organization listing
func (h *OrganizationHandlers) List(c *gin.Context) {
	state, page := pageFromQuery(c)

	orgs, total, err := h.orgs.List(c.Request.Context(), domain.OrganizationFilter{Search: c.Query("search")}, page)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, state, newOrganizationResponses(orgs), total)
}

// Get resolves :id as a numeric id, or as a slug otherwise
func (h *OrganizationHandlers) Get(c *gin.Context) {
	key := c.Param("id")

	var (
		org *domain.Organization
		err error
	)
	if id, convErr := strconv.ParseUint(key, 10, 64); convErr == nil {
		org, err = h.orgs.GetByID(c.Request.Context(), uint(id))
	} else {
		org, err = h.orgs.GetBySlug(c.Request.Context(), key)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, newOrganizationResponse(org))
}

func (h *OrganizationHandlers) Update(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	orgID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	org, err := h.orgs.Update(c.Request.Context(), actor, orgID, domain.OrganizationUpdate{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, newOrganizationResponse(org))
}

func (h *OrganizationHandlers) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	orgID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.orgs.Delete(c.Request.Context(), actor, orgID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMine lists the organizations the caller belongs to
func (h *OrganizationHandlers) ListMine(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	state, page := pageFromQuery(c)

	orgs, total, err := h.orgs.ListForMember(c.Request.Context(), actor.UserID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, state, newOrganizationResponses(orgs), total)
}

func (h *OrganizationHandlers) ListMembers(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	orgID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	state, page := pageFromQuery(c)

	members, total, err := h.orgs.ListMembers(c.Request.Context(), actor, orgID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, state, newMemberResponses(members), total)
}

func (h *OrganizationHandlers) AddMember(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	orgID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.orgs.AddMember(c.Request.Context(), actor, orgID, req.UserID, domain.MemberRole(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, newMemberResponse(member))
}

func (h *OrganizationHandlers) UpdateMember(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	orgID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.orgs.UpdateMemberRole(c.Request.Context(), actor, orgID, userID, domain.MemberRole(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, newMemberResponse(member))
}

// RemoveMember removes a member; members may remove themselves
func (h *OrganizationHandlers) RemoveMember(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	orgID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}

	if err := h.orgs.RemoveMember(c.Request.Context(), actor, orgID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
