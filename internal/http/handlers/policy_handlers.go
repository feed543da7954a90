package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/pkg/pagination"
)

// PolicyHandlers manages Casbin policies at runtime
type PolicyHandlers struct {
	policies domain.PolicyService
}

func NewPolicyHandlers(policies domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policies: policies}
}

type policyReq struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
	Rule     string `json:"rule"`
}

func (r policyReq) policy() domain.Policy {
	return domain.Policy{Role: r.Role, Resource: r.Resource, Action: r.Action, Rule: r.Rule}
}

// List pages through the policy set. Casbin holds every policy in memory, so
// the page is cut from the full list.
func (h *PolicyHandlers) List(c *gin.Context) {
	policies, err := h.policies.GetPolicies()
	if err != nil {
		respondError(c, err)
		return
	}
	if policies == nil {
		policies = []domain.Policy{}
	}
	state, _ := pageFromQuery(c)
	page := pagination.Window(state, policies)
	c.JSON(http.StatusOK, gin.H{"data": page, "meta": state.Meta()})
}

func (h *PolicyHandlers) Add(c *gin.Context) {
	var r policyReq
	if err := c.ShouldBindJSON(&r); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.policies.AddPolicy(r.policy()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r policyReq
	if err := c.ShouldBindJSON(&r); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.policies.RemovePolicy(r.policy()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
