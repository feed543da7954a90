package services

import (
	"fmt"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/infrastructure/auth"
)

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service. *casbin.Enforcer satisfies
// domain.CasbinEnforcer directly.
func NewPolicyService(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: enforcer,
	}
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(policy domain.Policy) error {
	if _, err := p.enforcer.AddPolicy(auth.PolicyRule(policy)...); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(policy domain.Policy) error {
	if _, err := p.enforcer.RemovePolicy(auth.PolicyRule(policy)...); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() ([]domain.Policy, error) {
	rules, err := p.enforcer.GetPolicy()
	if err != nil {
		return nil, err
	}
	policies := make([]domain.Policy, 0, len(rules))
	for _, rule := range rules {
		if policy, ok := auth.PolicyFromRule(rule); ok {
			policies = append(policies, policy)
		}
	}
	return policies, nil
}

// SeedDefaults installs the role groupings and, when no policy exists yet,
// the default policy set. It reports whether policies were written.
func (p *PolicyServiceImpl) SeedDefaults() (bool, error) {
	for _, g := range auth.DefaultGroupings() {
		if _, err := p.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return false, fmt.Errorf("add grouping %s: %w", g[0], err)
		}
	}

	existing, err := p.enforcer.GetPolicy()
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, p.enforcer.SavePolicy()
	}

	for _, policy := range auth.DefaultPolicies() {
		if _, err := p.enforcer.AddPolicy(auth.PolicyRule(policy)...); err != nil {
			return false, fmt.Errorf("add policy %s %s: %w", policy.Role, policy.Resource, err)
		}
	}
	return true, p.enforcer.SavePolicy()
}
