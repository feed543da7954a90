package mocks

import "github.com/you/quezi/domain"

// MockPolicyService implements domain.PolicyService interface for testing
type MockPolicyService struct {
	AddPolicyFunc       func(p domain.Policy) error
	RemovePolicyFunc    func(p domain.Policy) error
	CheckPermissionFunc func(role, resource, action string) (bool, error)
	GetPoliciesFunc     func() ([]domain.Policy, error)
	SeedDefaultsFunc    func() (bool, error)
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

// AddPolicy adds a new authorization policy
func (m *MockPolicyService) AddPolicy(p domain.Policy) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(p)
	}
	return nil
}

// RemovePolicy removes an authorization policy
func (m *MockPolicyService) RemovePolicy(p domain.Policy) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(p)
	}
	return nil
}

// CheckPermission lets role_ADMIN do anything by default
func (m *MockPolicyService) CheckPermission(role, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, resource, action)
	}
	return role == "role_ADMIN", nil
}

// GetPolicies returns all current policies
func (m *MockPolicyService) GetPolicies() ([]domain.Policy, error) {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	// Default behavior: return some mock policies
	return []domain.Policy{
		{Role: "role_ADMIN", Resource: "/*", Action: "(GET|POST|PUT|PATCH|DELETE)"},
		{Role: "role_user", Resource: "/auth/me", Action: "GET"},
	}, nil
}

func (m *MockPolicyService) SeedDefaults() (bool, error) {
	if m.SeedDefaultsFunc != nil {
		return m.SeedDefaultsFunc()
	}
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)
