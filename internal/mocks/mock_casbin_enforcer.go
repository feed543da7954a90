package mocks

import (
	"fmt"

	"github.com/you/quezi/domain"
)

// MockCasbinEnforcer implements the CasbinEnforcer interface for testing.
// Without overrides it keeps policies in memory and only matches exactly.
type MockCasbinEnforcer struct {
	AddPolicyFunc         func(params ...interface{}) (bool, error)
	RemovePolicyFunc      func(params ...interface{}) (bool, error)
	AddGroupingPolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc           func(rvals ...interface{}) (bool, error)
	GetPolicyFunc         func() ([][]string, error)
	SavePolicyFunc        func() error

	policies  [][]string
	groupings [][]string
	Saves     int
}

// Compile-time interface compliance verification
var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

// NewMockCasbinEnforcer creates an empty MockCasbinEnforcer
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{}
}

func toRule(params []interface{}) []string {
	rule := make([]string, len(params))
	for i, p := range params {
		rule[i] = fmt.Sprint(p)
	}
	return rule
}

func sameRule(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func indexOf(rules [][]string, rule []string) int {
	for i, r := range rules {
		if sameRule(r, rule) {
			return i
		}
	}
	return -1
}

// AddPolicy adds a new policy rule
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	rule := toRule(params)
	if indexOf(m.policies, rule) >= 0 {
		return false, nil
	}
	m.policies = append(m.policies, rule)
	return true, nil
}

// RemovePolicy removes a policy rule
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	i := indexOf(m.policies, toRule(params))
	if i < 0 {
		return false, nil
	}
	m.policies = append(m.policies[:i], m.policies[i+1:]...)
	return true, nil
}

func (m *MockCasbinEnforcer) AddGroupingPolicy(params ...interface{}) (bool, error) {
	if m.AddGroupingPolicyFunc != nil {
		return m.AddGroupingPolicyFunc(params...)
	}
	rule := toRule(params)
	if indexOf(m.groupings, rule) >= 0 {
		return false, nil
	}
	m.groupings = append(m.groupings, rule)
	return true, nil
}

// Enforce matches subject, object and action literally
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	req := toRule(rvals)
	for _, p := range m.policies {
		if len(p) >= len(req) && sameRule(p[:len(req)], req) {
			return true, nil
		}
	}
	return false, nil
}

// GetPolicy returns a copy of all policies
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	result := make([][]string, len(m.policies))
	for i, policy := range m.policies {
		result[i] = append([]string(nil), policy...)
	}
	return result, nil
}

// SavePolicy counts saves
func (m *MockCasbinEnforcer) SavePolicy() error {
	m.Saves++
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}

// Groupings returns the recorded grouping rules (test helper)
func (m *MockCasbinEnforcer) Groupings() [][]string {
	return m.groupings
}

// SetPolicies sets the internal policies (test helper)
func (m *MockCasbinEnforcer) SetPolicies(policies [][]string) {
	m.policies = make([][]string, len(policies))
	for i, policy := range policies {
		m.policies[i] = append([]string(nil), policy...)
	}
}
