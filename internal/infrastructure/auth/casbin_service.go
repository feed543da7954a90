package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/you/quezi/domain"
)

// DefaultModel is used when no model file is configured. Every user type
// role inherits role_user through g.
const DefaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, v3

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// NoRule marks a policy without a field constraint. Empty trailing columns
// are dropped by the adapter, which would break the policy size.
const NoRule = "*"

// BaseRole is granted to every authenticated user
const BaseRole = "role_user"

// RoleSubject maps a user type to its Casbin subject
func RoleSubject(userType string) string {
	return "role_" + userType
}

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService loads the model from modelPath (DefaultModel when empty)
// and the policies from the casbin_rule table.
func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}

	var E *casbin.Enforcer
	if modelPath == "" {
		m, err := model.NewModelFromString(DefaultModel)
		if err != nil {
			return nil, err
		}
		E, err = casbin.NewEnforcer(m, adp)
		if err != nil {
			return nil, err
		}
	} else {
		E, err = casbin.NewEnforcer(modelPath, adp)
		if err != nil {
			return nil, err
		}
	}

	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

// NewMemoryEnforcer builds an enforcer on DefaultModel without storage
func NewMemoryEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(DefaultModel)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}

// DefaultPolicies are seeded into an empty policy table
func DefaultPolicies() []domain.Policy {
	const (
		read      = "GET"
		readWrite = "(GET|PATCH)"
		member    = "(PATCH|DELETE)"
		anyMethod = "(GET|POST|PUT|PATCH|DELETE)"
		self      = "path.id==token.user_id"
	)
	client := RoleSubject(string(domain.UserTypeClient))
	pro := RoleSubject(string(domain.UserTypeProfessional))
	admin := RoleSubject(string(domain.UserTypeAdmin))

	return []domain.Policy{
		{Role: BaseRole, Resource: "/auth/me", Action: read},
		{Role: BaseRole, Resource: "/auth/logout", Action: "POST"},
		{Role: BaseRole, Resource: "/auth/verification/*", Action: "POST"},
		{Role: BaseRole, Resource: "/users/:id", Action: readWrite, Rule: self},
		{Role: BaseRole, Resource: "/me/organizations", Action: read},
		{Role: BaseRole, Resource: "/organizations/:id", Action: member},
		{Role: BaseRole, Resource: "/organizations/:id/members", Action: "(GET|POST)"},
		{Role: BaseRole, Resource: "/organizations/:id/members/:userId", Action: member},
		{Role: BaseRole, Resource: "/reviews/:id", Action: "DELETE"},
		{Role: pro, Resource: "/organizations", Action: "POST"},
		{Role: client, Resource: "/reviews", Action: "POST"},
		{Role: admin, Resource: "/*", Action: anyMethod},
	}
}

// DefaultGroupings makes every user type inherit BaseRole
func DefaultGroupings() [][2]string {
	return [][2]string{
		{RoleSubject(string(domain.UserTypeClient)), BaseRole},
		{RoleSubject(string(domain.UserTypeProfessional)), BaseRole},
		{RoleSubject(string(domain.UserTypeAdmin)), BaseRole},
	}
}

// PolicyRule converts p to the stored column values
func PolicyRule(p domain.Policy) []interface{} {
	rule := p.Rule
	if rule == "" {
		rule = NoRule
	}
	return []interface{}{p.Role, p.Resource, p.Action, rule}
}

// PolicyFromRule is the inverse of PolicyRule
func PolicyFromRule(rule []string) (domain.Policy, bool) {
	if len(rule) < 3 {
		return domain.Policy{}, false
	}
	p := domain.Policy{Role: rule[0], Resource: rule[1], Action: rule[2]}
	if len(rule) > 3 && rule[3] != NoRule {
		p.Rule = rule[3]
	}
	return p, true
}
