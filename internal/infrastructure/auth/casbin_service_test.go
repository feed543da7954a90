package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/quezi/domain"
)

func seededEnforcer(t *testing.T) interface {
	Enforce(rvals ...interface{}) (bool, error)
} {
	t.Helper()
	e, err := NewMemoryEnforcer()
	require.NoError(t, err)
	for _, p := range DefaultPolicies() {
		_, err := e.AddPolicy(PolicyRule(p)...)
		require.NoError(t, err)
	}
	for _, g := range DefaultGroupings() {
		_, err := e.AddGroupingPolicy(g[0], g[1])
		require.NoError(t, err)
	}
	return e
}

func TestDefaultPolicies_Enforce(t *testing.T) {
	e := seededEnforcer(t)

	tests := []struct {
		role   string
		path   string
		method string
		want   bool
	}{
		{"role_CLIENT", "/auth/me", "GET", true},
		{"role_PROFESSIONAL", "/auth/verification/send", "POST", true},
		{"role_CLIENT", "/users/12", "PATCH", true},
		{"role_CLIENT", "/reviews", "POST", true},
		{"role_PROFESSIONAL", "/reviews", "POST", false},
		{"role_PROFESSIONAL", "/organizations", "POST", true},
		{"role_CLIENT", "/organizations", "POST", false},
		{"role_CLIENT", "/organizations/3/members/9", "DELETE", true},
		{"role_CLIENT", "/admin/users", "GET", false},
		{"role_ADMIN", "/admin/users", "GET", true},
		{"role_ADMIN", "/admin/users/4/status", "PATCH", true},
		{"role_unknown", "/auth/me", "GET", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method+" "+tt.path, func(t *testing.T) {
			ok, err := e.Enforce(tt.role, tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestPolicyRule_RoundTrip(t *testing.T) {
	withRule := domain.Policy{Role: "r", Resource: "/x", Action: "GET", Rule: "path.id==token.user_id"}
	without := domain.Policy{Role: "r", Resource: "/x", Action: "GET"}

	for _, p := range []domain.Policy{withRule, without} {
		vals := PolicyRule(p)
		require.Len(t, vals, 4)
		strs := make([]string, len(vals))
		for i, v := range vals {
			strs[i] = v.(string)
		}
		got, ok := PolicyFromRule(strs)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}

	_, ok := PolicyFromRule([]string{"r", "/x"})
	assert.False(t, ok)
}

func TestNewCasbinService_PersistsPolicies(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	svc, err := NewCasbinService(db, "")
	require.NoError(t, err)
	_, err = svc.E.AddPolicy(PolicyRule(domain.Policy{Role: "role_CLIENT", Resource: "/reviews", Action: "POST"})...)
	require.NoError(t, err)

	reloaded, err := NewCasbinService(db, "")
	require.NoError(t, err)
	ok, err := reloaded.E.Enforce("role_CLIENT", "/reviews", "POST")
	require.NoError(t, err)
	assert.True(t, ok)
}
