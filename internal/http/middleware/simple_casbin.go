package middleware

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/util"
	"github.com/gin-gonic/gin"
)

// CasbinMiddleware defines the interface for Casbin authorization middleware
type CasbinMiddleware interface {
	Enforce() gin.HandlerFunc
}

// SimpleCasbinMW authorizes requests against Casbin policies and applies the
// optional field rule stored in the v3 column, e.g. "path.id==token.user_id".
type SimpleCasbinMW struct {
	enforcer *casbin.Enforcer
}

// NewSimpleCasbinMW creates a new SimpleCasbinMW instance
func NewSimpleCasbinMW(enforcer *casbin.Enforcer) *SimpleCasbinMW {
	return &SimpleCasbinMW{
		enforcer: enforcer,
	}
}

// Enforce returns the Casbin authorization middleware
func (mw *SimpleCasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		_, userExists := c.Get(ContextUserID)
		userRole, roleExists := c.Get(ContextUserRole)
		if !userExists || !roleExists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User ID or role not found in token"})
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		casbinRole := "role_" + fmt.Sprintf("%v", userRole)

		allowed, rules, err := mw.checkPermission(casbinRole, path, c.Request.Method)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		if len(rules) > 0 {
			tokenClaims := extractTokenClaims(c)
			var lastErr error
			passed := false
			for _, rule := range rules {
				ok, err := mw.validateFields(c, rule, tokenClaims)
				if err != nil {
					lastErr = err
					continue
				}
				if ok {
					passed = true
					break
				}
			}
			if !passed {
				details := "Request values do not match token claims"
				if lastErr != nil {
					details = lastErr.Error()
				}
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":   "Field validation failed",
					"details": details,
				})
				return
			}
		}

		c.Next()
	})
}

// checkPermission enforces the request and collects the field rules of every
// policy that grants it, including policies inherited through role groupings.
// A nil rule list means at least one granting policy carries no rule.
func (mw *SimpleCasbinMW) checkPermission(role, path, method string) (bool, []string, error) {
	allowed, err := mw.enforcer.Enforce(role, path, method)
	if err != nil {
		return false, nil, fmt.Errorf("failed to enforce policy: %w", err)
	}
	if !allowed {
		return false, nil, nil
	}

	policies, err := mw.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return false, nil, fmt.Errorf("failed to get policies for role %s: %w", role, err)
	}

	var rules []string
	for _, policy := range policies {
		if len(policy) < 3 {
			continue
		}
		if !util.KeyMatch2(path, policy[1]) || !mw.methodMatches(method, policy[2]) {
			continue
		}
		rule := ""
		if len(policy) > 3 {
			rule = policy[3]
		}
		if rule == "" || rule == "*" {
			return true, nil, nil
		}
		rules = append(rules, rule)
	}

	return true, rules, nil
}

// validateFields checks every condition of a rule joined by &&
func (mw *SimpleCasbinMW) validateFields(c *gin.Context, validationRule string, tokenClaims map[string]interface{}) (bool, error) {
	if validationRule == "" || validationRule == "*" {
		return true, nil
	}

	for _, condition := range strings.Split(validationRule, "&&") {
		condition = strings.TrimSpace(condition)
		if condition == "" {
			continue
		}

		valid, err := mw.validateSingleCondition(c, condition, tokenClaims)
		if err != nil {
			return false, fmt.Errorf("validation condition '%s' failed: %w", condition, err)
		}
		if !valid {
			return false, nil
		}
	}

	return true, nil
}

// methodMatches supports exact methods, "*" and alternations like (GET|POST)
func (mw *SimpleCasbinMW) methodMatches(requestMethod, policyMethod string) bool {
	if requestMethod == policyMethod || policyMethod == "*" {
		return true
	}

	if strings.HasPrefix(policyMethod, "(") && strings.HasSuffix(policyMethod, ")") {
		pattern := strings.Trim(policyMethod, "()")
		regex, err := regexp.Compile("^(" + pattern + ")$")
		if err != nil {
			return false
		}
		return regex.MatchString(requestMethod)
	}

	return false
}

// validateSingleCondition evaluates "source.field==token.claim"
func (mw *SimpleCasbinMW) validateSingleCondition(c *gin.Context, condition string, tokenClaims map[string]interface{}) (bool, error) {
	parts := strings.Split(condition, "==")
	if len(parts) != 2 {
		return false, fmt.Errorf("unsupported condition format: %s (only == is supported)", condition)
	}

	leftSide := strings.TrimSpace(parts[0])
	rightSide := strings.TrimSpace(parts[1])

	leftValue, err := requestValue(c, leftSide)
	if err != nil {
		return false, fmt.Errorf("failed to extract request value '%s': %w", leftSide, err)
	}

	rightValue, err := tokenValue(rightSide, tokenClaims)
	if err != nil {
		return false, fmt.Errorf("failed to extract token value '%s': %w", rightSide, err)
	}

	return fmt.Sprintf("%v", leftValue) == fmt.Sprintf("%v", rightValue), nil
}

// extractTokenClaims collects the claims AuthMiddleware put on the context
func extractTokenClaims(c *gin.Context) map[string]interface{} {
	claims := make(map[string]interface{})

	if userID, exists := c.Get(ContextUserID); exists {
		claims["user_id"] = userID
	}
	if userRole, exists := c.Get(ContextUserRole); exists {
		claims["role"] = userRole
	}
	if sessionID, exists := c.Get(ContextSessionID); exists {
		claims["session_id"] = sessionID
	}

	return claims
}
