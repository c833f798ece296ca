package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/model"
)

// Policy decides whether a role may perform an HTTP method on a
// collection. Policies are pure predicates: they never look at which
// row is targeted (appointment row filtering happens in the handler).
type Policy func(role model.Role, method string) bool

// safe reports whether the method is read-only.
func safe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func AdminOnly(role model.Role, _ string) bool {
	return role == model.RoleAdmin
}

func AdminOrTechnicianReadOnly(role model.Role, method string) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleTechnician:
		return safe(method)
	}
	return false
}

func AdminOrTechnicianCreateOrReadOnly(role model.Role, method string) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleTechnician:
		return safe(method) || method == http.MethodPost
	}
	return false
}

func AdminOrSecretaryOrTechnicianReadOnly(role model.Role, method string) bool {
	switch role {
	case model.RoleAdmin, model.RoleSecretary:
		return true
	case model.RoleTechnician:
		return safe(method)
	}
	return false
}

func AdminOrSecretaryOrTechnicianCreateOrReadOnly(role model.Role, method string) bool {
	switch role {
	case model.RoleAdmin, model.RoleSecretary:
		return true
	case model.RoleTechnician:
		return safe(method) || method == http.MethodPost
	}
	return false
}

// Authenticated admits any principal regardless of role.
func Authenticated(model.Role, string) bool { return true }

// Require enforces a policy after Auth has resolved the principal.
func Require(p Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "authentication required"})
			return
		}
		if !p(principal.Role, c.Request.Method) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "permission denied"})
			return
		}
		c.Next()
	}
}
