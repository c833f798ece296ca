package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hvac-office-api/internal/auth"
	"hvac-office-api/internal/model"
)

const principalKey = "principal"

// Principal is the authenticated caller, resolved once per request
// from the bearer token's claims.
type Principal struct {
	UserID int64
	Role   model.Role
}

func (p Principal) IsAdmin() bool      { return p.Role == model.RoleAdmin }
func (p Principal) IsSecretary() bool  { return p.Role == model.RoleSecretary }
func (p Principal) IsTechnician() bool { return p.Role == model.RoleTechnician }

// CurrentPrincipal returns the request's principal; ok is false on
// unauthenticated routes.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	return v.(Principal), true
}

// Auth validates the Authorization: Bearer <jwt> header and stores the
// principal on the context. Requests without a valid token get 401.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if h := c.GetHeader("Authorization"); h != "" {
			raw = strings.TrimPrefix(h, "Bearer ")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "authentication required"})
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid token"})
			return
		}

		c.Set(principalKey, Principal{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}
