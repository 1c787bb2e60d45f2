package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leavepilot-backend/internal/shared/auth"
	"leavepilot-backend/internal/shared/server/respond"
)

const (
	adminIDKey      = "adminId"
	adminEmailKey   = "adminEmail"
	adminNameKey    = "adminName"
	adminRoleKey    = "adminRole"
	adminCompanyKey = "adminCompanyId"
)

// Auth validates session tokens and stores admin identity in context.
// In dev-like environments a plain X-Dev-Admin header is accepted so local
// tooling and tests do not need the full OAuth round-trip.
func Auth(env string) gin.HandlerFunc {
	devLike := env == "dev" || env == "local"
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/auth/google/") || path == "/api/v1/health" || path == "/api/v1/metrics" {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			claims, err := auth.VerifyJWT(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			c.Set(adminIDKey, claims.Sub)
			if claims.Email != "" {
				c.Set(adminEmailKey, claims.Email)
			}
			if claims.Name != "" {
				c.Set(adminNameKey, claims.Name)
			}
			role := claims.Role
			if role == "" {
				role = auth.RoleHRAdmin
			}
			c.Set(adminRoleKey, role)
			if claims.CompanyID != "" {
				c.Set(adminCompanyKey, claims.CompanyID)
			}
			c.Next()
			return
		}

		if devLike {
			if devAdmin := strings.TrimSpace(c.GetHeader("X-Dev-Admin")); devAdmin != "" {
				c.Set(adminIDKey, "dev:"+devAdmin)
				c.Set(adminRoleKey, auth.RoleSuperadmin)
				c.Next()
				return
			}
		}

		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
	}
}

// RequireRole rejects requests whose admin role does not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if AdminRoleFromContext(c) != role {
			respond.Error(c, http.StatusForbidden, "forbidden", "insufficient role", nil)
			return
		}
		c.Next()
	}
}

// AdminIDFromContext fetches the admin ID set by the auth middleware.
func AdminIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(adminIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// AdminEmailFromContext fetches the admin email set by the auth middleware.
func AdminEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(adminEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// AdminRoleFromContext fetches the admin role set by the auth middleware.
func AdminRoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(adminRoleKey)
	if role, ok := val.(string); ok {
		return role
	}
	return ""
}

// AdminCompanyFromContext fetches the admin's company scope, if any.
func AdminCompanyFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(adminCompanyKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
