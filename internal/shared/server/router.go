package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leavepilot-backend/internal/audit"
	googleauth "leavepilot-backend/internal/auth"
	"leavepilot-backend/internal/companies"
	"leavepilot-backend/internal/content"
	"leavepilot-backend/internal/employees"
	"leavepilot-backend/internal/ingest"
	"leavepilot-backend/internal/onboarding"
	"leavepilot-backend/internal/shared/auth"
	"leavepilot-backend/internal/shared/config"
	"leavepilot-backend/internal/shared/metrics"
	"leavepilot-backend/internal/shared/server/middleware"
	"leavepilot-backend/internal/shared/server/respond"
	"leavepilot-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	IngestHandler     *ingest.Handler
	CompaniesHandler  *companies.Handler
	EmployeesHandler  *employees.Handler
	ContentHandler    *content.Handler
	OnboardingHandler *onboarding.Handler
	AuditHandler      *audit.Handler
	UsersHandler      *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			// Uploads fan out to model providers; keep them on a budget.
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD": {Rate: 1, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasSuffix(c.Request.URL.Path, "/documents") {
					return "UPLOAD"
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	// Superadmin console routes share the /api/v1 prefix behind a role gate.
	console := api.Group("", middleware.RequireRole(auth.RoleSuperadmin))

	if deps.IngestHandler != nil {
		deps.IngestHandler.RegisterRoutes(api)
	}
	if deps.EmployeesHandler != nil {
		deps.EmployeesHandler.RegisterRoutes(api)
	}
	if deps.OnboardingHandler != nil {
		deps.OnboardingHandler.RegisterRoutes(api)
	}
	if deps.CompaniesHandler != nil {
		deps.CompaniesHandler.RegisterRoutes(api, console)
	}
	if deps.ContentHandler != nil {
		deps.ContentHandler.RegisterRoutes(api, console)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api, console)
	}
	if deps.AuditHandler != nil {
		deps.AuditHandler.RegisterRoutes(console)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
