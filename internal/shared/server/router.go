package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-composer/internal/compose"
	"resume-composer/internal/generatedresumes"
	"resume-composer/internal/jobdescriptions"
	"resume-composer/internal/profiles"
	"resume-composer/internal/resumes"
	"resume-composer/internal/services/health"
	"resume-composer/internal/shared/config"
	"resume-composer/internal/shared/metrics"
	"resume-composer/internal/shared/server/middleware"
	"resume-composer/internal/shared/server/respond"
	"resume-composer/internal/users"
)

const composeRateGroup = "COMPOSE"

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config          config.Config
	Tokens          middleware.TokenVerifier
	Health          *health.Service
	Users           *users.Handler
	Profiles        *profiles.Handler
	JobDescriptions *jobdescriptions.Handler
	Compose         *compose.Handler
	Generated       *generatedresumes.Handler
	Resumes         *resumes.Handler
	ComposeLimiter  *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		svc := deps.Health
		if svc == nil {
			svc = health.NewService(nil)
		}
		body, ok := svc.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, body)
	})

	if deps.Users != nil {
		deps.Users.RegisterPublicRoutes(api)
	}

	protected := api.Group("", middleware.Auth(deps.Tokens))
	if deps.Users != nil {
		deps.Users.RegisterRoutes(protected)
	}
	if deps.Profiles != nil {
		deps.Profiles.RegisterRoutes(protected)
	}
	if deps.JobDescriptions != nil {
		deps.JobDescriptions.RegisterRoutes(protected)
	}
	if deps.Compose != nil {
		deps.Compose.RegisterRoutes(protected, middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				composeRateGroup: middleware.PerMinute(deps.Config.ComposeRatePerMinute, deps.Config.ComposeBurst),
			},
			DefaultGroup: composeRateGroup,
			Limiter:      deps.ComposeLimiter,
		}))
	}
	if deps.Generated != nil {
		deps.Generated.RegisterRoutes(protected)
	}
	if deps.Resumes != nil {
		deps.Resumes.RegisterRoutes(protected)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Not found.", nil)
	})

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
