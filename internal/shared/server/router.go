package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pulse-backend/internal/insights"
	"pulse-backend/internal/meetings"
	"pulse-backend/internal/services/health"
	"pulse-backend/internal/shared/config"
	"pulse-backend/internal/shared/metrics"
	"pulse-backend/internal/shared/server/middleware"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	MeetingsHandler *meetings.Handler
	InsightsHandler *insights.Handler
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
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"ANALYZE": {Rate: 1, Burst: 10},
			},
			GroupFor: analyzeGroup,
		}),
	)

	healthSvc := health.NewService()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, healthSvc.Status())
	})
	api.GET("/metrics", metrics.Handler())

	if deps.MeetingsHandler != nil {
		deps.MeetingsHandler.RegisterRoutes(api)
	}
	if deps.InsightsHandler != nil {
		deps.InsightsHandler.RegisterRoutes(api)
	}

	return r
}

// analyzeGroup throttles analysis starts separately from reads.
func analyzeGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && strings.HasSuffix(c.Request.URL.Path, "/insights") {
		return "ANALYZE"
	}
	return ""
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
