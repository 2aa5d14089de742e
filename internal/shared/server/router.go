package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vralchenko/ai-jurist/internal/analyze"
	"github.com/vralchenko/ai-jurist/internal/clientinfo"
	"github.com/vralchenko/ai-jurist/internal/export"
	"github.com/vralchenko/ai-jurist/internal/extract"
	"github.com/vralchenko/ai-jurist/internal/shared/config"
	"github.com/vralchenko/ai-jurist/internal/shared/metrics"
	"github.com/vralchenko/ai-jurist/internal/shared/server/middleware"
	"github.com/vralchenko/ai-jurist/internal/shared/server/respond"
)

// RouterDeps carries the handlers and admission control the router wires up.
type RouterDeps struct {
	Config         config.Config
	AnalyzeHandler *analyze.Handler
	ExtractHandler *extract.Handler
	ExportHandler  *export.Handler
	Limiter        *middleware.FixedWindowLimiter
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
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.ExtractHandler != nil {
		deps.ExtractHandler.RegisterRoutes(api)
	}

	// The LLM-backed routes sit behind per-client admission control; the
	// cheap ones above do not.
	limited := api.Group("")
	if deps.Limiter != nil {
		limited.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: deps.Limiter,
			KeyFor: func(c *gin.Context) string {
				return clientinfo.IPFromRequest(c.Request)
			},
		}))
	}
	if deps.AnalyzeHandler != nil {
		deps.AnalyzeHandler.RegisterRoutes(limited)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(limited)
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
