package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/north-cloud/social-planner/infrastructure/gin"
)

// RouteOptions configures the /api/v1 group.
type RouteOptions struct {
	// JWTSecret protects the group when set.
	JWTSecret string
	// RateLimiter limits the group when non-nil.
	RateLimiter *RateLimiter
	// Metrics serves GET /metrics when non-nil.
	Metrics http.Handler
}

// SetupRoutes registers the service routes. /health is registered by the
// server builder.
func SetupRoutes(router *gin.Engine, h *Handler, opts RouteOptions) {
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	v1 := infragin.ProtectedGroup(router, "/api/v1", opts.JWTSecret)
	if opts.RateLimiter != nil {
		v1.Use(opts.RateLimiter.Middleware())
	}

	business := v1.Group("/business")
	{
		business.POST("/analyze", h.AnalyzeBusiness)
		business.GET("/:id", h.GetBusiness)
		business.GET("/:id/posts", h.BusinessPosts)
	}

	newsGroup := v1.Group("/news")
	{
		newsGroup.POST("/analyze", h.AnalyzeNews)
		newsGroup.GET("/trends/:industry", h.SeasonalTrends)
	}

	v1.POST("/content/generate", h.GenerateContent)

	plannerGroup := v1.Group("/planner")
	{
		plannerGroup.POST("/schedule", h.CreateSchedule)
		plannerGroup.GET("/schedule/:id", h.GetSchedule)
	}

	posts := v1.Group("/posts")
	{
		posts.GET("/scheduled/:business_id", h.ScheduledPosts)
		posts.PUT("/:id", h.UpdatePost)
		posts.DELETE("/:id", h.DeletePost)
		posts.POST("/:id/publish", h.PublishPost)
	}

	fb := v1.Group("/facebook")
	{
		fb.POST("/connect", h.ConnectPage)
		fb.GET("/pages", h.Pages)
	}

	v1.GET("/analytics", h.Analytics)
	v1.GET("/export", h.Export)
	v1.GET("/archive/search", h.SearchArchive)
}
