package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/archive"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
	"github.com/jonesrussell/north-cloud/social-planner/internal/export"
	"github.com/jonesrussell/north-cloud/social-planner/internal/facebook"
	"github.com/jonesrussell/north-cloud/social-planner/internal/news"
	"github.com/jonesrussell/north-cloud/social-planner/internal/service"
)

// FacebookTokenHeader carries the user access token for page listing, since
// Authorization is taken by the API bearer token.
const FacebookTokenHeader = "X-Facebook-Token"

const defaultSearchSize = 10

// Planner is the use-case surface the handlers need; *service.Planner
// implements it.
type Planner interface {
	AnalyzeBusiness(ctx context.Context, rawURL string) (*domain.BusinessProfile, error)
	Profile(ctx context.Context, id string) (*domain.BusinessProfile, error)
	BusinessPosts(ctx context.Context, businessID string) ([]*domain.Post, error)
	IndustryNews(ctx context.Context, industry domain.Industry, keywords []string) ([]domain.NewsItem, error)
	SeasonalTrends(industry domain.Industry) []news.SeasonalTrend
	GenerateContent(ctx context.Context, businessID string, prefs domain.PostPreferences, items []domain.NewsItem) ([]domain.Post, error)
	CreateSchedule(ctx context.Context, businessID string, frequency int, preferredDays []string, startDate string) (*domain.WeeklySchedule, error)
	Schedule(ctx context.Context, id string) (*domain.WeeklySchedule, error)
	ScheduledPosts(ctx context.Context, businessID string) ([]*domain.Post, error)
	UpdatePost(ctx context.Context, id string, patch service.PostPatch) (*domain.Post, error)
	DeletePost(ctx context.Context, id string) error
	PublishPost(ctx context.Context, id, pageID, token string) (*domain.Post, error)
	ConnectPage(ctx context.Context, businessID, userToken, pageID string) (*facebook.Connection, error)
	Pages(ctx context.Context, userToken string) ([]domain.Page, error)
	Analytics(ctx context.Context, businessID string) (*domain.Stats, error)
	Export(ctx context.Context, businessID string, w io.Writer) error
	SearchArchive(ctx context.Context, query, businessID string, size int) ([]archive.Hit, error)
}

// Handler serves the /api/v1 routes.
type Handler struct {
	planner Planner
	log     logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(p Planner, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{planner: p, log: log}
}

type analyzeRequest struct {
	WebsiteURL string `json:"website_url" binding:"required"`
}

// AnalyzeBusiness handles POST /api/v1/business/analyze.
func (h *Handler) AnalyzeBusiness(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid analyze request", logger.Error(err))
		badRequest(c, "website_url is required")
		return
	}

	profile, err := h.planner.AnalyzeBusiness(c.Request.Context(), req.WebsiteURL)
	if err != nil {
		respondError(c, err, "Business profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "business_id": profile.ID, "profile": profile})
}

// GetBusiness handles GET /api/v1/business/:id.
func (h *Handler) GetBusiness(c *gin.Context) {
	profile, err := h.planner.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Business profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// BusinessPosts handles GET /api/v1/business/:id/posts.
func (h *Handler) BusinessPosts(c *gin.Context) {
	posts, err := h.planner.BusinessPosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Business")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

type newsRequest struct {
	Industry string   `json:"industry" binding:"required"`
	Keywords []string `json:"keywords"`
}

// AnalyzeNews handles POST /api/v1/news/analyze.
func (h *Handler) AnalyzeNews(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "industry is required")
		return
	}

	industry := domain.ParseIndustry(req.Industry)
	items, err := h.planner.IndustryNews(c.Request.Context(), industry, req.Keywords)
	if err != nil {
		respondError(c, err, "News")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "industry": req.Industry, "insights": items})
}

// SeasonalTrends handles GET /api/v1/news/trends/:industry.
func (h *Handler) SeasonalTrends(c *gin.Context) {
	industry := domain.ParseIndustry(c.Param("industry"))
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"industry": industry,
		"trends":   h.planner.SeasonalTrends(industry),
	})
}

type preferencesRequest struct {
	Tone      string   `json:"tone"`
	PostType  string   `json:"post_type"`
	PostTypes []string `json:"post_types"`
	Frequency int      `json:"frequency"`
}

// preferences accepts the single post_type form as well as post_types.
// Unknown type names are passed on; the generator treats them as promos.
func (r preferencesRequest) preferences() domain.PostPreferences {
	prefs := domain.PostPreferences{Tone: domain.Tone(r.Tone), Frequency: r.Frequency}
	names := r.PostTypes
	if len(names) == 0 && r.PostType != "" {
		names = []string{r.PostType}
	}
	for _, name := range names {
		if t, _ := domain.ParsePostType(name); t != "" {
			prefs.PostTypes = append(prefs.PostTypes, t)
		}
	}
	return prefs
}

type generateRequest struct {
	BusinessID   string             `json:"business_id" binding:"required"`
	Preferences  preferencesRequest `json:"post_preferences"`
	IndustryNews []domain.NewsItem  `json:"industry_news"`
}

// GenerateContent handles POST /api/v1/content/generate.
func (h *Handler) GenerateContent(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid generate request", logger.Error(err))
		badRequest(c, "business_id is required")
		return
	}

	posts, err := h.planner.GenerateContent(c.Request.Context(), req.BusinessID, req.Preferences.preferences(), req.IndustryNews)
	if err != nil {
		respondError(c, err, "Business profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

type scheduleRequest struct {
	BusinessID    string   `json:"business_id" binding:"required"`
	Frequency     int      `json:"frequency"`
	PreferredDays []string `json:"preferred_days"`
	StartDate     string   `json:"start_date"`
}

// CreateSchedule handles POST /api/v1/planner/schedule.
func (h *Handler) CreateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid schedule request", logger.Error(err))
		badRequest(c, "business_id is required")
		return
	}

	schedule, err := h.planner.CreateSchedule(c.Request.Context(), req.BusinessID, req.Frequency, req.PreferredDays, req.StartDate)
	if err != nil {
		respondError(c, err, "Business profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "schedule_id": schedule.ID, "schedule": schedule})
}

// GetSchedule handles GET /api/v1/planner/schedule/:id.
func (h *Handler) GetSchedule(c *gin.Context) {
	schedule, err := h.planner.Schedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "schedule": schedule})
}

// ScheduledPosts handles GET /api/v1/posts/scheduled/:business_id.
func (h *Handler) ScheduledPosts(c *gin.Context) {
	posts, err := h.planner.ScheduledPosts(c.Request.Context(), c.Param("business_id"))
	if err != nil {
		respondError(c, err, "Business")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// UpdatePost handles PUT /api/v1/posts/:id.
func (h *Handler) UpdatePost(c *gin.Context) {
	var patch service.PostPatch
	if err := c.ShouldBindJSON(&patch); err != nil || patch.Empty() {
		badRequest(c, "No data provided")
		return
	}

	post, err := h.planner.UpdatePost(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// DeletePost handles DELETE /api/v1/posts/:id.
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.planner.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted successfully"})
}

type publishRequest struct {
	PageID      string `json:"page_id"`
	AccessToken string `json:"access_token"`
}

// PublishPost handles POST /api/v1/posts/:id/publish. Without page_id and
// access_token the page connected to the post's business is used.
func (h *Handler) PublishPost(c *gin.Context) {
	var req publishRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
	}

	post, err := h.planner.PublishPost(c.Request.Context(), c.Param("id"), req.PageID, req.AccessToken)
	if err != nil {
		respondError(c, err, "Post")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"post":    post,
		"facebook_result": gin.H{
			"post_id":  post.ExternalPostID,
			"post_url": post.ExternalURL,
		},
	})
}

type connectRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
	PageID      string `json:"page_id"`
	BusinessID  string `json:"business_id"`
}

// ConnectPage handles POST /api/v1/facebook/connect.
func (h *Handler) ConnectPage(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "access_token is required")
		return
	}

	conn, err := h.planner.ConnectPage(c.Request.Context(), req.BusinessID, req.AccessToken, req.PageID)
	if err != nil {
		respondError(c, err, "Business profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "connection": connectionResponse(conn)})
}

func connectionResponse(conn *facebook.Connection) gin.H {
	return gin.H{
		"status":       "connected",
		"page_id":      conn.Page.ID,
		"page_name":    conn.Page.Name,
		"category":     conn.Page.Category,
		"access_token": conn.Page.AccessToken,
		"permissions":  conn.Permissions,
		"connected_at": conn.ConnectedAt.UTC().Format(time.RFC3339),
		"mock_mode":    conn.Mock,
	}
}

// Pages handles GET /api/v1/facebook/pages.
func (h *Handler) Pages(c *gin.Context) {
	token := strings.TrimSpace(c.GetHeader(FacebookTokenHeader))
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": FacebookTokenHeader + " header required"})
		return
	}

	pages, err := h.planner.Pages(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, "Page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pages": pages})
}

// Analytics handles GET /api/v1/analytics?business_id=.
func (h *Handler) Analytics(c *gin.Context) {
	stats, err := h.planner.Analytics(c.Request.Context(), c.Query("business_id"))
	if err != nil {
		respondError(c, err, "Business profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analytics": stats})
}

// Export handles GET /api/v1/export?business_id=. The workbook is built
// before any header is written so failures still produce a JSON error.
func (h *Handler) Export(c *gin.Context) {
	businessID := c.Query("business_id")

	var buf bytes.Buffer
	if err := h.planner.Export(c.Request.Context(), businessID, &buf); err != nil {
		respondError(c, err, "Business profile")
		return
	}

	name := service.ExportFilename(businessID, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// SearchArchive handles GET /api/v1/archive/search?q=&business_id=&size=.
func (h *Handler) SearchArchive(c *gin.Context) {
	size := defaultSearchSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "size must be a positive integer")
			return
		}
		size = n
	}

	hits, err := h.planner.SearchArchive(c.Request.Context(), c.Query("q"), c.Query("business_id"), size)
	if err != nil {
		respondError(c, err, "Archive")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "total": len(hits), "results": hits})
}
