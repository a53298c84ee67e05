package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/circuitbreaker"
	infraerrors "github.com/jonesrussell/north-cloud/social-planner/infrastructure/errors"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/analyzer"
	"github.com/jonesrussell/north-cloud/social-planner/internal/database"
	"github.com/jonesrussell/north-cloud/social-planner/internal/facebook"
	"github.com/jonesrussell/north-cloud/social-planner/internal/planner"
	"github.com/jonesrussell/north-cloud/social-planner/internal/service"
)

// respondError maps err to a status code and writes {"error": ...}.
// entity names the resource in not-found messages.
func respondError(c *gin.Context, err error, entity string) {
	var verr *planner.ValidationError
	var herr *infraerrors.HTTPError

	switch {
	case errors.As(err, &verr),
		errors.Is(err, service.ErrNotEnoughPosts),
		errors.Is(err, service.ErrNoConnection),
		errors.Is(err, analyzer.ErrEmptyURL),
		errors.Is(err, facebook.ErrMissingPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, facebook.ErrPageNotFound),
		errors.Is(err, facebook.ErrPostNotFound),
		errors.Is(err, facebook.ErrNoPages):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyPublished):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Facebook is unavailable, try again later"})
	case errors.As(err, &herr):
		logger.FromContext(c.Request.Context()).Warn("Upstream request failed",
			logger.Int("upstream_status", herr.StatusCode),
			logger.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
