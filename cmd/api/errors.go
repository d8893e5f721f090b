package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roadcast/internal/apperr"
	"roadcast/internal/route"
)

// writeServiceError maps the service-layer error taxonomy to HTTP statuses.
// notFoundMsg lets each endpoint phrase its own 404.
func (app *App) writeServiceError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, route.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrUnavailable), errors.Is(err, apperr.ErrMalformed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upstream provider unavailable"})
	default:
		app.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
