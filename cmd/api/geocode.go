package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadcast/internal/geocode"
)

// GeocodeInput defines the query parameters for the geocode endpoint
type GeocodeInput struct {
	Query string `form:"q" binding:"required"` // Free-text place query
}

// GeocodeResponse wraps the ranked candidate places for a query
type GeocodeResponse struct {
	Suggestions []geocode.Suggestion `json:"suggestions"`
}

// handleGeocode resolves a free-text query to candidate coordinates
func (app *App) handleGeocode(c *gin.Context) {
	var input GeocodeInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, err := app.geocodeService.Suggest(c.Request.Context(), input.Query)
	if err != nil {
		app.writeServiceError(c, err, "no places matched the query")
		return
	}

	c.JSON(http.StatusOK, GeocodeResponse{Suggestions: suggestions})
}
