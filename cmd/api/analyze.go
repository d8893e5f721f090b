package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadcast/internal/types"
)

// AnalyzeRoutesInput defines the request body for route analysis
type AnalyzeRoutesInput struct {
	Origin      types.Coords `json:"origin" binding:"required"`
	Destination types.Coords `json:"destination" binding:"required"`
}

// AnalyzeRoutesResponse carries every evaluated alternative, safest first
type AnalyzeRoutesResponse struct {
	Routes []types.AnalyzedRoute `json:"routes"`
}

// handleAnalyzeRoutes fetches route alternatives between two points,
// weather-checks each along its length, and returns them ranked
func (app *App) handleAnalyzeRoutes(c *gin.Context) {
	var input AnalyzeRoutesInput

	// Bind and validate the request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Clients that reissue the analysis on every map edit send a stable
	// session id so only their own newer request supersedes this one.
	session := c.GetHeader("X-Session-ID")

	routes, err := app.planner.Analyze(c.Request.Context(), session, input.Origin, input.Destination)
	if err != nil {
		app.writeServiceError(c, err, "destination unreachable by road")
		return
	}

	c.JSON(http.StatusOK, AnalyzeRoutesResponse{Routes: routes})
}
