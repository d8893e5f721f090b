package main

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"roadcast/internal/hazard"
	"roadcast/internal/types"
)

// streamBuffer is the per-subscriber queue; a client this far behind starts
// missing updates rather than backpressuring writers.
const streamBuffer = 16

// CreateHazardInput defines the request body for submitting a hazard report.
// Coordinates are pointers so the equator and prime meridian survive the
// required check.
type CreateHazardInput struct {
	Latitude  *float64 `json:"latitude" binding:"required"`  // Latitude in decimal degrees
	Longitude *float64 `json:"longitude" binding:"required"` // Longitude in decimal degrees
	Category  string   `json:"category" binding:"required"`  // waterlogging, accident, or roadblock
}

// NearbyHazardsInput defines the query parameters for the nearby endpoint
type NearbyHazardsInput struct {
	Latitude  *float64 `form:"latitude" binding:"required"`  // Latitude in decimal degrees
	Longitude *float64 `form:"longitude" binding:"required"` // Longitude in decimal degrees
	RadiusKm  float64  `form:"radius_km"`                    // Search radius, defaults to 5km
}

// NearbyHazardsResponse carries trusted active reports, soonest-expiring first
type NearbyHazardsResponse struct {
	Reports []hazard.Report `json:"reports"`
}

// handleCreateHazard ingests a crowd-sourced hazard report
func (app *App) handleCreateHazard(c *gin.Context) {
	var input CreateHazardInput

	// Bind and validate the request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := hazard.ParseCategory(input.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := app.hazardService.Report(c.Request.Context(),
		types.NewCoords(*input.Latitude, *input.Longitude), category)
	if err != nil {
		app.writeServiceError(c, err, "report not found")
		return
	}

	c.JSON(http.StatusCreated, report)
}

// handleConfirmHazard records a peer confirmation for a report
func (app *App) handleConfirmHazard(c *gin.Context) {
	report, err := app.hazardService.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		app.writeServiceError(c, err, "report not found")
		return
	}

	c.JSON(http.StatusOK, report)
}

// handleRejectHazard records a peer rejection for a report
func (app *App) handleRejectHazard(c *gin.Context) {
	report, err := app.hazardService.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		app.writeServiceError(c, err, "report not found")
		return
	}

	c.JSON(http.StatusOK, report)
}

// handleNearbyHazards returns trusted, unexpired reports around a point
func (app *App) handleNearbyHazards(c *gin.Context) {
	var input NearbyHazardsInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.RadiusKm <= 0 {
		input.RadiusKm = 5
	}

	reports, err := app.hazardService.Nearby(c.Request.Context(),
		types.NewCoords(*input.Latitude, *input.Longitude), input.RadiusKm)
	if err != nil {
		app.writeServiceError(c, err, "report not found")
		return
	}

	c.JSON(http.StatusOK, NearbyHazardsResponse{Reports: reports})
}

// handleStreamHazards pushes report creations and trust updates to the
// client as server-sent events until the client disconnects
func (app *App) handleStreamHazards(c *gin.Context) {
	updates, cancel := app.hazardStore.Subscribe(streamBuffer)
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case report, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("report", report)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
