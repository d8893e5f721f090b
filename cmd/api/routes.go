package main

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Geocoding
	app.router.GET("/geocode", app.handleGeocode)

	// Route analysis
	app.router.POST("/routes/analyze", app.handleAnalyzeRoutes)

	// Crowd-sourced hazard reports
	app.router.POST("/hazards", app.handleCreateHazard)
	app.router.POST("/hazards/:id/confirm", app.handleConfirmHazard)
	app.router.POST("/hazards/:id/reject", app.handleRejectHazard)
	app.router.GET("/hazards/nearby", app.handleNearbyHazards)
	app.router.GET("/hazards/stream", app.handleStreamHazards)
}
