package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"roadcast/internal/config"
	"roadcast/internal/forecast"
	"roadcast/internal/geocode"
	"roadcast/internal/hazard"
	"roadcast/internal/providers/nominatim"
	"roadcast/internal/providers/openmeteo"
	"roadcast/internal/providers/osrm"
	"roadcast/internal/route"
)

// App encapsulates application dependencies
type App struct {
	router *gin.Engine
	logger *slog.Logger
	cfg    *config.Config

	forecastService forecast.Service
	planner         route.Planner
	geocodeService  geocode.Service
	hazardService   hazard.Service

	hazardStore *hazard.Store
	sweeper     *cron.Cron
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	forecastSvc := forecast.NewServiceWithProvider(
		openmeteo.NewForecastClientWithOptions(cfg.Providers.OpenMeteoBaseURL, cfg.Providers.ForecastTimeout, logger),
		forecast.NewCache(),
		logger,
	)

	planner := route.NewPlannerWithProviders(
		osrm.NewClientWithOptions(cfg.Providers.OsrmBaseURL, cfg.Providers.RoutingTimeout, logger),
		route.NewEvaluator(forecastSvc, cfg.App.SampleCount, logger),
		logger,
	)

	geocodeSvc := geocode.NewServiceWithProvider(
		nominatim.NewClientWithOptions(cfg.Providers.NominatimBaseURL, cfg.Providers.GeocodeTimeout, cfg.Providers.GeocodeMinGap, logger),
		logger,
	)

	store, err := hazard.OpenStore(cfg.Hazard.DBPath, cfg.Hazard.TTL, logger)
	if err != nil {
		return nil, err
	}

	scorerCfg := hazard.DefaultScorerConfig()
	scorerCfg.ConfirmIncrement = cfg.Hazard.ConfirmIncrement
	scorerCfg.RejectDecrement = cfg.Hazard.RejectDecrement
	scorerCfg.ConfirmThreshold = cfg.Hazard.ConfirmThreshold
	scorerCfg.LowTrustThreshold = cfg.Hazard.LowTrustThreshold

	hazardSvc := hazard.NewService(store, hazard.NewScorer(scorerCfg), forecastSvc, cfg.Hazard.MinTrust, logger)

	sweeper, err := hazard.StartExpirySweep(store, cfg.Hazard.SweepSchedule, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	app := &App{
		router:          router,
		logger:          logger,
		cfg:             cfg,
		forecastService: forecastSvc,
		planner:         planner,
		geocodeService:  geocodeSvc,
		hazardService:   hazardSvc,
		hazardStore:     store,
		sweeper:         sweeper,
	}

	logger.Info("application initialized")

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}

// Close stops the expiry sweep and releases the hazard store.
func (app *App) Close() {
	app.sweeper.Stop()
	if err := app.hazardStore.Close(); err != nil {
		app.logger.Error("failed to close hazard store", "error", err)
	}
}
