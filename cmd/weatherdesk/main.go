package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	httpapi "weatherdesk/internal/api/http"
	"weatherdesk/internal/backend"
	"weatherdesk/internal/config"
	"weatherdesk/internal/geocode"
	"weatherdesk/internal/mapview"
	"weatherdesk/internal/panel"
	"weatherdesk/internal/prediction"
	"weatherdesk/internal/search"
	"weatherdesk/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := newLogger(cfg)

	// Shared HTTP client for all outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	backendClient := backend.NewClient(httpClient, cfg.BackendBaseURL, logger)

	var geocoder geocode.Geocoder
	switch cfg.GeocoderProvider {
	case config.GeocoderGoogle:
		geocoder = geocode.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey, logger)
	default:
		geocoder = geocode.NewNominatimGeocoder(httpClient, cfg.NominatimBaseURL, logger)
	}
	locator := geocode.NewFixedLocator(cfg.DeviceLatitude, cfg.DeviceLongitude)

	store := prediction.NewFileStore(cfg.PredictionsFile, logger)
	actuals := prediction.NewSimulatedSource(time.Now().UnixNano())
	predictions := prediction.NewManager(store, actuals, logger)

	state := session.NewState()
	mapView := mapview.NewView()

	weatherPanel := panel.New("weather", logger)
	activityPanel := panel.New("activity", logger)
	healthPanel := panel.New("health", logger)
	historyPanel := panel.New("history", logger)

	searcher := search.NewController(
		backendClient,
		geocoder,
		locator,
		state,
		mapView,
		weatherPanel,
		[]*panel.Controller{activityPanel, healthPanel, historyPanel},
		logger,
	)

	app := fiber.New(fiber.Config{
		AppName:               "weatherdesk",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherdesk",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Search:        searcher,
		Predictions:   predictions,
		Session:       state,
		Backend:       backendClient,
		Map:           mapView,
		WeatherPanel:  weatherPanel,
		ActivityPanel: activityPanel,
		HealthPanel:   healthPanel,
		HistoryPanel:  historyPanel,
	})

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting weatherdesk")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error().Err(err).Msg("fiber server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
}

func newLogger(cfg *config.AppConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.LogFormat == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger
}
