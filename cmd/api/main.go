package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-echo-newsroom/config"
	"go-echo-newsroom/internal/database"
	"go-echo-newsroom/internal/handlers"
	"go-echo-newsroom/internal/i18n"
	"go-echo-newsroom/internal/jobs"
	"go-echo-newsroom/internal/logging"
	"go-echo-newsroom/internal/middleware"
	"go-echo-newsroom/internal/render"
	"go-echo-newsroom/internal/repository"
	"go-echo-newsroom/internal/services"
	"go-echo-newsroom/internal/telemetry"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.IsDevelopment(), cfg.OTelServiceName)

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName: cfg.OTelServiceName,
		Endpoint:    cfg.OTelEndpoint,
		Environment: cfg.Environment,
	})
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	if err := middleware.InitMetrics(); err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to initialize metrics")
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to run database migrations")
	}

	translator, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("failed to load translations")
	}

	jobClient := jobs.NewClient(cfg.RedisAddr())
	defer jobClient.Close()

	articleService := services.NewArticleService(repository.NewArticleRepository(db), jobClient)
	userService := services.NewUserService(repository.NewUserRepository(db))

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(otelecho.Middleware(cfg.OTelServiceName, otelecho.WithSkipper(func(c echo.Context) bool {
		return c.Path() == "/api/health" || c.Path() == "/metrics"
	})))
	e.Use(middleware.Metrics())
	e.Use(middleware.Locale(translator))
	e.HTTPErrorHandler = middleware.ErrorHandler

	if cfg.IsDevelopment() {
		e.Use(echomiddleware.Logger())
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handlers.Register(e, handlers.Handlers{
		Health:   handlers.NewHealthHandler(db, cfg.RedisAddr()),
		Articles: handlers.NewArticleHandler(articleService, render.NewBuilder(translator)),
		Admin:    handlers.NewAdminHandler(articleService, userService),
	}, cfg.JWTSecret)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logging.Logger().Info().Str("port", cfg.Port).Str("locale", cfg.DefaultLocale.String()).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger().Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Logger().Error().Err(err).Msg("failed to shutdown server")
	}
}
