package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"image_to_code_server/config"
	"image_to_code_server/internal/ai"
	"image_to_code_server/internal/api"
)

func main() {
	// --- Load .env file ---
	// Must run before viper reads the environment. The outcome is logged once the logger exists.
	envErr := godotenv.Load()

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".") // Load from config.yaml or env vars
	if err != nil {
		slog.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	switch {
	case envErr == nil:
		logger.Info("loaded environment variables from .env file")
	case os.IsNotExist(envErr):
		logger.Info(".env file not found, relying on system environment variables")
	default:
		logger.Warn("error loading .env file", "error", envErr)
	}

	if cfg.ConfigFile != "" {
		logger.Info("using configuration file", "file", cfg.ConfigFile)
	} else {
		logger.Info("config file not found, relying on environment variables")
	}
	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
	}

	// --- Dependency Initialization ---
	httpClient := &http.Client{Timeout: cfg.GatewayTimeout}
	gateway := newGateway(cfg, httpClient)
	aiGenerator := ai.NewGenerator(gateway, cfg.VisionModel(), cfg.CodeModel(), logger)
	apiHandler := api.NewAPIHandler(aiGenerator, logger, cfg.MaxUploadMB<<20)

	logger.Info("model gateway ready",
		"provider", gateway.Name(),
		"vision_model", cfg.VisionModel(),
		"code_model", cfg.CodeModel(),
		"timeout", cfg.GatewayTimeout,
	)

	// --- Start API Server ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info("running in gin debug mode")
	}

	router := gin.New()        // Use gin.New() for more control over middleware
	router.Use(gin.Logger())   // Access log
	router.Use(gin.Recovery()) // Add panic recovery middleware
	router.Use(api.RequestID())
	router.MaxMultipartMemory = cfg.MaxUploadMB << 20

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	router.Use(cors.New(corsConfig))

	api.RegisterRoutes(router, apiHandler) // Register API endpoints

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Model calls can take most of GatewayTimeout, so the write timeout has to cover it.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GatewayTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting API server", "address", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("API server listen error", "error", err)
			os.Exit(1)
		}
		logger.Info("API server has stopped listening")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("received signal, shutting down server", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server forced shutdown", "error", err)
	} else {
		logger.Info("API server gracefully stopped")
	}

	logger.Info("application exiting")
}

func newGateway(cfg config.Config, httpClient *http.Client) ai.Gateway {
	if cfg.AIProvider == config.ProviderOpenRouter {
		return ai.NewOpenRouterGateway(ai.OpenRouterConfig{
			APIKey:     cfg.OpenRouterAPIKey,
			BaseURL:    cfg.OpenRouterBaseURL,
			Referer:    cfg.OpenRouterReferer,
			Title:      cfg.OpenRouterTitle,
			HTTPClient: httpClient,
		})
	}
	return ai.NewGeminiGateway(ai.GeminiConfig{
		APIKey:     cfg.GeminiAPIKey,
		Endpoint:   cfg.GeminiEndpoint,
		APIVersion: cfg.GeminiAPIVersion,
		HTTPClient: httpClient,
	})
}

// newLogger writes text in development and JSON in production.
func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
