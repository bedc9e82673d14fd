package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/locality-resolver/app/config"
	"github.com/locality-resolver/app/controllers"
	"github.com/locality-resolver/app/services"
	"github.com/locality-resolver/internal/geocoder"
	"github.com/locality-resolver/routes"
)

func main() {
	// 1. Load configuration
	loadConfig()

	// 2. Logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Locality Resolver Service")

	// 3. Classifier policy
	localityPath := viper.GetString("locality.config_path")
	localityCfg, err := config.Load(localityPath)
	if err != nil {
		logger.Fatal("Failed to load locality config", zap.String("path", localityPath), zap.Error(err))
	}
	classifier := localityCfg.Classifier()
	logger.Info("Classifier ready",
		zap.Int("regions", len(classifier.Tables().Regions())),
		zap.Int("admin_suffixes", len(classifier.Tables().AdminSuffixes())),
		zap.String("country", classifier.Policy().CountryName))

	// 4. Geocoding provider
	providerOpts := config.ProviderOptions(viper.GetViper())
	provider, err := geocoder.NewClient(providerOpts, logger)
	if err != nil {
		logger.Fatal("Failed to initialize geocoding client", zap.Error(err))
	}

	serviceCfg := config.ServiceConfig(viper.GetViper())
	if serviceCfg.APIKey == "" {
		logger.Warn("No provider API key configured; requests must carry api_key")
	}
	logger.Info("Geocoding provider",
		zap.String("base_url", providerOpts.BaseURL),
		zap.Duration("timeout", providerOpts.Timeout),
		zap.Bool("breaker", providerOpts.Breaker.Enabled))

	// 5. Service and controller
	localityService := services.NewLocalityService(provider, classifier, serviceCfg, logger)
	localityController := controllers.NewLocalityController(localityService, logger)

	// 6. Router
	if viper.GetString("app.env") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(routes.ZapLogger(logger))
	routes.SetupAllRoutes(router, localityController)

	// 7. Serve until SIGINT/SIGTERM
	port := viper.GetString("app.port")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("Locality Resolver Service starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("app.shutdown_timeout"))
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// loadConfig reads config/app.yaml (if any) and environment variables.
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

// initLogger builds a production or development zap logger from APP_ENV.
func initLogger() *zap.Logger {
	var cfg zap.Config
	if viper.GetString("app.env") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}
