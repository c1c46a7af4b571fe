package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/y0ug/gitlabauth/internal/notifications"
	"github.com/y0ug/gitlabauth/internal/webserver"
	"github.com/y0ug/gitlabauth/pkg/auth"
)

const pluginName = "gitlab-oauth"

func main() {
	// Initialize Logrus
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found. Proceeding with environment variables.")
	}

	runtimeCfg, err := loadRuntimeConfig()
	if err != nil {
		logger.Fatalf("Failed to load runtime configuration: %v", err)
	}
	level, err := runtimeCfg.level()
	if err != nil {
		logger.Fatalf("Invalid LOG_LEVEL: %v", err)
	}
	logger.SetLevel(level)

	// Load and validate the authentication policy
	settings, err := auth.LoadSettingsFromEnv()
	if err != nil {
		logger.Fatalf("Failed to load auth settings: %v", err)
	}
	authConfig, err := auth.NewConfig(settings)
	if err != nil {
		logger.Fatalf("Failed to initialize auth config: %v", err)
	}
	logger.WithFields(authConfig.LogFields()).Info("Auth configuration loaded")

	opts := []auth.Option{auth.WithLogger(logger)}
	if limiter := runtimeCfg.limiter(); limiter != nil {
		logger.WithFields(logrus.Fields{
			"rate":  runtimeCfg.APIRate,
			"burst": runtimeCfg.APIBurst,
		}).Info("GitLab API rate limiter enabled")
		opts = append(opts, auth.WithRateLimiter(limiter))
	}
	service := auth.NewService(authConfig, opts...)

	// Load notification configuration
	notificationCfg, err := notifications.LoadNotificationConfig()
	if err != nil {
		logger.Fatalf("Failed to load notification configuration: %v", err)
	}

	var notifier webserver.Notifier
	if notificationCfg.Enabled() {
		n, err := notifications.NewNotifier(notificationCfg.ShoutrrrURLs, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize notifier: %v", err)
		}
		notifier = n
		logger.Info("Notifier initialized successfully")
	} else {
		logger.Info("SHOUTRRR_URLS not set. Notifications disabled.")
	}

	webServerConfig, err := webserver.NewWebserverConfig()
	if err != nil {
		logger.Fatalf("Failed to load webserver configuration: %v", err)
	}

	webServer := webserver.NewWebServer(service, auth.NewDisabledLoginProvider(pluginName), notifier, webServerConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, serverErrors := webserver.StartWebServer(ctx, webServer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// serverErrors is closed when ListenAndServe returns.
		return <-serverErrors
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Initiating shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Web server error: %v", err)
	}

	logger.Info("Shutdown complete. Exiting.")
}
