// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/mvshop-backend/internal/config"
	"github.com/javajoker/mvshop-backend/internal/database"
	"github.com/javajoker/mvshop-backend/internal/events"
	"github.com/javajoker/mvshop-backend/internal/i18n"
	"github.com/javajoker/mvshop-backend/internal/middleware"
	"github.com/javajoker/mvshop-backend/internal/repository"
	"github.com/javajoker/mvshop-backend/internal/repository/memory"
	"github.com/javajoker/mvshop-backend/internal/repository/postgres"
	"github.com/javajoker/mvshop-backend/internal/router"
	"github.com/javajoker/mvshop-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	setupLogging(cfg)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize store")
	}
	defer closeStore()

	if cfg.Seed.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := database.SeedInitialData(ctx, store, cfg.Seed)
		cancel()
		if err != nil {
			logrus.WithError(err).Fatal("Failed to seed initial data")
		}
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	publisher := events.New(cfg.Kafka)
	defer func() {
		if err := publisher.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close event publisher")
		}
	}()

	storage, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage")
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	done := make(chan struct{})
	limiters := middleware.NewRateLimiters(cfg.RateLimit)
	limiters.Start(done)

	r := router.Initialize(router.Deps{
		Config:    cfg,
		Store:     store,
		Publisher: publisher,
		Uploader:  storage,
		Limiters:  limiters,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":  cfg.Server.Port,
			"store": cfg.Store.Driver,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.DebugLevel)
}

// openStore builds the configured backend and returns a function releasing it.
func openStore(cfg *config.Config) (*repository.Store, func(), error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logrus.Warn("Using in-memory store; data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	if err := database.RunMigrations(db); err != nil {
		database.Close(db)
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return postgres.NewStore(db), func() { database.Close(db) }, nil
}
