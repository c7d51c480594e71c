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

	"github.com/timmy/cobuy/internal/api"
	"github.com/timmy/cobuy/internal/config"
	"github.com/timmy/cobuy/internal/engine"
	"github.com/timmy/cobuy/internal/logger"
	"github.com/timmy/cobuy/internal/repository"
	"github.com/timmy/cobuy/internal/service"
	"github.com/timmy/cobuy/internal/source"
	"github.com/timmy/cobuy/internal/storage"
)

func main() {
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// CONFIG_PATH overrides the ./configs/config.yaml lookup
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}
	recRepo := repository.NewRecommendationRepository(db)

	ctx := context.Background()

	var objectStorage storage.ObjectStorage
	if cfg.Storage.Enabled() {
		s3Storage, err := storage.NewStorage(&storage.S3Config{
			Type:      storage.StorageType(cfg.Storage.Type),
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize storage")
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
		}
		objectStorage = s3Storage
	}

	engineOpts := []engine.Option{engine.WithTopN(cfg.Recommender.TopN)}
	if cfg.Recommender.SeedURI != "" {
		seed, err := loadSeed(ctx, cfg.Recommender.SeedURI, objectStorage)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to load seed dataset")
		}
		engineOpts = append(engineOpts, engine.WithDefaultDataset(seed))
	}
	recEngine := engine.New(engineOpts...)

	var archive *service.RecommendationConfig
	if objectStorage != nil {
		archive = &service.RecommendationConfig{
			Archive:       objectStorage,
			ArchivePrefix: cfg.Storage.ArchivePrefix,
		}
	}
	recService := service.NewRecommendationService(recEngine, recRepo, appLogger, archive)

	if cfg.Recommender.TrainOnStart {
		if _, err := recService.Train(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to train model on startup")
		}
	}

	router := api.SetupRouter(recService, &cfg.Server, appLogger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}

// loadSeed fetches and validates the dataset that replaces the built-in default.
func loadSeed(ctx context.Context, uri string, store storage.ObjectStorage) (string, error) {
	src, err := source.FromURI(uri, store)
	if err != nil {
		return "", err
	}

	loadCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	text, err := src.Load(loadCtx)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", src.GetSourceID(), err)
	}
	if _, err := engine.Parse(text); err != nil {
		return "", fmt.Errorf("invalid dataset %s: %w", src.GetSourceID(), err)
	}

	logger.Info("Seed dataset loaded: source=%s, size=%d", src.GetSourceID(), len(text))
	return text, nil
}
