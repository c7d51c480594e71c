package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/cobuy/internal/domain"
	"github.com/timmy/cobuy/internal/engine"
	"github.com/timmy/cobuy/internal/logger"
	"github.com/timmy/cobuy/internal/storage"
	"golang.org/x/sync/singleflight"
)

// Recommender is the engine surface used by the service.
type Recommender interface {
	Train() error
	SetCSVData(csvText string)
	Predict(inputs []int) ([]int, error)
	IsTrained() bool
	State() engine.TrainingState
	GetAllProducts() ([]int, error)
	Stats() engine.Stats
}

// RecommendationStore is the append-only recommendation log.
type RecommendationStore interface {
	Create(ctx context.Context, rec *domain.Recommendation) error
	ListRecent(ctx context.Context, limit int) ([]domain.Recommendation, error)
	Count(ctx context.Context) (int64, error)
}

// RecommendationConfig holds optional settings for RecommendationService.
type RecommendationConfig struct {
	// Archive receives a copy of every accepted upload when set.
	Archive       storage.ObjectStorage
	ArchivePrefix string
}

// RecommendationService serves recommendations and manages retraining.
type RecommendationService struct {
	engine        Recommender
	store         RecommendationStore
	archive       storage.ObjectStorage
	archivePrefix string
	logger        *logger.Logger

	lazyTrain singleflight.Group
}

// NewRecommendationService creates a new recommendation service.
// Parameters:
//   - rec: trained or untrained recommendation engine.
//   - store: recommendation log.
//   - log: logger instance.
//   - cfg: optional settings; nil disables archiving.
//
// Returns:
//   - *RecommendationService: initialized service.
func NewRecommendationService(rec Recommender, store RecommendationStore, log *logger.Logger, cfg *RecommendationConfig) *RecommendationService {
	s := &RecommendationService{
		engine: rec,
		store:  store,
		logger: log,
	}
	if cfg != nil {
		s.archive = cfg.Archive
		s.archivePrefix = cfg.ArchivePrefix
	}
	return s
}

// log returns a logger from context if available, otherwise returns the service logger
func (s *RecommendationService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != logger.GetDefault() {
		return l
	}
	return s.logger
}

// logCtx returns ctx carrying the logger chosen by log, for the ctx-based helpers.
func (s *RecommendationService) logCtx(ctx context.Context) context.Context {
	return s.log(ctx).WithContext(ctx)
}

// RecommendResult is one served recommendation.
type RecommendResult struct {
	Input     []int `json:"input"`
	Suggested []int `json:"suggested"`
}

// StatusResult summarizes the engine and the recommendation log.
type StatusResult struct {
	engine.TrainingState
	Model  engine.Stats `json:"model"`
	Served int64        `json:"served_recommendations"`
}

// Recommend predicts products for inputs and appends the result to the log.
// An untrained engine is trained once; a prediction that still reports
// ErrNotTrained is retried once after another training pass.
func (s *RecommendationService) Recommend(ctx context.Context, inputs []int) (*RecommendResult, error) {
	if len(inputs) == 0 {
		return nil, engine.ErrEmptyInput
	}

	trained := false
	if !s.engine.IsTrained() {
		if err := s.trainLazily(ctx); err != nil {
			return nil, err
		}
		trained = true
	}

	suggested, err := s.engine.Predict(inputs)
	if errors.Is(err, engine.ErrNotTrained) && !trained {
		if err := s.trainLazily(ctx); err != nil {
			return nil, err
		}
		suggested, err = s.engine.Predict(inputs)
	}
	if err != nil {
		return nil, err
	}

	rec := &domain.Recommendation{
		InputProducts:       domain.IntArray(inputs),
		RecommendedProducts: domain.IntArray(suggested),
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record recommendation: %w", err)
	}

	logger.With(logger.Fields{"record_id": rec.ID}).WithCount(len(suggested)).
		Info(s.logCtx(ctx), "Recommendation served: inputs=%v, suggested=%v", inputs, suggested)

	return &RecommendResult{Input: inputs, Suggested: suggested}, nil
}

// Train retrains on the current dataset and returns the product universe.
func (s *RecommendationService) Train(ctx context.Context) ([]int, error) {
	if err := s.train(ctx); err != nil {
		return nil, err
	}
	return s.engine.GetAllProducts()
}

// UploadDataset replaces the dataset with csvText and retrains.
// The payload is fully parsed first so a malformed upload never replaces
// the current dataset.
func (s *RecommendationService) UploadDataset(ctx context.Context, csvText string) ([]int, error) {
	pairs, err := engine.Parse(csvText)
	if err != nil {
		return nil, err
	}

	s.engine.SetCSVData(csvText)
	s.archiveDataset(ctx, csvText)

	logger.With(logger.Fields{logger.FieldSize: len(csvText)}).WithCount(len(pairs)).
		Info(s.logCtx(ctx), "Dataset uploaded")

	return s.Train(ctx)
}

// Products returns the product universe of the trained model.
func (s *RecommendationService) Products(ctx context.Context) ([]int, error) {
	return s.engine.GetAllProducts()
}

// History returns the most recent served recommendations.
func (s *RecommendationService) History(ctx context.Context, limit int) ([]domain.Recommendation, error) {
	return s.store.ListRecent(ctx, limit)
}

// Status reports the engine state and the number of logged recommendations.
func (s *RecommendationService) Status(ctx context.Context) (*StatusResult, error) {
	served, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count recommendations: %w", err)
	}
	return &StatusResult{
		TrainingState: s.engine.State(),
		Model:         s.engine.Stats(),
		Served:        served,
	}, nil
}

// IsTrained reports whether the engine has been trained.
func (s *RecommendationService) IsTrained() bool {
	return s.engine.IsTrained()
}

func (s *RecommendationService) train(ctx context.Context) error {
	start := time.Now()
	if err := s.engine.Train(); err != nil {
		logger.CtxWarn(s.logCtx(ctx), "Model training failed: %v", err)
		return err
	}

	stats := s.engine.Stats()
	logger.With(logger.Fields{
		logger.FieldDatasetSource: s.engine.State().Source,
		"pairs":                   stats.Pairs,
		"products":                stats.Products,
	}).WithDuration(time.Since(start).Milliseconds()).Info(s.logCtx(ctx), "Model trained")
	return nil
}

// trainLazily coalesces concurrent first-use training into one pass.
func (s *RecommendationService) trainLazily(ctx context.Context) error {
	_, err, _ := s.lazyTrain.Do("train", func() (interface{}, error) {
		return nil, s.train(ctx)
	})
	return err
}

// archiveDataset copies an accepted upload to object storage. Failures are
// logged and do not block training.
func (s *RecommendationService) archiveDataset(ctx context.Context, csvText string) {
	if s.archive == nil {
		return
	}
	key := fmt.Sprintf("%s%s-%s.csv", s.archivePrefix, time.Now().UTC().Format("20060102T150405Z"), uuid.New().String())
	if err := s.archive.Upload(ctx, key, strings.NewReader(csvText), int64(len(csvText)), "text/csv"); err != nil {
		logger.With(logger.Fields{"key": key}).Warn(s.logCtx(ctx), "Failed to archive dataset: %v", err)
		return
	}
	logger.CtxInfo(s.logCtx(ctx), "Dataset archived: key=%s", key)
}
