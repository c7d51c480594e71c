package repository

import (
	"context"
	"fmt"

	"github.com/timmy/cobuy/internal/domain"
	"gorm.io/gorm"
)

// DefaultListLimit caps List when the caller passes no limit.
const DefaultListLimit = 50

// RecommendationRepository appends and reads the recommendation log.
type RecommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository creates a new RecommendationRepository.
func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Create appends a recommendation record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - rec: record to persist; ID and CreatedAt are filled in.
//
// Returns:
//   - error: non-nil if the insert fails.
func (r *RecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create recommendation: %w", err)
	}
	return nil
}

// ListRecent returns the newest records first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records; <= 0 uses DefaultListLimit.
//
// Returns:
//   - []domain.Recommendation: matching records.
//   - error: non-nil if the query fails.
func (r *RecommendationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var recs []domain.Recommendation
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}

// Count returns the number of logged recommendations.
func (r *RecommendationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Recommendation{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
