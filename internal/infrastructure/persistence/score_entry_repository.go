package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketloop/backend/internal/domain/ranking"
	"github.com/marketloop/backend/internal/domain/shared"
)

// GormScoreEntryRepository implements ranking.ScoreEntryRepository using GORM
type GormScoreEntryRepository struct {
	db *gorm.DB
}

// NewGormScoreEntryRepository creates a new GormScoreEntryRepository
func NewGormScoreEntryRepository(db *gorm.DB) *GormScoreEntryRepository {
	return &GormScoreEntryRepository{db: db}
}

// FindByUserAndCategory returns the entry for the pair, or (nil, nil) when absent
func (r *GormScoreEntryRepository) FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category ranking.Category) (*ranking.ScoreEntry, error) {
	var entry ranking.ScoreEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Create inserts a new entry. The (user_id, category) pair carries a unique
// index; a duplicate insert surfaces as shared.ErrConflict.
func (r *GormScoreEntryRepository) Create(ctx context.Context, entry *ranking.ScoreEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// Update writes the score of an existing entry
func (r *GormScoreEntryRepository) Update(ctx context.Context, entry *ranking.ScoreEntry) error {
	entry.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&ranking.ScoreEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"score":      entry.Score,
			"updated_by": entry.UpdatedBy,
			"updated_at": entry.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListByUser returns all entries for a user, ordered by score descending
func (r *GormScoreEntryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]ranking.ScoreEntry, error) {
	var entries []ranking.ScoreEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// TopByCategory returns the highest entries in a category
func (r *GormScoreEntryRepository) TopByCategory(ctx context.Context, category ranking.Category, limit int) ([]ranking.ScoreEntry, error) {
	var entries []ranking.ScoreEntry
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("score DESC, user_id ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// TopOverall sums scores per user across all categories, ordered descending
// with ties broken by user ID ascending
func (r *GormScoreEntryRepository) TopOverall(ctx context.Context, limit int) ([]ranking.UserAggregate, error) {
	var aggregates []ranking.UserAggregate
	err := r.db.WithContext(ctx).Model(&ranking.ScoreEntry{}).
		Select("user_id, SUM(score) AS total_score").
		Group("user_id").
		Order("total_score DESC, user_id ASC").
		Limit(limit).
		Scan(&aggregates).Error
	if err != nil {
		return nil, err
	}
	return aggregates, nil
}

var _ ranking.ScoreEntryRepository = (*GormScoreEntryRepository)(nil)
