package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketloop/backend/internal/domain/engagement"
	"github.com/marketloop/backend/internal/domain/shared"
)

// GormEngagementRepository implements engagement.Repository using GORM
type GormEngagementRepository struct {
	db *gorm.DB
}

// NewGormEngagementRepository creates a new GormEngagementRepository
func NewGormEngagementRepository(db *gorm.DB) *GormEngagementRepository {
	return &GormEngagementRepository{db: db}
}

// FindByID finds an engagement by its ID
func (r *GormEngagementRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Engagement, error) {
	var e engagement.Engagement
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindReaction returns the actor's reaction on the content, or (nil, nil) when absent
func (r *GormEngagementRepository) FindReaction(ctx context.Context, actorID, contentID uuid.UUID) (*engagement.Engagement, error) {
	var e engagement.Engagement
	err := r.db.WithContext(ctx).
		Where("actor_id = ? AND content_id = ? AND kind = ?", actorID, contentID, engagement.KindReaction).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// Create inserts a new engagement record
func (r *GormEngagementRepository) Create(ctx context.Context, e *engagement.Engagement) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes an engagement record
func (r *GormEngagementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&engagement.Engagement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByContent returns grouped counts for a piece of content
func (r *GormEngagementRepository) CountByContent(ctx context.Context, contentID uuid.UUID) (engagement.Counts, error) {
	type kindCount struct {
		Kind  engagement.Kind
		Count int64
	}

	var rows []kindCount
	err := r.db.WithContext(ctx).Model(&engagement.Engagement{}).
		Select("kind, COUNT(*) AS count").
		Where("content_id = ?", contentID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return engagement.Counts{}, err
	}

	var counts engagement.Counts
	for _, row := range rows {
		switch row.Kind {
		case engagement.KindReaction:
			counts.Reactions = row.Count
		case engagement.KindComment:
			counts.Comments = row.Count
		case engagement.KindReshare:
			counts.Reshares = row.Count
		}
		counts.Total += row.Count
	}
	return counts, nil
}

// ListByContent returns a newest-first page of engagements of one kind
func (r *GormEngagementRepository) ListByContent(ctx context.Context, contentID uuid.UUID, kind engagement.Kind, page, pageSize int) ([]engagement.Engagement, int64, error) {
	query := r.db.WithContext(ctx).Model(&engagement.Engagement{}).
		Where("content_id = ? AND kind = ?", contentID, kind)
	return r.paginate(query, page, pageSize)
}

// ListReplies returns a newest-first page of comments threaded under a parent comment
func (r *GormEngagementRepository) ListReplies(ctx context.Context, parentID uuid.UUID, page, pageSize int) ([]engagement.Engagement, int64, error) {
	query := r.db.WithContext(ctx).Model(&engagement.Engagement{}).
		Where("parent_id = ? AND kind = ?", parentID, engagement.KindComment)
	return r.paginate(query, page, pageSize)
}

func (r *GormEngagementRepository) paginate(query *gorm.DB, page, pageSize int) ([]engagement.Engagement, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	filter := shared.Filter{Page: page, PageSize: pageSize}
	var engagements []engagement.Engagement
	err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&engagements).Error
	if err != nil {
		return nil, 0, err
	}
	return engagements, total, nil
}

var _ engagement.Repository = (*GormEngagementRepository)(nil)
