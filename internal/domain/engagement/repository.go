package engagement

import (
	"context"

	"github.com/google/uuid"
)

// Counts holds grouped engagement counts for a piece of content
type Counts struct {
	Reactions int64 `json:"reactions"`
	Comments  int64 `json:"comments"`
	Reshares  int64 `json:"reshares"`
	Total     int64 `json:"total"`
}

// Repository defines the persistence interface for engagements
type Repository interface {
	// FindByID returns the engagement; shared.ErrNotFound if absent
	FindByID(ctx context.Context, id uuid.UUID) (*Engagement, error)
	// FindReaction returns the actor's reaction on the content, or (nil, nil) when absent
	FindReaction(ctx context.Context, actorID, contentID uuid.UUID) (*Engagement, error)
	// Create inserts a new engagement record
	Create(ctx context.Context, e *Engagement) error
	// Delete removes an engagement record; shared.ErrNotFound if absent
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByContent returns grouped counts for a piece of content
	CountByContent(ctx context.Context, contentID uuid.UUID) (Counts, error)
	// ListByContent returns a newest-first page of engagements of one kind,
	// plus the total count for pagination metadata
	ListByContent(ctx context.Context, contentID uuid.UUID, kind Kind, page, pageSize int) ([]Engagement, int64, error)
	// ListReplies returns a newest-first page of comments threaded under a parent comment
	ListReplies(ctx context.Context, parentID uuid.UUID, page, pageSize int) ([]Engagement, int64, error)
}
