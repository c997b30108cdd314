package ranking

import (
	"context"

	"github.com/google/uuid"
)

// UserAggregate is a user's total score summed across all categories
type UserAggregate struct {
	UserID     uuid.UUID
	TotalScore float64
}

// ScoreEntryRepository defines the persistence interface for score entries
type ScoreEntryRepository interface {
	// FindByUserAndCategory returns the entry for the pair, or (nil, nil) when absent
	FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category Category) (*ScoreEntry, error)
	// Create inserts a new entry; returns shared.ErrConflict if the pair already exists
	Create(ctx context.Context, entry *ScoreEntry) error
	// Update writes the score of an existing entry; returns shared.ErrNotFound if absent
	Update(ctx context.Context, entry *ScoreEntry) error
	// ListByUser returns all entries for a user, ordered by score descending
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ScoreEntry, error)
	// TopByCategory returns the highest entries in a category, ordered by score descending
	TopByCategory(ctx context.Context, category Category, limit int) ([]ScoreEntry, error)
	// TopOverall sums scores per user across all categories, ordered descending.
	// Ties are broken by user ID ascending.
	TopOverall(ctx context.Context, limit int) ([]UserAggregate, error)
}
