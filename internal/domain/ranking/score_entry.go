package ranking

import (
	"time"

	"github.com/google/uuid"

	"github.com/marketloop/backend/internal/domain/shared"
)

// Category represents a scoring category for user reputation
type Category string

const (
	CategoryContent    Category = "content"
	CategorySales      Category = "sales"
	CategoryReputation Category = "reputation"
)

// IsValid checks if the category is a known scoring category
func (c Category) IsValid() bool {
	switch c {
	case CategoryContent, CategorySales, CategoryReputation:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// ScoreEntry is a per-user, per-category reputation score.
// Entries are created lazily on the first adjustment and never deleted.
type ScoreEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  Category
	Score     float64
	UpdatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewScoreEntry creates a score entry with an initial score
func NewScoreEntry(userID uuid.UUID, category Category, initialScore float64, updatedBy *uuid.UUID) (*ScoreEntry, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "User ID cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown scoring category: "+string(category))
	}

	now := time.Now()
	return &ScoreEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  category,
		Score:     initialScore,
		UpdatedBy: updatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyDelta adds a delta to the score and records the acting user
func (e *ScoreEntry) ApplyDelta(delta float64, updatedBy *uuid.UUID) {
	e.Score += delta
	e.UpdatedBy = updatedBy
	e.UpdatedAt = time.Now()
}
