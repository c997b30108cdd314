package ranking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketloop/backend/internal/domain/ranking"
	"github.com/marketloop/backend/internal/domain/shared"
)

// Adjuster applies score deltas. Engagement and order services depend on this
// interface so their tests can substitute the scoring side effect.
type Adjuster interface {
	Adjust(ctx context.Context, userID uuid.UUID, category ranking.Category, delta float64, actor *uuid.UUID) error
}

// RankingService maintains per-user, per-category reputation scores
type RankingService struct {
	scoreRepo ranking.ScoreEntryRepository
	log       *zap.Logger
}

// NewRankingService creates a new RankingService
func NewRankingService(scoreRepo ranking.ScoreEntryRepository, log *zap.Logger) *RankingService {
	return &RankingService{
		scoreRepo: scoreRepo,
		log:       log,
	}
}

var _ Adjuster = (*RankingService)(nil)

// Adjust applies a delta to the (user, category) score, creating the entry on
// first touch. The read and the write are separate statements: concurrent
// adjustments to the same pair race and the last writer wins.
func (s *RankingService) Adjust(ctx context.Context, userID uuid.UUID, category ranking.Category, delta float64, actor *uuid.UUID) error {
	if !category.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Unknown scoring category: "+string(category))
	}

	entry, err := s.scoreRepo.FindByUserAndCategory(ctx, userID, category)
	if err != nil {
		return err
	}

	if entry == nil {
		entry, err = ranking.NewScoreEntry(userID, category, delta, actor)
		if err != nil {
			return err
		}
		if err := s.scoreRepo.Create(ctx, entry); err != nil {
			return err
		}
		s.log.Debug("Score entry created",
			zap.String("user_id", userID.String()),
			zap.String("category", category.String()),
			zap.Float64("score", delta),
		)
		return nil
	}

	entry.ApplyDelta(delta, actor)
	return s.scoreRepo.Update(ctx, entry)
}

// UserScores returns all score entries for a user, highest first
func (s *RankingService) UserScores(ctx context.Context, userID uuid.UUID) ([]ScoreEntryResponse, error) {
	entries, err := s.scoreRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toScoreEntryResponses(entries), nil
}

// CategoryLeaderboard returns the top scores within one category
func (s *RankingService) CategoryLeaderboard(ctx context.Context, category ranking.Category, limit int) ([]ScoreEntryResponse, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown scoring category: "+string(category))
	}
	entries, err := s.scoreRepo.TopByCategory(ctx, category, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return toScoreEntryResponses(entries), nil
}

// OverallLeaderboard returns users ranked by their score summed across categories
func (s *RankingService) OverallLeaderboard(ctx context.Context, limit int) ([]UserAggregateResponse, error) {
	aggregates, err := s.scoreRepo.TopOverall(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}

	out := make([]UserAggregateResponse, len(aggregates))
	for i, a := range aggregates {
		out[i] = UserAggregateResponse{
			UserID:     a.UserID.String(),
			TotalScore: a.TotalScore,
		}
	}
	return out, nil
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}
