package engagement

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	rankingapp "github.com/marketloop/backend/internal/application/ranking"
	"github.com/marketloop/backend/internal/domain/engagement"
	"github.com/marketloop/backend/internal/domain/ranking"
	"github.com/marketloop/backend/internal/domain/shared"
)

// Content-score deltas per engagement kind
const (
	reactionDelta = 1.0
	commentDelta  = 3.0
	reshareDelta  = 5.0
)

// EngagementService records reactions, comments, and reshares, and feeds the
// content owner's ranking score as a best-effort side effect.
type EngagementService struct {
	engagementRepo engagement.Repository
	rankings       rankingapp.Adjuster
	log            *zap.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(engagementRepo engagement.Repository, rankings rankingapp.Adjuster, log *zap.Logger) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		rankings:       rankings,
		log:            log,
	}
}

// React records a reaction by the actor on the content.
// A second reaction by the same actor on the same content fails with ALREADY_EXISTS.
func (s *EngagementService) React(ctx context.Context, actorID, contentID uuid.UUID, contentKind string, ownerID *uuid.UUID) (*EngagementResponse, error) {
	existing, err := s.engagementRepo.FindReaction(ctx, actorID, contentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	record, err := engagement.NewEngagement(actorID, contentID, contentKind, engagement.KindReaction)
	if err != nil {
		return nil, err
	}
	if err := s.engagementRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.adjustOwnerScore(ctx, ownerID, actorID, reactionDelta)
	resp := toEngagementResponse(record)
	return &resp, nil
}

// Unreact removes the actor's reaction on the content
func (s *EngagementService) Unreact(ctx context.Context, actorID, contentID uuid.UUID, ownerID *uuid.UUID) error {
	existing, err := s.engagementRepo.FindReaction(ctx, actorID, contentID)
	if err != nil {
		return err
	}
	if existing == nil {
		return shared.ErrNotFound
	}

	if err := s.engagementRepo.Delete(ctx, existing.ID); err != nil {
		return err
	}

	s.adjustOwnerScore(ctx, ownerID, actorID, -reactionDelta)
	return nil
}

// Comment records a comment, optionally threaded under a parent comment
func (s *EngagementService) Comment(ctx context.Context, actorID, contentID uuid.UUID, contentKind, body string, parentID, ownerID *uuid.UUID) (*EngagementResponse, error) {
	record, err := engagement.NewComment(actorID, contentID, contentKind, body, parentID)
	if err != nil {
		return nil, err
	}
	if err := s.engagementRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.adjustOwnerScore(ctx, ownerID, actorID, commentDelta)
	resp := toEngagementResponse(record)
	return &resp, nil
}

// DeleteComment removes a comment. Only the comment's author or an admin may delete it.
func (s *EngagementService) DeleteComment(ctx context.Context, commentID, actorID uuid.UUID, isAdmin bool, ownerID *uuid.UUID) error {
	record, err := s.engagementRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if record.Kind != engagement.KindComment {
		return shared.ErrNotFound
	}
	if !isAdmin && !record.IsOwnedBy(actorID) {
		return shared.ErrForbidden
	}

	if err := s.engagementRepo.Delete(ctx, record.ID); err != nil {
		return err
	}

	s.adjustOwnerScore(ctx, ownerID, actorID, -commentDelta)
	return nil
}

// Reshare records a reshare. Repeated reshares by the same actor are allowed.
func (s *EngagementService) Reshare(ctx context.Context, actorID, contentID uuid.UUID, contentKind string, ownerID *uuid.UUID) (*EngagementResponse, error) {
	record, err := engagement.NewEngagement(actorID, contentID, contentKind, engagement.KindReshare)
	if err != nil {
		return nil, err
	}
	if err := s.engagementRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.adjustOwnerScore(ctx, ownerID, actorID, reshareDelta)
	resp := toEngagementResponse(record)
	return &resp, nil
}

// Counts returns grouped engagement counts for a piece of content
func (s *EngagementService) Counts(ctx context.Context, contentID uuid.UUID) (engagement.Counts, error) {
	return s.engagementRepo.CountByContent(ctx, contentID)
}

// ListReactions returns a newest-first page of reactions on the content
func (s *EngagementService) ListReactions(ctx context.Context, contentID uuid.UUID, page, pageSize int) ([]EngagementResponse, int64, error) {
	return s.listByKind(ctx, contentID, engagement.KindReaction, page, pageSize)
}

// ListComments returns a newest-first page of comments on the content
func (s *EngagementService) ListComments(ctx context.Context, contentID uuid.UUID, page, pageSize int) ([]EngagementResponse, int64, error) {
	return s.listByKind(ctx, contentID, engagement.KindComment, page, pageSize)
}

// ListReshares returns a newest-first page of reshares of the content
func (s *EngagementService) ListReshares(ctx context.Context, contentID uuid.UUID, page, pageSize int) ([]EngagementResponse, int64, error) {
	return s.listByKind(ctx, contentID, engagement.KindReshare, page, pageSize)
}

// ListReplies returns a newest-first page of comments threaded under a parent comment
func (s *EngagementService) ListReplies(ctx context.Context, parentID uuid.UUID, page, pageSize int) ([]EngagementResponse, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	records, total, err := s.engagementRepo.ListReplies(ctx, parentID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toEngagementResponses(records), total, nil
}

func (s *EngagementService) listByKind(ctx context.Context, contentID uuid.UUID, kind engagement.Kind, page, pageSize int) ([]EngagementResponse, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	records, total, err := s.engagementRepo.ListByContent(ctx, contentID, kind, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toEngagementResponses(records), total, nil
}

// adjustOwnerScore feeds the content owner's content score. The engagement
// record has already been written at this point; a scoring failure is logged
// and swallowed so it never fails the primary operation. Self-engagement does
// not score.
func (s *EngagementService) adjustOwnerScore(ctx context.Context, ownerID *uuid.UUID, actorID uuid.UUID, delta float64) {
	if ownerID == nil || *ownerID == actorID {
		return
	}
	if err := s.rankings.Adjust(ctx, *ownerID, ranking.CategoryContent, delta, &actorID); err != nil {
		s.log.Warn("Content score adjustment failed",
			zap.String("owner_id", ownerID.String()),
			zap.String("actor_id", actorID.String()),
			zap.Float64("delta", delta),
			zap.Error(err),
		)
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
